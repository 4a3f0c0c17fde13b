package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports/mocks"
	"github.com/Sardaar2003/fortigatex-sub001/internal/rejectlist"
	"github.com/Sardaar2003/fortigatex-sub001/internal/usecase"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/metrics"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

const orderUID = "order-1"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// fakeAdapter is a hand stub: the Adapter interface lives outside
// ports, so it has no generated mock.
type fakeAdapter struct {
	project     domain.Project
	validateErr error
	outcome     *adapters.Outcome
	submitErr   error
	submitCalls int
}

func (f *fakeAdapter) Project() domain.Project { return f.project }

func (f *fakeAdapter) Validate(context.Context, *domain.Submission) error {
	return f.validateErr
}

func (f *fakeAdapter) Submit(context.Context, *domain.Submission) (*adapters.Outcome, error) {
	f.submitCalls++
	return f.outcome, f.submitErr
}

type deps struct {
	repo      *mocks.MockOrderRepository
	cache     *mocks.MockOrderCache
	shape     *mocks.MockSubmissionValidator
	publisher *mocks.MockOutcomePublisher
	adapter   *fakeAdapter
}

func newService(t *testing.T, adapter *fakeAdapter) (*usecase.OrderService, deps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := deps{
		repo:      mocks.NewMockOrderRepository(ctrl),
		cache:     mocks.NewMockOrderCache(ctrl),
		shape:     mocks.NewMockSubmissionValidator(ctrl),
		publisher: mocks.NewMockOutcomePublisher(ctrl),
		adapter:   adapter,
	}

	gates := map[domain.Project]*rejectlist.Set{
		domain.ProjectFRP: rejectlist.RadiusStates(),
		domain.ProjectMI:  rejectlist.MIStates(),
	}

	svc := usecase.NewOrderService(
		d.repo, d.cache, noopLogger{}, d.shape,
		adapters.NewRegistry(adapter), d.publisher, gates,
	)
	return svc, d
}

func frpSubmission() *domain.Submission {
	return &domain.Submission{
		Project:        domain.ProjectFRP,
		UserID:         "user-1",
		FirstName:      "John",
		LastName:       "Smith",
		Address1:       "Main st 1",
		City:           "Metropolis",
		State:          "NY",
		Zip:            "10001",
		Phone:          "2025550101",
		SourceCode:     "SRC01",
		SKU:            "WIDGET1",
		ProductName:    "Widget",
		SessionID:      "sess-1",
		CardNumber:     "4242424242424242",
		CardExpiration: "1229",
	}
}

func TestProcess_ShapeError_NoRecord(t *testing.T) {
	svc, d := newService(t, &fakeAdapter{project: domain.ProjectFRP})

	shapeErr := fmt.Errorf("%w: missing fields: phone", validate.ErrInvalidSubmission)
	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(shapeErr)
	// No Save, no Set, no Publish: shape errors never produce a record.

	order, err := svc.Process(context.Background(), frpSubmission())
	if !errors.Is(err, validate.ErrInvalidSubmission) {
		t.Fatalf("want ErrInvalidSubmission, got %v", err)
	}
	if order != nil {
		t.Fatalf("shape error must not produce a record, got %+v", order)
	}
}

func TestProcess_UnknownProject(t *testing.T) {
	svc, d := newService(t, &fakeAdapter{project: domain.ProjectFRP})

	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)

	sub := frpSubmission()
	sub.Project = domain.ProjectSC // registry only holds FRP

	order, err := svc.Process(context.Background(), sub)
	if !errors.Is(err, usecase.ErrUnknownProject) {
		t.Fatalf("want ErrUnknownProject, got %v", err)
	}
	if order != nil {
		t.Fatalf("unexpected record: %+v", order)
	}
}

func TestProcess_StateGate_NoVendorCallNoRecord(t *testing.T) {
	adapter := &fakeAdapter{project: domain.ProjectFRP}
	svc, d := newService(t, adapter)

	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)

	sub := frpSubmission()
	sub.State = "IA" // blocked for the disposition projects

	gateBefore := testutil.ToFloat64(metrics.StateGateRejections.WithLabelValues(string(domain.ProjectFRP)))
	cancelledBefore := testutil.ToFloat64(metrics.OrdersSubmitted.WithLabelValues(string(domain.ProjectFRP), string(domain.StatusCancelled)))

	order, err := svc.Process(context.Background(), sub)
	if !errors.Is(err, usecase.ErrRejected) {
		t.Fatalf("want ErrRejected, got %v", err)
	}
	if order != nil {
		t.Fatalf("state gate must not produce a record, got %+v", order)
	}
	if adapter.submitCalls != 0 {
		t.Fatalf("vendor must not be called for a blocked state")
	}

	// No record is persisted here, so OrdersSubmitted must not move;
	// the rejection lands on its own counter.
	if got := testutil.ToFloat64(metrics.StateGateRejections.WithLabelValues(string(domain.ProjectFRP))); got != gateBefore+1 {
		t.Fatalf("state gate rejection not counted: before=%v after=%v", gateBefore, got)
	}
	if got := testutil.ToFloat64(metrics.OrdersSubmitted.WithLabelValues(string(domain.ProjectFRP), string(domain.StatusCancelled))); got != cancelledBefore {
		t.Fatalf("OrdersSubmitted must only count persisted submissions: before=%v after=%v", cancelledBefore, got)
	}
}

func TestProcess_AdapterValidationReject_PersistsCancelled(t *testing.T) {
	adapter := &fakeAdapter{
		project:     domain.ProjectFRP,
		validateErr: fmt.Errorf("%w: this card type is not accepted", validate.ErrInvalidSubmission),
	}
	svc, d := newService(t, adapter)

	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().Save(gomock.Any(), gomock.AssignableToTypeOf(&domain.Order{})).Return(nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishOutcome(gomock.Any(), gomock.Any()).Return(nil)

	order, err := svc.Process(context.Background(), frpSubmission())
	if !errors.Is(err, validate.ErrInvalidSubmission) {
		t.Fatalf("want ErrInvalidSubmission, got %v", err)
	}
	if order == nil || order.Status != domain.StatusCancelled {
		t.Fatalf("want cancelled record, got %+v", order)
	}
	if order.ValidationStatus {
		t.Fatalf("rejected record must have validation_status=false")
	}
	if !strings.Contains(order.ValidationMessage, "card type") {
		t.Fatalf("reason not carried: %q", order.ValidationMessage)
	}
	if adapter.submitCalls != 0 {
		t.Fatalf("vendor must not be called after pre-flight rejection")
	}
}

func TestProcess_PreflightInfraFailure_NoRecord(t *testing.T) {
	adapter := &fakeAdapter{
		project:     domain.ProjectFRP,
		validateErr: fmt.Errorf("duplicate guard: %w", adapters.ErrVendorUnavailable),
	}
	svc, d := newService(t, adapter)

	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)

	order, err := svc.Process(context.Background(), frpSubmission())
	if !errors.Is(err, adapters.ErrVendorUnavailable) {
		t.Fatalf("want ErrVendorUnavailable, got %v", err)
	}
	if order != nil {
		t.Fatalf("infra pre-flight failure must not produce a record")
	}
}

func TestProcess_VendorError_PersistsFailed(t *testing.T) {
	adapter := &fakeAdapter{
		project:   domain.ProjectFRP,
		submitErr: fmt.Errorf("post: %w", adapters.ErrVendorUnavailable),
	}
	svc, d := newService(t, adapter)

	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishOutcome(gomock.Any(), gomock.Any()).Return(nil)

	order, err := svc.Process(context.Background(), frpSubmission())
	if !errors.Is(err, adapters.ErrVendorUnavailable) {
		t.Fatalf("want ErrVendorUnavailable, got %v", err)
	}
	if order == nil || order.Status != domain.StatusFailed {
		t.Fatalf("want failed record, got %+v", order)
	}
}

func TestProcess_Eligible_CompletedRecord(t *testing.T) {
	adapter := &fakeAdapter{
		project: domain.ProjectFRP,
		outcome: &adapters.Outcome{
			Eligible:      true,
			Raw:           `<response status="1" message="true"/>`,
			TransactionID: "txn-77",
		},
	}
	svc, d := newService(t, adapter)

	var saved *domain.Order
	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order) error {
			saved = o
			return nil
		})
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishOutcome(gomock.Any(), gomock.Any()).Return(nil)

	order, err := svc.Process(context.Background(), frpSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.StatusCompleted || !order.ValidationStatus {
		t.Fatalf("eligible outcome must complete the record: %+v", order)
	}
	if order.CardLast4 != "4242" {
		t.Fatalf("CardLast4 not derived: %q", order.CardLast4)
	}
	if order.ValidationResponse == "" {
		t.Fatalf("raw vendor payload must be preserved")
	}
	if got := order.Extensions.Extra["transaction_id"]; got != "txn-77" {
		t.Fatalf("transaction id not carried: %v", got)
	}
	if saved != order {
		t.Fatalf("persisted record differs from returned record")
	}
	if order.OrderUID == "" {
		t.Fatalf("order uid must be assigned")
	}
}

func TestProcess_Ineligible_CancelledRecord(t *testing.T) {
	adapter := &fakeAdapter{
		project: domain.ProjectFRP,
		outcome: &adapters.Outcome{Eligible: false, Reason: "Blocked BIN", Raw: "raw"},
	}
	svc, d := newService(t, adapter)

	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishOutcome(gomock.Any(), gomock.Any()).Return(nil)

	order, err := svc.Process(context.Background(), frpSubmission())
	if !errors.Is(err, usecase.ErrRejected) {
		t.Fatalf("want ErrRejected, got %v", err)
	}
	if order == nil || order.Status != domain.StatusCancelled || order.ValidationStatus {
		t.Fatalf("want cancelled record, got %+v", order)
	}
	if order.ValidationMessage != "Blocked BIN" {
		t.Fatalf("vendor reason not carried: %q", order.ValidationMessage)
	}
}

func TestProcess_PersistenceFailure_DoesNotMaskOutcome(t *testing.T) {
	adapter := &fakeAdapter{
		project: domain.ProjectFRP,
		outcome: &adapters.Outcome{Eligible: true, Raw: "raw"},
	}
	svc, d := newService(t, adapter)

	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	// cache.Set is skipped when Save fails; the event still goes out.
	d.publisher.EXPECT().PublishOutcome(gomock.Any(), gomock.Any()).Return(nil)

	order, err := svc.Process(context.Background(), frpSubmission())
	if err != nil {
		t.Fatalf("persistence failure must not surface: %v", err)
	}
	if order == nil || order.Status != domain.StatusCompleted {
		t.Fatalf("want completed record, got %+v", order)
	}
}

func TestProcess_PublisherFailure_DoesNotMaskOutcome(t *testing.T) {
	adapter := &fakeAdapter{
		project: domain.ProjectFRP,
		outcome: &adapters.Outcome{Eligible: true, Raw: "raw"},
	}
	svc, d := newService(t, adapter)

	d.shape.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishOutcome(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	if _, err := svc.Process(context.Background(), frpSubmission()); err != nil {
		t.Fatalf("publish failure must not surface: %v", err)
	}
}

func TestGetOrder_CacheHit(t *testing.T) {
	svc, d := newService(t, &fakeAdapter{project: domain.ProjectFRP})

	o := &domain.Order{OrderUID: orderUID}
	d.cache.EXPECT().Get(gomock.Any(), orderUID).Return(o, true)

	got, err := svc.GetOrder(context.Background(), orderUID)
	if err != nil || got == nil || got.OrderUID != orderUID {
		t.Fatalf("expected hit, got err=%v, order=%+v", err, got)
	}
}

func TestGetOrder_CacheMiss_FetchAndCache(t *testing.T) {
	svc, d := newService(t, &fakeAdapter{project: domain.ProjectFRP})

	o := &domain.Order{OrderUID: orderUID}
	gomock.InOrder(
		d.cache.EXPECT().Get(gomock.Any(), orderUID).Return(nil, false),
		d.repo.EXPECT().GetByUID(gomock.Any(), orderUID).Return(o, nil),
		d.cache.EXPECT().Set(gomock.Any(), o),
	)

	got, err := svc.GetOrder(context.Background(), orderUID)
	if err != nil || got == nil || got.OrderUID != orderUID {
		t.Fatalf("expected miss+fetch, got err=%v, order=%+v", err, got)
	}
}

func TestOrdersByUser_Passthrough(t *testing.T) {
	svc, d := newService(t, &fakeAdapter{project: domain.ProjectFRP})

	want := []*domain.Order{{OrderUID: orderUID}}
	d.repo.EXPECT().ListByUser(gomock.Any(), "user-1", 20, 0).Return(want, nil)

	got, err := svc.OrdersByUser(context.Background(), "user-1", 20, 0)
	if err != nil || len(got) != 1 || got[0].OrderUID != orderUID {
		t.Fatalf("unexpected result err=%v orders=%+v", err, got)
	}
}
