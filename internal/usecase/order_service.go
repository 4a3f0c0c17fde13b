package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports"
	"github.com/Sardaar2003/fortigatex-sub001/internal/rejectlist"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/metrics"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

// ErrRejected: the vendor (or a pre-flight business rule) declined
// the submission. The order record, when one was produced, is still
// returned alongside so the caller sees the persisted outcome.
var ErrRejected = errors.New("submission rejected")

// ErrUnknownProject: no adapter is registered for the project.
var ErrUnknownProject = errors.New("unknown project")

// OrderService: the order processing orchestrator plus the read side.
// One Process call runs the whole pipeline: shape check, state
// gate, adapter pre-flight, single vendor round trip, status mapping,
// best-effort persistence and outcome event.
type OrderService struct {
	repo      ports.OrderRepository
	cache     ports.OrderCache
	log       ports.Logger
	shape     ports.SubmissionValidator
	vendors   *adapters.Registry
	publisher ports.OutcomePublisher

	// Blocked-state pre-gates for the projects that reject before any
	// adapter involvement (FRP, MI).
	stateGates map[domain.Project]*rejectlist.Set
}

func NewOrderService(
	repo ports.OrderRepository,
	cache ports.OrderCache,
	log ports.Logger,
	shape ports.SubmissionValidator,
	vendors *adapters.Registry,
	publisher ports.OutcomePublisher,
	stateGates map[domain.Project]*rejectlist.Set,
) *OrderService {
	return &OrderService{
		repo:       repo,
		cache:      cache,
		log:        log,
		shape:      shape,
		vendors:    vendors,
		publisher:  publisher,
		stateGates: stateGates,
	}
}

// Process handles one submission end to end. The returned order is nil
// only for rejections that never enter the record-producing part of
// the pipeline (shape errors, the blocked-state gate, unknown project).
//
// Error classes for the transport layer:
//   - validate.ErrInvalidSubmission, ErrRejected: business rejection (400)
//   - adapters.ErrVendorUnavailable, adapters.ErrUnmappedStatus: adapter failure (500)
func (s *OrderService) Process(ctx context.Context, sub *domain.Submission) (*domain.Order, error) {
	// 1. Aggregated shape check: all missing fields in one error.
	if err := s.shape.Validate(ctx, sub); err != nil {
		s.log.Warnf(ctx, "shape validation failed project=%s err=%v", sub.Project, err)
		return nil, err
	}

	adapter, ok := s.vendors.Lookup(sub.Project)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProject, sub.Project)
	}

	// 2. Blocked-state gate: rejected with no vendor call and no record.
	if gate := s.stateGates[sub.Project]; gate.Contains(sub.State) {
		s.log.Infof(ctx, "state gate rejected project=%s state=%s session=%s", sub.Project, sub.State, sub.SessionID)
		// Counted separately from OrdersSubmitted: this path persists
		// no record, and OrdersSubmitted tracks persisted submissions.
		metrics.StateGateRejections.WithLabelValues(string(sub.Project)).Inc()
		return nil, fmt.Errorf("%w: orders from state %s are not accepted", ErrRejected, sub.State)
	}

	// 3. Adapter pre-flight (vendor-specific rules, reject lists,
	// duplicate guard). A rejection here is persisted for audit.
	if err := adapter.Validate(ctx, sub); err != nil {
		if errors.Is(err, validate.ErrInvalidSubmission) {
			order := s.newRecord(sub)
			order.Status = domain.StatusCancelled
			order.ValidationMessage = reasonOf(err)
			s.finalize(ctx, order)
			return order, err
		}
		// Infrastructure failure inside pre-flight (e.g. the duplicate
		// guard query) is an adapter failure, not a rejection.
		s.log.Errorf(ctx, "adapter pre-flight failed project=%s err=%v", sub.Project, err)
		return nil, err
	}

	// 4. Single vendor round trip; never retried.
	start := time.Now()
	outcome, err := adapter.Submit(ctx, sub)
	metrics.VendorRequestDuration.WithLabelValues(string(sub.Project)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.VendorRequests.WithLabelValues(string(sub.Project), "error").Inc()
		s.log.Errorf(ctx, "vendor call failed project=%s session=%s err=%v", sub.Project, sub.SessionID, err)

		order := s.newRecord(sub)
		order.Status = domain.StatusFailed
		order.ValidationMessage = err.Error()
		s.finalize(ctx, order)
		return order, err
	}

	// 5. Status mapping: eligible means completed, ineligible means cancelled.
	order := s.newRecord(sub)
	order.ValidationResponse = outcome.Raw
	order.Extensions.Gateway = gatewayOf(outcome)
	if outcome.TransactionID != "" {
		if order.Extensions.Extra == nil {
			order.Extensions.Extra = map[string]any{}
		}
		order.Extensions.Extra["transaction_id"] = outcome.TransactionID
	}

	if outcome.Eligible {
		order.Status = domain.StatusCompleted
		order.ValidationStatus = true
		order.ValidationMessage = "accepted"
		metrics.VendorRequests.WithLabelValues(string(sub.Project), "eligible").Inc()
		s.finalize(ctx, order)
		return order, nil
	}

	order.Status = domain.StatusCancelled
	order.ValidationMessage = outcome.Reason
	metrics.VendorRequests.WithLabelValues(string(sub.Project), "ineligible").Inc()
	s.finalize(ctx, order)
	return order, fmt.Errorf("%w: %s", ErrRejected, outcome.Reason)
}

// newRecord builds the canonical record from the submission. CardLast4
// is derived here, at creation time, and nowhere else.
func (s *OrderService) newRecord(sub *domain.Submission) *domain.Order {
	now := time.Now().UTC()
	return &domain.Order{
		OrderUID: uuid.New().String(),
		Project:  sub.Project,
		UserID:   sub.UserID,

		FirstName:      sub.FirstName,
		LastName:       sub.LastName,
		Address1:       sub.Address1,
		Address2:       sub.Address2,
		City:           sub.City,
		State:          sub.State,
		Zip:            sub.Zip,
		Phone:          sub.Phone,
		SecondaryPhone: sub.SecondaryPhone,
		Email:          sub.Email,

		SourceCode:  sub.SourceCode,
		SKU:         sub.SKU,
		ProductName: sub.ProductName,
		SessionID:   sub.SessionID,

		CardNumber:     sub.CardNumber,
		CardLast4:      domain.Last4(sub.CardNumber),
		CardExpiration: sub.CardExpiration,
		CVV:            sub.CVV,
		Issuer:         sub.Issuer,

		CheckingAccountName: sub.CheckingAccountName,
		RoutingNumber:       sub.RoutingNumber,
		AccountNumber:       sub.AccountNumber,

		Extensions: domain.Extensions{
			VendorID:          sub.VendorID,
			ClientOrderNumber: sub.ClientOrderNumber,
			PitchID:           sub.PitchID,
			CheckingConsent:   sub.CheckingConsent,
			EsignConsent:      sub.EsignConsent,
		},

		ValidationDate: now,
		CreatedAt:      now,
	}
}

// finalize persists the record and publishes the outcome event, both
// best-effort: failures are logged and counted, never surfaced. The
// caller-visible result is the vendor outcome, not the bookkeeping.
func (s *OrderService) finalize(ctx context.Context, order *domain.Order) {
	metrics.OrdersSubmitted.WithLabelValues(string(order.Project), string(order.Status)).Inc()

	if err := s.repo.Save(ctx, order); err != nil {
		metrics.PersistenceFailures.WithLabelValues(string(order.Project)).Inc()
		s.log.Errorf(ctx, "order persistence failed project=%s user=%s session=%s uid=%s err=%v",
			order.Project, order.UserID, order.SessionID, order.OrderUID, err)
	} else if cacheErr := s.cache.Set(ctx, order); cacheErr != nil {
		s.log.Warnf(ctx, "cache.Set failed uid=%s err=%v", order.OrderUID, cacheErr)
	}

	if err := s.publisher.PublishOutcome(ctx, order); err != nil {
		s.log.Warnf(ctx, "outcome publish failed uid=%s err=%v", order.OrderUID, err)
	}
}

func reasonOf(err error) string {
	msg := err.Error()
	prefix := validate.ErrInvalidSubmission.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

func gatewayOf(outcome *adapters.Outcome) *domain.GatewayResponse {
	if len(outcome.Gateway) == 0 {
		return nil
	}
	g := &domain.GatewayResponse{}
	if v, ok := outcome.Gateway["transaction_id"].(string); ok {
		g.TransactionID = v
	}
	if v, ok := outcome.Gateway["gateway_id"].(string); ok {
		g.GatewayID = v
	}
	if v, ok := outcome.Gateway["auth_code"].(string); ok {
		g.AuthCode = v
	}
	if v, ok := outcome.Gateway["response_text"].(string); ok {
		g.ResponseText = v
	}
	return g
}

// GetOrder: read path: cache first, then repository with cache fill.
// Returns (nil, nil) when the record does not exist.
func (s *OrderService) GetOrder(ctx context.Context, orderUID string) (*domain.Order, error) {
	if order, found := s.cache.Get(ctx, orderUID); found {
		return order, nil
	}

	order, err := s.repo.GetByUID(ctx, orderUID)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByUID failed order_uid=%s err=%v", orderUID, err)
		return nil, err
	}
	if order != nil {
		if setErr := s.cache.Set(ctx, order); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed order_uid=%s err=%v", orderUID, setErr)
		}
	}
	return order, nil
}

// OrdersByUser: paged pass-through (pagination validated upstream).
func (s *OrderService) OrdersByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// WarmUpCache: preload the cache with the last N records. n <= 0
// skips the warm-up without error.
func (s *OrderService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d orders in %s", len(list), time.Since(start))
	return nil
}
