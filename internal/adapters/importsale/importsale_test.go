package importsale_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters/importsale"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports/mocks"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

func cardSub() *domain.Submission {
	return &domain.Submission{
		Project:        domain.ProjectImportSale,
		FirstName:      "John",
		LastName:       "Smith",
		Address1:       "Main st 1",
		City:           "Metropolis",
		State:          "NY",
		Zip:            "10001",
		Phone:          "2025550101",
		Email:          "john@example.com",
		SourceCode:     "SRC01",
		ProductName:    "Widget",
		SessionID:      "sess-1",
		PaymentMethod:  domain.PayByCard,
		CardNumber:     "4242424242424242",
		CardExpiration: "1229",
		CVV:            "123",
	}
}

func checkSub() *domain.Submission {
	s := cardSub()
	s.PaymentMethod = domain.PayByCheck
	s.CardNumber = ""
	s.CardExpiration = ""
	s.CVV = ""
	s.CheckingAccountName = "John Smith"
	s.RoutingNumber = "123456789"
	s.AccountNumber = "000123456"
	return s
}

func newRepo(t *testing.T) *mocks.MockOrderRepository {
	t.Helper()
	return mocks.NewMockOrderRepository(gomock.NewController(t))
}

func TestValidate_DuplicateGuard(t *testing.T) {
	repo := newRepo(t)
	a := importsale.New(importsale.Config{}, repo)

	repo.EXPECT().
		ExistsCompleted(gomock.Any(), "john@example.com", "Widget", domain.ProjectImportSale).
		Return(true, nil)

	err := a.Validate(context.Background(), cardSub())
	if !errors.Is(err, validate.ErrInvalidSubmission) || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("want duplicate rejection, got %v", err)
	}
}

func TestValidate_DuplicateGuardQueryFailure(t *testing.T) {
	repo := newRepo(t)
	a := importsale.New(importsale.Config{}, repo)

	repo.EXPECT().
		ExistsCompleted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, errors.New("db down"))

	err := a.Validate(context.Background(), cardSub())
	if !errors.Is(err, adapters.ErrVendorUnavailable) {
		t.Fatalf("guard query failure must be an adapter failure, got %v", err)
	}
}

func TestValidate_PaymentMethods(t *testing.T) {
	repo := newRepo(t)
	a := importsale.New(importsale.Config{}, repo)
	repo.EXPECT().
		ExistsCompleted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil).
		AnyTimes()

	if err := a.Validate(context.Background(), cardSub()); err != nil {
		t.Fatalf("card submission: %v", err)
	}
	if err := a.Validate(context.Background(), checkSub()); err != nil {
		t.Fatalf("check submission: %v", err)
	}

	noMethod := cardSub()
	noMethod.PaymentMethod = ""
	if err := a.Validate(context.Background(), noMethod); !errors.Is(err, validate.ErrInvalidSubmission) {
		t.Fatalf("want method rejection, got %v", err)
	}

	badRouting := checkSub()
	badRouting.RoutingNumber = "12"
	if err := a.Validate(context.Background(), badRouting); !errors.Is(err, validate.ErrInvalidSubmission) {
		t.Fatalf("want routing rejection, got %v", err)
	}
}

func submitThrough(t *testing.T, sub *domain.Submission, body string) (*adapters.Outcome, map[string]any, error) {
	t.Helper()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	a := importsale.New(importsale.Config{Endpoint: srv.URL, APIKey: "is-key"}, newRepo(t))
	out, err := a.Submit(context.Background(), sub)
	return out, got, err
}

func TestSubmit_CardPayloadExcludesACH(t *testing.T) {
	out, got, err := submitThrough(t, cardSub(),
		`{"success":true,"data":{"response":{"result":"APPROVE","transaction_id":"t-1"}}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Eligible || out.TransactionID != "t-1" {
		t.Fatalf("want approval, got %+v", out)
	}
	if got["APIKEY"] != "is-key" || got["PAYMETHOD"] != "CARD" || got["CCNUM"] != "4242424242424242" {
		t.Fatalf("card payload wrong: %+v", got)
	}
	for _, k := range []string{"ROUTINGNUM", "ACCTNUM", "ACCTNAME"} {
		if _, ok := got[k]; ok {
			t.Fatalf("%s must not be present on a card payload", k)
		}
	}
}

func TestSubmit_ACHPayloadExcludesCard(t *testing.T) {
	_, got, err := submitThrough(t, checkSub(),
		`{"success":true,"data":{"response":{"result":"APPROVE"}}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["PAYMETHOD"] != "ACH" || got["ROUTINGNUM"] != "123456789" || got["ACCTNAME"] != "John Smith" {
		t.Fatalf("ACH payload wrong: %+v", got)
	}
	for _, k := range []string{"CCNUM", "CCEXP", "CVV"} {
		if _, ok := got[k]; ok {
			t.Fatalf("%s must not be present on an ACH payload", k)
		}
	}
}

func TestSubmit_SuccessWithoutApproveIsRejection(t *testing.T) {
	out, _, err := submitThrough(t, cardSub(),
		`{"success":true,"data":{"response":{"result":"DECLINE","message":"card declined"}}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Eligible || out.Reason != "card declined" {
		t.Fatalf("APPROVE literal is required: %+v", out)
	}
}

func TestSubmit_RejectionMessageFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"data":{"response":{"message":"dup order"}}}`, "dup order"},
		{"resptext", `{"data":{"response":{"resptext":"bad card"}}}`, "bad card"},
		{"errors array", `{"errors":[{"error_msg":"invalid key"}]}`, "invalid key"},
		{"raw error", `{"error":{"code":9}}`, `{"code":9}`},
		{"raw dump", `{"success":false}`, `ImportSale declined: {"success":false}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := submitThrough(t, cardSub(), tc.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Eligible || out.Reason != tc.want {
				t.Fatalf("want reason %q, got %+v", tc.want, out)
			}
		})
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	a := importsale.New(importsale.Config{Endpoint: srv.URL}, newRepo(t))
	_, err := a.Submit(context.Background(), cardSub())
	if !errors.Is(err, adapters.ErrVendorUnavailable) {
		t.Fatalf("want ErrVendorUnavailable, got %v", err)
	}
}
