package sempris_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters/sempris"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

func scSub() *domain.Submission {
	return &domain.Submission{
		Project:        domain.ProjectSC,
		FirstName:      "John",
		LastName:       "Smith",
		Address1:       "Main st 1",
		City:           "Metropolis",
		State:          "NY",
		Zip:            "10001",
		Phone:          "2025550101",
		SourceCode:     "SRC01",
		SKU:            "WIDGET1",
		SessionID:      "sess-1",
		VendorID:       "v-9",
		CardNumber:     "4242424242424242",
		CardExpiration: "1229",
		CVV:            "123",
		Issuer:         "VISA",
	}
}

func newAdapter(t *testing.T, handler http.HandlerFunc) *sempris.Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return sempris.New(sempris.Config{Endpoint: srv.URL, APIKey: "sc-key"})
}

func TestValidate(t *testing.T) {
	a := sempris.New(sempris.Config{})

	if err := a.Validate(context.Background(), scSub()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noIssuer := scSub()
	noIssuer.Issuer = ""
	if err := a.Validate(context.Background(), noIssuer); !errors.Is(err, validate.ErrInvalidSubmission) {
		t.Fatalf("want issuer rejection, got %v", err)
	}

	badCVV := scSub()
	badCVV.CVV = "12"
	if err := a.Validate(context.Background(), badCVV); !errors.Is(err, validate.ErrInvalidSubmission) {
		t.Fatalf("want cvv rejection, got %v", err)
	}
}

func TestSubmit_Accepted(t *testing.T) {
	var gotKey string
	var gotReq map[string]any
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotReq)
		_, _ = io.WriteString(w, `{"message":"accepted","transaction_id":"txn-5"}`)
	})

	out, err := a.Submit(context.Background(), scSub())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Eligible || out.TransactionID != "txn-5" {
		t.Fatalf("want eligible with txn-5, got %+v", out)
	}
	if gotKey != "sc-key" {
		t.Fatalf("X-Api-Key: %q", gotKey)
	}
	if gotReq["tracking_number"] != "sess-1" || gotReq["vendor_id"] != "v-9" || gotReq["source"] != "SRC01" {
		t.Fatalf("request fields: %+v", gotReq)
	}
}

func TestSubmit_AnyOtherMessageIsRejection(t *testing.T) {
	// Literal match only: even "Accepted" counts as a decline.
	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"message":"Accepted"}`)
	})

	out, err := a.Submit(context.Background(), scSub())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Eligible || out.Reason != "Accepted" {
		t.Fatalf("want rejection carrying the message, got %+v", out)
	}
}

func TestSubmit_HTTPErrorUsesErrorMsg(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"error_msg":"duplicate order"}`)
	})

	out, err := a.Submit(context.Background(), scSub())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Eligible || out.Reason != "duplicate order" {
		t.Fatalf("want error_msg rejection, got %+v", out)
	}
}

func TestSubmit_NetworkFailureIsSoftReject(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	a := sempris.New(sempris.Config{Endpoint: srv.URL})
	out, err := a.Submit(context.Background(), scSub())
	if err != nil {
		t.Fatalf("network failure must be a soft outcome, got error: %v", err)
	}
	if out.Eligible || out.Reason != "no response from Sempris" {
		t.Fatalf("want fixed no-response reason, got %+v", out)
	}
}
