package radius_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters/radius"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

func frpSub() *domain.Submission {
	return &domain.Submission{
		Project:        domain.ProjectFRP,
		FirstName:      "John",
		LastName:       "Smith",
		Address1:       "Main st 1",
		State:          "NY",
		Zip:            "10001",
		SessionID:      "sess-1",
		CardNumber:     "4242424242424242",
		CardExpiration: "1229",
	}
}

func miSub() *domain.Submission {
	s := frpSub()
	s.Project = domain.ProjectMI
	s.CardNumber = ""
	s.CardExpiration = ""
	s.RoutingNumber = "123456789"
	s.AccountNumber = "000123456"
	s.CheckingConsent = true
	s.EsignConsent = true
	return s
}

func newAdapter(t *testing.T, project domain.Project, handler http.HandlerFunc) *radius.Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return radius.New(project, radius.Config{
		Endpoint: srv.URL,
		APIKey:   "key-1",
		DNIS:     "7001",
	})
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body)
	}
}

func TestValidate_FRP(t *testing.T) {
	a := radius.New(domain.ProjectFRP, radius.Config{})

	cases := []struct {
		name   string
		mutate func(*domain.Submission)
		wantOK bool
	}{
		{"valid", func(*domain.Submission) {}, true},
		{"bad state", func(s *domain.Submission) { s.State = "New York" }, false},
		{"short card", func(s *domain.Submission) { s.CardNumber = "4242" }, false},
		{"bad expiration", func(s *domain.Submission) { s.CardExpiration = "13-29" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := frpSub()
			tc.mutate(sub)
			err := a.Validate(context.Background(), sub)
			if tc.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.wantOK && !errors.Is(err, validate.ErrInvalidSubmission) {
				t.Fatalf("want ErrInvalidSubmission, got %v", err)
			}
		})
	}
}

func TestValidate_MI(t *testing.T) {
	a := radius.New(domain.ProjectMI, radius.Config{})

	if err := a.Validate(context.Background(), miSub()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noConsent := miSub()
	noConsent.EsignConsent = false
	if err := a.Validate(context.Background(), noConsent); !errors.Is(err, validate.ErrInvalidSubmission) {
		t.Fatalf("want consent rejection, got %v", err)
	}

	badRouting := miSub()
	badRouting.RoutingNumber = "12345"
	if err := a.Validate(context.Background(), badRouting); !errors.Is(err, validate.ErrInvalidSubmission) {
		t.Fatalf("want routing rejection, got %v", err)
	}
}

func TestSubmit_SendsDispositionDocument(t *testing.T) {
	var gotBody string
	var gotContentType string
	a := newAdapter(t, domain.ProjectFRP, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotContentType = r.Header.Get("Content-Type")
		_, _ = io.WriteString(w, `<response status="1" message="true"/>`)
	})

	if _, err := a.Submit(context.Background(), frpSub()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "text/xml" {
		t.Fatalf("content type: %q", gotContentType)
	}
	for _, want := range []string{
		`session_id="sess-1"`,
		`dnis="7001"`,
		`id="key" value="key-1"`,
		`id="name" value="John Smith"`,
		// bin is the card number cut/padded to exactly 10 characters
		`id="bin" value="4242424242"`,
	} {
		if !strings.Contains(gotBody, want) {
			t.Fatalf("request missing %q:\n%s", want, gotBody)
		}
	}
}

func TestSubmit_MIUsesRoutingNumberBin(t *testing.T) {
	var gotBody string
	a := newAdapter(t, domain.ProjectMI, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = io.WriteString(w, `<response status="1" message="true"/>`)
	})

	if _, err := a.Submit(context.Background(), miSub()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotBody, `id="bin" value="1234567890"`) {
		t.Fatalf("MI bin must come from the routing number:\n%s", gotBody)
	}
}

func TestSubmit_StatusTable(t *testing.T) {
	cases := []struct {
		name         string
		body         string
		wantEligible bool
		wantReason   string
	}{
		{"accepted", `<response status="1" message="true"/>`, true, ""},
		{"blocked bin", `<response status="1" message="Blocked BIN"/>`, false, "Blocked BIN"},
		{"blocked customer", `<response status="1" message="Blocked Customer"/>`, false, "Blocked Customer"},
		{"blocked state", `<response status="1" message="Blocked State"/>`, false, "Blocked State"},
		{"other verdict", `<response status="1" message="no"/>`, false, "no"},
		{"empty verdict", `<response status="1" message=""/>`, false, "Radius declined the submission"},
		{"missing field", `<response status="0" message="zip field is required"/>`, false, "Missing Field: zip field is required"},
		{"bad key", `<response status="0" message="You are not authorized"/>`, false, "Radius API key is not authorized"},
		{"request error", `<response status="0" message="malformed document"/>`, false, "malformed document"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newAdapter(t, domain.ProjectFRP, respond(tc.body))
			out, err := a.Submit(context.Background(), frpSub())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Eligible != tc.wantEligible || out.Reason != tc.wantReason {
				t.Fatalf("got eligible=%v reason=%q, want eligible=%v reason=%q",
					out.Eligible, out.Reason, tc.wantEligible, tc.wantReason)
			}
			if out.Raw != tc.body {
				t.Fatalf("raw payload must be preserved verbatim")
			}
		})
	}
}

func TestSubmit_ToleratesSloppyResponseText(t *testing.T) {
	// Attributes spread over lines with stray whitespace still parse.
	body := "<response\n  status = \"1\"\n  message = \"true\"\n/>"
	a := newAdapter(t, domain.ProjectFRP, respond(body))

	out, err := a.Submit(context.Background(), frpSub())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Eligible {
		t.Fatalf("want eligible, got %+v", out)
	}
}

func TestSubmit_UnmappedStatus(t *testing.T) {
	a := newAdapter(t, domain.ProjectFRP, respond(`<response status="7" message="???"/>`))

	_, err := a.Submit(context.Background(), frpSub())
	if !errors.Is(err, adapters.ErrUnmappedStatus) {
		t.Fatalf("want ErrUnmappedStatus, got %v", err)
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(respond("ok"))
	srv.Close() // refuse connections

	a := radius.New(domain.ProjectFRP, radius.Config{Endpoint: srv.URL})
	_, err := a.Submit(context.Background(), frpSub())
	if !errors.Is(err, adapters.ErrVendorUnavailable) {
		t.Fatalf("want ErrVendorUnavailable, got %v", err)
	}
}
