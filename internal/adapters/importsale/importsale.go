// Package importsale implements the ImportSale integration: a direct
// JSON pass-through built from fixed uppercase field names. ACH and
// card payment details are mutually exclusive in the outbound payload.
//
// ImportSale is the only vendor with a cross-order pre-gate: a
// duplicate-submission guard over (email, product, completed, project).
package importsale

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

var _ adapters.Adapter = (*Adapter)(nil)

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type Adapter struct {
	cfg    Config
	repo   ports.OrderRepository
	client *http.Client
}

func New(cfg Config, repo ports.OrderRepository) *Adapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Adapter{cfg: cfg, repo: repo, client: &http.Client{Timeout: timeout}}
}

func (a *Adapter) Project() domain.Project { return domain.ProjectImportSale }

// Validate: pre-gates before invocation: email format, the duplicate
// guard, then payment-method-specific format checks.
func (a *Adapter) Validate(ctx context.Context, sub *domain.Submission) error {
	if !validate.IsEmail(sub.Email) {
		return fmt.Errorf("%w: email is malformed", validate.ErrInvalidSubmission)
	}

	// Point-in-time existence check; not backed by a uniqueness
	// constraint, so concurrent identical submissions can race.
	exists, err := a.repo.ExistsCompleted(ctx, sub.Email, sub.ProductName, domain.ProjectImportSale)
	if err != nil {
		return fmt.Errorf("%w: duplicate check: %v", adapters.ErrVendorUnavailable, err)
	}
	if exists {
		return fmt.Errorf("%w: an order for this email and product already exists", validate.ErrInvalidSubmission)
	}

	switch sub.PaymentMethod {
	case domain.PayByCheck:
		if !validate.IsRoutingNumber(sub.RoutingNumber) {
			return fmt.Errorf("%w: routing_number must be 9 digits", validate.ErrInvalidSubmission)
		}
		if !validate.IsDigits(sub.AccountNumber) {
			return fmt.Errorf("%w: account_number must be numeric", validate.ErrInvalidSubmission)
		}
	case domain.PayByCard:
		if !validate.IsCardNumber(sub.CardNumber) {
			return fmt.Errorf("%w: card_number must be 13-16 digits", validate.ErrInvalidSubmission)
		}
		if !validate.IsMMYY(sub.CardExpiration) {
			return fmt.Errorf("%w: card_expiration must be MMYY", validate.ErrInvalidSubmission)
		}
		if !validate.IsCVV(sub.CVV) {
			return fmt.Errorf("%w: cvv must be 3-4 digits", validate.ErrInvalidSubmission)
		}
	default:
		return fmt.Errorf("%w: payment_method must be card or check", validate.ErrInvalidSubmission)
	}
	return nil
}

// buildPayload assembles the uppercase pass-through document. Exactly
// one of the ACH or card blocks is present, never both.
func (a *Adapter) buildPayload(sub *domain.Submission) map[string]any {
	p := map[string]any{
		"APIKEY":    a.cfg.APIKey,
		"FNAME":     sub.FirstName,
		"LNAME":     sub.LastName,
		"ADDRESS1":  sub.Address1,
		"CITY":      sub.City,
		"STATE":     sub.State,
		"ZIP":       sub.Zip,
		"PHONE":     sub.Phone,
		"EMAIL":     sub.Email,
		"SOURCE":    sub.SourceCode,
		"PRODID":    sub.ProductName,
		"SESSIONID": sub.SessionID,
	}
	if sub.Address2 != "" {
		p["ADDRESS2"] = sub.Address2
	}
	if sub.PaymentMethod == domain.PayByCheck {
		p["PAYMETHOD"] = "ACH"
		p["ACCTNAME"] = sub.CheckingAccountName
		p["ROUTINGNUM"] = sub.RoutingNumber
		p["ACCTNUM"] = sub.AccountNumber
	} else {
		p["PAYMETHOD"] = "CARD"
		p["CCNUM"] = sub.CardNumber
		p["CCEXP"] = sub.CardExpiration
		p["CVV"] = sub.CVV
	}
	return p
}

type response struct {
	Success bool `json:"success"`
	Data    struct {
		Response struct {
			Result   string `json:"result"`
			Message  string `json:"message"`
			RespText string `json:"resptext"`
			TransID  string `json:"transaction_id"`
		} `json:"response"`
	} `json:"data"`
	Errors []struct {
		ErrorMsg string `json:"error_msg"`
	} `json:"errors"`
	Error json.RawMessage `json:"error"`
}

func (a *Adapter) Submit(ctx context.Context, sub *domain.Submission) (*adapters.Outcome, error) {
	body, err := json.Marshal(a.buildPayload(sub))
	if err != nil {
		return nil, fmt.Errorf("%w: build payload: %v", adapters.ErrVendorUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapters.ErrVendorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapters.ErrVendorUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", adapters.ErrVendorUnavailable, err)
	}

	var r response
	_ = json.Unmarshal(raw, &r)

	if r.Success && r.Data.Response.Result == "APPROVE" {
		return &adapters.Outcome{
			Eligible:      true,
			Raw:           string(raw),
			TransactionID: r.Data.Response.TransID,
		}, nil
	}

	return &adapters.Outcome{
		Reason:        rejectionMessage(&r, raw),
		Raw:           string(raw),
		TransactionID: r.Data.Response.TransID,
	}, nil
}

// rejectionMessage walks the fallback chain: nested response
// attributes, then the structured error array, then a stringified dump
// of the raw error as the last resort.
func rejectionMessage(r *response, raw []byte) string {
	if m := strings.TrimSpace(r.Data.Response.Message); m != "" {
		return m
	}
	if m := strings.TrimSpace(r.Data.Response.RespText); m != "" {
		return m
	}
	if len(r.Errors) > 0 && strings.TrimSpace(r.Errors[0].ErrorMsg) != "" {
		return r.Errors[0].ErrorMsg
	}
	if len(r.Error) > 0 {
		return string(r.Error)
	}
	return "ImportSale declined: " + string(raw)
}
