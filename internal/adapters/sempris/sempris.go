// Package sempris implements the Sempris (SC project) integration:
// JSON POST with an API-key header, accepted iff the response message
// is the literal "accepted".
package sempris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

var _ adapters.Adapter = (*Adapter)(nil)

const noResponseReason = "no response from Sempris"

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type Adapter struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Adapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Adapter{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

func (a *Adapter) Project() domain.Project { return domain.ProjectSC }

func (a *Adapter) Validate(_ context.Context, sub *domain.Submission) error {
	if !validate.IsCardNumber(sub.CardNumber) {
		return fmt.Errorf("%w: card_number must be 13-16 digits", validate.ErrInvalidSubmission)
	}
	if !validate.IsMMYY(sub.CardExpiration) {
		return fmt.Errorf("%w: card_expiration must be MMYY", validate.ErrInvalidSubmission)
	}
	if !validate.IsCVV(sub.CVV) {
		return fmt.Errorf("%w: cvv must be 3-4 digits", validate.ErrInvalidSubmission)
	}
	if sub.Issuer == "" {
		return fmt.Errorf("%w: issuer is required", validate.ErrInvalidSubmission)
	}
	return nil
}

// request: Sempris field names for the canonical submission.
type request struct {
	TrackingNumber string `json:"tracking_number"`
	VendorID       string `json:"vendor_id"`
	ClientOrderNo  string `json:"client_order_number,omitempty"`
	PitchID        string `json:"pitch_id,omitempty"`
	Source         string `json:"source"`
	SKU            string `json:"sku"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address1       string `json:"address1"`
	Address2       string `json:"address2,omitempty"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	CardNumber     string `json:"card_number"`
	CardExpiration string `json:"card_expiration"`
	CVV            string `json:"cvv"`
	Issuer         string `json:"issuer"`
}

type response struct {
	Message       string `json:"message"`
	ErrorMsg      string `json:"error_msg"`
	TransactionID string `json:"transaction_id"`
}

func (a *Adapter) Submit(ctx context.Context, sub *domain.Submission) (*adapters.Outcome, error) {
	body, err := json.Marshal(request{
		TrackingNumber: sub.SessionID,
		VendorID:       sub.VendorID,
		ClientOrderNo:  sub.ClientOrderNumber,
		PitchID:        sub.PitchID,
		Source:         sub.SourceCode,
		SKU:            sub.SKU,
		FirstName:      sub.FirstName,
		LastName:       sub.LastName,
		Address1:       sub.Address1,
		Address2:       sub.Address2,
		City:           sub.City,
		State:          sub.State,
		Zip:            sub.Zip,
		Phone:          sub.Phone,
		Email:          sub.Email,
		CardNumber:     sub.CardNumber,
		CardExpiration: sub.CardExpiration,
		CVV:            sub.CVV,
		Issuer:         sub.Issuer,
	})
	if err != nil {
		return &adapters.Outcome{Reason: "could not build Sempris request"}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &adapters.Outcome{Reason: "could not build Sempris request"}, nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", a.cfg.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		// Network failure: fixed no-response reason, not a hard error.
		// Every Sempris miss counts as an ineligible outcome.
		return &adapters.Outcome{Reason: noResponseReason}, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &adapters.Outcome{Reason: noResponseReason}, nil
	}

	var r response
	_ = json.Unmarshal(raw, &r)

	if resp.StatusCode >= 400 {
		reason := r.ErrorMsg
		if reason == "" {
			reason = fmt.Sprintf("Sempris error (http %d)", resp.StatusCode)
		}
		return &adapters.Outcome{Reason: reason, Raw: string(raw), TransactionID: r.TransactionID}, nil
	}

	if r.Message == "accepted" {
		return &adapters.Outcome{Eligible: true, Raw: string(raw), TransactionID: r.TransactionID}, nil
	}
	reason := r.Message
	if reason == "" {
		reason = "Sempris declined the submission"
	}
	return &adapters.Outcome{Reason: reason, Raw: string(raw), TransactionID: r.TransactionID}, nil
}
