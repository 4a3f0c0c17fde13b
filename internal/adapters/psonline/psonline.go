// Package psonline implements the PSOnline (MDI project) integration.
// Outbound: form-encoded POST augmented with the injected API key,
// merchant id and a bincheck=1 flag. Inbound: JSON that may arrive
// double-encoded (a JSON string holding JSON) and is normalized before
// interpretation.
//
// Unlike the orchestrator's aggregated shape check, PSOnline pre-flight
// is first-fail: checks run in a fixed order and the first failure wins.
package psonline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/rejectlist"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

var _ adapters.Adapter = (*Adapter)(nil)

type Config struct {
	Endpoint   string
	APIKey     string
	MerchantID string
	Timeout    time.Duration
}

type Adapter struct {
	cfg    Config
	states *rejectlist.Set
	bins   *rejectlist.Set
	client *http.Client
}

func New(cfg Config, states, bins *rejectlist.Set) *Adapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Adapter{
		cfg:    cfg,
		states: states,
		bins:   bins,
		client: &http.Client{Timeout: timeout},
	}
}

func (a *Adapter) Project() domain.Project { return domain.ProjectMDI }

// requiredFields: the fixed 15-field PSOnline list, in check order.
var requiredFields = []struct {
	name string
	get  func(*domain.Submission) string
}{
	{"first_name", func(s *domain.Submission) string { return s.FirstName }},
	{"last_name", func(s *domain.Submission) string { return s.LastName }},
	{"address1", func(s *domain.Submission) string { return s.Address1 }},
	{"city", func(s *domain.Submission) string { return s.City }},
	{"state", func(s *domain.Submission) string { return s.State }},
	{"zip", func(s *domain.Submission) string { return s.Zip }},
	{"phone", func(s *domain.Submission) string { return s.Phone }},
	{"email", func(s *domain.Submission) string { return s.Email }},
	{"source_code", func(s *domain.Submission) string { return s.SourceCode }},
	{"sku", func(s *domain.Submission) string { return s.SKU }},
	{"product_name", func(s *domain.Submission) string { return s.ProductName }},
	{"session_id", func(s *domain.Submission) string { return s.SessionID }},
	{"card_number", func(s *domain.Submission) string { return s.CardNumber }},
	{"card_expiration", func(s *domain.Submission) string { return s.CardExpiration }},
	{"cvv", func(s *domain.Submission) string { return s.CVV }},
}

// Validate: first-fail pre-flight. Check order is part of the vendor
// contract: missing fields, state reject list, BIN reject table, card
// format, CVV, phone, email, optional DOB, optional gender, amount.
func (a *Adapter) Validate(_ context.Context, sub *domain.Submission) error {
	for _, f := range requiredFields {
		if strings.TrimSpace(f.get(sub)) == "" {
			return fmt.Errorf("%w: %s is required", validate.ErrInvalidSubmission, f.name)
		}
	}
	if a.states.Contains(sub.State) {
		return fmt.Errorf("%w: orders from state %s are not accepted", validate.ErrInvalidSubmission, sub.State)
	}
	if a.bins.Contains(validate.BIN6(sub.CardNumber)) {
		return fmt.Errorf("%w: this card type is not accepted", validate.ErrInvalidSubmission)
	}
	if !validate.IsDigits(sub.CardNumber) || len(sub.CardNumber) < 15 || len(sub.CardNumber) > 16 {
		return fmt.Errorf("%w: card_number must be 15-16 digits", validate.ErrInvalidSubmission)
	}
	if !validate.IsCVV(sub.CVV) {
		return fmt.Errorf("%w: cvv must be 3-4 digits", validate.ErrInvalidSubmission)
	}
	if _, ok := validate.NormalizePhone(sub.Phone); !ok {
		return fmt.Errorf("%w: phone must contain exactly 10 digits", validate.ErrInvalidSubmission)
	}
	if !validate.IsEmail(sub.Email) {
		return fmt.Errorf("%w: email is malformed", validate.ErrInvalidSubmission)
	}
	if sub.DOB != "" && !validate.IsDOB(sub.DOB) {
		return fmt.Errorf("%w: dob must be MM/DD/YYYY", validate.ErrInvalidSubmission)
	}
	if sub.Gender != "" && !validate.IsGender(sub.Gender) {
		return fmt.Errorf("%w: gender must be M or F", validate.ErrInvalidSubmission)
	}
	if sub.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", validate.ErrInvalidSubmission)
	}
	return nil
}

// psResponse: the interpreted part of the PSOnline answer.
type psResponse struct {
	ResponseCode int    `json:"ResponseCode"`
	ResponseData string `json:"ResponseData"`
}

func (a *Adapter) Submit(ctx context.Context, sub *domain.Submission) (*adapters.Outcome, error) {
	phone, _ := validate.NormalizePhone(sub.Phone)

	form := url.Values{}
	form.Set("apikey", a.cfg.APIKey)
	form.Set("merchant_id", a.cfg.MerchantID)
	form.Set("bincheck", "1")
	form.Set("firstname", sub.FirstName)
	form.Set("lastname", sub.LastName)
	form.Set("address1", sub.Address1)
	if sub.Address2 != "" {
		form.Set("address2", sub.Address2)
	}
	form.Set("city", sub.City)
	form.Set("state", sub.State)
	form.Set("zip", sub.Zip)
	form.Set("phone", phone)
	form.Set("email", sub.Email)
	form.Set("source", sub.SourceCode)
	form.Set("sku", sub.SKU)
	form.Set("product", sub.ProductName)
	form.Set("sessionid", sub.SessionID)
	form.Set("ccnumber", sub.CardNumber)
	form.Set("ccexp", sub.CardExpiration)
	form.Set("cvv", sub.CVV)
	form.Set("amount", fmt.Sprintf("%.2f", sub.Amount))
	if sub.DOB != "" {
		form.Set("dob", sub.DOB)
	}
	if sub.Gender != "" {
		form.Set("gender", strings.ToUpper(sub.Gender))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapters.ErrVendorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapters.ErrVendorUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", adapters.ErrVendorUnavailable, err)
	}

	pr, err := decodeResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapters.ErrVendorUnavailable, err)
	}

	if pr.ResponseCode == 200 {
		return &adapters.Outcome{Eligible: true, Raw: string(raw)}, nil
	}
	reason := pr.ResponseData
	if reason == "" {
		reason = fmt.Sprintf("PSOnline declined (code %d)", pr.ResponseCode)
	}
	return &adapters.Outcome{Reason: reason, Raw: string(raw)}, nil
}

// decodeResponse normalizes the two shapes PSOnline answers with: a
// JSON object, or a JSON string that itself holds the encoded object
// and needs a second decode pass.
func decodeResponse(raw []byte) (*psResponse, error) {
	var pr psResponse
	if err := json.Unmarshal(raw, &pr); err == nil {
		return &pr, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("unrecognized response shape: %s", snippet(raw))
	}
	if err := json.Unmarshal([]byte(encoded), &pr); err != nil {
		return nil, fmt.Errorf("double-encoded response did not decode: %v", err)
	}
	return &pr, nil
}

func snippet(raw []byte) string {
	const n = 120
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n]) + "..."
}
