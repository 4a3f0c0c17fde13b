// Package sublytics implements the Sublytics (HPP project) integration:
// JSON POST with an injected credential, conditional payload assembly
// and aggregated (not first-fail) pre-flight validation.
package sublytics

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
	"github.com/Sardaar2003/fortigatex-sub001/internal/rejectlist"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

var _ adapters.Adapter = (*Adapter)(nil)

// creditCardMethodID: payment_method_id value denoting a credit card.
const creditCardMethodID = 1

type Config struct {
	Endpoint string
	AuthKey  string
	Timeout  time.Duration
}

type Adapter struct {
	cfg    Config
	bins   *rejectlist.Set
	client *http.Client
}

func New(cfg Config, bins *rejectlist.Set) *Adapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Adapter{cfg: cfg, bins: bins, client: &http.Client{Timeout: timeout}}
}

func (a *Adapter) Project() domain.Project { return domain.ProjectHPP }

// Validate aggregates every failing rule into one joined reason instead
// of stopping at the first. The BIN reject check runs only after the
// aggregated validation passes and is surfaced the same soft way as
// the rest.
func (a *Adapter) Validate(_ context.Context, sub *domain.Submission) error {
	var errs []string

	if sub.CampaignID == "" {
		errs = append(errs, "campaign_id is required")
	}
	if sub.Email == "" {
		errs = append(errs, "email is required")
	} else if !validate.IsEmail(sub.Email) {
		errs = append(errs, "email is malformed")
	}
	if sub.Phone == "" {
		errs = append(errs, "phone is required")
	}
	if sub.PaymentMethodID == 0 {
		errs = append(errs, "payment_method_id is required")
	}

	if len(sub.Offers) == 0 {
		errs = append(errs, "offers must not be empty")
	}
	for i, o := range sub.Offers {
		if o.OfferID == "" {
			errs = append(errs, fmt.Sprintf("offers[%d].offer_id is required", i))
		}
		if o.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("offers[%d].quantity must be positive", i))
		}
	}

	// Billing block required only when no existing customer is referenced.
	if sub.CustomerID == "" {
		errs = append(errs, requireBilling(sub)...)
	}

	// Shipping mirrors billing when not "same as billing".
	if !sub.ShippingSame {
		errs = append(errs, requireShipping(sub)...)
	}

	if sub.PaymentMethodID == creditCardMethodID {
		if !validate.IsCardNumber(sub.CardNumber) {
			errs = append(errs, "card_number must be 13-16 digits")
		}
		if !validate.IsExpMonth(sub.CardExpMonth) {
			errs = append(errs, "card_exp_month must be 2 digits in 01-12")
		}
		if !validate.IsExpYear(sub.CardExpYear) {
			errs = append(errs, "card_exp_year must be 4 digits")
		}
		if !validate.IsCVV(sub.CVV) {
			errs = append(errs, "cvv must be 3-4 digits")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", validate.ErrInvalidSubmission, strings.Join(errs, "; "))
	}

	if sub.PaymentMethodID == creditCardMethodID && a.bins.Contains(validate.BIN6(sub.CardNumber)) {
		return fmt.Errorf("%w: this card type is not accepted", validate.ErrInvalidSubmission)
	}
	return nil
}

func requireBilling(sub *domain.Submission) []string {
	var errs []string
	if sub.FirstName == "" {
		errs = append(errs, "first_name is required")
	}
	if sub.LastName == "" {
		errs = append(errs, "last_name is required")
	}
	if sub.Address1 == "" {
		errs = append(errs, "address1 is required")
	}
	if sub.City == "" {
		errs = append(errs, "city is required")
	}
	if sub.Country == "" {
		errs = append(errs, "country is required")
	}
	if sub.State == "" {
		errs = append(errs, "state is required")
	} else if (sub.Country == "US" || sub.Country == "CA") && len(sub.State) != 2 {
		errs = append(errs, "state must be a 2-character code for US/CA")
	}
	if sub.Zip == "" {
		errs = append(errs, "zip is required")
	}
	return errs
}

func requireShipping(sub *domain.Submission) []string {
	var errs []string
	if sub.ShipFirstName == "" {
		errs = append(errs, "ship_first_name is required")
	}
	if sub.ShipLastName == "" {
		errs = append(errs, "ship_last_name is required")
	}
	if sub.ShipAddress1 == "" {
		errs = append(errs, "ship_address1 is required")
	}
	if sub.ShipCity == "" {
		errs = append(errs, "ship_city is required")
	}
	if sub.ShipCountry == "" {
		errs = append(errs, "ship_country is required")
	}
	if sub.ShipState == "" {
		errs = append(errs, "ship_state is required")
	} else if (sub.ShipCountry == "US" || sub.ShipCountry == "CA") && len(sub.ShipState) != 2 {
		errs = append(errs, "ship_state must be a 2-character code for US/CA")
	}
	if sub.ShipZip == "" {
		errs = append(errs, "ship_zip is required")
	}
	return errs
}

// Payload types. Customer-identifying fields are sent only when no
// customer_id is supplied; shipping fields only when shipping_same is
// false.
type offer struct {
	OfferID  string `json:"offer_id"`
	Quantity int    `json:"quantity"`
}

type payload struct {
	AuthKey         string  `json:"auth_key"`
	CampaignID      string  `json:"campaign_id"`
	TrackingID      string  `json:"tracking_id,omitempty"`
	PaymentMethodID int     `json:"payment_method_id"`
	Offers          []offer `json:"offers"`
	ShippingSame    bool    `json:"shipping_same"`

	CustomerID string `json:"customer_id,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	FirstName  string `json:"bill_fname,omitempty"`
	LastName   string `json:"bill_lname,omitempty"`
	Address1   string `json:"bill_address1,omitempty"`
	Address2   string `json:"bill_address2,omitempty"`
	City       string `json:"bill_city,omitempty"`
	State      string `json:"bill_state,omitempty"`
	Zip        string `json:"bill_zip,omitempty"`
	Country    string `json:"bill_country,omitempty"`

	ShipFirstName string `json:"ship_fname,omitempty"`
	ShipLastName  string `json:"ship_lname,omitempty"`
	ShipAddress1  string `json:"ship_address1,omitempty"`
	ShipAddress2  string `json:"ship_address2,omitempty"`
	ShipCity      string `json:"ship_city,omitempty"`
	ShipState     string `json:"ship_state,omitempty"`
	ShipZip       string `json:"ship_zip,omitempty"`
	ShipCountry   string `json:"ship_country,omitempty"`

	CardNumber   string `json:"card_number,omitempty"`
	CardExpMonth string `json:"card_exp_month,omitempty"`
	CardExpYear  string `json:"card_exp_year,omitempty"`
	CVV          string `json:"card_cvv,omitempty"`
}

type response struct {
	Message string `json:"message"`
	Errors  []struct {
		ErrorMsg string `json:"error_msg"`
	} `json:"errors"`
	Data struct {
		Transaction map[string]any `json:"transaction"`
		Gateway     map[string]any `json:"gateway_response"`
	} `json:"data"`
}

func (a *Adapter) buildPayload(sub *domain.Submission) payload {
	p := payload{
		AuthKey:         a.cfg.AuthKey,
		CampaignID:      sub.CampaignID,
		TrackingID:      sub.SessionID,
		PaymentMethodID: sub.PaymentMethodID,
		ShippingSame:    sub.ShippingSame,
		CustomerID:      sub.CustomerID,
	}
	for _, o := range sub.Offers {
		p.Offers = append(p.Offers, offer{OfferID: o.OfferID, Quantity: o.Quantity})
	}

	if sub.CustomerID == "" {
		p.Email = sub.Email
		p.Phone = sub.Phone
		p.FirstName = sub.FirstName
		p.LastName = sub.LastName
		p.Address1 = sub.Address1
		p.Address2 = sub.Address2
		p.City = sub.City
		p.State = sub.State
		p.Zip = sub.Zip
		p.Country = sub.Country
	}

	if !sub.ShippingSame {
		p.ShipFirstName = sub.ShipFirstName
		p.ShipLastName = sub.ShipLastName
		p.ShipAddress1 = sub.ShipAddress1
		p.ShipAddress2 = sub.ShipAddress2
		p.ShipCity = sub.ShipCity
		p.ShipState = sub.ShipState
		p.ShipZip = sub.ShipZip
		p.ShipCountry = sub.ShipCountry
	}

	if sub.PaymentMethodID == creditCardMethodID {
		p.CardNumber = sub.CardNumber
		p.CardExpMonth = sub.CardExpMonth
		p.CardExpYear = sub.CardExpYear
		p.CVV = sub.CVV
	}
	return p
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
		// Per upstream semantics every Sublytics miss is an ineligible
		// outcome; transaction/gateway context is kept when present.
		return &adapters.Outcome{Reason: "no response from Sublytics"}, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &adapters.Outcome{Reason: "no response from Sublytics"}, nil
	}

	var r response
	_ = json.Unmarshal(raw, &r)

	switch {
	case resp.StatusCode == http.StatusOK:
		if success, ok := transactionSuccess(r.Data.Transaction); ok && success {
			return &adapters.Outcome{
				Eligible:      true,
				Raw:           string(raw),
				TransactionID: transactionID(r.Data.Transaction),
				Gateway:       r.Data.Gateway,
			}, nil
		}
		reason := r.Message
		if reason == "" {
			reason = "Sublytics transaction did not succeed"
		}
		return &adapters.Outcome{
			Reason:        reason,
			Raw:           string(raw),
			TransactionID: transactionID(r.Data.Transaction),
			Gateway:       r.Data.Gateway,
		}, nil

	case resp.StatusCode == http.StatusBadRequest:
		reason := r.Message
		if reason == "" && len(r.Errors) > 0 {
			reason = r.Errors[0].ErrorMsg
		}
		if reason == "" {
			reason = "Sublytics rejected the submission"
		}
		return &adapters.Outcome{Reason: reason, Raw: string(raw), Gateway: r.Data.Gateway}, nil

	default:
		return &adapters.Outcome{
			Reason:  fmt.Sprintf("unexpected Sublytics response (http %d)", resp.StatusCode),
			Raw:     string(raw),
			Gateway: r.Data.Gateway,
		}, nil
	}
}

// transactionSuccess reads transaction.success, tolerating the number /
// string encodings Sublytics alternates between.
func transactionSuccess(tx map[string]any) (bool, bool) {
	v, ok := tx["success"]
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case float64:
		return t == 1, true
	case string:
		return t == "1", true
	case bool:
		return t, true
	}
	return false, false
}

func transactionID(tx map[string]any) string {
	switch v := tx["id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
