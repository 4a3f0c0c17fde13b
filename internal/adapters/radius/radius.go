// Package radius implements the Radius disposition-check integration
// used by the FRP (card) and MI (bank draft) projects. The wire format
// is a fixed-schema XML document over HTTPS; the response is XML-like
// text interpreted by attribute extraction rather than strict parsing.
package radius

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

var _ adapters.Adapter = (*Adapter)(nil)

type Config struct {
	Endpoint string
	APIKey   string
	DNIS     string
	Timeout  time.Duration
}

type Adapter struct {
	project domain.Project
	cfg     Config
	client  *http.Client
}

// New builds a Radius adapter for one project. FRP derives the bin
// field from the card number, MI from the routing number.
func New(project domain.Project, cfg Config) *Adapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Adapter{
		project: project,
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *Adapter) Project() domain.Project { return a.project }

// Validate: format checks specific to the Radius wire (the aggregated
// required-field check has already run at the orchestrator level).
func (a *Adapter) Validate(_ context.Context, sub *domain.Submission) error {
	if !validate.IsStateCode(sub.State) {
		return fmt.Errorf("%w: state must be a 2-letter code", validate.ErrInvalidSubmission)
	}
	if a.project == domain.ProjectMI {
		if !validate.IsRoutingNumber(sub.RoutingNumber) {
			return fmt.Errorf("%w: routing_number must be 9 digits", validate.ErrInvalidSubmission)
		}
		if !validate.IsDigits(sub.AccountNumber) {
			return fmt.Errorf("%w: account_number must be numeric", validate.ErrInvalidSubmission)
		}
		if !sub.CheckingConsent || !sub.EsignConsent {
			return fmt.Errorf("%w: checking and e-sign consent are required", validate.ErrInvalidSubmission)
		}
		return nil
	}
	if !validate.IsCardNumber(sub.CardNumber) {
		return fmt.Errorf("%w: card_number must be 13-16 digits", validate.ErrInvalidSubmission)
	}
	if !validate.IsMMYY(sub.CardExpiration) {
		return fmt.Errorf("%w: card_expiration must be MMYY", validate.ErrInvalidSubmission)
	}
	return nil
}

// disposition: the outbound document:
// <disposition session_id=".." dnis=".."><field id="key" value=".."/>...</disposition>
type disposition struct {
	XMLName   xml.Name   `xml:"disposition"`
	SessionID string     `xml:"session_id,attr"`
	DNIS      string     `xml:"dnis,attr"`
	Fields    []dispItem `xml:"field"`
}

type dispItem struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

func (a *Adapter) buildRequest(sub *domain.Submission) ([]byte, error) {
	bin := sub.CardNumber
	if a.project == domain.ProjectMI {
		bin = sub.RoutingNumber
	}
	doc := disposition{
		SessionID: sub.SessionID,
		DNIS:      a.cfg.DNIS,
		Fields: []dispItem{
			{ID: "key", Value: a.cfg.APIKey},
			{ID: "name", Value: strings.TrimSpace(sub.FirstName + " " + sub.LastName)},
			{ID: "address", Value: sub.Address1},
			{ID: "state", Value: sub.State},
			{ID: "zip", Value: sub.Zip},
			{ID: "bin", Value: validate.PadBIN10(bin)},
		},
	}
	return xml.Marshal(doc)
}

// Response attributes are pulled out of the raw body with regexps: the
// upstream answer is not guaranteed to be well-formed XML (stray
// whitespace and newlines around the attributes are common).
var (
	statusAttrRe  = regexp.MustCompile(`status\s*=\s*"([^"]*)"`)
	messageAttrRe = regexp.MustCompile(`message\s*=\s*"([^"]*)"`)
)

// Submit performs the single disposition round trip and normalizes the
// response per the Radius status/message table.
func (a *Adapter) Submit(ctx context.Context, sub *domain.Submission) (*adapters.Outcome, error) {
	payload, err := a.buildRequest(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: build disposition: %v", adapters.ErrVendorUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapters.ErrVendorUnavailable, err)
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapters.ErrVendorUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", adapters.ErrVendorUnavailable, err)
	}

	return interpret(string(body))
}

// interpret maps the extracted status/message pair to an outcome.
//
//	status 0: request-level rejection (missing field, bad key, other)
//	status 1: business verdict ("true" accepted, blocked labels, other)
//	anything else: unmapped, surfaced as a distinct adapter error
func interpret(raw string) (*adapters.Outcome, error) {
	status := extract(statusAttrRe, raw)
	message := extract(messageAttrRe, raw)

	switch status {
	case "0":
		switch {
		case strings.Contains(message, "field is required"):
			return &adapters.Outcome{Reason: "Missing Field: " + message, Raw: raw}, nil
		case strings.Contains(message, "You are not authorized"):
			return &adapters.Outcome{Reason: "Radius API key is not authorized", Raw: raw}, nil
		case message != "":
			return &adapters.Outcome{Reason: message, Raw: raw}, nil
		default:
			return &adapters.Outcome{Reason: "Radius rejected the request", Raw: raw}, nil
		}
	case "1":
		switch message {
		case "true":
			return &adapters.Outcome{Eligible: true, Raw: raw}, nil
		case "Blocked BIN", "Blocked Customer", "Blocked State":
			return &adapters.Outcome{Reason: message, Raw: raw}, nil
		default:
			if message == "" {
				message = "Radius declined the submission"
			}
			return &adapters.Outcome{Reason: message, Raw: raw}, nil
		}
	default:
		return nil, fmt.Errorf("%w: status=%q message=%q", adapters.ErrUnmappedStatus, status, message)
	}
}

func extract(re *regexp.Regexp, raw string) string {
	m := re.FindStringSubmatch(raw)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
