package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

// ErrInvalidSubmission: sentinel for every pre-flight validation
// failure; concrete reasons are wrapped around it.
var ErrInvalidSubmission = errors.New("submission validation failed")

// SubmissionValidator: orchestrator-level shape check: the per-project
// required-field set must be present and non-empty. Missing fields are
// aggregated into a single error listing all of them, not just the first.
type SubmissionValidator struct{}

func NewSubmissionValidator() *SubmissionValidator { return &SubmissionValidator{} }

// requiredFields returns name/getter pairs for the project's required set.
// Order of the slice fixes the order in the aggregated message.
func requiredFields(p domain.Project) []fieldRef {
	base := []fieldRef{
		{"first_name", func(s *domain.Submission) string { return s.FirstName }},
		{"last_name", func(s *domain.Submission) string { return s.LastName }},
		{"address1", func(s *domain.Submission) string { return s.Address1 }},
		{"city", func(s *domain.Submission) string { return s.City }},
		{"state", func(s *domain.Submission) string { return s.State }},
		{"zip", func(s *domain.Submission) string { return s.Zip }},
		{"phone", func(s *domain.Submission) string { return s.Phone }},
		{"source_code", func(s *domain.Submission) string { return s.SourceCode }},
		{"sku", func(s *domain.Submission) string { return s.SKU }},
		{"product_name", func(s *domain.Submission) string { return s.ProductName }},
		{"session_id", func(s *domain.Submission) string { return s.SessionID }},
	}
	card := []fieldRef{
		{"card_number", func(s *domain.Submission) string { return s.CardNumber }},
		{"card_expiration", func(s *domain.Submission) string { return s.CardExpiration }},
	}

	switch p {
	case domain.ProjectFRP:
		return append(base, card...)
	case domain.ProjectSC:
		return append(append(base, card...),
			fieldRef{"cvv", func(s *domain.Submission) string { return s.CVV }},
			fieldRef{"issuer", func(s *domain.Submission) string { return s.Issuer }},
			fieldRef{"vendor_id", func(s *domain.Submission) string { return s.VendorID }},
		)
	case domain.ProjectMDI:
		return append(append(base, card...),
			fieldRef{"cvv", func(s *domain.Submission) string { return s.CVV }},
			fieldRef{"email", func(s *domain.Submission) string { return s.Email }},
		)
	case domain.ProjectHPP:
		return []fieldRef{
			{"campaign_id", func(s *domain.Submission) string { return s.CampaignID }},
			{"email", func(s *domain.Submission) string { return s.Email }},
			{"phone", func(s *domain.Submission) string { return s.Phone }},
			{"session_id", func(s *domain.Submission) string { return s.SessionID }},
		}
	case domain.ProjectImportSale:
		return []fieldRef{
			{"first_name", func(s *domain.Submission) string { return s.FirstName }},
			{"last_name", func(s *domain.Submission) string { return s.LastName }},
			{"address1", func(s *domain.Submission) string { return s.Address1 }},
			{"city", func(s *domain.Submission) string { return s.City }},
			{"state", func(s *domain.Submission) string { return s.State }},
			{"zip", func(s *domain.Submission) string { return s.Zip }},
			{"phone", func(s *domain.Submission) string { return s.Phone }},
			{"email", func(s *domain.Submission) string { return s.Email }},
			{"source_code", func(s *domain.Submission) string { return s.SourceCode }},
			{"product_name", func(s *domain.Submission) string { return s.ProductName }},
			{"session_id", func(s *domain.Submission) string { return s.SessionID }},
		}
	case domain.ProjectMI:
		return append(base,
			fieldRef{"checking_account_name", func(s *domain.Submission) string { return s.CheckingAccountName }},
			fieldRef{"routing_number", func(s *domain.Submission) string { return s.RoutingNumber }},
			fieldRef{"account_number", func(s *domain.Submission) string { return s.AccountNumber }},
		)
	}
	return base
}

type fieldRef struct {
	name string
	get  func(*domain.Submission) string
}

// Validate checks presence of the project's required-field set, plus
// canonical limits that hold for every project (field lengths, email
// format when an email is present).
func (v *SubmissionValidator) Validate(_ context.Context, sub *domain.Submission) error {
	if sub == nil {
		return fmt.Errorf("%w: submission is nil", ErrInvalidSubmission)
	}
	if !sub.Project.Valid() {
		return fmt.Errorf("%w: unknown project %q", ErrInvalidSubmission, sub.Project)
	}

	var missing []string
	for _, f := range requiredFields(sub.Project) {
		if strings.TrimSpace(f.get(sub)) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidSubmission, strings.Join(missing, ", "))
	}

	if len(sub.SourceCode) > 6 {
		return fmt.Errorf("%w: source_code longer than 6 characters", ErrInvalidSubmission)
	}
	if len(sub.SKU) > 7 {
		return fmt.Errorf("%w: sku longer than 7 characters", ErrInvalidSubmission)
	}
	if len(sub.SessionID) > 36 {
		return fmt.Errorf("%w: session_id longer than 36 characters", ErrInvalidSubmission)
	}
	if sub.Email != "" && !IsEmail(sub.Email) {
		return fmt.Errorf("%w: email is malformed", ErrInvalidSubmission)
	}
	return nil
}
