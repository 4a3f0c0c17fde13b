// Package adapters defines the adapter contract every vendor integration
// implements and the registry the orchestrator selects adapters from.
package adapters

import (
	"context"
	"errors"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

var (
	// ErrVendorUnavailable: transport-level failure talking to the
	// vendor (timeout, connection error, unreadable body).
	ErrVendorUnavailable = errors.New("vendor unavailable")

	// ErrUnmappedStatus: the vendor answered with a status value the
	// integration has no mapping for. Deliberately distinct from both a
	// business rejection and a transport failure.
	ErrUnmappedStatus = errors.New("unmapped vendor status")
)

// Outcome: normalized result of one vendor submission.
type Outcome struct {
	Eligible      bool           // vendor accepted the submission
	Reason        string         // human-readable reason when not eligible
	Raw           string         // verbatim vendor payload, kept for audit
	TransactionID string         // vendor transaction id when present
	Gateway       map[string]any // gateway/transaction sub-fields when present
}

// Adapter translates between the canonical submission shape and one
// vendor's wire protocol.
//
// Validate runs the vendor's own pre-flight rules (required fields,
// reject lists, format checks) and returns errors wrapping
// validate.ErrInvalidSubmission; no network call is made.
//
// Submit performs exactly one synchronous round trip. A vendor "no" is
// a non-nil Outcome with Eligible=false; an error return means the call
// itself failed (ErrVendorUnavailable, ErrUnmappedStatus).
type Adapter interface {
	Project() domain.Project
	Validate(ctx context.Context, sub *domain.Submission) error
	Submit(ctx context.Context, sub *domain.Submission) (*Outcome, error)
}
