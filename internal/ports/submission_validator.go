package ports

import (
	"context"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

// SubmissionValidator: orchestrator-level shape check (aggregated
// required-field validation).
type SubmissionValidator interface {
	Validate(ctx context.Context, sub *domain.Submission) error
}
