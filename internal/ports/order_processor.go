package ports

import (
	"context"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

// OrderProcessor: write side of the order service: one submission
// through the whole validation pipeline.
type OrderProcessor interface {
	Process(ctx context.Context, sub *domain.Submission) (*domain.Order, error)
}
