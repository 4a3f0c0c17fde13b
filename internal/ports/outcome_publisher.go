package ports

import (
	"context"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

// OutcomePublisher emits an order outcome event for downstream
// fulfillment/reporting. Publishing is best-effort: the orchestrator
// logs a failure and moves on.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, order *domain.Order) error
	Close() error
}
