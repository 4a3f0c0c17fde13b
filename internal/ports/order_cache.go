package ports

import (
	"context"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

// OrderCache: read-path cache of order records.
// Implementations must be safe for concurrent use, O(1) by key, and
// return copies of the stored entity.
type OrderCache interface {
	// Get: (order, true) on hit, (nil, false) on miss/expiry.
	Get(ctx context.Context, orderUID string) (*domain.Order, bool)

	// Set: store/refresh an order.
	Set(ctx context.Context, order *domain.Order) error

	// WarmUp: bulk load (boot time). Must honor context cancellation.
	WarmUp(ctx context.Context, orders []*domain.Order) error
}
