package ports

import (
	"context"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

// OrderReadService: read side of the order service.
type OrderReadService interface {
	GetOrder(ctx context.Context, orderUID string) (*domain.Order, error)
	OrdersByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error)
}
