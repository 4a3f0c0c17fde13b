package ports

import (
	"context"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

// OrderRepository: persistence collaborator for canonical order
// records. Records are append-only: Save inserts, nothing updates.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	GetByUID(ctx context.Context, orderUID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error)
	LastN(ctx context.Context, n int) ([]*domain.Order, error)

	// ExistsCompleted: point-in-time duplicate guard used by the
	// ImportSale path: is there a completed order for the same
	// email + product + project. Not protected by a uniqueness
	// constraint; concurrent duplicates can race.
	ExistsCompleted(ctx context.Context, email, productName string, project domain.Project) (bool, error)
}
