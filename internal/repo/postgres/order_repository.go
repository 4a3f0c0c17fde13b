package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository: Postgres implementation over pgxpool. One row per
// order record; vendor extension fields live in a jsonb column so the
// canonical schema stays uniform across vendors.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

const orderColumns = `
	order_uid, project, user_id,
	first_name, last_name, address1, address2, city, state, zip,
	phone, secondary_phone, email,
	source_code, sku, product_name, session_id,
	card_number, card_last4, card_expiration, cvv, issuer,
	checking_account_name, routing_number, account_number,
	extensions, status, validation_status, validation_message,
	validation_response, validation_date, created_at`

// Save inserts a record. Records are append-only: there is no upsert
// and no update path here.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order == nil || order.OrderUID == "" {
		return errors.New("order is empty or order_uid is required")
	}
	if order.UserID == "" {
		return errors.New("user_id is required")
	}

	ext, err := json.Marshal(order.Extensions)
	if err != nil {
		return fmt.Errorf("marshal extensions: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)
	`,
		order.OrderUID, order.Project, order.UserID,
		order.FirstName, order.LastName, order.Address1, order.Address2, order.City, order.State, order.Zip,
		order.Phone, order.SecondaryPhone, order.Email,
		order.SourceCode, order.SKU, order.ProductName, order.SessionID,
		order.CardNumber, order.CardLast4, order.CardExpiration, order.CVV, order.Issuer,
		order.CheckingAccountName, order.RoutingNumber, order.AccountNumber,
		ext, order.Status, order.ValidationStatus, order.ValidationMessage,
		order.ValidationResponse, order.ValidationDate, order.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByUID returns (nil, nil) when no record exists.
func (r *OrderRepository) GetByUID(ctx context.Context, uid string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_uid = $1`, uid)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}

// ListByUser: paged list of a user's submissions, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, order_uid DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select user orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	return orders, nil
}

// LastN: the N most recent records (cache warm-up).
func (r *OrderRepository) LastN(ctx context.Context, n int) ([]*domain.Order, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("select last orders: %w", err)
	}
	defer rows.Close()

	var result []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("last rows: %w", err)
	}
	return result, nil
}

// ExistsCompleted: ImportSale duplicate guard: a completed order for
// the same email + product + project. Point-in-time check, no
// uniqueness constraint behind it.
func (r *OrderRepository) ExistsCompleted(ctx context.Context, email, productName string, project domain.Project) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE email = $1 AND product_name = $2 AND project = $3 AND status = $4
		)
	`, email, productName, project, domain.StatusCompleted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists completed: %w", err)
	}
	return exists, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order domain.Order
		ext   []byte
	)
	if err := row.Scan(
		&order.OrderUID, &order.Project, &order.UserID,
		&order.FirstName, &order.LastName, &order.Address1, &order.Address2, &order.City, &order.State, &order.Zip,
		&order.Phone, &order.SecondaryPhone, &order.Email,
		&order.SourceCode, &order.SKU, &order.ProductName, &order.SessionID,
		&order.CardNumber, &order.CardLast4, &order.CardExpiration, &order.CVV, &order.Issuer,
		&order.CheckingAccountName, &order.RoutingNumber, &order.AccountNumber,
		&ext, &order.Status, &order.ValidationStatus, &order.ValidationMessage,
		&order.ValidationResponse, &order.ValidationDate, &order.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(ext) > 0 {
		if err := json.Unmarshal(ext, &order.Extensions); err != nil {
			return nil, fmt.Errorf("unmarshal extensions: %w", err)
		}
	}
	return &order, nil
}
