package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartiq/pim-go/internal/domain/address"
	"github.com/smartiq/pim-go/internal/domain/order"
	"github.com/smartiq/pim-go/internal/om"
	"github.com/smartiq/pim-go/internal/outbox"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. Create
// and Cancel write the order row and the order-management outbox record in
// a single transaction.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// GetByID returns a single order, or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, create_date, status, user_id, basket_id, address_id FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.CreateDate, &o.Status, &o.UserID, &o.BasketID, &o.AddressID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	return &o, nil
}

// List returns all orders ordered by id.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, create_date, status, user_id, basket_id, address_id FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.CreateDate, &o.Status, &o.UserID, &o.BasketID, &o.AddressID); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading orders: %w", err)
	}
	return orders, nil
}

// Create inserts the order and its order_created notification atomically.
// The notification payload snapshots the resolved delivery address so the
// relay does not depend on the address row staying unchanged.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order, addr *address.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (create_date, status, user_id, basket_id, address_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		o.CreateDate, o.Status, o.UserID, o.BasketID, o.AddressID,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	payload := om.EncodeCreatePayload(o, addr)
	_, err = tx.Exec(ctx,
		`INSERT INTO outbox (kind, order_id, payload) VALUES ($1, $2, $3)`,
		outbox.KindOrderCreated, o.ID, payload)
	if err != nil {
		return fmt.Errorf("enqueueing order_created notification: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Cancel updates the order status and enqueues the order_cancelled
// notification atomically.
func (r *OrderRepository) Cancel(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, o.ID, o.Status)
	if err != nil {
		return fmt.Errorf("cancelling order %d: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO outbox (kind, order_id, payload) VALUES ($1, $2, '{}')`,
		outbox.KindOrderCancelled, o.ID)
	if err != nil {
		return fmt.Errorf("enqueueing order_cancelled notification: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// UpdateAddress replaces the order's delivery address reference.
func (r *OrderRepository) UpdateAddress(ctx context.Context, id, addressID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET address_id = $2 WHERE id = $1`, id, addressID)
	if err != nil {
		return fmt.Errorf("updating order %d address: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Delete removes the order row. Workflow logic never deletes orders; this
// backs the generic admin endpoint only.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}
	return nil
}
