package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartiq/pim-go/internal/domain/basket"
)

var (
	_ basket.Repository     = (*BasketRepository)(nil)
	_ basket.ItemRepository = (*BasketItemRepository)(nil)
)

// BasketRepository implements basket.Repository backed by PostgreSQL.
type BasketRepository struct {
	pool *pgxpool.Pool
}

// NewBasketRepository returns a BasketRepository that uses the given pool.
func NewBasketRepository(pool *pgxpool.Pool) *BasketRepository {
	return &BasketRepository{pool: pool}
}

// ActiveByUser returns the user's most recently created ACTIVE basket, or
// basket.ErrNotFound when none exists.
func (r *BasketRepository) ActiveByUser(ctx context.Context, userID int64) (*basket.Basket, error) {
	var b basket.Basket
	err := r.pool.QueryRow(ctx,
		`SELECT id, create_date, status, total_cost, user_id
		 FROM basket
		 WHERE user_id = $1 AND status = 'ACTIVE'
		 ORDER BY create_date DESC
		 LIMIT 1`, userID,
	).Scan(&b.ID, &b.CreateDate, &b.Status, &b.TotalCost, &b.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, basket.ErrNotFound
		}
		return nil, fmt.Errorf("getting active basket for user %d: %w", userID, err)
	}
	return &b, nil
}

// GetByID returns a single basket, or basket.ErrNotFound.
func (r *BasketRepository) GetByID(ctx context.Context, id int64) (*basket.Basket, error) {
	var b basket.Basket
	err := r.pool.QueryRow(ctx,
		`SELECT id, create_date, status, total_cost, user_id FROM basket WHERE id = $1`, id,
	).Scan(&b.ID, &b.CreateDate, &b.Status, &b.TotalCost, &b.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, basket.ErrNotFound
		}
		return nil, fmt.Errorf("getting basket %d: %w", id, err)
	}
	return &b, nil
}

// ListByUser returns all baskets owned by the given user, newest first.
func (r *BasketRepository) ListByUser(ctx context.Context, userID int64) ([]basket.Basket, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, create_date, status, total_cost, user_id
		 FROM basket WHERE user_id = $1 ORDER BY create_date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing baskets for user %d: %w", userID, err)
	}
	defer rows.Close()

	var baskets []basket.Basket
	for rows.Next() {
		var b basket.Basket
		if err := rows.Scan(&b.ID, &b.CreateDate, &b.Status, &b.TotalCost, &b.UserID); err != nil {
			return nil, fmt.Errorf("scanning basket: %w", err)
		}
		baskets = append(baskets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading baskets: %w", err)
	}
	return baskets, nil
}

// Create persists a new basket and fills in its id. The partial unique
// index on (user_id) WHERE status='ACTIVE' turns concurrent creates into
// basket.ErrActiveExists for the losing transaction.
func (r *BasketRepository) Create(ctx context.Context, b *basket.Basket) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO basket (create_date, status, total_cost, user_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		b.CreateDate, b.Status, b.TotalCost, b.UserID,
	).Scan(&b.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return basket.ErrActiveExists
		}
		return fmt.Errorf("creating basket: %w", err)
	}
	return nil
}

// Update rewrites the basket's mutable fields.
func (r *BasketRepository) Update(ctx context.Context, b *basket.Basket) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE basket SET status = $2, total_cost = $3 WHERE id = $1`,
		b.ID, b.Status, b.TotalCost)
	if err != nil {
		return fmt.Errorf("updating basket %d: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return basket.ErrNotFound
	}
	return nil
}

// Delete removes the basket row; items go with it via ON DELETE CASCADE.
func (r *BasketRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM basket WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting basket %d: %w", id, err)
	}
	return nil
}

// BasketItemRepository implements basket.ItemRepository backed by PostgreSQL.
type BasketItemRepository struct {
	pool *pgxpool.Pool
}

// NewBasketItemRepository returns a BasketItemRepository that uses the given pool.
func NewBasketItemRepository(pool *pgxpool.Pool) *BasketItemRepository {
	return &BasketItemRepository{pool: pool}
}

// ListByBasket returns the items of a basket in insertion order.
func (r *BasketItemRepository) ListByBasket(ctx context.Context, basketID int64) ([]basket.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, basket_id, product_id, quantity, total_cost
		 FROM basket_item WHERE basket_id = $1 ORDER BY id`, basketID)
	if err != nil {
		return nil, fmt.Errorf("listing items for basket %d: %w", basketID, err)
	}
	defer rows.Close()

	var items []basket.Item
	for rows.Next() {
		var item basket.Item
		if err := rows.Scan(&item.ID, &item.BasketID, &item.ProductID, &item.Quantity, &item.TotalCost); err != nil {
			return nil, fmt.Errorf("scanning basket item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading basket items: %w", err)
	}
	return items, nil
}

// GetByID returns a single basket item, or basket.ErrItemNotFound.
func (r *BasketItemRepository) GetByID(ctx context.Context, id int64) (*basket.Item, error) {
	var item basket.Item
	err := r.pool.QueryRow(ctx,
		`SELECT id, basket_id, product_id, quantity, total_cost FROM basket_item WHERE id = $1`, id,
	).Scan(&item.ID, &item.BasketID, &item.ProductID, &item.Quantity, &item.TotalCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, basket.ErrItemNotFound
		}
		return nil, fmt.Errorf("getting basket item %d: %w", id, err)
	}
	return &item, nil
}

// Create inserts the item and persists the basket's recomputed total in
// one transaction, so a failed total update leaves no orphaned item row.
func (r *BasketItemRepository) Create(ctx context.Context, item *basket.Item, b *basket.Basket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO basket_item (basket_id, product_id, quantity, total_cost)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		item.BasketID, item.ProductID, item.Quantity, item.TotalCost,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("creating basket item: %w", err)
	}

	if err := updateBasketTx(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete removes the item row and persists the basket's recomputed total
// in one transaction.
func (r *BasketItemRepository) Delete(ctx context.Context, id int64, b *basket.Basket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM basket_item WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting basket item %d: %w", id, err)
	}

	if err := updateBasketTx(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func updateBasketTx(ctx context.Context, tx pgx.Tx, b *basket.Basket) error {
	tag, err := tx.Exec(ctx,
		`UPDATE basket SET status = $2, total_cost = $3 WHERE id = $1`,
		b.ID, b.Status, b.TotalCost)
	if err != nil {
		return fmt.Errorf("updating basket %d: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return basket.ErrNotFound
	}
	return nil
}
