package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartiq/pim-go/internal/domain/address"
)

var _ address.Repository = (*AddressRepository)(nil)

// AddressRepository implements address.Repository backed by PostgreSQL.
type AddressRepository struct {
	pool *pgxpool.Pool
}

// NewAddressRepository returns an AddressRepository that uses the given pool.
func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

// GetByID returns a single address, or address.ErrNotFound.
func (r *AddressRepository) GetByID(ctx context.Context, id int64) (*address.Address, error) {
	var a address.Address
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, city, district, details, user_id FROM address WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.City, &a.District, &a.Details, &a.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, address.ErrNotFound
		}
		return nil, fmt.Errorf("getting address %d: %w", id, err)
	}
	return &a, nil
}

// ListByUser returns all addresses owned by the given user.
func (r *AddressRepository) ListByUser(ctx context.Context, userID int64) ([]address.Address, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, city, district, details, user_id FROM address WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing addresses for user %d: %w", userID, err)
	}
	defer rows.Close()

	var addresses []address.Address
	for rows.Next() {
		var a address.Address
		if err := rows.Scan(&a.ID, &a.Name, &a.City, &a.District, &a.Details, &a.UserID); err != nil {
			return nil, fmt.Errorf("scanning address: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading addresses: %w", err)
	}
	return addresses, nil
}

// Create persists a new address and fills in its id.
func (r *AddressRepository) Create(ctx context.Context, a *address.Address) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO address (name, city, district, details, user_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.Name, a.City, a.District, a.Details, a.UserID,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("creating address: %w", err)
	}
	return nil
}

// Update rewrites all mutable fields of the address.
func (r *AddressRepository) Update(ctx context.Context, a *address.Address) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE address SET name = $2, city = $3, district = $4, details = $5 WHERE id = $1`,
		a.ID, a.Name, a.City, a.District, a.Details)
	if err != nil {
		return fmt.Errorf("updating address %d: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return address.ErrNotFound
	}
	return nil
}

// Delete removes the address row.
func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM address WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting address %d: %w", id, err)
	}
	return nil
}
