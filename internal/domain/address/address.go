package address

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested address does not exist.
var ErrNotFound = errors.New("address not found")

// Address is a delivery address owned by a user. Orders may only reference
// addresses owned by the ordering user.
type Address struct {
	ID       int64
	Name     string
	City     string
	District string
	Details  string
	UserID   int64
}

// Repository defines persistence operations for addresses.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Address, error)
	ListByUser(ctx context.Context, userID int64) ([]Address, error)
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, id int64) error
}
