package basket

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a basket.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
)

var (
	// ErrNotFound is returned when a requested basket does not exist.
	ErrNotFound = errors.New("basket not found")

	// ErrItemNotFound is returned when a requested basket item does not exist.
	ErrItemNotFound = errors.New("basket item not found")

	// ErrActiveExists is returned by Create when another ACTIVE basket for
	// the same user already exists (partial unique index violation).
	ErrActiveExists = errors.New("active basket already exists")
)

// Basket is a user's shopping basket. A user has at most one ACTIVE basket
// at a time, enforced by a partial unique index on (user_id, status=ACTIVE).
type Basket struct {
	ID         int64
	CreateDate time.Time
	Status     Status
	TotalCost  decimal.Decimal
	UserID     int64
}

// Item is a single product line inside a basket. TotalCost captures the
// product price truncated to a whole amount at the time of addition.
type Item struct {
	ID        int64
	BasketID  int64
	ProductID int64
	Quantity  int
	TotalCost int64
}

// View is a basket together with its current items, as returned to callers.
type View struct {
	Basket Basket
	Items  []Item
}

// Repository defines persistence operations for baskets.
type Repository interface {
	// ActiveByUser returns the user's most recently created ACTIVE basket,
	// or ErrNotFound when the user has none.
	ActiveByUser(ctx context.Context, userID int64) (*Basket, error)
	GetByID(ctx context.Context, id int64) (*Basket, error)
	ListByUser(ctx context.Context, userID int64) ([]Basket, error)
	// Create persists a new basket and fills in its ID. It returns
	// ErrActiveExists when the one-active-basket constraint is violated.
	Create(ctx context.Context, b *Basket) error
	Update(ctx context.Context, b *Basket) error
	Delete(ctx context.Context, id int64) error
}

// ItemRepository defines persistence operations for basket items. Create
// and Delete also persist the basket's recomputed total, so the item
// mutation and the total change commit as one unit of work: a failed total
// update leaves no orphaned item row behind.
type ItemRepository interface {
	ListByBasket(ctx context.Context, basketID int64) ([]Item, error)
	// GetByID returns a single item, or ErrItemNotFound.
	GetByID(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, item *Item, b *Basket) error
	Delete(ctx context.Context, id int64, b *Basket) error
}
