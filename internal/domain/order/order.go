package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/smartiq/pim-go/internal/domain/address"
)

// Status is the lifecycle state of an order. COMPLETED is set only by the
// external order-management system; this service never transitions into it.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// ValidationError indicates the request referenced an entity without an
// identifier.
type ValidationError struct {
	Entity string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing ID", e.Entity)
}

// AccessDeniedError indicates the requester does not own the referenced
// entity.
type AccessDeniedError struct {
	Entity string
	ID     int64
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("no access to %s %d", e.Entity, e.ID)
}

// Order snapshots a basket and a delivery address for a user at creation
// time. Only the status and address may change afterwards.
type Order struct {
	ID         int64
	CreateDate time.Time
	Status     Status
	UserID     int64
	BasketID   int64
	AddressID  int64
}

// Repository defines persistence operations for orders. Create and Cancel
// enqueue the matching order-management notification in the same
// transaction as the order row, so a committed order always has a pending
// notification and a failed one has neither.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, o *Order, addr *address.Address) error
	Cancel(ctx context.Context, o *Order) error
	UpdateAddress(ctx context.Context, id, addressID int64) error
	Delete(ctx context.Context, id int64) error
}
