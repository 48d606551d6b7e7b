package user

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("user not found")

// User is an account that owns baskets, addresses and orders.
type User struct {
	ID    int64
	Login string
}

// Repository defines lookup operations for users.
type Repository interface {
	GetByLogin(ctx context.Context, login string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
