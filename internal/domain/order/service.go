package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/smartiq/pim-go/internal/domain/address"
	"github.com/smartiq/pim-go/internal/domain/basket"
	"github.com/smartiq/pim-go/internal/domain/user"
)

// Service encapsulates the order workflow: creating orders from a
// basket+address pair with ownership checks, cancelling, and correcting
// the delivery address.
type Service struct {
	orders    Repository
	baskets   basket.Repository
	addresses address.Repository
}

// NewService creates an order Service with the required dependencies.
func NewService(orders Repository, baskets basket.Repository, addresses address.Repository) *Service {
	return &Service{
		orders:    orders,
		baskets:   baskets,
		addresses: addresses,
	}
}

// Create validates that the referenced basket and address exist and belong
// to the requester, then persists a NEW order snapshotting both. The
// order's owner is always the requester, never client input. The
// order-management notification is enqueued in the same transaction as the
// order row and delivered asynchronously.
func (s *Service) Create(ctx context.Context, requester *user.User, basketID, addressID int64) (*Order, error) {
	if basketID == 0 {
		return nil, &ValidationError{Entity: "basket"}
	}
	if addressID == 0 {
		return nil, &ValidationError{Entity: "address"}
	}

	b, err := s.baskets.GetByID(ctx, basketID)
	if err != nil {
		if errors.Is(err, basket.ErrNotFound) {
			return nil, basket.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get basket %d", basketID)
	}
	if b.UserID != requester.ID {
		return nil, &AccessDeniedError{Entity: "basket", ID: basketID}
	}

	addr, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			return nil, address.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get address %d", addressID)
	}
	if addr.UserID != requester.ID {
		return nil, &AccessDeniedError{Entity: "address", ID: addressID}
	}

	o := &Order{
		CreateDate: time.Now(),
		Status:     StatusNew,
		UserID:     requester.ID,
		BasketID:   b.ID,
		AddressID:  addr.ID,
	}
	if err := s.orders.Create(ctx, o, addr); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}

// Cancel marks the order CANCELLED and enqueues the cancel notification.
// The transition is applied regardless of the order's current status, so a
// COMPLETED or already-CANCELLED order can be cancelled again.
func (s *Service) Cancel(ctx context.Context, requester *user.User, orderID int64) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %d", orderID)
	}
	if o.UserID != requester.ID {
		return nil, &AccessDeniedError{Entity: "order", ID: orderID}
	}

	o.Status = StatusCancelled
	if err := s.orders.Cancel(ctx, o); err != nil {
		return nil, errors.Wrap(err, "cancel order")
	}

	return o, nil
}

// UpdateAddress replaces the order's delivery address. Both the order and
// the new address must belong to the requester. The order status is not
// checked: the address of a completed order can still be corrected.
func (s *Service) UpdateAddress(ctx context.Context, requester *user.User, orderID, addressID int64) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %d", orderID)
	}
	if o.UserID != requester.ID {
		return nil, &AccessDeniedError{Entity: "order", ID: orderID}
	}

	addr, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			return nil, address.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get address %d", addressID)
	}
	if addr.UserID != requester.ID {
		return nil, &AccessDeniedError{Entity: "address", ID: addressID}
	}

	if err := s.orders.UpdateAddress(ctx, o.ID, addr.ID); err != nil {
		return nil, errors.Wrap(err, "update order address")
	}
	o.AddressID = addr.ID

	return o, nil
}
