package basket

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/smartiq/pim-go/internal/domain/catalog"
)

// Service encapsulates the basket workflow: lazily creating the active
// basket, adding and removing items, and keeping the total consistent.
type Service struct {
	baskets  Repository
	items    ItemRepository
	products catalog.Repository
}

// NewService creates a basket Service with the required dependencies.
func NewService(baskets Repository, items ItemRepository, products catalog.Repository) *Service {
	return &Service{
		baskets:  baskets,
		items:    items,
		products: products,
	}
}

// GetOrCreateActive returns the user's current ACTIVE basket, creating an
// empty one when none exists. When two concurrent calls race on creation,
// the loser of the unique-index insert re-reads and returns the winner's
// basket, so both callers converge on the same row.
func (s *Service) GetOrCreateActive(ctx context.Context, userID int64) (*Basket, error) {
	b, err := s.baskets.ActiveByUser(ctx, userID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "lookup active basket")
	}

	created := &Basket{
		CreateDate: time.Now(),
		Status:     StatusActive,
		TotalCost:  decimal.Zero,
		UserID:     userID,
	}
	err = s.baskets.Create(ctx, created)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ErrActiveExists) {
		return nil, errors.Wrap(err, "create basket")
	}

	// Lost the race: another request created the ACTIVE basket first.
	b, err = s.baskets.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "re-read active basket")
	}
	return b, nil
}

// AddItem appends a single unit of the given product to the user's active
// basket and recomputes the basket total. The item's captured cost is the
// product price truncated to a whole amount; the basket total is the sum of
// the items' live product prices.
func (s *Service) AddItem(ctx context.Context, userID, productID int64) (*View, error) {
	b, err := s.GetOrCreateActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %d", productID)
	}

	items, err := s.items.ListByBasket(ctx, b.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list basket items")
	}

	item := &Item{
		BasketID:  b.ID,
		ProductID: p.ID,
		Quantity:  1,
		TotalCost: p.Price.IntPart(),
	}
	after := append(append([]Item(nil), items...), *item)

	total, err := s.liveTotal(ctx, after)
	if err != nil {
		return nil, err
	}
	b.TotalCost = total

	// The item insert and the total update commit together.
	if err := s.items.Create(ctx, item, b); err != nil {
		return nil, errors.Wrap(err, "create basket item")
	}
	after[len(after)-1] = *item

	return &View{Basket: *b, Items: after}, nil
}

// RemoveItem deletes the identified item from the user's active basket and
// recomputes the total. Removing an item that is not in the basket is a
// no-op, so repeated removals are idempotent.
func (s *Service) RemoveItem(ctx context.Context, userID, basketItemID int64) (*View, error) {
	b, err := s.GetOrCreateActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.RemoveFromBasket(ctx, b, basketItemID)
}

// RemoveFromBasket deletes the item from the given basket and recomputes
// that basket's total. The generic basket-item endpoints use it to target
// a basket other than the requester's active one.
func (s *Service) RemoveFromBasket(ctx context.Context, b *Basket, basketItemID int64) (*View, error) {
	items, err := s.items.ListByBasket(ctx, b.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list basket items")
	}

	idx := -1
	for i := range items {
		if items[i].ID == basketItemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Nothing to remove; the total still gets refreshed.
		total, err := s.liveTotal(ctx, items)
		if err != nil {
			return nil, err
		}
		b.TotalCost = total
		if err := s.baskets.Update(ctx, b); err != nil {
			return nil, errors.Wrap(err, "update basket")
		}
		return &View{Basket: *b, Items: items}, nil
	}

	remaining := append(append([]Item(nil), items[:idx]...), items[idx+1:]...)
	total, err := s.liveTotal(ctx, remaining)
	if err != nil {
		return nil, err
	}
	b.TotalCost = total

	// The item delete and the total update commit together.
	if err := s.items.Delete(ctx, basketItemID, b); err != nil {
		return nil, errors.Wrapf(err, "delete basket item %d", basketItemID)
	}

	return &View{Basket: *b, Items: remaining}, nil
}

// View returns the basket together with its current items.
func (s *Service) View(ctx context.Context, b *Basket) (*View, error) {
	items, err := s.items.ListByBasket(ctx, b.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list basket items")
	}
	return &View{Basket: *b, Items: items}, nil
}

// liveTotal sums the current catalog prices of the items' products. The
// per-item captured costs are ignored; they may have diverged from the
// catalog since addition.
func (s *Service) liveTotal(ctx context.Context, items []Item) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "get products")
	}

	prices := make(map[int64]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(prices[item.ProductID])
	}
	return total, nil
}
