// Package outbox implements the transactional outbox for order-management
// notifications. Workflow transactions enqueue records; the Relay delivers
// them asynchronously, so no HTTP call ever runs inside a DB transaction.
package outbox

import (
	"context"
	"time"
)

// Kind identifies the notification type of an outbox record.
type Kind string

const (
	KindOrderCreated   Kind = "order_created"
	KindOrderCancelled Kind = "order_cancelled"
)

// Record is a pending or delivered notification.
type Record struct {
	ID        int64
	Kind      Kind
	OrderID   int64
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

// Store abstracts the outbox table.
type Store interface {
	FetchPending(ctx context.Context, limit int) ([]Record, error)
	MarkSent(ctx context.Context, id int64) error
}

// Sender delivers a single notification to the order-management service.
type Sender interface {
	CreateOrder(ctx context.Context, payload []byte) error
	CancelOrder(ctx context.Context, orderID int64) error
}
