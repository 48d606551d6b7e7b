package outbox

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jpillora/backoff"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RelayConfig controls the delivery loop timing.
type RelayConfig struct {
	// PollInterval is the delay between polls when the queue is drained.
	PollInterval time.Duration
	// BatchSize is the maximum number of records fetched per poll.
	BatchSize int
}

// Relay polls the outbox and delivers pending notifications in insertion
// order. Delivery failures back off exponentially; the failed record is
// retried first on the next attempt, preserving ordering per queue.
type Relay struct {
	store  Store
	sender Sender
	cfg    RelayConfig
	lg     *zap.Logger

	tracer    trace.Tracer
	delivered metric.Int64Counter
	failures  metric.Int64Counter
}

// NewRelay creates a Relay. Zero config fields fall back to defaults.
func NewRelay(store Store, sender Sender, cfg RelayConfig, lg *zap.Logger) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}

	meter := otel.Meter("pim.outbox")
	delivered, _ := meter.Int64Counter("outbox.delivered",
		metric.WithDescription("Notifications delivered to the order-management service"))
	failures, _ := meter.Int64Counter("outbox.failures",
		metric.WithDescription("Failed delivery attempts"))

	return &Relay{
		store:     store,
		sender:    sender,
		cfg:       cfg,
		lg:        lg,
		tracer:    otel.Tracer("pim.outbox"),
		delivered: delivered,
		failures:  failures,
	}
}

// Run delivers notifications until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	retry := &backoff.Backoff{
		Min:    time.Second,
		Max:    time.Minute,
		Factor: 2,
		Jitter: true,
	}

	for {
		delivered, err := r.deliverBatch(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := r.cfg.PollInterval
		switch {
		case err != nil:
			wait = retry.Duration()
			r.lg.Warn("outbox delivery failed, backing off",
				zap.Error(err),
				zap.Duration("retry_in", wait),
			)
		case delivered > 0:
			retry.Reset()
			// More records may be pending; poll again immediately.
			wait = 0
		default:
			retry.Reset()
		}

		if wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
}

// deliverBatch fetches and delivers up to BatchSize pending records.
// It stops at the first failure so records are delivered in order.
func (r *Relay) deliverBatch(ctx context.Context) (int, error) {
	records, err := r.store.FetchPending(ctx, r.cfg.BatchSize)
	if err != nil {
		return 0, errors.Wrap(err, "fetch pending")
	}
	if len(records) == 0 {
		return 0, nil
	}

	ctx, span := r.tracer.Start(ctx, "outbox.deliverBatch")
	defer span.End()

	delivered := 0
	for _, rec := range records {
		kind := attribute.String("kind", string(rec.Kind))
		if err := r.deliver(ctx, rec); err != nil {
			r.failures.Add(ctx, 1, metric.WithAttributes(kind))
			return delivered, errors.Wrapf(err, "deliver record %d", rec.ID)
		}
		if err := r.store.MarkSent(ctx, rec.ID); err != nil {
			return delivered, errors.Wrapf(err, "mark record %d sent", rec.ID)
		}
		r.delivered.Add(ctx, 1, metric.WithAttributes(kind))
		delivered++
		r.lg.Debug("notification delivered",
			zap.Int64("record_id", rec.ID),
			zap.Int64("order_id", rec.OrderID),
			zap.String("kind", string(rec.Kind)),
		)
	}
	return delivered, nil
}

func (r *Relay) deliver(ctx context.Context, rec Record) error {
	switch rec.Kind {
	case KindOrderCreated:
		return r.sender.CreateOrder(ctx, rec.Payload)
	case KindOrderCancelled:
		return r.sender.CancelOrder(ctx, rec.OrderID)
	default:
		// Unknown kinds are logged and skipped rather than wedging the queue.
		r.lg.Error("unknown outbox kind", zap.String("kind", string(rec.Kind)), zap.Int64("record_id", rec.ID))
		return nil
	}
}
