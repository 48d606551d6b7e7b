package outbox

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// --- Mock implementations ---

type memStore struct {
	mu      sync.Mutex
	records []Record
	sent    map[int64]bool
}

func newMemStore(records ...Record) *memStore {
	return &memStore{records: records, sent: make(map[int64]bool)}
}

func (s *memStore) FetchPending(_ context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, r := range s.records {
		if s.sent[r.ID] {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memStore) MarkSent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[id] = true
	return nil
}

func (s *memStore) isSent(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[id]
}

type fakeSender struct {
	created   [][]byte
	cancelled []int64
	failOn    int64 // order id whose delivery fails; 0 disables
}

func (f *fakeSender) CreateOrder(_ context.Context, payload []byte) error {
	f.created = append(f.created, payload)
	return nil
}

func (f *fakeSender) CancelOrder(_ context.Context, orderID int64) error {
	if f.failOn == orderID {
		return errors.New("service unavailable")
	}
	f.cancelled = append(f.cancelled, orderID)
	return nil
}

// --- Tests ---

func TestDeliverBatch(t *testing.T) {
	store := newMemStore(
		Record{ID: 1, Kind: KindOrderCreated, OrderID: 10, Payload: []byte(`{"orderId":10}`)},
		Record{ID: 2, Kind: KindOrderCancelled, OrderID: 10},
	)
	sender := &fakeSender{}
	relay := NewRelay(store, sender, RelayConfig{}, zaptest.NewLogger(t))

	delivered, err := relay.deliverBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, delivered)
	require.Len(t, sender.created, 1)
	assert.Equal(t, []byte(`{"orderId":10}`), sender.created[0])
	assert.Equal(t, []int64{10}, sender.cancelled)
	assert.True(t, store.sent[1])
	assert.True(t, store.sent[2])
}

func TestDeliverBatch_StopsAtFirstFailure(t *testing.T) {
	store := newMemStore(
		Record{ID: 1, Kind: KindOrderCancelled, OrderID: 10},
		Record{ID: 2, Kind: KindOrderCancelled, OrderID: 11},
		Record{ID: 3, Kind: KindOrderCancelled, OrderID: 12},
	)
	sender := &fakeSender{failOn: 11}
	relay := NewRelay(store, sender, RelayConfig{}, zaptest.NewLogger(t))

	delivered, err := relay.deliverBatch(context.Background())
	require.Error(t, err)

	// The first record went through, the failed one and everything behind
	// it stay pending so ordering is preserved on retry.
	assert.Equal(t, 1, delivered)
	assert.True(t, store.sent[1])
	assert.False(t, store.sent[2])
	assert.False(t, store.sent[3])
	assert.Equal(t, []int64{10}, sender.cancelled)
}

func TestDeliverBatch_RespectsBatchSize(t *testing.T) {
	store := newMemStore(
		Record{ID: 1, Kind: KindOrderCancelled, OrderID: 10},
		Record{ID: 2, Kind: KindOrderCancelled, OrderID: 11},
		Record{ID: 3, Kind: KindOrderCancelled, OrderID: 12},
	)
	relay := NewRelay(store, &fakeSender{}, RelayConfig{BatchSize: 2}, zaptest.NewLogger(t))

	delivered, err := relay.deliverBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)
	assert.False(t, store.sent[3])
}

func TestDeliverBatch_SkipsUnknownKind(t *testing.T) {
	store := newMemStore(
		Record{ID: 1, Kind: Kind("order_exploded"), OrderID: 10},
		Record{ID: 2, Kind: KindOrderCancelled, OrderID: 11},
	)
	sender := &fakeSender{}
	relay := NewRelay(store, sender, RelayConfig{}, zaptest.NewLogger(t))

	delivered, err := relay.deliverBatch(context.Background())
	require.NoError(t, err)

	// The unknown record is marked sent so it cannot wedge the queue.
	assert.Equal(t, 2, delivered)
	assert.True(t, store.sent[1])
	assert.Equal(t, []int64{11}, sender.cancelled)
}

func TestRun_DrainsAndStopsOnCancel(t *testing.T) {
	store := newMemStore(
		Record{ID: 1, Kind: KindOrderCancelled, OrderID: 10},
		Record{ID: 2, Kind: KindOrderCancelled, OrderID: 11},
	)
	sender := &fakeSender{}
	relay := NewRelay(store, sender, RelayConfig{PollInterval: 10 * time.Millisecond, BatchSize: 1}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- relay.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return store.isSent(1) && store.isSent(2)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop after cancel")
	}
}
