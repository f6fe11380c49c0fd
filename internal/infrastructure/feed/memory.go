// Package feed delivers completed-transaction events to live dashboard subscribers.
package feed

import (
	"context"
	"sync"

	"github.com/injapanfood/pos-api/internal/domain/event"
	"github.com/rs/zerolog/log"
)

// subscriberBuffer is how many events a slow subscriber may lag before events are dropped
const subscriberBuffer = 16

// MemoryFeed is an in-process event.Feed for single-instance deployments
type MemoryFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan event.TransactionCompleted
	closed bool
}

// NewMemoryFeed creates an empty in-process feed
func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[int]chan event.TransactionCompleted)}
}

func (f *MemoryFeed) Publish(_ context.Context, evt event.TransactionCompleted) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, ch := range f.subs {
		select {
		case ch <- evt:
		default:
			log.Warn().Int("subscriber", id).Str("transaction_id", evt.TransactionID).Msg("live feed subscriber lagging, event dropped")
		}
	}
	return nil
}

func (f *MemoryFeed) Subscribe(ctx context.Context) (<-chan event.TransactionCompleted, func(), error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, nil, ErrFeedClosed
	}
	id := f.nextID
	f.nextID++
	ch := make(chan event.TransactionCompleted, subscriberBuffer)
	f.subs[id] = ch
	f.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			close(done)
			f.mu.Lock()
			if sub, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(sub)
			}
			f.mu.Unlock()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return ch, cancel, nil
}

// Subscribers returns the number of live subscriptions
func (f *MemoryFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close ends every subscription
func (f *MemoryFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
	return nil
}

var (
	_ event.Feed = (*MemoryFeed)(nil)
	_ event.Feed = (*RedisFeed)(nil)
)
