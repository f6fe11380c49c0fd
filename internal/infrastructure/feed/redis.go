package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/injapanfood/pos-api/internal/domain/event"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultChannel is the pub/sub channel completed transactions are published on
const DefaultChannel = "pos:transactions"

// RedisFeed is an event.Feed over Redis pub/sub, shared by every API instance
type RedisFeed struct {
	client  *redis.Client
	channel string

	mu     sync.Mutex
	subs   map[*redis.PubSub]func()
	closed bool
}

// NewRedisFeed creates a feed publishing on channel
func NewRedisFeed(client *redis.Client, channel string) *RedisFeed {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisFeed{
		client:  client,
		channel: channel,
		subs:    make(map[*redis.PubSub]func()),
	}
}

func (f *RedisFeed) Publish(ctx context.Context, evt event.TransactionCompleted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event failed: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan event.TransactionCompleted, func(), error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, nil, ErrFeedClosed
	}
	f.mu.Unlock()

	pubsub := f.client.Subscribe(ctx, f.channel)
	// wait for the subscription to be confirmed so no event published afterwards is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	out := make(chan event.TransactionCompleted, subscriberBuffer)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			f.mu.Lock()
			delete(f.subs, pubsub)
			f.mu.Unlock()
			_ = pubsub.Close()
		})
	}

	if !f.track(pubsub, cancel) {
		_ = pubsub.Close()
		return nil, nil, ErrFeedClosed
	}

	go func() {
		defer close(out)
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt event.TransactionCompleted
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed live feed message")
					continue
				}
				select {
				case out <- evt:
				default:
					log.Warn().Str("transaction_id", evt.TransactionID).Msg("live feed subscriber lagging, event dropped")
				}
			}
		}
	}()

	return out, cancel, nil
}

// track registers a subscription unless Close ran while it was being confirmed
func (f *RedisFeed) track(pubsub *redis.PubSub, cancel func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.subs[pubsub] = cancel
	return true
}

// Close ends every subscription. The Redis client itself is owned by the caller.
func (f *RedisFeed) Close() error {
	f.mu.Lock()
	f.closed = true
	cancels := make([]func(), 0, len(f.subs))
	for _, cancel := range f.subs {
		cancels = append(cancels, cancel)
	}
	f.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	return nil
}
