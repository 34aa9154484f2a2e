package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultChannel is the Redis pub/sub channel events travel on.
const DefaultChannel = "interno:changes"

// RedisHub publishes events on a Redis channel. Each Subscription owns its
// own Redis PubSub connection.
type RedisHub struct {
	client  redis.UniversalClient
	channel string
	log     *zap.Logger

	mu     sync.Mutex
	active map[*redis.PubSub]struct{}
}

// NewRedisHub wraps an existing client. channel may be empty for DefaultChannel.
func NewRedisHub(client redis.UniversalClient, channel string, logger *zap.Logger) *RedisHub {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisHub{
		client:  client,
		channel: channel,
		log:     logger,
		active:  make(map[*redis.PubSub]struct{}),
	}
}

// Publish encodes ev as JSON and publishes it.
func (h *RedisHub) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := h.client.Publish(ctx, h.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", h.channel, err)
	}
	return nil
}

// Subscribe opens a PubSub connection and waits for Redis to confirm it
// before returning, so a dead server surfaces here rather than as silence.
func (h *RedisHub) Subscribe(ctx context.Context) (*Subscription, error) {
	ps := h.client.Subscribe(ctx, h.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", h.channel, err)
	}

	h.mu.Lock()
	h.active[ps] = struct{}{}
	h.mu.Unlock()

	done := make(chan struct{})
	sub := newSubscription(func() {
		close(done)
		h.release(ps)
	})

	go h.pump(ps, sub, done)
	return sub, nil
}

// pump copies decoded messages into the subscription until it is released
// or the PubSub channel closes.
func (h *RedisHub) pump(ps *redis.PubSub, sub *Subscription, done <-chan struct{}) {
	defer close(sub.ch)
	msgs := ps.Channel()
	for {
		select {
		case <-done:
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.log.Warn("changefeed: bad payload", zap.Error(err))
				continue
			}
			select {
			case sub.ch <- ev:
			case <-done:
				return
			default:
				h.log.Debug("changefeed: subscriber lagging, event dropped",
					zap.String("event_id", ev.ID))
			}
		}
	}
}

func (h *RedisHub) release(ps *redis.PubSub) {
	h.mu.Lock()
	_, ok := h.active[ps]
	delete(h.active, ps)
	h.mu.Unlock()
	if ok {
		if err := ps.Close(); err != nil {
			h.log.Debug("changefeed: pubsub close", zap.Error(err))
		}
	}
}

// Subscribers returns the number of open subscriptions.
func (h *RedisHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.active)
}

// Close closes every open PubSub connection. The client itself is owned by
// the caller.
func (h *RedisHub) Close() error {
	h.mu.Lock()
	open := make([]*redis.PubSub, 0, len(h.active))
	for ps := range h.active {
		open = append(open, ps)
	}
	h.active = make(map[*redis.PubSub]struct{})
	h.mu.Unlock()

	for _, ps := range open {
		_ = ps.Close()
	}
	return nil
}
