package changefeed

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrClosed is returned by a hub that has been shut down.
var ErrClosed = errors.New("changefeed: hub closed")

// MemoryHub fans events out to subscribers in the same process.
type MemoryHub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
	log    *zap.Logger
}

// NewMemoryHub returns an empty in-process hub.
func NewMemoryHub(logger *zap.Logger) *MemoryHub {
	return &MemoryHub{
		subs: make(map[*Subscription]struct{}),
		log:  logger,
	}
}

// Publish delivers ev to every current subscriber. A subscriber whose buffer
// is full misses the event; it already has a refresh pending.
func (h *MemoryHub) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	for s := range h.subs {
		select {
		case s.ch <- ev:
		default:
			h.log.Debug("changefeed: subscriber lagging, event dropped",
				zap.String("event_id", ev.ID))
		}
	}
	return nil
}

// Subscribe registers a new subscriber.
func (h *MemoryHub) Subscribe(ctx context.Context) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	var sub *Subscription
	sub = newSubscription(func() { h.remove(sub) })
	h.subs[sub] = struct{}{}
	return sub, nil
}

func (h *MemoryHub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}

// Subscribers returns the number of open subscriptions.
func (h *MemoryHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription and rejects further use.
func (h *MemoryHub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		close(s.ch)
	}
	return nil
}
