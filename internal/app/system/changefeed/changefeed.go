// Package changefeed tells open tracker pages that the internship or region
// tables changed so they can refetch.
//
// A Hub is either backed by Redis pub/sub (so several app instances share one
// feed) or by an in-process fan-out. Consumers hold a Subscription for the
// life of their view and must Close it when done.
package changefeed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Tables that publish changes.
const (
	TableInternships = "internships"
	TableRegions     = "regions"
)

// Operations.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Event describes one committed mutation.
type Event struct {
	ID       string    `json:"id"`
	Table    string    `json:"table"`
	Op       string    `json:"op"`
	RecordID string    `json:"record_id"`
	At       time.Time `json:"at"`
}

// NewEvent stamps a new event with a unique id and the current time.
func NewEvent(table, op, recordID string) Event {
	return Event{
		ID:       uuid.NewString(),
		Table:    table,
		Op:       op,
		RecordID: recordID,
		At:       time.Now().UTC(),
	}
}

// Hub publishes events and hands out subscriptions.
type Hub interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(ctx context.Context) (*Subscription, error)
	Close() error
}

// subscriptionBuffer is how many undelivered events a subscriber may lag by.
const subscriptionBuffer = 32

// Subscription is one consumer's handle on the feed.
type Subscription struct {
	ch      chan Event
	once    sync.Once
	release func()
}

func newSubscription(release func()) *Subscription {
	return &Subscription{
		ch:      make(chan Event, subscriptionBuffer),
		release: release,
	}
}

// C delivers events until the subscription is closed.
func (s *Subscription) C() <-chan Event { return s.ch }

// Close releases the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}
