// Package events provides an in-process publish/subscribe hub used to push
// transaction and KYC updates to connected clients.
package events

import (
	"sync"
	"time"
)

// Event types published by the services.
const (
	TypeTransactionCreated = "transaction.created"
	TypeTransactionUpdated = "transaction.updated"
	TypeKYCUpdated         = "kyc.updated"
)

// Event is a single notification scoped to one user.
type Event struct {
	Type      string      `json:"type"`
	UserID    string      `json:"user_id"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// subscriberBuffer bounds each subscriber channel. A subscriber that falls
// behind loses events instead of blocking publishers.
const subscriberBuffer = 16

// Hub fans events out to per-user subscribers. Safe for concurrent use.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a listener for the given user's events. The returned
// cancel func must be called to release the subscription; after cancel the
// channel is closed.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of its user. Delivery is
// non-blocking; slow subscribers drop the event.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[event.UserID] {
		select {
		case ch <- event:
		default:
		}
	}
}
