// Package roster fans the live booking list out to connected clients.
// Every committed write produces a full replacement snapshot; subscribers
// never receive diffs, they swap in the latest list wholesale.
package roster

import (
	"sync"

	"github.com/lancer-lens/booking-api/internal/models"
)

type subscriber struct {
	ch     chan []models.Booking
	cancel sync.Once
}

// Hub is a broadcast channel of roster snapshots. It retains the most
// recent snapshot so a new subscriber sees the current roster immediately
// rather than waiting for the next write.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
	last []models.Booking
}

func New() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Publish replaces the retained snapshot and delivers it to every
// subscriber. A subscriber that has not consumed the previous snapshot
// has it replaced, not queued: only the newest roster matters.
func (h *Hub) Publish(snapshot []models.Booking) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = snapshot
	for s := range h.subs {
		select {
		case <-s.ch:
		default:
		}
		s.ch <- snapshot
	}
}

// Subscribe registers a new roster listener. The returned cancel func is
// idempotent and must be called on every exit path of the consumer; after
// it returns, the channel is closed and no further snapshots arrive.
func (h *Hub) Subscribe() (<-chan []models.Booking, func()) {
	s := &subscriber{ch: make(chan []models.Booking, 1)}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	if h.last != nil {
		s.ch <- h.last
	}
	h.mu.Unlock()

	cancel := func() {
		s.cancel.Do(func() {
			h.mu.Lock()
			delete(h.subs, s)
			h.mu.Unlock()
			close(s.ch)
		})
	}
	return s.ch, cancel
}

// Subscribers reports how many listeners are currently attached.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
