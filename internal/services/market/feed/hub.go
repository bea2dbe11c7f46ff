// Package feed fans committed journal events out to live subscribers.
package feed

import (
	"sync"

	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
)

const defaultBuffer = 64

// Subscription receives events published after it joined. C is closed when
// the subscription is cancelled or falls too far behind.
type Subscription struct {
	C <-chan event.Event

	hub  *Hub
	ch   chan event.Event
	once sync.Once
}

// Cancel leaves the hub.
func (s *Subscription) Cancel() {
	if s == nil || s.hub == nil {
		return
	}
	s.hub.remove(s)
}

// Hub is a broadcast point for committed events.
type Hub struct {
	mu          sync.Mutex
	buffer      int
	subscribers map[*Subscription]struct{}
}

// NewHub returns a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{buffer: buffer, subscribers: make(map[*Subscription]struct{})}
}

// Subscribe joins the hub.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan event.Event, h.buffer)
	sub := &Subscription{C: ch, hub: h, ch: ch}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Len returns the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish delivers events to every subscriber without blocking. Subscribers
// whose buffer is full are dropped.
func (h *Hub) Publish(events []event.Event) {
	if h == nil || len(events) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		for _, evt := range events {
			select {
			case sub.ch <- evt:
			default:
				delete(h.subscribers, sub)
				sub.close()
			}
			if _, ok := h.subscribers[sub]; !ok {
				break
			}
		}
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	delete(h.subscribers, sub)
	h.mu.Unlock()
	sub.close()
}

func (s *Subscription) close() {
	s.once.Do(func() { close(s.ch) })
}
