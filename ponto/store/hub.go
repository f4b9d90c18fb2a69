package store

import (
	"sync"

	"frigotec.com/frigotec/ponto/model"
)

// Hub fans newly committed clock events out to in-process subscribers
// (the live access watcher, the shift-open indicator). Only rows that
// the database accepted are published, so subscribers never see a
// provisional value that could still change.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[int]chan model.ClockEvent
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan model.ClockEvent)}
}

// Subscribe returns a buffered channel of the user's committed events
// and a cancel function. The channel is closed on cancel.
func (h *Hub) Subscribe(userID string) (<-chan model.ClockEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan model.ClockEvent, 8)
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]chan model.ClockEvent)
	}
	id := h.next
	h.next++
	h.subs[userID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[userID][id]; ok {
			delete(h.subs[userID], id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers to every subscriber of the event's user. A slow
// subscriber with a full buffer is skipped rather than blocking the
// write path; it will resync on its next full read.
func (h *Hub) Publish(event model.ClockEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[event.UserID] {
		select {
		case ch <- event:
		default:
		}
	}
}
