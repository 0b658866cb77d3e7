// Package notify broadcasts gameplay events to the UI shell. Delivery is
// fire-and-forget: unlock state is durable in the save file, so a missed
// event is recoverable by querying state.
package notify

import (
	"sync"
	"time"
)

type EventType string

const (
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventFragmentFound       EventType = "fragment_found"
	EventBookSynthesized     EventType = "book_synthesized"
	EventBookPublished       EventType = "book_published"
	EventDayChanged          EventType = "day_changed"
)

type Event struct {
	Type      EventType `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is the store-facing side of the hub.
type Publisher interface {
	Publish(e Event)
}

// Hub fans events out to subscribers. Slow subscribers drop events rather
// than block a mutator.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a receive channel and a cancel func. The channel is
// buffered; events past the buffer are lost.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
