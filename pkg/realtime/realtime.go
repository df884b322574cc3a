// Package realtime provides an in-process publish/subscribe hub used to fan
// out index events to multiple listeners (e.g. WebSocket sessions).
//
// Fan-out is best effort: a listener whose buffer is full misses the event
// instead of slowing down the publisher. There is no persistence or replay.
package realtime

import (
	"sync"
	"time"

	"github.com/rubiojr/seek/pkg/index"
)

// Event types.
const (
	TypeHello  = "hello"
	TypeReload = "reload"
)

// IndexEvent describes the index after a reload attempt.
type IndexEvent struct {
	Source     string    `json:"source"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
	Documents  int       `json:"documents"`
	Generation uint64    `json:"generation"`
	At         time.Time `json:"at"`
}

// InternalEvent is the envelope delivered to listeners.
type InternalEvent struct {
	Type  string     `json:"type"`
	Index IndexEvent `json:"index"`
}

// FromReload converts a reload outcome into an IndexEvent.
func FromReload(ev index.ReloadEvent) IndexEvent {
	ie := IndexEvent{
		Source:     ev.Source,
		OK:         ev.OK,
		Documents:  ev.Documents,
		Generation: ev.Generation,
		At:         ev.At,
	}
	if ev.Err != nil {
		ie.Error = ev.Err.Error()
	}
	return ie
}

// EventHub is an in-memory fan-out dispatcher. Each registered listener
// receives events through its own buffered channel.
//
// The hub is safe for concurrent use.
type EventHub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan InternalEvent
	nextID    uint64
	bufSize   int
}

// NewEventHub constructs a hub with the given per-listener buffer size.
// If bufSize <= 0, a default of 32 is used.
func NewEventHub(bufSize int) *EventHub {
	if bufSize <= 0 {
		bufSize = 32
	}
	return &EventHub{
		listeners: make(map[uint64]chan InternalEvent),
		bufSize:   bufSize,
	}
}

// Register adds a new listener and returns its id and channel. Callers must
// Unregister the id to release it.
func (h *EventHub) Register() (uint64, <-chan InternalEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan InternalEvent, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener and closes its channel. Unknown ids are
// ignored.
func (h *EventHub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers an event to all listeners. Accepted inputs are
// InternalEvent, IndexEvent (wrapped as a reload event) and
// index.ReloadEvent; anything else is ignored.
func (h *EventHub) Broadcast(event any) {
	var ie InternalEvent
	switch v := event.(type) {
	case InternalEvent:
		ie = v
	case IndexEvent:
		ie = InternalEvent{Type: TypeReload, Index: v}
	case index.ReloadEvent:
		ie = InternalEvent{Type: TypeReload, Index: FromReload(v)}
	default:
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- ie:
		default:
			// slow listener
		}
	}
}

// Size returns the current number of listeners.
func (h *EventHub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
