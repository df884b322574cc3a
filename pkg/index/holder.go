package index

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rubiojr/seek/pkg/log"
)

// LoaderFunc produces a fresh store.
type LoaderFunc func(ctx context.Context) (*Store, error)

// ReloadEvent reports the outcome of a reload attempt.
type ReloadEvent struct {
	Source     string
	OK         bool
	Err        error
	Documents  int
	Generation uint64
	At         time.Time
}

// Holder keeps the current store and replaces it on successful reloads.
// A failed reload keeps the previous store.
type Holder struct {
	current    atomic.Pointer[Store]
	generation atomic.Uint64
	load       LoaderFunc

	reloadMu  sync.Mutex
	mu        sync.RWMutex
	listeners []func(ReloadEvent)
}

func NewHolder(initial *Store, load LoaderFunc) *Holder {
	h := &Holder{load: load}
	h.current.Store(initial)
	h.generation.Store(1)
	return h
}

// Store returns the current store.
func (h *Holder) Store() *Store {
	return h.current.Load()
}

// Generation increases by one on every successful reload.
func (h *Holder) Generation() uint64 {
	return h.generation.Load()
}

// OnReload registers fn to be called after every reload attempt.
func (h *Holder) OnReload(fn func(ReloadEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Reload loads a new store and swaps it in on success.
func (h *Holder) Reload(ctx context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	logger := log.ForService("index")
	prev := h.current.Load()

	ev := ReloadEvent{At: time.Now()}
	if prev != nil {
		ev.Source = prev.Source()
	}

	store, err := h.load(ctx)
	if err != nil {
		logger.Warnf("Reload failed, keeping previous index: %v", err)
		ev.Err = err
		ev.Generation = h.generation.Load()
		if prev != nil {
			ev.Documents = prev.Len()
		}
		h.notify(ev)
		return err
	}

	h.current.Store(store)
	ev.OK = true
	ev.Source = store.Source()
	ev.Documents = store.Len()
	ev.Generation = h.generation.Add(1)
	logger.Infof("Index reloaded: %d documents (generation %d)", ev.Documents, ev.Generation)
	h.notify(ev)
	return nil
}

func (h *Holder) notify(ev ReloadEvent) {
	h.mu.RLock()
	listeners := make([]func(ReloadEvent), len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
