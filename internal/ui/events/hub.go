// Package events routes terminal events to the listeners of whatever is
// mounted. The newest listener sees an event first; a listener that
// consumes it stops propagation.
package events

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Listener reports whether it consumed ev.
type Listener func(ev tcell.Event) bool

type entry struct {
	id       uint64
	listener Listener
}

type Hub struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers l and returns the func that removes it. Calling the
// returned func more than once is harmless.
func (h *Hub) Subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.entries = append(h.entries, entry{id: id, listener: l})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, e := range h.entries {
		if e.id == id {
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return
		}
	}
}

// Dispatch offers ev to listeners newest first and reports whether one
// consumed it. Listeners may subscribe or unsubscribe while being called.
func (h *Hub) Dispatch(ev tcell.Event) bool {
	h.mu.Lock()
	snapshot := make([]entry, len(h.entries))
	copy(snapshot, h.entries)
	h.mu.Unlock()

	for i := len(snapshot) - 1; i >= 0; i-- {
		if snapshot[i].listener(ev) {
			return true
		}
	}
	return false
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
