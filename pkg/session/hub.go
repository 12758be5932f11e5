package session

import (
	"sync"

	"github.com/tanmald/plate-check-mvp/domain"
)

// Listener receives session changes. The session is nil after sign-out.
type Listener func(event domain.AuthEvent, session *domain.Session)

type hub struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]Listener
}

func newHub() *hub {
	return &hub{listeners: make(map[int]Listener)}
}

func (h *hub) subscribe(l Listener) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.listeners[id] = l
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// publish calls every listener outside the lock so a listener may
// unsubscribe or read session state.
func (h *hub) publish(event domain.AuthEvent, s *domain.Session) {
	h.mu.RLock()
	ls := make([]Listener, 0, len(h.listeners))
	for _, l := range h.listeners {
		ls = append(ls, l)
	}
	h.mu.RUnlock()

	for _, l := range ls {
		l(event, s)
	}
}

func (h *hub) len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
