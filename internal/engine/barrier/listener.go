package barrier

import (
	"fmt"
	"sync"

	"go.trai.ch/recall/internal/core/domain"
)

// Violation describes one out-of-phase read of task state.
type Violation struct {
	Task     string
	Accessor string
	Phase    domain.Phase
	Policy   domain.AccessPolicy
}

// Description is the user-facing text of the violation.
func (v Violation) Description() string {
	accessor := v.Accessor
	if accessor == "" {
		accessor = "build logic"
	}
	return fmt.Sprintf("execution state of task '%s' was read by %s during %s", v.Task, accessor, v.Phase)
}

// Listener is notified of every violation.
type Listener func(Violation)

// Broadcaster fans violations out to listeners in subscription order.
type Broadcaster struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewBroadcaster creates a broadcaster without listeners.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe adds a listener.
func (b *Broadcaster) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Broadcast notifies every listener.
func (b *Broadcaster) Broadcast(v Violation) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()

	for _, l := range listeners {
		l(v)
	}
}
