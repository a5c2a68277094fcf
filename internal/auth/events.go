package auth

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	SignedIn  EventType = "signed_in"
	SignedOut EventType = "signed_out"
)

// Event reports a session change for one user.
type Event struct {
	Type   EventType
	UserID uuid.UUID
	At     time.Time
}

type listener struct {
	id int
	fn func(Event)
}

// listeners fans events out synchronously, in registration order.
type listeners struct {
	mu     sync.RWMutex
	nextID int
	list   []listener
}

// add registers fn and returns a func that removes it.
func (l *listeners) add(fn func(Event)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.list = append(l.list, listener{id: id, fn: fn})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.list = slices.DeleteFunc(l.list, func(x listener) bool { return x.id == id })
	}
}

func (l *listeners) emit(e Event) {
	l.mu.RLock()
	snapshot := slices.Clone(l.list)
	l.mu.RUnlock()

	for _, x := range snapshot {
		x.fn(e)
	}
}
