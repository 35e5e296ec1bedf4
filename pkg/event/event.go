package event

import (
	"context"
	"sync"
)

// Name identifies an event.
type Name string

// Event carries a subject (the emitter) and arbitrary data to listeners.
type Event struct {
	Name    Name
	Subject any
	Data    any

	stopped bool
}

// New creates an event ready to be dispatched.
func New(name Name, subject, data any) *Event {
	return &Event{
		Name:    name,
		Subject: subject,
		Data:    data,
	}
}

// Stop prevents the remaining listeners from receiving the event.
func (e *Event) Stop() {
	e.stopped = true
}

// IsStopped reports whether a listener stopped propagation.
func (e *Event) IsStopped() bool {
	return e.stopped
}

// DataAs returns the event data as T.
// The bool is false when the event is nil or data has a different type.
func DataAs[T any](e *Event) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	v, ok := e.Data.(T)
	return v, ok
}

// Listener handles a dispatched event. Returning an error aborts the dispatch.
type Listener func(ctx context.Context, e *Event) error

// Manager dispatches events to registered listeners synchronously.
// All methods are safe for concurrent use.
type Manager struct {
	listeners map[Name][]Listener
	closed    bool
	mu        sync.RWMutex
}

// NewManager creates an empty event manager.
func NewManager() *Manager {
	return &Manager{
		listeners: make(map[Name][]Listener),
	}
}

// On registers a listener for the named event. Nil listeners are ignored.
func (m *Manager) On(name Name, l Listener) {
	if l == nil || name == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.listeners[name] = append(m.listeners[name], l)
}

// Has reports whether at least one listener is registered for the named event.
func (m *Manager) Has(name Name) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listeners[name]) > 0
}

// Dispatch invokes every listener registered for e.Name in registration order.
// The first listener error is returned unmodified and the remaining listeners are skipped.
// Dispatching an event nobody listens to is not an error.
func (m *Manager) Dispatch(ctx context.Context, e *Event) error {
	if e == nil {
		return ErrNilEvent
	}
	if e.Name == "" {
		return ErrEmptyName
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrManagerClosed
	}
	// Snapshot so listeners can register more listeners without deadlocking.
	listeners := make([]Listener, len(m.listeners[e.Name]))
	copy(listeners, m.listeners[e.Name])
	m.mu.RUnlock()

	for _, l := range listeners {
		if err := l(ctx, e); err != nil {
			return err
		}
		if e.stopped {
			break
		}
	}

	return nil
}

// Close drops all listeners. It is safe to call Close multiple times.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	clear(m.listeners)
	return nil
}
