package event

import "errors"

var (
	// ErrNilEvent is returned when Dispatch is called without an event.
	ErrNilEvent = errors.New("event: event cannot be nil")
	// ErrEmptyName is returned when an event has no name.
	ErrEmptyName = errors.New("event: event name cannot be empty")
	// ErrManagerClosed is returned when dispatching through a closed manager.
	ErrManagerClosed = errors.New("event: manager is closed")
)
