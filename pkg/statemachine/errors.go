package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition   = errors.New("invalid transition: from, to, or event cannot be nil")
	ErrInvalidEvent        = errors.New("invalid event: event cannot be nil")
	ErrDuplicateTransition = errors.New("duplicate transition")
)

// NoTransitionError indicates no transition exists for the state/event combination.
type NoTransitionError struct {
	State string
	Event string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.State, e.Event)
}

// IsNoTransition reports whether err is a *NoTransitionError.
func IsNoTransition(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}
