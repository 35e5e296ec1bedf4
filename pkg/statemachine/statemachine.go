package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// State represents a state in the state machine.
type State interface {
	Name() string
}

// Event represents an event that can trigger a state transition.
type Event interface {
	Name() string
}

// Action executes side effects during a transition. Returning an error prevents the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Transition defines a state change triggered by an event.
type Transition struct {
	From    State
	To      State
	Event   Event
	Actions []Action
}

// StringState is a string-based State.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent is a string-based Event.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}

// Machine is a thread-safe in-memory state machine.
type Machine struct {
	initial     State
	current     State
	transitions map[string]map[string]Transition
	mu          sync.Mutex
}

// New creates a machine in the initial state with the given transitions.
func New(initial State, transitions ...Transition) (*Machine, error) {
	if initial == nil {
		return nil, ErrInvalidTransition
	}

	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[string]map[string]Transition),
	}
	for _, t := range transitions {
		if err := m.AddTransition(t); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is like New but panics on invalid transitions.
func MustNew(initial State, transitions ...Transition) *Machine {
	m, err := New(initial, transitions...)
	if err != nil {
		panic(err)
	}
	return m
}

// AddTransition registers t. Only one transition per (From, Event) pair is allowed.
func (m *Machine) AddTransition(t Transition) error {
	if t.From == nil || t.To == nil || t.Event == nil {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	from := t.From.Name()
	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[string]Transition)
	}
	if _, exists := m.transitions[from][t.Event.Name()]; exists {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateTransition, from, t.Event.Name())
	}
	m.transitions[from][t.Event.Name()] = t
	return nil
}

func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Fire applies event to the current state.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transitions[m.current.Name()][event.Name()]
	if !ok {
		return &NoTransitionError{State: m.current.Name(), Event: event.Name()}
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.To
	return nil
}

// CanFire reports whether event has a transition from the current state.
func (m *Machine) CanFire(event Event) bool {
	if event == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.transitions[m.current.Name()][event.Name()]
	return ok
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
