// Package statemachine provides a small finite-state machine.
//
// States and events are anything with a Name. A Machine holds at most one
// transition per (state, event) pair; firing an event runs the transition's
// actions in order and moves to the target state only when all of them
// succeed. Events without a transition from the current state fail with a
// *NoTransitionError.
//
//	const (
//		Draft     = statemachine.StringState("draft")
//		Published = statemachine.StringState("published")
//		Publish   = statemachine.StringEvent("publish")
//	)
//
//	sm := statemachine.MustNew(Draft,
//		statemachine.Transition{From: Draft, To: Published, Event: Publish},
//	)
//	if err := sm.Fire(ctx, Publish, nil); err != nil {
//		return err
//	}
//
// Actions run while the machine is locked and must not fire events on the
// same machine.
package statemachine
