package mpjsonapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/pkg/statemachine"
)

// Hook states.
const (
	HookIdle      = statemachine.StringState("idle")
	HookArmed     = statemachine.StringState("armed")
	HookPopulated = statemachine.StringState("populated")
	HookConsumed  = statemachine.StringState("consumed")
)

const (
	hookArm     = statemachine.StringEvent("arm")
	hookDeliver = statemachine.StringEvent("deliver")
	hookSave    = statemachine.StringEvent("save")
	hookEnd     = statemachine.StringEvent("end")
)

// Hook merges the FieldSet reported for a request into the entity before it is saved.
//
//	idle -> armed -> populated -> consumed -> idle
//
// A save while idle or armed merges nothing. A hook belongs to a single request.
type Hook struct {
	sm     *statemachine.Machine
	fields FieldSet
}

// NewHook creates an idle hook.
func NewHook() *Hook {
	h := &Hook{}
	h.sm = statemachine.MustNew(HookIdle,
		statemachine.Transition{From: HookIdle, To: HookArmed, Event: hookArm},
		statemachine.Transition{From: HookArmed, To: HookPopulated, Event: hookDeliver, Actions: []statemachine.Action{h.keep}},

		statemachine.Transition{From: HookIdle, To: HookIdle, Event: hookSave},
		statemachine.Transition{From: HookArmed, To: HookConsumed, Event: hookSave},
		statemachine.Transition{From: HookPopulated, To: HookConsumed, Event: hookSave, Actions: []statemachine.Action{h.merge}},
		statemachine.Transition{From: HookConsumed, To: HookConsumed, Event: hookSave},

		statemachine.Transition{From: HookIdle, To: HookIdle, Event: hookEnd},
		statemachine.Transition{From: HookArmed, To: HookIdle, Event: hookEnd, Actions: []statemachine.Action{h.clear}},
		statemachine.Transition{From: HookPopulated, To: HookIdle, Event: hookEnd, Actions: []statemachine.Action{h.clear}},
		statemachine.Transition{From: HookConsumed, To: HookIdle, Event: hookEnd, Actions: []statemachine.Action{h.clear}},
	)
	return h
}

// State returns the current hook state.
func (h *Hook) State() statemachine.State {
	return h.sm.Current()
}

// Arm activates the hook for a multipart request.
func (h *Hook) Arm(ctx context.Context) error {
	return h.sm.Fire(ctx, hookArm, nil)
}

// Deliver stores the FieldSet to merge at save time.
// Only one FieldSet is accepted per request.
func (h *Hook) Deliver(ctx context.Context, fields FieldSet) error {
	err := h.sm.Fire(ctx, hookDeliver, fields)
	if statemachine.IsNoTransition(err) {
		if h.sm.Current() == HookPopulated {
			return ErrFieldSetAlreadyDelivered
		}
		return fmt.Errorf("%w: %v", ErrHookNotArmed, err)
	}
	return err
}

// BeforeSave merges the delivered FieldSet into e, if there is one.
func (h *Hook) BeforeSave(ctx context.Context, e *crud.Entity) error {
	return h.sm.Fire(ctx, hookSave, e)
}

// End returns the hook to idle and drops the FieldSet.
func (h *Hook) End(ctx context.Context) {
	_ = h.sm.Fire(ctx, hookEnd, nil)
}

func (h *Hook) keep(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	fields, _ := data.(FieldSet)
	h.fields = fields
	return nil
}

func (h *Hook) merge(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	e, ok := data.(*crud.Entity)
	if !ok || e == nil {
		return errors.New("mpjsonapi: no entity to merge fields into")
	}
	h.fields.MergeInto(e)
	return nil
}

func (h *Hook) clear(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
	h.fields = nil
	return nil
}
