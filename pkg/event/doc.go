// Package event provides a synchronous, in-process event manager.
//
// Listeners are registered per event name and invoked in registration order on
// the dispatching goroutine. Dispatch blocks until every listener has returned,
// and the first listener error aborts dispatch and is returned to the caller as is.
//
// A Manager is cheap to create and is meant to be scoped to a single unit of
// work (for example one HTTP request), so listeners registered for that unit
// never leak into the next one.
//
// Basic usage:
//
//	events := event.NewManager()
//	defer events.Close()
//
//	events.On("file.uploaded", func(ctx context.Context, e *event.Event) error {
//		part, _ := event.DataAs[*binder.Part](e)
//		return store(ctx, part)
//	})
//
//	if err := events.Dispatch(ctx, event.New("file.uploaded", nil, part)); err != nil {
//		return err
//	}
//
// A listener may call Stop on the event to prevent listeners registered after
// it from running. Listeners may register further listeners while a dispatch
// is in progress; those take effect from the next dispatch.
package event
