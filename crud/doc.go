// Package crud orchestrates create, update and show actions for JSON:API resources.
//
// Each HTTP request gets its own Request value with a private event.Manager.
// An Action runs the pipeline
//
//	Listener.BeforeHandle -> build entity -> EventBeforeSave -> Store.Save -> EventAfterSave
//
// and always finishes with EventRequestEnd, which carries the outcome so
// subscribers can roll back side effects of failed requests. Listeners plug in
// request parsing; Subscribers attach per-request event listeners before the
// pipeline starts.
//
//	action := crud.NewAction("widgets", store,
//		crud.WithListener(listener),
//		crud.WithSubscribers(uploads),
//	)
//	r.Mount("/widgets", action.Routes(handler.NewErrorHandler(log)))
package crud
