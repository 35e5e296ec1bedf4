// Package handler provides typed HTTP handlers that answer with JSON:API documents.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap converts it to an http.HandlerFunc, running binders first and
// routing every failure (binding, handling or rendering) to one ErrorHandler:
//
//	show := func(ctx handler.Context, req ShowRequest) handler.Response {
//		res, err := store.Find(ctx, req.ID)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Document(jsonapi.NewDocument(res))
//	}
//
//	r.Get("/{id}", handler.Wrap(show,
//		handler.WithBinders[handler.Context, ShowRequest](bindShow),
//		handler.WithErrorHandler[handler.Context, ShowRequest](handler.NewErrorHandler(log)),
//	))
//
// # Errors
//
// NewErrorHandler renders JSON:API error documents. Errors carrying a
// core.HTTPError keep its status and key; validator.ValidationErrors become 422
// responses with one error object per field and a source pointer. Anything else
// is reported as 500 without leaking the error text.
package handler
