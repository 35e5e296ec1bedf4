package handler

import "errors"

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrBinderNotApplicable is returned by a binder that does not handle the request.
	// Wrap skips such binders.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
