package handler

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/pkg/requestid"
)

// Context is the per-request context passed to handlers. It is the request's
// context.Context plus the HTTP pair it was created from.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// RequestID returns the id set by requestid.Middleware, or "".
	RequestID() string
}

// NewContext binds the request context to w and r.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{Context: r.Context(), w: w, r: r}
}

type httpContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *httpContext) RequestID() string                   { return requestid.FromContext(c.Context) }
