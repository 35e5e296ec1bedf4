package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/jsonapi"
)

// documentResponse renders a JSON:API document.
type documentResponse struct {
	status int
	header http.Header
	body   any
}

func (d documentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for key, values := range d.header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.Header().Set("Content-Type", jsonapi.MediaType)
	w.WriteHeader(d.status)
	return json.NewEncoder(w).Encode(d.body)
}

// DocumentOption configures a document response.
type DocumentOption func(*documentResponse)

// WithStatus sets a custom HTTP status code.
func WithStatus(status int) DocumentOption {
	return func(d *documentResponse) {
		d.status = status
	}
}

// WithHeader adds a response header.
func WithHeader(key, value string) DocumentOption {
	return func(d *documentResponse) {
		d.header.Add(key, value)
	}
}

// WithLocation sets the Location header of a created resource.
func WithLocation(url string) DocumentOption {
	return WithHeader("Location", url)
}

// Document renders doc with the JSON:API media type and status 200 unless overridden.
func Document(doc any, opts ...DocumentOption) Response {
	d := &documentResponse{
		status: http.StatusOK,
		header: make(http.Header),
		body:   doc,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// errorResponse defers err to the ErrorHandler configured in Wrap.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error returns a Response that reports err through the error handler.
func Error(err error) Response {
	return errorResponse{err: err}
}
