package crud

import (
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/jsonapi"
	"github.com/dmitrymomot/mpjsonapi/pkg/event"
)

// Request is the per-request state shared by listeners and subscribers.
// It is created for one HTTP request and never reused.
type Request struct {
	HTTP         *http.Request
	ResourceType string
	// ID is the route identifier, empty on create.
	ID string
	// Document is the effective payload. Listeners set it in BeforeHandle.
	Document *jsonapi.Document
	Events   *event.Manager
}

// NewRequest creates the state for one HTTP request with a fresh event manager.
func NewRequest(r *http.Request, resourceType, id string) *Request {
	return &Request{
		HTTP:         r,
		ResourceType: resourceType,
		ID:           id,
		Events:       event.NewManager(),
	}
}

// IsCreate reports whether the request creates a new resource.
func (r *Request) IsCreate() bool {
	return r.ID == ""
}
