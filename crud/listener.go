package crud

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/jsonapi"
)

// Listener prepares a request before the entity is built.
// BeforeHandle must leave a decoded document in req.Document.
type Listener interface {
	BeforeHandle(ctx context.Context, req *Request) error
}

// Subscriber attaches listeners to the event manager of each request.
type Subscriber interface {
	Subscribe(req *Request)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(req *Request)

func (f SubscriberFunc) Subscribe(req *Request) {
	f(req)
}

// JSONAPIListener handles plain JSON:API requests: it enforces the request
// rules, decodes the body and validates the document against the route.
type JSONAPIListener struct{}

// CheckRequestMethods enforces the JSON:API method and content type rules.
func (JSONAPIListener) CheckRequestMethods(r *http.Request) error {
	return jsonapi.CheckRequestMethods(r)
}

func (l JSONAPIListener) BeforeHandle(ctx context.Context, req *Request) error {
	if err := l.CheckRequestMethods(req.HTTP); err != nil {
		return err
	}

	doc, err := jsonapi.DecodeDocument(req.HTTP.Body)
	if err != nil {
		return err
	}
	req.Document = doc

	return l.Validate(ctx, req)
}

// Validate checks req.Document against the resource type and id of the route.
func (JSONAPIListener) Validate(_ context.Context, req *Request) error {
	return jsonapi.ValidateDocument(req.Document, req.ResourceType, req.ID)
}
