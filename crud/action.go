package crud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/mpjsonapi/handler"
	"github.com/dmitrymomot/mpjsonapi/jsonapi"
	"github.com/dmitrymomot/mpjsonapi/pkg/event"
	"github.com/dmitrymomot/mpjsonapi/pkg/logger"
)

// Action runs the create, update and show pipelines of one resource type.
type Action struct {
	resourceType string
	store        Store
	listener     Listener
	subscribers  []Subscriber
	logger       *slog.Logger
	newID        func() string
	now          func() time.Time
}

// Option configures an Action.
type Option func(*Action)

// WithListener replaces the default JSONAPIListener.
func WithListener(l Listener) Option {
	return func(a *Action) {
		if l != nil {
			a.listener = l
		}
	}
}

// WithSubscribers adds subscribers attached to every request.
func WithSubscribers(subs ...Subscriber) Option {
	return func(a *Action) {
		for _, s := range subs {
			if s != nil {
				a.subscribers = append(a.subscribers, s)
			}
		}
	}
}

// WithLogger sets the logger for saved entities and request-end failures. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Action) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithIDGenerator sets the generator of server-side ids. Defaults to UUID v4.
func WithIDGenerator(fn func() string) Option {
	return func(a *Action) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// WithClock sets the time source for timestamps.
func WithClock(fn func() time.Time) Option {
	return func(a *Action) {
		if fn != nil {
			a.now = fn
		}
	}
}

// NewAction creates an action for resourceType backed by store.
func NewAction(resourceType string, store Store, opts ...Option) *Action {
	a := &Action{
		resourceType: resourceType,
		store:        store,
		listener:     JSONAPIListener{},
		logger:       slog.Default(),
		newID:        func() string { return uuid.New().String() },
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ResourceType returns the resource type served by the action.
func (a *Action) ResourceType() string {
	return a.resourceType
}

// Handle runs the save pipeline for req and returns the persisted entity.
// EventRequestEnd is dispatched on every return path and the request's
// event manager is closed afterwards.
func (a *Action) Handle(ctx context.Context, req *Request) (entity *Entity, err error) {
	defer func() {
		end := event.New(EventRequestEnd, a, &EndEvent{Request: req, Entity: entity, Err: err})
		if endErr := req.Events.Dispatch(ctx, end); endErr != nil {
			a.logger.LogAttrs(ctx, slog.LevelWarn, "request end listener failed",
				logger.Component("crud"),
				logger.Event(string(EventRequestEnd)),
				logger.ResourceType(req.ResourceType),
				logger.Error(endErr),
			)
		}
		_ = req.Events.Close()
	}()

	for _, s := range a.subscribers {
		s.Subscribe(req)
	}

	if err := a.listener.BeforeHandle(ctx, req); err != nil {
		return nil, err
	}
	if req.Document == nil || req.Document.Data == nil {
		return nil, ErrDocumentRequired
	}

	created := req.IsCreate()
	e, err := a.buildEntity(ctx, req)
	if err != nil {
		return nil, err
	}

	save := &SaveEvent{Request: req, Entity: e, Created: created}
	if err := req.Events.Dispatch(ctx, event.New(EventBeforeSave, a, save)); err != nil {
		return nil, err
	}

	if err := a.store.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("save %s %s: %w", e.Type, e.ID, err)
	}

	if err := req.Events.Dispatch(ctx, event.New(EventAfterSave, a, save)); err != nil {
		return nil, err
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, "entity saved",
		logger.Component("crud"),
		logger.ResourceType(e.Type),
		logger.ResourceID(e.ID),
		slog.Bool("created", created),
	)

	return e, nil
}

func (a *Action) buildEntity(ctx context.Context, req *Request) (*Entity, error) {
	res := req.Document.Data
	now := a.now()

	if req.IsCreate() {
		id := res.ID
		if id == "" {
			id = a.newID()
		} else {
			_, err := a.store.Find(ctx, a.resourceType, id)
			switch {
			case err == nil:
				return nil, fmt.Errorf("%w: %s", ErrEntityExists, id)
			case !errors.Is(err, ErrEntityNotFound):
				return nil, err
			}
		}

		e := NewEntity(a.resourceType, id)
		maps.Copy(e.Attributes, res.Attributes)
		e.CreatedAt = now
		e.UpdatedAt = now
		return e, nil
	}

	e, err := a.store.Find(ctx, a.resourceType, req.ID)
	if err != nil {
		return nil, err
	}
	for field, value := range res.Attributes {
		e.Set(field, value)
	}
	e.UpdatedAt = now
	return e, nil
}

// Create handles POST requests and answers 201 with a Location header.
func (a *Action) Create(ctx handler.Context, req *Request) handler.Response {
	e, err := a.Handle(ctx, req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Document(jsonapi.NewDocument(e.Resource()),
		handler.WithStatus(http.StatusCreated),
		handler.WithLocation(path.Join(req.HTTP.URL.Path, e.ID)),
	)
}

// Update handles PATCH requests.
func (a *Action) Update(ctx handler.Context, req *Request) handler.Response {
	e, err := a.Handle(ctx, req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Document(jsonapi.NewDocument(e.Resource()))
}

// Show handles GET requests.
func (a *Action) Show(ctx handler.Context, req *Request) handler.Response {
	defer func() { _ = req.Events.Close() }()

	e, err := a.store.Find(ctx, a.resourceType, req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Document(jsonapi.NewDocument(e.Resource()))
}

// bind builds the per-request state from the route.
func (a *Action) bind(r *http.Request, v any) error {
	req, ok := v.(**Request)
	if !ok {
		return handler.ErrBinderNotApplicable
	}
	*req = NewRequest(r, a.resourceType, chi.URLParam(r, "id"))
	return nil
}

// Routes returns a router serving POST /, PATCH /{id} and GET /{id}.
// PUT /{id} is routed to the update pipeline so listeners can reject it
// with a JSON:API error instead of a bare 405.
func (a *Action) Routes(errorHandler handler.ErrorHandler[handler.Context]) chi.Router {
	wrap := func(h handler.HandlerFunc[handler.Context, *Request]) http.HandlerFunc {
		return handler.Wrap(h,
			handler.WithBinders[handler.Context, *Request](a.bind),
			handler.WithErrorHandler[handler.Context, *Request](errorHandler),
		)
	}

	r := chi.NewRouter()
	r.Post("/", wrap(a.Create))
	r.Get("/{id}", wrap(a.Show))
	r.Patch("/{id}", wrap(a.Update))
	r.Put("/{id}", wrap(a.Update))
	return r
}
