package mpjsonapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/binder"
	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/jsonapi"
	"github.com/dmitrymomot/mpjsonapi/pkg/event"
	"github.com/dmitrymomot/mpjsonapi/pkg/logger"
)

// Delegate is the JSON:API pipeline used for non-multipart requests.
// Validate is re-run on multipart requests once the file has been processed.
type Delegate interface {
	crud.Listener
	MethodChecker
	Validate(ctx context.Context, req *crud.Request) error
}

// Listener adapts multipart requests to the JSON:API save pipeline.
// It keeps no per-request state and is safe for concurrent use.
type Listener struct {
	delegate    Delegate
	negotiator  *Negotiator
	maxBodySize int64
	logger      *slog.Logger
}

// Option configures a Listener.
type Option func(*Listener)

// WithDelegate replaces the default crud.JSONAPIListener.
func WithDelegate(d Delegate) Option {
	return func(l *Listener) {
		if d != nil {
			l.delegate = d
		}
	}
}

// WithMaxBodySize limits the size of multipart bodies. Defaults to binder.DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(l *Listener) {
		if n > 0 {
			l.maxBodySize = n
		}
	}
}

// WithLogger sets the logger for classification and upload logs. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(l *Listener) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewListener creates a multipart listener.
func NewListener(opts ...Option) *Listener {
	l := &Listener{
		delegate:    crud.JSONAPIListener{},
		maxBodySize: binder.DefaultMaxBodySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.negotiator = NewNegotiator(l.delegate)
	return l
}

// CheckRequestMethods accepts multipart requests and anything the delegate accepts.
func (l *Listener) CheckRequestMethods(r *http.Request) error {
	_, err := l.negotiator.Classify(r)
	return err
}

// BeforeHandle classifies the request and prepares req.Document.
//
// On the delegated path the delegate's BeforeHandle runs unchanged. On the
// multipart path the decoded "entity" part becomes req.Document and
// EventFileUploaded is dispatched with the "file" part; the delegate's
// BeforeHandle does not run.
func (l *Listener) BeforeHandle(ctx context.Context, req *crud.Request) error {
	path, err := l.negotiator.Classify(req.HTTP)
	if err != nil {
		return err
	}

	hook := NewHook()
	req.Events.On(crud.EventBeforeSave, func(ctx context.Context, e *event.Event) error {
		save, ok := event.DataAs[*crud.SaveEvent](e)
		if !ok {
			return nil
		}
		return hook.BeforeSave(ctx, save.Entity)
	})

	l.logger.LogAttrs(ctx, slog.LevelDebug, "request classified",
		logger.Component("multipart_listener"),
		logger.HandlingPath(path.String()),
		logger.ResourceType(req.ResourceType),
	)

	if path == DelegatedJSONAPIPath {
		return l.delegate.BeforeHandle(ctx, req)
	}
	return l.handleMultipart(ctx, req, hook)
}

func (l *Listener) handleMultipart(ctx context.Context, req *crud.Request, hook *Hook) error {
	// Armed before parsing so a failed request leaves nothing to merge.
	if err := hook.Arm(ctx); err != nil {
		return err
	}
	validated := false
	req.Events.On(EventFileProcessed, func(ctx context.Context, e *event.Event) error {
		if fields, ok := fieldSetFrom(e); ok {
			if err := hook.Deliver(ctx, fields); err != nil {
				return err
			}
		}
		validated = true
		return l.delegate.Validate(ctx, req)
	})
	req.Events.On(crud.EventRequestEnd, func(ctx context.Context, _ *event.Event) error {
		hook.End(ctx)
		return nil
	})

	parts, err := binder.ParseMultipartRequest(req.HTTP, l.maxBodySize)
	if err != nil {
		return err
	}

	set, err := binder.ExtractParts(parts)
	if err != nil {
		return err
	}

	var doc jsonapi.Document
	if err := binder.DecodeJSON(set.Entity().Body, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntityPayload, err)
	}
	req.Document = &doc

	file := set.File()
	l.logger.LogAttrs(ctx, slog.LevelDebug, "dispatching uploaded file",
		logger.Component("multipart_listener"),
		logger.Event(string(EventFileUploaded)),
		logger.Part(file.Name),
		logger.Size(file.Size()),
	)

	if err := req.Events.Dispatch(ctx, event.New(EventFileUploaded, l, &FileUploaded{
		Request: req,
		Part:    file,
	})); err != nil {
		return err
	}

	// No file-processed event arrived: the document is still checked.
	if !validated {
		return l.delegate.Validate(ctx, req)
	}
	return nil
}
