package upload

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mpjsonapi"
	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/pkg/event"
	"github.com/dmitrymomot/mpjsonapi/pkg/file"
	"github.com/dmitrymomot/mpjsonapi/pkg/logger"
)

// Processor stores uploaded files and reports them as a FieldSet.
// It keeps no per-request state and is safe for concurrent use.
type Processor struct {
	storage file.Storage
	cfg     Config
	logger  *slog.Logger
	newName func() string
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger for stored and rolled back files. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(p *Processor) {
		if log != nil {
			p.logger = log
		}
	}
}

// WithNameGenerator sets the generator of stored file names. Defaults to UUID v4.
func WithNameGenerator(fn func() string) Option {
	return func(p *Processor) {
		if fn != nil {
			p.newName = fn
		}
	}
}

// NewProcessor creates a processor saving files to storage.
func NewProcessor(storage file.Storage, cfg Config, opts ...Option) *Processor {
	if cfg.URLField == "" {
		cfg.URLField = DefaultURLField
	}
	p := &Processor{
		storage: storage,
		cfg:     cfg,
		logger:  slog.Default(),
		newName: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subscribe attaches the processor to one request.
func (p *Processor) Subscribe(req *crud.Request) {
	var stored string

	req.Events.On(mpjsonapi.EventFileUploaded, func(ctx context.Context, e *event.Event) error {
		up, ok := event.DataAs[*mpjsonapi.FileUploaded](e)
		if !ok || up.Part == nil {
			return nil
		}

		fields, key, err := p.Store(ctx, req.ResourceType, up)
		if err != nil {
			return err
		}
		stored = key

		return req.Events.Dispatch(ctx, event.New(mpjsonapi.EventFileProcessed, p, fields))
	})

	req.Events.On(crud.EventRequestEnd, func(ctx context.Context, e *event.Event) error {
		end, ok := event.DataAs[*crud.EndEvent](e)
		if !ok || end.Err == nil || stored == "" {
			return nil
		}
		key := stored
		stored = ""
		return p.rollback(ctx, key, end.Err)
	})
}

// Store validates and saves the uploaded part. It returns the fields to merge
// into the entity and the storage key of the saved file.
func (p *Processor) Store(ctx context.Context, resourceType string, up *mpjsonapi.FileUploaded) (mpjsonapi.FieldSet, string, error) {
	part := up.Part
	if part.Size() == 0 {
		return nil, "", ErrEmptyFile
	}

	if err := file.ValidateSize(part.Size(), p.cfg.MaxSize); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFileTooLarge, err)
	}

	mimeType := file.DetectMIMEType(part.Body)
	if err := file.ValidateMIMEType(mimeType, p.cfg.AllowedTypes...); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFileTypeNotAllowed, err)
	}

	prefix := p.cfg.Prefix
	if prefix == "" {
		prefix = resourceType
	}
	key := path.Join(prefix, p.newName()+file.Extension(part.Filename, mimeType))

	obj, err := p.storage.Save(ctx, file.Upload{Filename: part.Filename, Content: part.Body}, key)
	if err != nil {
		return nil, "", fmt.Errorf("upload: store %s: %w", key, err)
	}

	p.logger.LogAttrs(ctx, slog.LevelInfo, "file stored",
		logger.Component("upload"),
		logger.ResourceType(resourceType),
		logger.StorageKey(obj.Key),
		logger.Size(obj.Size),
		slog.String("mime_type", obj.MIMEType),
	)

	return p.fields(obj), obj.Key, nil
}

func (p *Processor) fields(obj *file.Object) mpjsonapi.FieldSet {
	fields := mpjsonapi.FieldSet{p.cfg.URLField: p.storage.URL(obj.Key)}
	if p.cfg.NameField != "" {
		fields[p.cfg.NameField] = obj.Filename
	}
	if p.cfg.SizeField != "" {
		fields[p.cfg.SizeField] = obj.Size
	}
	if p.cfg.MIMEField != "" {
		fields[p.cfg.MIMEField] = obj.MIMEType
	}
	return fields
}

// rollback removes a file stored for a request that failed afterwards.
func (p *Processor) rollback(ctx context.Context, key string, cause error) error {
	if err := p.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("upload: remove orphaned file %s: %w", key, err)
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "orphaned file removed",
		logger.Component("upload"),
		logger.StorageKey(key),
		slog.String("cause", cause.Error()),
	)
	return nil
}
