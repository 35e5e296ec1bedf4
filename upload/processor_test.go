package upload_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mpjsonapi"
	"github.com/dmitrymomot/mpjsonapi/binder"
	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/pkg/event"
	"github.com/dmitrymomot/mpjsonapi/pkg/file"
	"github.com/dmitrymomot/mpjsonapi/store/memory"
	"github.com/dmitrymomot/mpjsonapi/upload"
)

var pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newProcessor(t *testing.T, cfg upload.Config) (*upload.Processor, *file.LocalStorage) {
	t.Helper()
	storage, err := file.NewLocalStorage(t.TempDir(), "http://cdn.test/")
	require.NoError(t, err)
	return upload.NewProcessor(storage, cfg,
		upload.WithLogger(discard),
		upload.WithNameGenerator(func() string { return "f1" }),
	), storage
}

func uploaded(req *crud.Request, filename string, body []byte) *event.Event {
	return event.New(mpjsonapi.EventFileUploaded, nil, &mpjsonapi.FileUploaded{
		Request: req,
		Part:    &binder.Part{Name: "file", Filename: filename, Body: body},
	})
}

func TestProcessor_Subscribe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores file and reports fields", func(t *testing.T) {
		t.Parallel()

		proc, storage := newProcessor(t, upload.Config{
			NameField: "fileName",
			SizeField: "fileSize",
			MIMEField: "mimeType",
		})
		req := crud.NewRequest(httptest.NewRequest(http.MethodPost, "/widgets", nil), "widgets", "")
		proc.Subscribe(req)

		var fields mpjsonapi.FieldSet
		req.Events.On(mpjsonapi.EventFileProcessed, func(ctx context.Context, e *event.Event) error {
			fields, _ = event.DataAs[mpjsonapi.FieldSet](e)
			return nil
		})

		require.NoError(t, req.Events.Dispatch(ctx, uploaded(req, "a.png", pngContent)))
		assert.Equal(t, mpjsonapi.FieldSet{
			"fileUrl":  "http://cdn.test/widgets/f1.png",
			"fileName": "a.png",
			"fileSize": int64(len(pngContent)),
			"mimeType": "image/png",
		}, fields)

		got, err := os.ReadFile(filepath.Join(storage.BaseDir(), "widgets", "f1.png"))
		require.NoError(t, err)
		assert.Equal(t, pngContent, got)
	})

	t.Run("custom prefix and url field", func(t *testing.T) {
		t.Parallel()

		proc, storage := newProcessor(t, upload.Config{Prefix: "media", URLField: "imageUrl"})
		req := crud.NewRequest(httptest.NewRequest(http.MethodPost, "/widgets", nil), "widgets", "")
		proc.Subscribe(req)

		var fields mpjsonapi.FieldSet
		req.Events.On(mpjsonapi.EventFileProcessed, func(ctx context.Context, e *event.Event) error {
			fields, _ = event.DataAs[mpjsonapi.FieldSet](e)
			return nil
		})

		require.NoError(t, req.Events.Dispatch(ctx, uploaded(req, "", pngContent)))
		assert.Equal(t, mpjsonapi.FieldSet{"imageUrl": "http://cdn.test/media/f1.png"}, fields)
		assert.True(t, storage.Exists(ctx, "media/f1.png"))
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			cfg     upload.Config
			body    []byte
			wantErr error
		}{
			{name: "too large", cfg: upload.Config{MaxSize: 4}, body: pngContent, wantErr: upload.ErrFileTooLarge},
			{name: "type not allowed", cfg: upload.Config{AllowedTypes: []string{"application/pdf"}}, body: pngContent, wantErr: upload.ErrFileTypeNotAllowed},
			{name: "empty", body: nil, wantErr: upload.ErrEmptyFile},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				proc, storage := newProcessor(t, tt.cfg)
				req := crud.NewRequest(httptest.NewRequest(http.MethodPost, "/widgets", nil), "widgets", "")
				proc.Subscribe(req)

				processed := false
				req.Events.On(mpjsonapi.EventFileProcessed, func(context.Context, *event.Event) error {
					processed = true
					return nil
				})

				err := req.Events.Dispatch(ctx, uploaded(req, "a.png", tt.body))
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, processed)
				assert.False(t, storage.Exists(ctx, "widgets/f1.png"))
			})
		}
	})

	t.Run("failed request removes the file", func(t *testing.T) {
		t.Parallel()

		proc, storage := newProcessor(t, upload.Config{})
		req := crud.NewRequest(httptest.NewRequest(http.MethodPost, "/widgets", nil), "widgets", "")
		proc.Subscribe(req)

		require.NoError(t, req.Events.Dispatch(ctx, uploaded(req, "a.png", pngContent)))
		require.True(t, storage.Exists(ctx, "widgets/f1.png"))

		require.NoError(t, req.Events.Dispatch(ctx, event.New(crud.EventRequestEnd, nil,
			&crud.EndEvent{Request: req, Err: errors.New("save failed")})))
		assert.False(t, storage.Exists(ctx, "widgets/f1.png"))
	})

	t.Run("successful request keeps the file", func(t *testing.T) {
		t.Parallel()

		proc, storage := newProcessor(t, upload.Config{})
		req := crud.NewRequest(httptest.NewRequest(http.MethodPost, "/widgets", nil), "widgets", "")
		proc.Subscribe(req)

		require.NoError(t, req.Events.Dispatch(ctx, uploaded(req, "a.png", pngContent)))
		require.NoError(t, req.Events.Dispatch(ctx, event.New(crud.EventRequestEnd, nil, &crud.EndEvent{Request: req})))
		assert.True(t, storage.Exists(ctx, "widgets/f1.png"))
	})
}

func multipartRequest(t *testing.T, entity string, fileBody []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	pw, err := w.CreatePart(textproto.MIMEHeader{"Content-Disposition": {`form-data; name="entity"`}})
	require.NoError(t, err)
	_, err = pw.Write([]byte(entity))
	require.NoError(t, err)

	pw, err = w.CreatePart(textproto.MIMEHeader{"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, "a.png")}})
	require.NoError(t, err)
	_, err = pw.Write(fileBody)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/widgets", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestProcessor_WithAction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newAction := func(t *testing.T) (*crud.Action, *file.LocalStorage) {
		proc, storage := newProcessor(t, upload.Config{AllowedTypes: []string{"image/*"}})
		return crud.NewAction("widgets", memory.New(),
			crud.WithListener(mpjsonapi.NewListener(mpjsonapi.WithLogger(discard))),
			crud.WithSubscribers(proc),
			crud.WithLogger(discard),
		), storage
	}

	t.Run("saved entity carries the file url", func(t *testing.T) {
		t.Parallel()

		action, storage := newAction(t)
		req := crud.NewRequest(multipartRequest(t, `{"data":{"type":"widgets","attributes":{"name":"a"}}}`, pngContent), "widgets", "")

		e, err := action.Handle(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "http://cdn.test/widgets/f1.png", e.Attributes["fileUrl"])
		assert.Equal(t, "a", e.Attributes["name"])
		assert.True(t, storage.Exists(ctx, "widgets/f1.png"))
	})

	t.Run("invalid document rolls back the upload", func(t *testing.T) {
		t.Parallel()

		action, storage := newAction(t)
		req := crud.NewRequest(multipartRequest(t, `{"data":{"type":"gadgets","attributes":{"name":"a"}}}`, pngContent), "widgets", "")

		_, err := action.Handle(ctx, req)
		require.Error(t, err)
		assert.False(t, storage.Exists(ctx, "widgets/f1.png"))
	})
}
