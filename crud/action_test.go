package crud_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/handler"
	"github.com/dmitrymomot/mpjsonapi/jsonapi"
	"github.com/dmitrymomot/mpjsonapi/pkg/event"
	"github.com/dmitrymomot/mpjsonapi/store/memory"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestAction(store crud.Store, opts ...crud.Option) *crud.Action {
	base := []crud.Option{
		crud.WithIDGenerator(func() string { return "generated" }),
		crud.WithClock(func() time.Time { return fixedNow }),
		crud.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return crud.NewAction("widgets", store, append(base, opts...)...)
}

type failingStore struct {
	*memory.Store
	err error
}

func (s failingStore) Save(context.Context, *crud.Entity) error {
	return s.err
}

// noDocumentListener accepts every request without decoding a document.
type noDocumentListener struct{}

func (noDocumentListener) BeforeHandle(context.Context, *crud.Request) error { return nil }

func TestAction_Handle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create with generated id", func(t *testing.T) {
		t.Parallel()

		store := memory.New()
		a := newTestAction(store)
		req := crud.NewRequest(jsonapiRequest(http.MethodPost, "/widgets",
			`{"data":{"type":"widgets","attributes":{"name":"a"}}}`), "widgets", "")

		e, err := a.Handle(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "generated", e.ID)
		assert.Equal(t, fixedNow, e.CreatedAt)
		assert.Equal(t, fixedNow, e.UpdatedAt)
		assert.Equal(t, 1, store.Len("widgets"))
	})

	t.Run("create with client id", func(t *testing.T) {
		t.Parallel()

		store := memory.New()
		a := newTestAction(store)
		body := `{"data":{"type":"widgets","id":"w1","attributes":{"name":"a"}}}`

		e, err := a.Handle(ctx, crud.NewRequest(jsonapiRequest(http.MethodPost, "/widgets", body), "widgets", ""))
		require.NoError(t, err)
		assert.Equal(t, "w1", e.ID)

		_, err = a.Handle(ctx, crud.NewRequest(jsonapiRequest(http.MethodPost, "/widgets", body), "widgets", ""))
		assert.ErrorIs(t, err, crud.ErrEntityExists)
	})

	t.Run("update merges attributes", func(t *testing.T) {
		t.Parallel()

		store := memory.New()
		existing := crud.NewEntity("widgets", "w1")
		existing.Set("name", "old")
		existing.Set("color", "red")
		existing.CreatedAt = fixedNow.Add(-time.Hour)
		require.NoError(t, store.Save(ctx, existing))

		a := newTestAction(store)
		req := crud.NewRequest(jsonapiRequest(http.MethodPatch, "/widgets/w1",
			`{"data":{"type":"widgets","id":"w1","attributes":{"name":"new"}}}`), "widgets", "w1")

		e, err := a.Handle(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "new", "color": "red"}, e.Attributes)
		assert.Equal(t, fixedNow.Add(-time.Hour), e.CreatedAt)
		assert.Equal(t, fixedNow, e.UpdatedAt)
	})

	t.Run("update missing entity", func(t *testing.T) {
		t.Parallel()

		a := newTestAction(memory.New())
		req := crud.NewRequest(jsonapiRequest(http.MethodPatch, "/widgets/w1",
			`{"data":{"type":"widgets","id":"w1"}}`), "widgets", "w1")

		_, err := a.Handle(ctx, req)
		assert.ErrorIs(t, err, crud.ErrEntityNotFound)
	})

	t.Run("listener without document", func(t *testing.T) {
		t.Parallel()

		a := newTestAction(memory.New(), crud.WithListener(noDocumentListener{}))
		_, err := a.Handle(ctx, crud.NewRequest(jsonapiRequest(http.MethodPost, "/widgets", ``), "widgets", ""))
		assert.ErrorIs(t, err, crud.ErrDocumentRequired)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("disk full")
		a := newTestAction(failingStore{Store: memory.New(), err: boom})
		_, err := a.Handle(ctx, crud.NewRequest(jsonapiRequest(http.MethodPost, "/widgets",
			`{"data":{"type":"widgets"}}`), "widgets", ""))
		assert.ErrorIs(t, err, boom)
	})
}

func TestAction_Events(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("save events in order", func(t *testing.T) {
		t.Parallel()

		var (
			calls []string
			end   *crud.EndEvent
		)
		sub := crud.SubscriberFunc(func(req *crud.Request) {
			req.Events.On(crud.EventBeforeSave, func(ctx context.Context, e *event.Event) error {
				save, _ := event.DataAs[*crud.SaveEvent](e)
				assert.True(t, save.Created)
				save.Entity.Set("stamp", "before")
				calls = append(calls, "before")
				return nil
			})
			req.Events.On(crud.EventAfterSave, func(ctx context.Context, e *event.Event) error {
				calls = append(calls, "after")
				return nil
			})
			req.Events.On(crud.EventRequestEnd, func(ctx context.Context, e *event.Event) error {
				end, _ = event.DataAs[*crud.EndEvent](e)
				calls = append(calls, "end")
				return nil
			})
		})

		store := memory.New()
		a := newTestAction(store, crud.WithSubscribers(sub, nil))
		req := crud.NewRequest(jsonapiRequest(http.MethodPost, "/widgets",
			`{"data":{"type":"widgets"}}`), "widgets", "")

		e, err := a.Handle(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"before", "after", "end"}, calls)
		require.NotNil(t, end)
		assert.NoError(t, end.Err)
		assert.Same(t, e, end.Entity)

		stored, err := store.Find(ctx, "widgets", e.ID)
		require.NoError(t, err)
		assert.Equal(t, "before", stored.Attributes["stamp"])

		assert.ErrorIs(t, req.Events.Dispatch(ctx, event.New("late", nil, nil)), event.ErrManagerClosed)
	})

	t.Run("end event carries the failure", func(t *testing.T) {
		t.Parallel()

		var end *crud.EndEvent
		sub := crud.SubscriberFunc(func(req *crud.Request) {
			req.Events.On(crud.EventRequestEnd, func(ctx context.Context, e *event.Event) error {
				end, _ = event.DataAs[*crud.EndEvent](e)
				return errors.New("cleanup failed")
			})
		})

		a := newTestAction(memory.New(), crud.WithSubscribers(sub))
		_, err := a.Handle(ctx, crud.NewRequest(jsonapiRequest(http.MethodPost, "/widgets",
			`{"data":{"type":"gadgets"}}`), "widgets", ""))

		require.ErrorIs(t, err, jsonapi.ErrResourceTypeMismatch)
		require.NotNil(t, end)
		assert.ErrorIs(t, end.Err, jsonapi.ErrResourceTypeMismatch)
		assert.Nil(t, end.Entity)
	})

	t.Run("before save error aborts", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("rejected")
		sub := crud.SubscriberFunc(func(req *crud.Request) {
			req.Events.On(crud.EventBeforeSave, func(context.Context, *event.Event) error { return boom })
		})

		store := memory.New()
		a := newTestAction(store, crud.WithSubscribers(sub))
		_, err := a.Handle(ctx, crud.NewRequest(jsonapiRequest(http.MethodPost, "/widgets",
			`{"data":{"type":"widgets"}}`), "widgets", ""))

		assert.Same(t, boom, err)
		assert.Zero(t, store.Len("widgets"))
	})
}

func TestAction_Routes(t *testing.T) {
	t.Parallel()

	store := memory.New()
	a := newTestAction(store)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	r.Mount("/widgets", a.Routes(handler.NewErrorHandler(log)))

	serve := func(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec, body
	}

	rec, body := serve(jsonapiRequest(http.MethodPost, "/widgets", `{"data":{"type":"widgets","attributes":{"name":"a"}}}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/widgets/generated", rec.Header().Get("Location"))
	assert.Equal(t, jsonapi.MediaType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "generated", body["data"].(map[string]any)["id"])

	rec, body = serve(httptest.NewRequest(http.MethodGet, "/widgets/generated", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"name": "a"}, body["data"].(map[string]any)["attributes"])

	rec, body = serve(jsonapiRequest(http.MethodPatch, "/widgets/generated", `{"data":{"type":"widgets","id":"generated","attributes":{"name":"b"}}}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"name": "b"}, body["data"].(map[string]any)["attributes"])

	rec, body = serve(jsonapiRequest(http.MethodPut, "/widgets/generated", `{"data":{"type":"widgets","id":"generated"}}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := body["errors"].([]any)
	assert.Equal(t, "unsupported_method", errs[0].(map[string]any)["code"])

	rec, _ = serve(httptest.NewRequest(http.MethodGet, "/widgets/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = serve(jsonapiRequest(http.MethodPatch, "/widgets/generated", `{"data":{"type":"widgets"}}`))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	obj := body["errors"].([]any)[0].(map[string]any)
	assert.Equal(t, jsonapi.PointerID, obj["source"].(map[string]any)["pointer"])
}
