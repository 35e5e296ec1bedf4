package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mpjsonapi/core"
	"github.com/dmitrymomot/mpjsonapi/handler"
	"github.com/dmitrymomot/mpjsonapi/jsonapi"
)

type showRequest struct {
	ID string
}

func bindID(r *http.Request, v any) error {
	req := v.(*showRequest)
	req.ID = r.URL.Query().Get("id")
	if req.ID == "" {
		return core.ErrBadRequest
	}
	return nil
}

func TestWrap(t *testing.T) {
	t.Parallel()

	show := handler.HandlerFunc[handler.Context, showRequest](func(ctx handler.Context, req showRequest) handler.Response {
		if req.ID == "missing" {
			return handler.Error(core.ErrNotFound)
		}
		return handler.Document(
			jsonapi.NewDocument(&jsonapi.Resource{Type: "widgets", ID: req.ID}),
			handler.WithStatus(http.StatusCreated),
			handler.WithLocation("/widgets/"+req.ID),
		)
	})

	h := handler.Wrap(show,
		handler.WithBinders[handler.Context, showRequest](bindID),
	)

	t.Run("renders document", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/?id=42", nil))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, jsonapi.MediaType, rec.Header().Get("Content-Type"))
		assert.Equal(t, "/widgets/42", rec.Header().Get("Location"))

		var doc jsonapi.Document
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "42", doc.Data.ID)
	})

	t.Run("binder error goes to error handler", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error response goes to error handler", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/?id=missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWrap_Options(t *testing.T) {
	t.Parallel()

	var handled error
	var calls []string

	decorator := func(name string) handler.Decorator[handler.Context, showRequest] {
		return func(next handler.HandlerFunc[handler.Context, showRequest]) handler.HandlerFunc[handler.Context, showRequest] {
			return func(ctx handler.Context, req showRequest) handler.Response {
				calls = append(calls, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(
		handler.HandlerFunc[handler.Context, showRequest](func(ctx handler.Context, req showRequest) handler.Response { return nil }),
		handler.WithBinders[handler.Context, showRequest](
			func(r *http.Request, v any) error { return handler.ErrBinderNotApplicable },
		),
		handler.WithDecorators[handler.Context, showRequest](decorator("outer"), decorator("inner")),
		handler.WithErrorHandler[handler.Context, showRequest](func(ctx handler.Context, err error) {
			handled = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, errors.Is(handled, handler.ErrNilResponse))
	assert.Equal(t, []string{"outer", "inner"}, calls)
}
