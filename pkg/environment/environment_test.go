package environment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mpjsonapi/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]environment.Environment{
		"production": environment.Production,
		"PROD":       environment.Production,
		"stage":      environment.Staging,
		"staging":    environment.Staging,
		"dev":        environment.Development,
		"":           environment.Development,
		"qa":         environment.Development,
	}
	for in, want := range tests {
		assert.Equal(t, want, environment.Parse(in), in)
	}
	assert.True(t, environment.Parse("prod").IsProduction())
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, environment.FromContext(ctx))

	_, ok := environment.LoggerExtractor()(ctx)
	assert.False(t, ok)

	ctx = environment.WithContext(ctx, environment.Staging)
	assert.Equal(t, environment.Staging, environment.FromContext(ctx))

	attr, ok := environment.LoggerExtractor()(ctx)
	assert.True(t, ok)
	assert.Equal(t, "env", attr.Key)
	assert.Equal(t, "staging", attr.Value.String())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got environment.Environment
	h := environment.Middleware(environment.Production)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = environment.FromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, environment.Production, got)
}
