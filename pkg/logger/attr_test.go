package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mpjsonapi/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	attr := logger.RequestID("req-1")
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attr slog.Attr
		key  string
		want string
	}{
		{logger.Component("multipart_listener"), "component", "multipart_listener"},
		{logger.Event("file_uploaded"), "event", "file_uploaded"},
		{logger.HandlingPath("multipart"), "handling_path", "multipart"},
		{logger.Part("entity"), "part", "entity"},
		{logger.ResourceType("widgets"), "resource_type", "widgets"},
		{logger.ResourceID("42"), "resource_id", "42"},
		{logger.StorageKey("uploads/a.png"), "storage_key", "uploads/a.png"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
		assert.Equal(t, tt.want, tt.attr.Value.String())
	}

	assert.True(t, logger.ResourceID("").Equal(slog.Attr{}))
	assert.Equal(t, int64(404), logger.StatusCode(404).Value.Int64())
}

func TestSize(t *testing.T) {
	t.Parallel()

	attr := logger.Size(2048)
	require.Equal(t, "size", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, int64(2048), g[0].Value.Int64())
	assert.Equal(t, "2.0 KiB", g[1].Value.String())

	g = logger.Size(-1).Value.Group()
	assert.Equal(t, "0 B", g[1].Value.String())
}
