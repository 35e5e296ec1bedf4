package logger

import (
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// HandlingPath records how a request is processed, "multipart" or "jsonapi".
func HandlingPath(path string) slog.Attr {
	return slog.String("handling_path", path)
}

// Part records a multipart part name.
func Part(name string) slog.Attr {
	return slog.String("part", name)
}

// ResourceType records a JSON:API resource type.
func ResourceType(resourceType string) slog.Attr {
	return slog.String("resource_type", resourceType)
}

// ResourceID records a JSON:API resource identifier.
// An empty id yields an empty Attr.
func ResourceID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("resource_id", id)
}

// StorageKey records the key a file was stored under.
func StorageKey(key string) slog.Attr {
	return slog.String("storage_key", key)
}

// Size records a byte count as a human readable group {bytes, human}.
func Size(n int64) slog.Attr {
	return slog.Group("size",
		slog.Int64("bytes", n),
		slog.String("human", humanize.IBytes(uint64(max(n, 0)))),
	)
}

// StatusCode records an HTTP status code.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}
