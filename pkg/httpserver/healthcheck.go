package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

	"github.com/dmitrymomot/mpjsonapi/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// LivenessHandler always answers 200 with {"status":"alive"}.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, map[string]any{"status": "alive"})
	}
}

// ReadinessHandler runs every check with the request context. It answers 200
// when all pass and 503 otherwise, listing the failing checks by name.
func ReadinessHandler(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		failed := make(map[string]string)
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				failed[name] = err.Error()
				log.LogAttrs(r.Context(), slog.LevelError, "readiness check failed",
					logger.Component("httpserver"),
					slog.String("check", name),
					logger.Error(err),
				)
			}
		}

		if len(failed) > 0 {
			writeHealth(w, http.StatusServiceUnavailable, map[string]any{"status": "not_ready", "failed": failed})
			return
		}
		writeHealth(w, http.StatusOK, map[string]any{"status": "ready"})
	}
}

func writeHealth(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
