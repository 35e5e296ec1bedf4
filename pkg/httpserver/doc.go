// Package httpserver runs an http.Handler with timeouts from the environment
// and graceful shutdown on context cancellation or SIGINT/SIGTERM.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Liveness and readiness probes are served by LivenessHandler and
// ReadinessHandler.
package httpserver
