// Command server exposes JSON:API create, update and show endpoints for the
// configured resource types. Each accepts plain JSON:API documents and
// multipart/form-data requests carrying an "entity" and a "file" part.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mpjsonapi"
	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/handler"
	"github.com/dmitrymomot/mpjsonapi/pkg/config"
	"github.com/dmitrymomot/mpjsonapi/pkg/environment"
	"github.com/dmitrymomot/mpjsonapi/pkg/httpserver"
	"github.com/dmitrymomot/mpjsonapi/pkg/logger"
	"github.com/dmitrymomot/mpjsonapi/pkg/requestid"
	"github.com/dmitrymomot/mpjsonapi/upload"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		app     appConfig
		logCfg  logger.Config
		httpCfg httpserver.Config
		upCfg   upload.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&app) },
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&upCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	env := environment.Parse(app.Env)
	logOpts, err := logCfg.Options()
	if err != nil {
		return err
	}
	log := logger.New(append([]logger.Option{
		logger.WithEnvironment(env, app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	}, logOpts...)...)
	logger.SetAsDefault(log)

	checks := map[string]httpserver.Check{}
	store, closeStore, err := openStore(ctx, app.EntityStore, log, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	storage, local, err := openStorage(ctx, app.FileStorage)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, environment.Middleware(env))
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks))
	if local != nil {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(local.BaseDir()))))
	}

	errorHandler := handler.NewErrorHandler(log)
	processor := upload.NewProcessor(storage, upCfg, upload.WithLogger(log))
	for _, resource := range app.Resources {
		resource = strings.TrimSpace(resource)
		if resource == "" {
			continue
		}

		action := crud.NewAction(resource, store,
			crud.WithListener(mpjsonapi.NewListener(
				mpjsonapi.WithMaxBodySize(app.MaxBodySize),
				mpjsonapi.WithLogger(log),
			)),
			crud.WithSubscribers(processor),
			crud.WithLogger(log),
		)
		r.Mount("/"+resource, action.Routes(errorHandler))
		log.InfoContext(ctx, "resource mounted", logger.ResourceType(resource))
	}

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, r)
}
