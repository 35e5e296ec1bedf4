package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/pkg/config"
	"github.com/dmitrymomot/mpjsonapi/pkg/file"
	"github.com/dmitrymomot/mpjsonapi/pkg/httpserver"
	"github.com/dmitrymomot/mpjsonapi/pkg/logger"
	"github.com/dmitrymomot/mpjsonapi/pkg/mongo"
	"github.com/dmitrymomot/mpjsonapi/pkg/pg"
	"github.com/dmitrymomot/mpjsonapi/store/memory"
	mongostore "github.com/dmitrymomot/mpjsonapi/store/mongo"
	"github.com/dmitrymomot/mpjsonapi/store/postgres"
)

// openStore connects the configured entity store and registers its readiness
// check. The returned func releases the connection.
func openStore(ctx context.Context, driver string, log *slog.Logger, checks map[string]httpserver.Check) (crud.Store, func(), error) {
	switch driver {
	case "", "memory":
		return memory.New(), func() {}, nil

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, postgres.Migrations(), cfg, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		checks["postgres"] = pg.Healthcheck(pool)
		return postgres.New(pool), pool.Close, nil

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		checks["mongo"] = mongo.Healthcheck(db.Client())
		closeFn := func() {
			if err := db.Client().Disconnect(context.WithoutCancel(ctx)); err != nil {
				log.WarnContext(ctx, "failed to disconnect mongo", logger.Error(err))
			}
		}
		return mongostore.New(db, ""), closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown entity store %q", driver)
}

// openStorage builds the configured file storage. Local storage is returned
// separately so its directory can be served.
func openStorage(ctx context.Context, driver string) (file.Storage, *file.LocalStorage, error) {
	switch driver {
	case "", "local":
		var cfg localConfig
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		local, err := file.NewLocalStorage(cfg.Dir, cfg.BaseURL)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil

	case "s3":
		var cfg s3Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		s, err := file.NewS3Storage(ctx, cfg.storage())
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil

	case "minio":
		var cfg minioConfig
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		s, err := file.NewMinIOStorage(cfg.storage())
		if err != nil {
			return nil, nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}

	return nil, nil, fmt.Errorf("unknown file storage %q", driver)
}
