// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations from an fs.FS, usually an embed.FS owned by the caller.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// Connect retries with a linearly growing delay and gives up early when ctx is
// canceled. Healthcheck adapts the pool to a readiness probe.
package pg
