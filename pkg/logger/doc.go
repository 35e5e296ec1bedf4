// Package logger builds *slog.Logger instances and provides the attribute
// helpers used across the service.
//
// New applies functional options on top of production defaults (JSON, info
// level, stdout). WithEnvironment picks text output and debug level for
// development. Context extractors registered with WithContextExtractors add
// request-scoped attributes such as the request id to every record.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Parse(cfg.Env), "mpjsonapi"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "file stored", logger.StorageKey(key), logger.Size(n))
package logger
