// Package logger builds slog loggers for the form service and provides the
// attribute helpers used across packages.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "formsvc"),
//	    logger.WithContextValue("session_id", sessionKey{}),
//	)
//	log.InfoContext(ctx, "step advanced", logger.FormID("visa"), logger.Step("travel"))
//
// Libraries accept a *slog.Logger and fall back to Discard when none is given.
package logger
