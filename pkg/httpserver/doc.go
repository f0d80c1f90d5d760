// Package httpserver runs the form service's HTTP listener with graceful
// shutdown and health probes.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM arrives or the
// listener fails. Shutdown drains in-flight requests within the configured
// deadline and then runs the stop hooks, which is where the service closes
// open form sessions and the draft backend.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(l *slog.Logger) { registry.CloseAll() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Health probes are plain handlers:
//
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, map[string]httpserver.Check{
//		"drafts": httpserver.Check(backend.Healthcheck),
//	}))
package httpserver
