package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/config"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/formhttp"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/httpserver"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/i18n"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

//go:embed forms/*.yaml
var builtinForms embed.FS

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "formsvc: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		logCfg    logger.Config
		httpCfg   httpserver.Config
		draftsCfg drafts.Config
		formsCfg  formhttp.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&draftsCfg) },
		func() error { return config.Load(&formsCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.New(append(logger.FromConfig(logCfg),
		logger.WithContextExtractors(formhttp.RequestIDExtractor()),
	)...)
	logger.SetAsDefault(log)

	backend, err := drafts.Open(ctx, draftsCfg, log)
	if err != nil {
		return fmt.Errorf("open drafts backend: %w", err)
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Error("failed to close drafts backend", logger.Error(err))
		}
	}()

	forms, err := loadForms(formsCfg.Dir)
	if err != nil {
		return err
	}

	translator, err := i18n.NewTranslator(ctx,
		i18n.NewFSAdapter(i18n.YAMLParser{}, validator.Locales, "locales"),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(logCfg.Environment != logger.Production),
	)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	api, err := formhttp.New(forms, append(formsCfg.Options(),
		formhttp.WithLogger(log),
		formhttp.WithTranslator(translator),
		formhttp.WithStore(backend.Store),
		formhttp.WithSubmitter(logSubmitter(log)),
	)...)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, map[string]httpserver.Check{
		"drafts": httpserver.Check(backend.Healthcheck),
	}))
	r.Mount("/api", api)

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(*slog.Logger) { api.Close() }),
	)
	log.Info("form service starting", slog.Int("forms", len(forms)), slog.String("drafts", draftsCfg.Driver))
	return srv.Run(ctx, r)
}

// loadForms reads definitions from dir, or the built-in forms when dir is empty.
func loadForms(dir string) (map[string]*multistep.Definition, error) {
	var (
		fsys fs.FS = builtinForms
		root       = "forms"
	)
	if dir != "" {
		fsys, root = os.DirFS(dir), "."
	}
	forms, err := multistep.LoadDefinitions(fsys, root, validator.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("load forms: %w", err)
	}
	return forms, nil
}

// logSubmitter records submissions. Delivery to a CRM is outside this service.
func logSubmitter(log *slog.Logger) multistep.Submitter {
	return multistep.SubmitterFunc(func(ctx context.Context, s multistep.Submission) error {
		log.InfoContext(ctx, "form submitted",
			logger.SessionID(s.SessionID),
			logger.FormID(s.FormID),
			slog.Int("fields", len(s.Data)),
			slog.Time("submitted_at", s.SubmittedAt),
		)
		return nil
	})
}
