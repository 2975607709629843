package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/slugkit/internal/api"
	"github.com/dmitrymomot/slugkit/internal/config"
	"github.com/dmitrymomot/slugkit/internal/logger"
	"github.com/dmitrymomot/slugkit/internal/metrics"
	"github.com/dmitrymomot/slugkit/internal/server"
	"github.com/dmitrymomot/slugkit/internal/storage"
	"github.com/dmitrymomot/slugkit/pkg/registry"
)

func newServeCmd() *cobra.Command {
	return LeafCommand{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Run the HTTP API. Configuration is read from the environment (HTTP_*, LOG_*, STORE_*, DATABASE_*, REDIS_*, SLUG_*).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cmd, cfg)
		},
	}.Build()
}

func serve(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	log, flush := logger.New(logger.Config{
		Level:             cfg.Log.Level,
		Format:            cfg.Log.Format,
		SentryDSN:         cfg.Log.SentryDSN,
		SentryEnvironment: cfg.Log.SentryEnvironment,
	}, cmd.ErrOrStderr(), logger.RequestID)
	defer flush()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return err
	}

	slugOpts, err := cfg.Registry.SlugOptions()
	if err != nil {
		_ = backend.Close()
		return err
	}
	reg, err := registry.New(backend.Store,
		registry.WithSlugOptions(slugOpts),
		registry.WithMaxLength(cfg.Registry.MaxLength),
		registry.WithMaxAttempts(cfg.Registry.MaxAttempts),
		registry.WithSuffixLength(cfg.Registry.SuffixLength),
		registry.WithReserved(cfg.Registry.Reserved...),
		registry.WithLogger(log.With(slog.String("component", "registry"))),
	)
	if err != nil {
		_ = backend.Close()
		return err
	}

	m := metrics.New()
	handler := api.New(reg,
		api.WithLogger(log),
		api.WithMetrics(m),
		api.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
		api.WithCheck("store", reg.Healthcheck()),
	)

	srv, err := server.New(handler, cfg.HTTP,
		server.WithLogger(log),
		server.WithPurge(cfg.Registry.PurgeSchedule, func(ctx context.Context) (int, error) {
			n, err := reg.Purge(ctx)
			m.Purged(n)
			return n, err
		}),
		server.WithShutdownHook(func(context.Context) error { return backend.Close() }),
	)
	if err != nil {
		_ = backend.Close()
		return err
	}

	return srv.Run(ctx)
}
