package server

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"forsign-esign/internal/config"
	"forsign-esign/internal/delivery/http/router"
	"forsign-esign/internal/infrastructure/database"
	redisclient "forsign-esign/internal/infrastructure/redis"
)

// NewServer starts fiber on app.port. On stop it drains fiber first, then
// closes the database and redis connections, which may be nil when disabled.
func NewServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	r *router.Router,
	db *database.Database,
	rc *redisclient.RedisClient,
	logger *zap.Logger,
) error {
	app := r.Setup()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", cfg.App.Port)
			logger.Info("Starting HTTP server",
				zap.String("address", addr),
				zap.String("env", cfg.App.Env),
				zap.String("forsign", cfg.ForSign.BaseURL),
			)

			go func() {
				if err := app.Listen(addr); err != nil {
					logger.Error("Failed to start server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down HTTP server")

			var result *multierror.Error
			if err := app.ShutdownWithContext(ctx); err != nil {
				result = multierror.Append(result, fmt.Errorf("failed to shutdown http server: %w", err))
			}
			if err := db.Close(); err != nil {
				result = multierror.Append(result, fmt.Errorf("failed to close database: %w", err))
			}
			if err := rc.Close(); err != nil {
				result = multierror.Append(result, fmt.Errorf("failed to close redis: %w", err))
			}
			return result.ErrorOrNil()
		},
	})

	return nil
}

var Module = fx.Module("server",
	fx.Invoke(NewServer),
)
