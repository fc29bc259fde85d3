package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/forms"
	"github.com/glowandgrind/site-api/internal/repo"
	"github.com/glowandgrind/site-api/internal/service/content"
	"github.com/glowandgrind/site-api/pkg/cache"
	"github.com/glowandgrind/site-api/pkg/cms"
	"github.com/glowandgrind/site-api/pkg/database"
	"github.com/glowandgrind/site-api/pkg/email"
	"github.com/glowandgrind/site-api/pkg/observability"
	redispkg "github.com/glowandgrind/site-api/pkg/redis"
	"github.com/glowandgrind/site-api/pkg/util/codes"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideLogger),
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideStore),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailSender),
	fx.Provide(ProvideValidator),
	fx.Provide(ProvideCodeGenerator),
	fx.Provide(ProvideCMS),
	fx.Provide(ProvideStorage),
	fx.Provide(ProvideOTel),
)

// ProvideLogger hands out the process logger configured by the CLI.
func ProvideLogger() *slog.Logger {
	return slog.Default()
}

func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*database.DB, error) {
	db, err := database.NewFromCentral(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Migrations.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.Migrate(ctx, repo.Models()...); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing database connection")
			return db.Close()
		},
	})
	return db, nil
}

func ProvideStore(db *database.DB) repo.Store {
	return repo.NewStore(db.Gorm())
}

// ProvideRedis returns nil when redis is disabled; consumers fall back to
// in-process storage.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb, err := redispkg.NewRedisFromCentral(ctx, cfg.Redis)
	if errors.Is(err, redispkg.ErrDisabled) {
		slog.Info("redis disabled, using in-memory storage")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailSender(cfg *config.Config, log *slog.Logger) (email.Sender, error) {
	sender, err := email.NewSender(email.FromCentralConfig(cfg.Email), log)
	if err != nil {
		return nil, err
	}
	slog.Info("email sender ready", "enabled", cfg.Email.Enabled, "provider", cfg.Email.Provider)
	return sender, nil
}

func ProvideValidator(cfg *config.Config) (*forms.Validator, error) {
	return forms.New(forms.FromCentralConfig(cfg.Forms))
}

func ProvideCodeGenerator(cfg *config.Config) *codes.Generator {
	return codes.NewGenerator(codes.FromCentralConfig(cfg.Forms))
}

// ProvideCMS returns a nil Querier when the content source is disabled.
func ProvideCMS(cfg *config.Config) (content.Querier, error) {
	if !cfg.CMS.Enabled {
		return nil, nil
	}
	client, err := cms.New(cms.FromCentralConfig(cfg.CMS))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ProvideStorage shares one key/value store between the content cache and
// idempotent replay. It is redis when enabled, else process memory.
func ProvideStorage(lc fx.Lifecycle, rdb *redis.Client) fiber.Storage {
	store := cache.New(rdb)
	if rdb == nil {
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return store.Close() }})
	}
	return store
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
