package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/fx"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/api/http/handler"
	"github.com/glowandgrind/site-api/internal/api/http/middleware"
	"github.com/glowandgrind/site-api/internal/api/http/router"
	"github.com/glowandgrind/site-api/pkg/constants"
	"github.com/glowandgrind/site-api/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := NewApp(p.Cfg, p.Router, p.OTel != nil)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("HTTP server listening", "addr", addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// NewApp builds the fiber app with global middleware and all routes.
func NewApp(cfg *config.Config, r *router.Router, tracing bool) *fiber.App {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	bodyLimit := cfg.Server.BodyLimitKB * 1024
	if bodyLimit <= 0 {
		bodyLimit = 64 * 1024
	}

	app := fiber.New(fiber.Config{
		AppName:      constants.AppName,
		BodyLimit:    bodyLimit,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		ErrorHandler: handler.ErrorHandler,
	})

	if tracing && cfg.Observability.Tracing.Enabled {
		app.Use(observability.FiberMiddleware(cfg.Observability.ServiceName))
	}

	configureGlobalMiddleware(app, cfg)

	r.Register(app)

	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if cfg.Server.Environment == "production" {
		app.Use(helmet.New())
	}

	if c := cfg.Server.CORS; c.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     c.AllowOrigins,
			AllowMethods:     c.AllowMethods,
			AllowHeaders:     c.AllowHeaders,
			AllowCredentials: c.AllowCredentials,
			MaxAge:           c.MaxAgeSeconds,
		}))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:request_id}] ${method} ${url} ${status} ${latency}\n",
	}))
}
