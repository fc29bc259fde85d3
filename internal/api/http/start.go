package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/api/http/router"
	"github.com/glowandgrind/site-api/internal/app"
)

// Start runs the API until the process receives a stop signal.
func Start(cfg *config.Config, timeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		app.WorkerModule,
		router.Module,
		Module,

		// NewServer registers the listen hook, so the app must be requested.
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(timeout),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	).Run()
}
