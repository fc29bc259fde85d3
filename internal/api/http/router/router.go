package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/api/http/handler"
	"github.com/glowandgrind/site-api/internal/service/content"
	"github.com/glowandgrind/site-api/internal/service/inquiry"
	"github.com/glowandgrind/site-api/pkg/database"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg        *config.Config
	Logger     *slog.Logger
	Redis      *redis.Client `optional:"true"`
	DB         *database.DB  `optional:"true"`
	Storage    fiber.Storage
	InquirySvc inquiry.Service
	ContentSvc content.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Handlers
	inquiryH := handler.NewInquiryHandler(r.p.InquirySvc, r.p.Logger)
	formsH := handler.NewFormsHandler()
	contentH := handler.NewContentHandler(r.p.ContentSvc)

	api := app.Group("/api/v1")

	// 3. Delegate to sub-files
	r.registerInquiryRoutes(api, inquiryH)
	r.registerFormRoutes(api, formsH)
	r.registerContentRoutes(api, contentH)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.ready(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// ready reports whether the database and, when configured, redis answer.
func (r *Router) ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if r.p.DB != nil {
		if err := r.p.DB.Ping(ctx); err != nil {
			return false
		}
	}
	if r.p.Redis != nil {
		if err := r.p.Redis.Ping(ctx).Err(); err != nil {
			return false
		}
	}
	return true
}
