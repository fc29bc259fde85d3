package router

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/internal/api/http/handler"
	"github.com/glowandgrind/site-api/internal/api/http/middleware"
)

func (r *Router) registerInquiryRoutes(api fiber.Router, h *handler.InquiryHandler) {
	var limit fiber.Handler = passThrough
	if rl := r.p.Cfg.Server.RateLimit; rl.Enabled {
		limit = middleware.NewLimiter(middleware.LimiterConfig{
			RequestsPerMinute: rl.RequestsPerMinute,
			OnLimit:           handler.TooManyRequests,
		}, r.p.Redis)
	}

	var idem fiber.Handler = passThrough
	if cfg := r.p.Cfg.Server.Idempotency; cfg.Enabled {
		idem = middleware.Idempotency(time.Duration(cfg.TTLMinutes)*time.Minute, r.p.Storage)
	}

	api.Post("/bookings", limit, idem, h.Booking)
	api.Post("/contact", limit, idem, h.Contact)
	api.Post("/training-inquiries", limit, idem, h.Training)
}

func passThrough(c fiber.Ctx) error {
	return c.Next()
}
