package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/internal/api/http/handler"
)

func (r *Router) registerContentRoutes(api fiber.Router, h *handler.ContentHandler) {
	api.Get("/content/:section", h.Section)
}
