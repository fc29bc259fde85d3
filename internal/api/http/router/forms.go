package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/internal/api/http/handler"
)

func (r *Router) registerFormRoutes(api fiber.Router, h *handler.FormsHandler) {
	forms := api.Group("/forms")
	forms.Get("/", h.List)
	forms.Get("/:form/schema", h.Schema)
}
