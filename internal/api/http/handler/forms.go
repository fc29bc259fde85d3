package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/internal/forms"
)

// FormsHandler publishes the validation rules so the site can check input
// before submitting.
type FormsHandler struct{}

func NewFormsHandler() *FormsHandler {
	return &FormsHandler{}
}

func (h *FormsHandler) List(c fiber.Ctx) error {
	return ok(c, "Available forms", forms.Names())
}

func (h *FormsHandler) Schema(c fiber.Ctx) error {
	schema, found := forms.Describe(c.Params("form"))
	if !found {
		return notFound(c, "Unknown form")
	}
	return ok(c, "Form schema", schema)
}
