package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/internal/service/content"
)

type ContentHandler struct {
	svc content.Service
}

func NewContentHandler(svc content.Service) *ContentHandler {
	return &ContentHandler{svc: svc}
}

func (h *ContentHandler) Section(c fiber.Ctx) error {
	section := c.Params("section")

	data, err := h.svc.Section(c.Context(), section)
	if err != nil {
		return mapContentError(c, err)
	}
	return ok(c, "OK", data)
}

func mapContentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, content.ErrUnknownSection):
		return notFound(c, "Unknown content section")
	case errors.Is(err, content.ErrUnavailable):
		return serviceUnavailable(c, "Content is not available right now")
	case errors.Is(err, content.ErrUpstream):
		return badGateway(c, "Could not load content. Please try again later.")
	default:
		return internalError(c, "")
	}
}
