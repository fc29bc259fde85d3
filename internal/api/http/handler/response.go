package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/internal/forms"
)

// envelope is the JSON shape of every API response.
type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    any                `json:"data,omitempty"`
	Errors  []forms.FieldError `json:"errors,omitempty"`
}

func ok(c fiber.Ctx, msg string, data any) error {
	return c.JSON(envelope{Success: true, Message: msg, Data: data})
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(envelope{Message: msg})
}

func badRequest(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusBadRequest, msg)
}

func validationFailed(c fiber.Ctx, errs []forms.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(envelope{Message: "Validation failed", Errors: errs})
}

func notFound(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusNotFound, msg)
}

func badGateway(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusBadGateway, msg)
}

func serviceUnavailable(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusServiceUnavailable, msg)
}

func internalError(c fiber.Ctx, msg string) error {
	if msg == "" {
		msg = msgUnexpected
	}
	return fail(c, fiber.StatusInternalServerError, msg)
}

// TooManyRequests is used by the rate limiter.
func TooManyRequests(c fiber.Ctx) error {
	return fail(c, fiber.StatusTooManyRequests, "Too many requests. Please slow down and try again shortly.")
}

// ErrorHandler renders errors that escape route handlers, such as unknown
// routes, oversized bodies and recovered panics.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgUnexpected

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.Context(), "unhandled request error", "path", c.Path(), "err", err)
	}
	return fail(c, code, msg)
}
