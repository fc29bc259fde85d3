package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/glowandgrind/site-api/pkg/reqctx"
)

const (
	HeaderRequestID = "X-Request-Id"
	LocalRequestID  = "request_id"
	localMeta       = "request_meta"
	maxRequestIDLen = 128
)

// RequestID keeps a sane incoming request id or generates one, echoes it
// back, and stores the request metadata on the request context.
func RequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		rid := c.Get(HeaderRequestID)
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = newRequestID()
		}

		c.Locals(LocalRequestID, rid)
		c.Set(HeaderRequestID, rid)
		c.Request().Header.Set(HeaderRequestID, rid)

		meta := &reqctx.RequestMeta{
			RequestID:   rid,
			ClientIP:    c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			IdemKey:     c.Get(HeaderIdempotencyKey),
			RequestedAt: time.Now(),
		}
		c.Locals(localMeta, meta)
		c.SetContext(reqctx.WithRequestMeta(c.Context(), meta))

		return c.Next()
	}
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// RequestIDFromFiber retrieves the request ID from Fiber locals.
func RequestIDFromFiber(c fiber.Ctx) (string, bool) {
	s, ok := c.Locals(LocalRequestID).(string)
	return s, ok && s != ""
}

func RequestMetaFromFiber(c fiber.Ctx) (*reqctx.RequestMeta, bool) {
	meta, ok := c.Locals(localMeta).(*reqctx.RequestMeta)
	return meta, ok && meta != nil
}
