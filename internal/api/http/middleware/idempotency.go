package middleware

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/idempotency"

	"github.com/glowandgrind/site-api/pkg/cache"
)

const (
	HeaderIdempotencyKey      = "Idempotency-Key"
	HeaderIdempotencyReplayed = "Idempotent-Replayed"
	maxIdempotencyKeyLen      = 255
)

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// Idempotency replays the stored response of a POST whose Idempotency-Key
// was already used on the same method and path within ttl. Requests
// without the header pass through. Client errors (4xx) are not stored so
// a corrected request can reuse its key.
func Idempotency(ttl time.Duration, store fiber.Storage) fiber.Handler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if store == nil {
		store = cache.NewMemory()
	}
	lock := idempotency.NewMemoryLock()

	replay := func(c fiber.Ctx, key string) (bool, error) {
		raw, err := store.GetWithContext(c, key)
		if err != nil || raw == nil {
			return false, err
		}
		var res storedResponse
		if err := json.Unmarshal(raw, &res); err != nil {
			return false, fmt.Errorf("decode stored response: %w", err)
		}
		if res.ContentType != "" {
			c.Set(fiber.HeaderContentType, res.ContentType)
		}
		c.Set(HeaderIdempotencyReplayed, "true")
		return true, c.Status(res.Status).Send(res.Body)
	}

	return func(c fiber.Ctx) error {
		k := c.Get(HeaderIdempotencyKey)
		if c.Method() != fiber.MethodPost || k == "" {
			return c.Next()
		}
		if len(k) > maxIdempotencyKeyLen {
			return fiber.NewError(fiber.StatusBadRequest, "Idempotency-Key must be at most 255 characters")
		}
		key := cache.Key("idem", c.Method()+" "+c.Path(), k)

		if ok, err := replay(c, key); err != nil || ok {
			return err
		}

		_ = lock.Lock(key)
		defer func() { _ = lock.Unlock(key) }()

		// Another request with the same key may have finished while we waited.
		if ok, err := replay(c, key); err != nil || ok {
			return err
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status >= fiber.StatusBadRequest && status < fiber.StatusInternalServerError {
			return nil
		}
		raw, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        c.Response().Body(),
		})
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		if err := store.SetWithContext(c, key, raw, ttl); err != nil {
			return fmt.Errorf("store response: %w", err)
		}
		return nil
	}
}
