// Package cache builds the fiber.Storage shared by the content proxy and
// the idempotency middleware.
package cache

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/memory/v2"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
)

// Key namespaces a storage key so several consumers can share one redis
// database.
func Key(parts ...string) string {
	k := "glowgrind"
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// New returns storage backed by rdb, or process-local memory storage when
// rdb is nil.
func New(rdb *redis.Client) fiber.Storage {
	if rdb == nil {
		return NewMemory()
	}
	return fiberredis.NewFromConnection(rdb)
}

// NewMemory returns process-local storage that sweeps expired keys every
// ten seconds.
func NewMemory() fiber.Storage {
	return memory.New(memory.Config{GCInterval: 10 * time.Second})
}
