package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/glowandgrind/site-api/config"
)

// ErrDisabled is returned when redis is turned off in config. Callers fall
// back to in-process storage.
var ErrDisabled = errors.New("redis disabled")

func NewRedisFromCentral(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	return NewRedis(ctx, FromCentralConfig(cfg))
}

func NewRedis(ctx context.Context, cfg Config) (*goredis.Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	rdb := goredis.NewClient(Options(cfg))

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Options maps Config onto go-redis client options.
func Options(cfg Config) *goredis.Options {
	opts := &goredis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout(),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	return opts
}
