package redis

import (
	"time"

	"github.com/glowandgrind/site-api/config"
)

// Config holds Redis connection settings.
type Config struct {
	Enabled  bool
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeoutSeconds  int
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
}

func DefaultConfig() Config {
	return Config{
		Addr:                "localhost:6379",
		PoolSize:            10,
		MinIdleConns:        2,
		DialTimeoutSeconds:  5,
		ReadTimeoutSeconds:  3,
		WriteTimeoutSeconds: 3,
	}
}

func (c Config) DialTimeout() time.Duration  { return seconds(c.DialTimeoutSeconds, 5) }
func (c Config) ReadTimeout() time.Duration  { return seconds(c.ReadTimeoutSeconds, 3) }
func (c Config) WriteTimeout() time.Duration { return seconds(c.WriteTimeoutSeconds, 3) }

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

// FromCentralConfig converts config.RedisConfig, filling unset values from DefaultConfig.
func FromCentralConfig(c config.RedisConfig) Config {
	def := DefaultConfig()
	cfg := Config{
		Enabled:             c.Enabled,
		Addr:                c.Addr,
		DB:                  c.DB,
		Username:            c.Username,
		Password:            c.Password,
		PoolSize:            orDefault(c.PoolSize, def.PoolSize),
		MinIdleConns:        orDefault(c.MinIdleConns, def.MinIdleConns),
		DialTimeoutSeconds:  orDefault(c.DialTimeoutSeconds, def.DialTimeoutSeconds),
		ReadTimeoutSeconds:  orDefault(c.ReadTimeoutSeconds, def.ReadTimeoutSeconds),
		WriteTimeoutSeconds: orDefault(c.WriteTimeoutSeconds, def.WriteTimeoutSeconds),
	}
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	return cfg
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
