package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/pkg/cache"
	"github.com/glowandgrind/site-api/pkg/observability"
)

// Querier runs a GROQ query. *cms.Client implements it.
type Querier interface {
	Query(ctx context.Context, groq string, params map[string]any) (json.RawMessage, error)
}

type Config struct {
	CacheTTL time.Duration
}

func FromCentralConfig(c config.CMSConfig) Config {
	ttl := time.Duration(c.CacheTTLSeconds) * time.Second
	if c.CacheTTLSeconds <= 0 {
		ttl = 5 * time.Minute
	}
	return Config{CacheTTL: ttl}
}

type Service interface {
	Section(ctx context.Context, name string) (json.RawMessage, error)
}

type contentService struct {
	cms   Querier
	cache fiber.Storage
	cfg   Config
	log   *slog.Logger
}

// New returns the content proxy. A nil cms makes every known section
// report ErrUnavailable; a nil storage falls back to process memory.
func New(cms Querier, c fiber.Storage, cfg Config, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	if c == nil {
		c = cache.NewMemory()
	}
	return &contentService{cms: cms, cache: c, cfg: cfg, log: log.With("service", "content")}
}

func (s *contentService) Section(ctx context.Context, name string) (json.RawMessage, error) {
	groq, ok := queries[name]
	if !ok {
		return nil, ErrUnknownSection
	}
	if s.cms == nil {
		return nil, ErrUnavailable
	}

	key := cache.Key("content", name)
	if b, err := s.cache.GetWithContext(ctx, key); err != nil {
		s.log.WarnContext(ctx, "content cache read failed", "section", name, "err", err)
	} else if b != nil {
		observability.RecordContentLookup(name, "hit")
		return json.RawMessage(b), nil
	}

	result, err := s.cms.Query(ctx, groq, nil)
	if err != nil {
		observability.RecordContentLookup(name, "error")
		s.log.ErrorContext(ctx, "content query failed", "section", name, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	observability.RecordContentLookup(name, "miss")

	if err := s.cache.SetWithContext(ctx, key, result, s.cfg.CacheTTL); err != nil {
		s.log.WarnContext(ctx, "content cache write failed", "section", name, "err", err)
	}
	return result, nil
}
