package codes

import "github.com/glowandgrind/site-api/config"

// Config holds settings for confirmation number generation
type Config struct {
	// Prefix is prepended to every confirmation number, e.g. "BK"
	Prefix string

	// SuffixLength is the number of random base36 characters appended
	SuffixLength int
}

// DefaultConfig returns sensible defaults for code generation
func DefaultConfig() Config {
	return Config{
		Prefix:       "BK",
		SuffixLength: 4,
	}
}

// FromCentralConfig converts central config.FormsConfig to package Config
func FromCentralConfig(c config.FormsConfig) Config {
	cfg := DefaultConfig()
	if c.ConfirmationPrefix != "" {
		cfg.Prefix = c.ConfirmationPrefix
	}
	return cfg
}
