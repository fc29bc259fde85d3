package cms

import (
	"fmt"
	"strings"
	"time"

	"github.com/glowandgrind/site-api/config"
)

const defaultAPIVersion = "2024-01-01"

type Config struct {
	ProjectID      string
	Dataset        string
	APIVersion     string
	Token          string
	UseCDN         bool
	BaseURL        string
	TimeoutSeconds int
}

func FromCentralConfig(c config.CMSConfig) Config {
	return Config{
		ProjectID:      c.ProjectID,
		Dataset:        c.Dataset,
		APIVersion:     c.APIVersion,
		Token:          c.Token,
		UseCDN:         c.UseCDN,
		BaseURL:        c.BaseURL,
		TimeoutSeconds: c.TimeoutSeconds,
	}
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// QueryURL is the GROQ query endpoint for the configured dataset.
func (c Config) QueryURL() string {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		host := "api.sanity.io"
		if c.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", c.ProjectID, host)
	}

	version := c.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	version = "v" + strings.TrimPrefix(version, "v")

	return fmt.Sprintf("%s/%s/data/query/%s", base, version, c.Dataset)
}

func (c Config) validate() error {
	if c.BaseURL == "" && c.ProjectID == "" {
		return fmt.Errorf("%w: project id is required", ErrNotConfigured)
	}
	if c.Dataset == "" {
		return fmt.Errorf("%w: dataset is required", ErrNotConfigured)
	}
	return nil
}
