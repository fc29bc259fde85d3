package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/glowandgrind/site-api/pkg/constants"
)

// ReadConfig loads the YAML file at path. A missing file is not an error:
// defaults plus GLOWGRIND_* env vars are enough in containers.
func ReadConfig(path string) (*Config, error) {
	// A local .env only feeds the environment; real env vars win.
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(constants.ConfigName)
		v.AddConfigPath(constants.DefaultConfigPath)
	}
	v.SetConfigType(constants.ConfigFormat)

	// e.g. GLOWGRIND_FORMS_ADMIN_EMAIL overrides forms.admin_email
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.body_limit_kb", 64)
	v.SetDefault("server.cors.enabled", true)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.cors.allow_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors.allow_headers", []string{"Content-Type", "Idempotency-Key", "X-Request-Id"})
	v.SetDefault("server.cors.allow_credentials", false)
	v.SetDefault("server.cors.max_age_seconds", 600)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_minute", 20)
	v.SetDefault("server.idempotency.enabled", true)
	v.SetDefault("server.idempotency.ttl_minutes", 60*24)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "glowgrind.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "glowgrind")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.pool.max_open_conns", 10)
	v.SetDefault("database.pool.max_idle_conns", 2)
	v.SetDefault("database.pool.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.migrations.auto_migrate", true)
	v.SetDefault("database.logging.enabled", false)
	v.SetDefault("database.logging.slow_query_threshold_ms", 200)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout_seconds", 5)
	v.SetDefault("redis.read_timeout_seconds", 3)
	v.SetDefault("redis.write_timeout_seconds", 3)

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.provider", "smtp")
	v.SetDefault("email.from", "Glow & Grind <hello@glowandgrind.studio>")
	v.SetDefault("email.reply_to", "")
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.use_tls", false)
	v.SetDefault("email.smtp.timeout_seconds", 15)
	v.SetDefault("email.resend.api_key", "")
	v.SetDefault("email.resend.timeout_seconds", 15)

	v.SetDefault("forms.admin_email", "hello@glowandgrind.studio")
	v.SetDefault("forms.business_name", "Glow & Grind")
	v.SetDefault("forms.site_url", "https://glowandgrind.studio")
	v.SetDefault("forms.timezone", "Local")
	v.SetDefault("forms.phone_region", "US")
	v.SetDefault("forms.confirmation_prefix", "BK")

	v.SetDefault("notify.retry.enabled", false)
	v.SetDefault("notify.retry.interval_seconds", 300)
	v.SetDefault("notify.retry.max_attempts", 5)
	v.SetDefault("notify.retry.batch_size", 20)
	v.SetDefault("notify.retry.stale_after_seconds", 0)

	v.SetDefault("cms.enabled", false)
	v.SetDefault("cms.project_id", "")
	v.SetDefault("cms.dataset", "production")
	v.SetDefault("cms.api_version", "2024-01-01")
	v.SetDefault("cms.token", "")
	v.SetDefault("cms.use_cdn", true)
	v.SetDefault("cms.base_url", "")
	v.SetDefault("cms.timeout_seconds", 10)
	v.SetDefault("cms.cache_ttl_seconds", 300)

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", "glowgrind-site-api")
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.otlp_endpoint", "")
	v.SetDefault("observability.tracing.otlp_insecure", true)
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output.stdout", true)
	v.SetDefault("logging.output.file.enabled", false)
	v.SetDefault("logging.output.file.path", "logs/app.log")
	v.SetDefault("logging.output.file.max_size_mb", 50)
	v.SetDefault("logging.output.file.max_backups", 5)
	v.SetDefault("logging.output.file.max_age_days", 30)
	v.SetDefault("logging.output.file.compress", true)
	v.SetDefault("logging.output.loki.enabled", false)
	v.SetDefault("logging.output.loki.endpoint", "")
	v.SetDefault("logging.output.loki.username", "")
	v.SetDefault("logging.output.loki.password", "")
}
