package config

import "fmt"

type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Server        ServerConfig        `mapstructure:"server"`
	Email         EmailConfig         `mapstructure:"email"`
	Forms         FormsConfig         `mapstructure:"forms"`
	Notify        NotifyConfig        `mapstructure:"notify"`
	CMS           CMSConfig           `mapstructure:"cms"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

type DatabaseConfig struct {
	Driver     string                  `mapstructure:"driver"` // sqlite | postgres
	Path       string                  `mapstructure:"path"`   // sqlite file path
	Host       string                  `mapstructure:"host"`
	Port       int                     `mapstructure:"port"`
	User       string                  `mapstructure:"user"`
	Password   string                  `mapstructure:"password"`
	DBName     string                  `mapstructure:"dbname"`
	SSLMode    string                  `mapstructure:"sslmode"`
	Pool       DatabasePoolConfig      `mapstructure:"pool"`
	Migrations DatabaseMigrationConfig `mapstructure:"migrations"`
	Logging    DatabaseLoggingConfig   `mapstructure:"logging"`
}

type DatabasePoolConfig struct {
	MaxOpenConns       int `mapstructure:"max_open_conns"`
	MaxIdleConns       int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int `mapstructure:"conn_max_lifetime_minutes"`
}

type DatabaseMigrationConfig struct {
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type DatabaseLoggingConfig struct {
	Enabled              bool `mapstructure:"enabled"`
	SlowQueryThresholdMs int  `mapstructure:"slow_query_threshold_ms"`
}

type RedisConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type IdempotencyConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLMinutes int  `mapstructure:"ttl_minutes"`
}

type ServerConfig struct {
	Port           int               `mapstructure:"port"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
	Environment    string            `mapstructure:"environment"`
	BodyLimitKB    int               `mapstructure:"body_limit_kb"`
	CORS           CORSConfig        `mapstructure:"cors"`
	RateLimit      RateLimitConfig   `mapstructure:"rate_limit"`
	Idempotency    IdempotencyConfig `mapstructure:"idempotency"`
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds"`
}

type EmailConfig struct {
	Enabled  bool         `mapstructure:"enabled"`
	Provider string       `mapstructure:"provider"` // smtp | resend
	From     string       `mapstructure:"from"`
	ReplyTo  string       `mapstructure:"reply_to"`
	SMTP     SMTPConfig   `mapstructure:"smtp"`
	Resend   ResendConfig `mapstructure:"resend"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type ResendConfig struct {
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// FormsConfig drives the three public inquiry forms.
type FormsConfig struct {
	AdminEmail         string `mapstructure:"admin_email"`
	BusinessName       string `mapstructure:"business_name"`
	SiteURL            string `mapstructure:"site_url"`
	Timezone           string `mapstructure:"timezone"`
	PhoneRegion        string `mapstructure:"phone_region"`
	ConfirmationPrefix string `mapstructure:"confirmation_prefix"`
}

type NotifyConfig struct {
	Retry RetryConfig `mapstructure:"retry"`
}

type RetryConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalSeconds int  `mapstructure:"interval_seconds"`
	MaxAttempts     int  `mapstructure:"max_attempts"`
	BatchSize       int  `mapstructure:"batch_size"`
	// Pending deliveries older than this are replayed. 0 derives it from
	// the email send timeouts.
	StaleAfterSeconds int `mapstructure:"stale_after_seconds"`
}

type CMSConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	ProjectID       string `mapstructure:"project_id"`
	Dataset         string `mapstructure:"dataset"`
	APIVersion      string `mapstructure:"api_version"`
	Token           string `mapstructure:"token"`
	UseCDN          bool   `mapstructure:"use_cdn"`
	BaseURL         string `mapstructure:"base_url"` // overrides the derived sanity host
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	Username string `mapstructure:"username"` // for Grafana Cloud basic auth
	Password string `mapstructure:"password"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be set")
	}
	switch c.Database.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Email.Enabled {
		if c.Email.From == "" {
			return fmt.Errorf("email.from must be set when email is enabled")
		}
		switch c.Email.Provider {
		case "", "smtp", "resend":
		default:
			return fmt.Errorf("unsupported email.provider %q", c.Email.Provider)
		}
	}
	if c.Forms.AdminEmail == "" {
		return fmt.Errorf("forms.admin_email must be set")
	}
	if c.CMS.Enabled && c.CMS.ProjectID == "" && c.CMS.BaseURL == "" {
		return fmt.Errorf("cms.project_id or cms.base_url must be set when cms is enabled")
	}
	return nil
}
