package email

import (
	"time"

	"github.com/glowandgrind/site-api/config"
)

const (
	ProviderSMTP     = "smtp"
	ProviderResend   = "resend"
	ProviderDisabled = "disabled"
)

// Config holds email service configuration
type Config struct {
	Enabled  bool
	Provider string
	From     string
	ReplyTo  string

	// SMTP settings
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPUseTLS         bool
	SMTPTimeoutSeconds int

	// Resend settings
	ResendAPIKey         string
	ResendBaseURL        string
	ResendTimeoutSeconds int
}

// DefaultConfig returns sensible defaults for email configuration
func DefaultConfig() Config {
	return Config{
		Enabled:              false,
		Provider:             ProviderSMTP,
		SMTPPort:             587,
		SMTPTimeoutSeconds:   30,
		ResendTimeoutSeconds: 30,
	}
}

// SMTPTimeout returns the SMTP timeout as a duration
func (c Config) SMTPTimeout() time.Duration {
	if c.SMTPTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SMTPTimeoutSeconds) * time.Second
}

func (c Config) ResendTimeout() time.Duration {
	if c.ResendTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.ResendTimeoutSeconds) * time.Second
}

// FromCentralConfig converts central config.EmailConfig to package Config
func FromCentralConfig(c config.EmailConfig) Config {
	return Config{
		Enabled:              c.Enabled,
		Provider:             c.Provider,
		From:                 c.From,
		ReplyTo:              c.ReplyTo,
		SMTPHost:             c.SMTP.Host,
		SMTPPort:             c.SMTP.Port,
		SMTPUsername:         c.SMTP.Username,
		SMTPPassword:         c.SMTP.Password,
		SMTPUseTLS:           c.SMTP.UseTLS,
		SMTPTimeoutSeconds:   c.SMTP.TimeoutSeconds,
		ResendAPIKey:         c.Resend.APIKey,
		ResendTimeoutSeconds: c.Resend.TimeoutSeconds,
	}
}
