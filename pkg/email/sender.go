package email

import (
	"context"
	"log/slog"
	"strings"
)

// NewSender picks the configured provider. A disabled config yields a
// sender that only logs, so the pipeline keeps working in development.
func NewSender(cfg Config, logger *slog.Logger) (Sender, error) {
	if !cfg.Enabled {
		return NewLogSender(logger), nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderSMTP:
		return New(cfg)
	case ProviderResend:
		return NewResend(cfg)
	default:
		return nil, ErrUnknownProvider{Provider: cfg.Provider}
	}
}

// LogSender accepts every message and writes a log line instead of sending.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, m Message) (Receipt, error) {
	s.logger.InfoContext(ctx, "email disabled, message not sent",
		"to", strings.Join(m.To, ","),
		"subject", m.Subject,
	)
	return Receipt{Provider: ProviderDisabled}, nil
}
