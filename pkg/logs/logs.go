package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/pkg/constants"
)

// New builds the process logger. Records fan out to stdout, a rotated file
// and Loki, whichever are enabled, and pick up request and trace ids from
// their context.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)

	var handlers []slog.Handler
	if w := localWriter(cfg.Logging.Output); w != nil {
		handlers = append(handlers, localHandler(cfg, w, level))
	}
	if cfg.Logging.Output.Loki.Enabled {
		handlers = append(handlers, newLokiHandler(cfg, level))
	}

	return slog.New(wrap(handlers)).With(
		slog.String("service", cfg.Observability.ServiceName),
		slog.String("version", cfg.Observability.ServiceVersion),
		slog.String("env", cfg.Server.Environment),
	)
}

// Default is the logger CLI commands use until their config is read.
func Default() *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(&contextHandler{next: h}).With(slog.String("service", constants.AppName))
}

// localWriter returns nil when only Loki is configured. Stdout is the
// fallback when nothing at all is enabled.
func localWriter(out config.OutputConfig) io.Writer {
	var ws []io.Writer
	if out.Stdout || (!out.File.Enabled && !out.Loki.Enabled) {
		ws = append(ws, os.Stdout)
	}
	if out.File.Enabled {
		ws = append(ws, &lumberjack.Logger{
			Filename:   out.File.Path,
			MaxSize:    out.File.MaxSizeMB,
			MaxBackups: out.File.MaxBackups,
			MaxAge:     out.File.MaxAgeDays,
			Compress:   out.File.Compress,
		})
	}
	switch len(ws) {
	case 0:
		return nil
	case 1:
		return ws[0]
	default:
		return io.MultiWriter(ws...)
	}
}

// localHandler writes text in development unless json is asked for.
// Every other environment gets json.
func localHandler(cfg *config.Config, w io.Writer, level slog.Level) slog.Handler {
	dev := strings.EqualFold(cfg.Server.Environment, "development")
	opts := &slog.HandlerOptions{Level: level, AddSource: dev}
	if dev && !strings.EqualFold(cfg.Logging.Format, "json") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func wrap(handlers []slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return &contextHandler{next: handlers[0]}
	}
	return &contextHandler{next: &multiHandler{handlers: handlers}}
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
