// Package logger builds the service's slog logger: JSON or text output, request
// scoped attributes pulled from the context, and an optional Sentry fan-out.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config describes the logger.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"

	SentryDSN         string
	SentryEnvironment string
}

// Extractor pulls a single attribute out of a request context.
type Extractor func(ctx context.Context) (slog.Attr, bool)

// New returns a logger writing to w. When a Sentry DSN is configured, warnings
// and errors are forwarded to Sentry as well; the returned flush func must run
// before the process exits so buffered events are delivered.
func New(cfg Config, w io.Writer, extractors ...Extractor) (*slog.Logger, func()) {
	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}

	flush := func() {}
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			EnableLogs:  true,
		})
		if err != nil {
			slog.New(handler).Error("sentry disabled", slog.String("error", err.Error()))
		} else {
			handler = fanout{handler, sentryslog.Option{
				EventLevel: []slog.Level{slog.LevelError},
				LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			}.NewSentryHandler(context.Background())}
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}

	return slog.New(withContext(handler, extractors...)), flush
}

// Nop discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
