package api

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/slugkit/internal/metrics"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Option configures the handler.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	metrics      *metrics.Metrics
	checks       map[string]CheckFunc
	checkTimeout time.Duration
	maxBodyBytes int64
}

func defaultOptions() *options {
	return &options{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		checks:       map[string]CheckFunc{},
		checkTimeout: 5 * time.Second,
		maxBodyBytes: 64 << 10,
	}
}

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics enables request instrumentation and the /metrics route.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCheck adds a named readiness check.
func WithCheck(name string, fn CheckFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.checks[name] = fn
		}
	}
}

// WithCheckTimeout bounds the whole readiness run.
// Default: 5 seconds.
func WithCheckTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.checkTimeout = d
		}
	}
}

// WithMaxBodyBytes limits request bodies.
// Default: 64 KiB.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}
