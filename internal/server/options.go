package server

import (
	"context"
	"io"
	"log/slog"
)

// Option configures a Server.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	purge         PurgeFunc
	purgeSchedule string
	hooks         []func(context.Context) error
}

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPurge runs fn on a cron schedule such as "@every 1m" or "*/5 * * * *".
// An empty schedule disables the job.
func WithPurge(schedule string, fn PurgeFunc) Option {
	return func(o *options) {
		o.purgeSchedule = schedule
		o.purge = fn
	}
}

// WithShutdownHook adds a hook run after the HTTP server and the scheduler have
// stopped. Hooks run in the order they were added.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(o *options) {
		if fn != nil {
			o.hooks = append(o.hooks, fn)
		}
	}
}
