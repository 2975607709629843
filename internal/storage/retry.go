package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// connect calls dial until it succeeds, doubling the wait after each failure.
func connect[T any](ctx context.Context, log *slog.Logger, name string, attempts int, interval time.Duration, dial func(context.Context) (T, error)) (T, error) {
	backoff := retry.WithMaxRetries(uint64(max(attempts, 1)-1), retry.NewExponential(max(interval, time.Millisecond)))

	attempt := 0
	return retry.DoValue(ctx, backoff, func(ctx context.Context) (T, error) {
		attempt++
		v, err := dial(ctx)
		if err != nil {
			log.WarnContext(ctx, "connection attempt failed",
				slog.String("backend", name),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
			return v, retry.RetryableError(err)
		}
		return v, nil
	})
}
