package registry

import "time"

// MemoryOption configures the in-memory store.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	clock           func() time.Time
	cleanupInterval time.Duration
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		clock:           time.Now,
		cleanupInterval: time.Minute,
	}
}

// WithCleanupInterval sets how often the janitor removes expired records.
// Zero disables the janitor.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMemoryClock sets the time source used by the janitor.
// Default: time.Now.
func WithMemoryClock(clock func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}
