package registry

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

const maxSuffixLength = 32

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	clock        func() time.Time
	reserved     map[string]struct{}
	slugOptions  slug.Options
	maxLength    int
	maxAttempts  int
	suffixLength int
}

func defaultOptions() *options {
	return &options{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:        time.Now,
		slugOptions:  slug.DefaultOptions(),
		maxLength:    80,
		maxAttempts:  5,
		suffixLength: 6,
	}
}

// WithSlugOptions sets the options claims are generated and parsed with.
// Default: slug.DefaultOptions().
func WithSlugOptions(opts slug.Options) Option {
	return func(o *options) {
		o.slugOptions = opts
	}
}

// WithMaxLength limits claimed slugs to n code points, suffix included.
// Zero means no limit.
// Default: 80.
func WithMaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = max(n, 0)
	}
}

// WithMaxAttempts sets how many candidates Claim tries before ErrExhausted.
// Default: 5.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = max(n, 1)
	}
}

// WithSuffixLength sets the length of the hex suffix added on collision,
// between 1 and 32.
// Default: 6.
func WithSuffixLength(n int) Option {
	return func(o *options) {
		o.suffixLength = min(max(n, 1), maxSuffixLength)
	}
}

// WithReserved lists slugs that are never claimed as-is (case-insensitive).
// A reserved candidate always gets a suffix.
func WithReserved(slugs ...string) Option {
	return func(o *options) {
		if o.reserved == nil {
			o.reserved = make(map[string]struct{}, len(slugs))
		}
		for _, s := range slugs {
			o.reserved[strings.ToLower(s)] = struct{}{}
		}
	}
}

// WithLogger sets the registry logger.
// Default: discards output.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithClock sets the time source for claim timestamps and expiry checks.
// Default: time.Now.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}
