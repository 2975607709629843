package registry

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

// Request describes a claim.
type Request struct {
	// Title is the text the slug is generated from.
	Title string
	// Owner identifies the claimant. Release checks it.
	Owner string
	// TTL turns the claim into a temporary hold. Zero or negative means permanent.
	TTL time.Duration
}

// Registry hands out unique slugs backed by a Store.
// It is safe for concurrent use.
type Registry struct {
	store Store
	opts  *options
	group singleflight.Group
}

// New creates a registry over store.
//
// Example:
//
//	reg, err := registry.New(registry.NewMemory(),
//	    registry.WithMaxLength(60),
//	    registry.WithReserved("admin", "api"),
//	)
func New(store Store, opts ...Option) (*Registry, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := o.slugOptions.Validate(); err != nil {
		return nil, err
	}

	return &Registry{store: store, opts: o}, nil
}

// Claim generates a slug from req.Title and stores it for req.Owner.
//
// The first candidate is the generated slug cut to the maximum length. Reserved
// candidates and candidates already taken are retried with a random hex suffix
// until the store accepts one or the attempts run out (ErrExhausted).
// Titles with no usable characters fail with slug.ErrUngeneratable.
func (r *Registry) Claim(ctx context.Context, req Request) (Claim, error) {
	base, err := slug.GenerateWithOptions(r.opts.slugOptions, req.Title)
	if err != nil {
		return Claim{}, err
	}
	if r.opts.maxLength > 0 {
		if base, err = slug.TruncateWithOptions(r.opts.slugOptions, r.opts.maxLength, base); err != nil {
			return Claim{}, err
		}
	}

	now := r.opts.clock()
	var expiresAt time.Time
	if req.TTL > 0 {
		expiresAt = now.Add(req.TTL)
	}

	for attempt := range r.opts.maxAttempts {
		candidate := base
		if attempt > 0 || r.isReserved(base) {
			if candidate, err = r.withSuffix(base); err != nil {
				return Claim{}, err
			}
		}

		rec := Record{
			ID:        uuid.New(),
			Slug:      candidate.String(),
			Owner:     req.Owner,
			Title:     req.Title,
			CreatedAt: now,
			ExpiresAt: expiresAt,
		}

		err := r.store.Insert(ctx, rec)
		if errors.Is(err, ErrTaken) {
			r.opts.logger.DebugContext(ctx, "slug taken, retrying",
				slog.String("slug", rec.Slug),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			return Claim{}, err
		}

		r.opts.logger.InfoContext(ctx, "slug claimed",
			slog.String("slug", rec.Slug),
			slog.String("owner", rec.Owner),
			slog.Bool("temporary", !expiresAt.IsZero()),
		)

		return Claim{
			ID:        rec.ID,
			Slug:      candidate,
			Owner:     rec.Owner,
			Title:     rec.Title,
			CreatedAt: rec.CreatedAt,
			ExpiresAt: rec.ExpiresAt,
		}, nil
	}

	return Claim{}, ErrExhausted
}

// Parse validates text as a slug under the registry's engine options.
func (r *Registry) Parse(text string) (slug.Slug, error) {
	return slug.ParseWithOptions(r.opts.slugOptions, text)
}

// Lookup returns the live claim for s, or ErrNotFound.
// Concurrent lookups of the same slug share one store call.
func (r *Registry) Lookup(ctx context.Context, s slug.Slug) (Claim, error) {
	if s.IsZero() {
		return Claim{}, ErrNotFound
	}

	v, err, _ := r.group.Do(s.String(), func() (any, error) {
		return r.store.Get(context.WithoutCancel(ctx), s.String())
	})
	if err != nil {
		return Claim{}, err
	}

	rec := v.(Record)
	if rec.Expired(r.opts.clock()) {
		return Claim{}, ErrNotFound
	}

	return rec.claim(r.opts.slugOptions)
}

// Release removes the claim for s. A non-empty owner must match the claim
// owner, otherwise Release returns ErrNotOwner.
func (r *Registry) Release(ctx context.Context, s slug.Slug, owner string) error {
	c, err := r.Lookup(ctx, s)
	if err != nil {
		return err
	}

	if owner != "" && c.Owner != owner {
		return ErrNotOwner
	}

	if err := r.store.Delete(ctx, s.String()); err != nil {
		return err
	}

	r.opts.logger.InfoContext(ctx, "slug released", slog.String("slug", s.String()))
	return nil
}

// Purge removes expired holds and returns how many were removed.
func (r *Registry) Purge(ctx context.Context) (int, error) {
	n, err := r.store.Purge(ctx, r.opts.clock())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.opts.logger.InfoContext(ctx, "expired holds purged", slog.Int("count", n))
	}
	return n, nil
}

// Healthcheck returns a closure that pings the store, for health endpoints.
func (r *Registry) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if err := r.store.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Close closes the store.
func (r *Registry) Close() error {
	return r.store.Close()
}

func (r *Registry) isReserved(s slug.Slug) bool {
	if len(r.opts.reserved) == 0 {
		return false
	}
	_, ok := r.opts.reserved[strings.ToLower(s.String())]
	return ok
}

// withSuffix appends a random hex suffix to base, shortening base so the
// result fits the maximum length. With no room left the suffix stands alone.
func (r *Registry) withSuffix(base slug.Slug) (slug.Slug, error) {
	opts := r.opts.slugOptions
	n := r.opts.suffixLength
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:n]

	if r.opts.maxLength > 0 {
		room := r.opts.maxLength - utf8.RuneCountInString(opts.Separator) - n
		if room < 1 {
			return slug.GenerateWithOptions(opts, suffix[:min(n, r.opts.maxLength)])
		}

		var err error
		if base, err = slug.TruncateWithOptions(opts, room, base); err != nil {
			return slug.Slug{}, err
		}
	}

	// A space always splits words, so the pipeline joins base and suffix
	// with the configured separator.
	return slug.GenerateWithOptions(opts, base.String()+" "+suffix)
}
