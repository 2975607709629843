package registry

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

// Record is a claim as stores see it. Slug holds the slug text.
type Record struct {
	ID        uuid.UUID
	Slug      string
	Owner     string
	Title     string
	CreatedAt time.Time
	ExpiresAt time.Time // zero value = never expires
}

// Expired reports whether the record has expired at now.
func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

func (r Record) validate() error {
	if r.Slug == "" {
		return errors.Join(ErrInvalidRecord, errors.New("empty slug"))
	}
	if r.ID == uuid.Nil {
		return errors.Join(ErrInvalidRecord, errors.New("missing id"))
	}
	if r.CreatedAt.IsZero() {
		return errors.Join(ErrInvalidRecord, errors.New("missing creation time"))
	}
	return nil
}

// Claim is a slug held by an owner.
type Claim struct {
	ID        uuid.UUID `json:"id"`
	Slug      slug.Slug `json:"slug"`
	Owner     string    `json:"owner,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Permanent reports whether the claim never expires.
func (c Claim) Permanent() bool {
	return c.ExpiresAt.IsZero()
}

func (r Record) claim(opts slug.Options) (Claim, error) {
	s, err := slug.ParseWithOptions(opts, r.Slug)
	if err != nil {
		return Claim{}, errors.Join(ErrInvalidRecord, err)
	}
	return Claim{
		ID:        r.ID,
		Slug:      s,
		Owner:     r.Owner,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}, nil
}
