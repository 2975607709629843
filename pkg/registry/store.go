package registry

import (
	"context"
	"time"
)

// Store persists claim records.
//
// Implementations must make Insert atomic: two concurrent inserts of the same
// slug never both succeed.
type Store interface {
	// Insert stores rec. A record already held under the same slug is replaced
	// only if it expired at rec.CreatedAt; otherwise Insert returns ErrTaken.
	Insert(ctx context.Context, rec Record) error

	// Get returns the record held under slug, or ErrNotFound.
	// The record may already be expired; callers check Record.Expired.
	Get(ctx context.Context, slug string) (Record, error)

	// Delete removes the record held under slug. Deleting a missing slug is not an error.
	Delete(ctx context.Context, slug string) error

	// Purge removes records expired at now and returns how many were removed.
	Purge(ctx context.Context, now time.Time) (int, error)

	// Ping checks the store is reachable.
	Ping(ctx context.Context) error

	// Close releases resources owned by the store.
	Close() error
}
