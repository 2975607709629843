package registry_test

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/slugkit/pkg/registry"
)

// storeFactory returns a fresh, empty store.
type storeFactory func(t *testing.T) registry.Store

func newRecord(slug string, ttl time.Duration) registry.Record {
	now := time.Now().Truncate(time.Millisecond)
	rec := registry.Record{
		ID:        uuid.New(),
		Slug:      slug,
		Owner:     "owner-1",
		Title:     "Title of " + slug,
		CreatedAt: now,
	}
	if ttl > 0 {
		rec.ExpiresAt = now.Add(ttl)
	}
	return rec
}

func assertRecord(t *testing.T, want, got registry.Record) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Slug, got.Slug)
	assert.Equal(t, want.Owner, got.Owner)
	assert.Equal(t, want.Title, got.Title)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %v, got %v", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt), "expires_at: want %v, got %v", want.ExpiresAt, got.ExpiresAt)
}

// runStoreSuite checks the Store contract. purges reports whether Purge
// removes expired records itself rather than relying on native expiry.
func runStoreSuite(t *testing.T, newStore storeFactory, purges bool) {
	t.Helper()

	t.Run("insert and get", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		rec := newRecord("hello-world", 0)
		require.NoError(t, store.Insert(ctx, rec))

		got, err := store.Get(ctx, "hello-world")
		require.NoError(t, err)
		assertRecord(t, rec, got)
	})

	t.Run("insert keeps expiry", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		rec := newRecord("temporary", time.Hour)
		require.NoError(t, store.Insert(ctx, rec))

		got, err := store.Get(ctx, "temporary")
		require.NoError(t, err)
		assertRecord(t, rec, got)
		assert.False(t, got.Expired(time.Now()))
	})

	t.Run("duplicate insert is taken", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Insert(ctx, newRecord("taken", 0)))
		err := store.Insert(ctx, newRecord("taken", 0))
		require.ErrorIs(t, err, registry.ErrTaken)
	})

	t.Run("expired record is replaced", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Insert(ctx, newRecord("short-hold", 50*time.Millisecond)))
		time.Sleep(100 * time.Millisecond)

		next := newRecord("short-hold", 0)
		next.Owner = "owner-2"
		require.NoError(t, store.Insert(ctx, next))

		got, err := store.Get(ctx, "short-hold")
		require.NoError(t, err)
		assert.Equal(t, "owner-2", got.Owner)
	})

	t.Run("get missing", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Get(context.Background(), "missing")
		require.ErrorIs(t, err, registry.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Insert(ctx, newRecord("to-delete", 0)))
		require.NoError(t, store.Delete(ctx, "to-delete"))

		_, err := store.Get(ctx, "to-delete")
		require.ErrorIs(t, err, registry.ErrNotFound)

		require.NoError(t, store.Delete(ctx, "never-existed"))
	})

	t.Run("purge removes expired only", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Insert(ctx, newRecord("permanent", 0)))
		require.NoError(t, store.Insert(ctx, newRecord("long-hold", time.Hour)))
		require.NoError(t, store.Insert(ctx, newRecord("expiring", 50*time.Millisecond)))
		time.Sleep(100 * time.Millisecond)

		n, err := store.Purge(ctx, time.Now())
		require.NoError(t, err)
		if purges {
			assert.Equal(t, 1, n)
		}

		_, err = store.Get(ctx, "expiring")
		require.ErrorIs(t, err, registry.ErrNotFound)
		for _, s := range []string{"permanent", "long-hold"} {
			_, err = store.Get(ctx, s)
			require.NoError(t, err, s)
		}
	})

	t.Run("rejects invalid record", func(t *testing.T) {
		store := newStore(t)

		err := store.Insert(context.Background(), registry.Record{Slug: "no-id", CreatedAt: time.Now()})
		require.ErrorIs(t, err, registry.ErrInvalidRecord)

		err = store.Insert(context.Background(), newRecord("", 0))
		require.ErrorIs(t, err, registry.ErrInvalidRecord)
	})

	t.Run("ping", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Ping(context.Background()))
	})

	t.Run("concurrent inserts have one winner", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		var (
			wg   sync.WaitGroup
			wins atomic.Int32
		)
		for range 10 {
			wg.Go(func() {
				err := store.Insert(ctx, newRecord("contended", 0))
				if err == nil {
					wins.Add(1)
					return
				}
				assert.ErrorIs(t, err, registry.ErrTaken)
			})
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	runStoreSuite(t, func(t *testing.T) registry.Store {
		m := registry.NewMemory(registry.WithCleanupInterval(0))
		t.Cleanup(func() { _ = m.Close() })
		return m
	}, true)
}

func TestMemoryStore_Janitor(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(time.Hour)
	m := registry.NewMemory(
		registry.WithCleanupInterval(10*time.Millisecond),
		registry.WithMemoryClock(func() time.Time { return future }),
	)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Insert(ctx, newRecord("held", time.Minute)))
	require.NoError(t, m.Insert(ctx, newRecord("kept", 0)))

	require.Eventually(t, func() bool { return m.Len() == 1 }, time.Second, 10*time.Millisecond)

	_, err := m.Get(ctx, "kept")
	require.NoError(t, err)
}

func TestMemoryStore_Closed(t *testing.T) {
	t.Parallel()

	m := registry.NewMemory()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "close is idempotent")

	ctx := context.Background()
	require.ErrorIs(t, m.Insert(ctx, newRecord("late", 0)), registry.ErrClosed)
	_, err := m.Get(ctx, "late")
	require.ErrorIs(t, err, registry.ErrClosed)
	require.ErrorIs(t, m.Delete(ctx, "late"), registry.ErrClosed)
	_, err = m.Purge(ctx, time.Now())
	require.ErrorIs(t, err, registry.ErrClosed)
	require.ErrorIs(t, m.Ping(ctx), registry.ErrClosed)
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	runStoreSuite(t, func(t *testing.T) registry.Store {
		s, err := registry.OpenSQLite(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}, true)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slugkit.db")

	first, err := registry.OpenSQLite(ctx, path)
	require.NoError(t, err)
	rec := newRecord("persisted", 0)
	require.NoError(t, first.Insert(ctx, rec))
	require.NoError(t, first.Close())

	second, err := registry.OpenSQLite(ctx, path, registry.WithMigrationsTable("slugkit_migrations"))
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "persisted")
	require.NoError(t, err)
	assertRecord(t, rec, got)
}
