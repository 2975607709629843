package registry

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store. Expired records are removed lazily on insert
// and by a background janitor.
type Memory struct {
	records map[string]Record
	opts    *memoryOptions
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewMemory creates an in-memory store.
//
// Example:
//
//	store := registry.NewMemory(registry.WithCleanupInterval(30 * time.Second))
//	defer store.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		records: make(map[string]Record),
		opts:    o,
		done:    make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Insert stores rec unless an unexpired record holds its slug.
func (m *Memory) Insert(_ context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if cur, ok := m.records[rec.Slug]; ok && !cur.Expired(rec.CreatedAt) {
		return ErrTaken
	}

	m.records[rec.Slug] = rec
	return nil
}

// Get returns the record held under slug.
func (m *Memory) Get(_ context.Context, slug string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Record{}, ErrClosed
	}

	rec, ok := m.records[slug]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes the record held under slug.
func (m *Memory) Delete(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.records, slug)
	return nil
}

// Purge removes records expired at now.
func (m *Memory) Purge(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}

	return m.deleteExpired(now), nil
}

// Ping reports ErrClosed after Close.
func (m *Memory) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	return nil
}

// Len returns the number of stored records, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Close stops the janitor. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)

	return nil
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			m.deleteExpired(m.opts.clock())
			m.mu.Unlock()
		}
	}
}

// deleteExpired removes records expired at now.
// Caller must hold the mutex.
func (m *Memory) deleteExpired(now time.Time) int {
	n := 0
	for key, rec := range m.records {
		if rec.Expired(now) {
			delete(m.records, key)
			n++
		}
	}
	return n
}

var _ Store = (*Memory)(nil)
