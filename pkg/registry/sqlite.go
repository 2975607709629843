package registry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by an SQLite database (pure Go driver).
// Timestamps are stored as Unix milliseconds.
type SQLite struct {
	db    *sql.DB
	owned bool
}

// OpenSQLite opens the SQLite database at dsn, applies migrations and returns
// a store that owns the connection. Use ":memory:" for a throwaway database.
//
// Example:
//
//	store, err := registry.OpenSQLite(ctx, "file:slugkit.db?_pragma=busy_timeout(5000)")
func OpenSQLite(ctx context.Context, dsn string, opts ...SQLOption) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer at a time; also keeps a ":memory:" database alive on one connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s, err := NewSQLite(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewSQLite wraps an existing SQLite connection and applies migrations.
// Close does not close db.
func NewSQLite(ctx context.Context, db *sql.DB, opts ...SQLOption) (*SQLite, error) {
	o := defaultSQLOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := migrate(ctx, db, goose.DialectSQLite3, "sqlite", o); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Insert stores rec unless an unexpired record holds its slug.
func (s *SQLite) Insert(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM slug_claims WHERE slug = ? AND expires_at IS NOT NULL AND expires_at <= ?`,
		rec.Slug, rec.CreatedAt.UnixMilli(),
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO slug_claims (slug, id, owner, title, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (slug) DO NOTHING`,
		rec.Slug, rec.ID.String(), rec.Owner, rec.Title, rec.CreatedAt.UnixMilli(), nullMillis(rec.ExpiresAt),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaken
	}

	return tx.Commit()
}

// Get returns the record held under slug.
func (s *SQLite) Get(ctx context.Context, slug string) (Record, error) {
	var (
		rec       Record
		id        string
		createdAt int64
		expiresAt sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT slug, id, owner, title, created_at, expires_at FROM slug_claims WHERE slug = ?`,
		slug,
	).Scan(&rec.Slug, &id, &rec.Owner, &rec.Title, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	if rec.ID, err = uuid.Parse(id); err != nil {
		return Record{}, errors.Join(ErrInvalidRecord, err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	if expiresAt.Valid {
		rec.ExpiresAt = time.UnixMilli(expiresAt.Int64).UTC()
	}

	return rec, nil
}

// Delete removes the record held under slug.
func (s *SQLite) Delete(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slug_claims WHERE slug = ?`, slug)
	return err
}

// Purge removes records expired at now.
func (s *SQLite) Purge(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM slug_claims WHERE expires_at IS NOT NULL AND expires_at <= ?`,
		now.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Ping checks the database connection.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database if the store opened it.
func (s *SQLite) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func nullMillis(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

var _ Store = (*SQLite)(nil)
