package registry

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Postgres is a Store backed by a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres applies migrations and returns a store over pool.
// The pool lifecycle stays with the caller; Close is a no-op.
//
// Example:
//
//	pool, err := pgxpool.New(ctx, os.Getenv("DATABASE_CONN_URL"))
//	store, err := registry.NewPostgres(ctx, pool, registry.WithMigrationLogger(log))
func NewPostgres(ctx context.Context, pool *pgxpool.Pool, opts ...SQLOption) (*Postgres, error) {
	o := defaultSQLOptions()
	for _, opt := range opts {
		opt(o)
	}

	// goose needs database/sql; the wrapper shares the pool's connections,
	// so it is not closed here.
	db := stdlib.OpenDBFromPool(pool)
	if err := migrate(ctx, db, goose.DialectPostgres, "postgres", o); err != nil {
		return nil, err
	}

	return &Postgres{pool: pool}, nil
}

// Insert stores rec unless an unexpired record holds its slug.
func (p *Postgres) Insert(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	return p.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM slug_claims WHERE slug = $1 AND expires_at IS NOT NULL AND expires_at <= $2`,
			rec.Slug, rec.CreatedAt,
		); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`INSERT INTO slug_claims (slug, id, owner, title, created_at, expires_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (slug) DO NOTHING`,
			rec.Slug, rec.ID, rec.Owner, rec.Title, rec.CreatedAt, nullTime(rec.ExpiresAt),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrTaken
		}
		return nil
	})
}

// Get returns the record held under slug.
func (p *Postgres) Get(ctx context.Context, slug string) (Record, error) {
	var (
		rec       Record
		expiresAt *time.Time
	)

	err := p.pool.QueryRow(ctx,
		`SELECT slug, id, owner, title, created_at, expires_at FROM slug_claims WHERE slug = $1`,
		slug,
	).Scan(&rec.Slug, &rec.ID, &rec.Owner, &rec.Title, &rec.CreatedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	if expiresAt != nil {
		rec.ExpiresAt = *expiresAt
	}
	return rec, nil
}

// Delete removes the record held under slug.
func (p *Postgres) Delete(ctx context.Context, slug string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM slug_claims WHERE slug = $1`, slug)
	return err
}

// Purge removes records expired at now.
func (p *Postgres) Purge(ctx context.Context, now time.Time) (int, error) {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM slug_claims WHERE expires_at IS NOT NULL AND expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Ping checks the pool can reach the database.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close is a no-op; the pool is closed by its owner.
func (p *Postgres) Close() error {
	return nil
}

// withTx runs fn in a transaction, rolling back on error or panic.
func (p *Postgres) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

var _ Store = (*Postgres)(nil)
