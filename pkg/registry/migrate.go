package registry

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// SQLOption configures the SQL-backed stores.
type SQLOption func(*sqlOptions)

type sqlOptions struct {
	logger          *slog.Logger
	migrationsTable string
	skipMigrations  bool
}

func defaultSQLOptions() *sqlOptions {
	return &sqlOptions{
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		migrationsTable: "slugkit_migrations",
	}
}

// WithMigrationsTable sets the table goose records applied migrations in.
// Default: "slugkit_migrations".
func WithMigrationsTable(name string) SQLOption {
	return func(o *sqlOptions) {
		if name != "" {
			o.migrationsTable = name
		}
	}
}

// WithMigrationLogger sets the logger for migration progress.
// Default: discards output.
func WithMigrationLogger(log *slog.Logger) SQLOption {
	return func(o *sqlOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithoutMigrations skips schema migrations, for databases migrated out of band.
func WithoutMigrations() SQLOption {
	return func(o *sqlOptions) {
		o.skipMigrations = true
	}
}

// migrate applies the embedded migrations for dialect from migrations/<dir>.
// The provider is not closed: closing it would close db.
func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string, o *sqlOptions) error {
	if o.skipMigrations {
		return nil
	}

	fsys, err := fs.Sub(migrations, "migrations/"+dir)
	if err != nil {
		return errors.Join(ErrMigrate, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys,
		goose.WithTableName(o.migrationsTable),
		goose.WithSlog(o.logger),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return errors.Join(ErrMigrate, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrMigrate, err)
	}

	for _, r := range results {
		o.logger.InfoContext(ctx, "migration applied",
			slog.String("dialect", string(dialect)),
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}

	return nil
}
