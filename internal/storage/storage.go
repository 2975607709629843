// Package storage opens the registry store selected by the service configuration
// together with the connections it needs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/slugkit/internal/config"
	"github.com/dmitrymomot/slugkit/pkg/registry"
)

// Backend is an opened store plus the connections it owns.
type Backend struct {
	Store  registry.Store
	Driver string

	closers []func()
}

// Open connects to the configured backend and prepares its schema.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Store.Driver}

	sqlOpts := []registry.SQLOption{
		registry.WithMigrationsTable(cfg.Store.MigrationsTable),
		registry.WithMigrationLogger(log),
	}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		b.Store = registry.NewMemory(registry.WithCleanupInterval(cfg.Store.MemoryCleanupInterval))

	case config.DriverSQLite:
		store, err := registry.OpenSQLite(ctx, cfg.Store.SQLitePath, sqlOpts...)
		if err != nil {
			return nil, err
		}
		b.Store = store

	case config.DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		store, err := registry.NewPostgres(ctx, pool, sqlOpts...)
		if err != nil {
			pool.Close()
			return nil, err
		}
		b.Store = store
		b.closers = append(b.closers, pool.Close)

	case config.DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		b.Store = registry.NewRedis(client, cfg.Redis.KeyPrefix)
		b.closers = append(b.closers, func() { _ = client.Close() })

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Store.Driver)
	}

	log.InfoContext(ctx, "store opened", slog.String("driver", b.Driver))
	return b, nil
}

// Close closes the store, then the connections behind it.
func (b *Backend) Close() error {
	err := b.Store.Close()
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	if err != nil {
		return errors.Join(fmt.Errorf("storage: close %s store", b.Driver), err)
	}
	return nil
}
