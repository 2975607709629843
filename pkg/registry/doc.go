// Package registry hands out unique slugs.
//
// A Registry generates a slug from a title, then stores it through a Store so no
// two owners hold the same slug. Collisions and reserved words are resolved by
// appending a short random hex suffix:
//
//	reg, err := registry.New(registry.NewMemory(), registry.WithReserved("admin"))
//	if err != nil {
//		return err
//	}
//
//	c, err := reg.Claim(ctx, registry.Request{Title: "Hello, World!", Owner: "user-1"})
//	// c.Slug.String() == "hello-world"
//
//	c, err = reg.Claim(ctx, registry.Request{Title: "Hello world", Owner: "user-2"})
//	// c.Slug.String() == "hello-world-3f9a1c"
//
// # Temporary holds
//
// A Request with a TTL creates a hold that expires on its own. Expired holds are
// invisible to Lookup and can be claimed again; Purge removes them from the store.
//
// # Stores
//
//   - Memory: in-process map with a background janitor.
//   - SQLite: database/sql over modernc.org/sqlite, schema managed by goose.
//   - Postgres: pgx connection pool, schema managed by goose.
//   - Redis: SETNX with native key expiry.
//
// The SQL stores embed their migrations and apply them when created, unless
// WithoutMigrations is given.
package registry
