// Package config loads the slugkit service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

var (
	ErrParse   = errors.New("config: failed to parse environment")
	ErrInvalid = errors.New("config: invalid configuration")
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config is the full service configuration.
type Config struct {
	HTTP     HTTP
	Log      Log
	Store    Store
	Postgres Postgres
	Redis    Redis
	Registry Registry
}

// HTTP configures the listener and server timeouts.
type HTTP struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// Maximum accepted request body, in bytes.
	MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" envDefault:"65536"`
}

// Log configures the process logger.
type Log struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format string     `env:"LOG_FORMAT" envDefault:"json"`

	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// Store selects the registry backend.
type Store struct {
	Driver     string `env:"STORE_DRIVER" envDefault:"memory"`
	SQLitePath string `env:"STORE_SQLITE_PATH" envDefault:"slugkit.db"`
	// How often the in-memory store drops expired holds on its own.
	MemoryCleanupInterval time.Duration `env:"STORE_MEMORY_CLEANUP_INTERVAL" envDefault:"1m"`
	MigrationsTable       string        `env:"STORE_MIGRATIONS_TABLE" envDefault:"slugkit_migrations"`
}

// Postgres holds PostgreSQL pool settings, used with the postgres driver.
type Postgres struct {
	ConnectionString  string        `env:"DATABASE_CONN_URL"`
	HealthCheckPeriod time.Duration `env:"DATABASE_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts     int           `env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval     time.Duration `env:"DATABASE_RETRY_INTERVAL" envDefault:"5s"`
	MaxOpenConns      int32         `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MinConns          int32         `env:"DATABASE_MIN_CONNS" envDefault:"2"`
}

// Redis holds client settings, used with the redis driver.
type Redis struct {
	URL           string        `env:"REDIS_URL"`
	KeyPrefix     string        `env:"REDIS_KEY_PREFIX" envDefault:"slugkit"`
	PoolSize      int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns  int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout   time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout   time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout  time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	RetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
}

// Registry configures how claims are generated.
type Registry struct {
	Separator       string   `env:"SLUG_SEPARATOR" envDefault:"-"`
	Filter          string   `env:"SLUG_FILTER" envDefault:"latin1-alnum"`
	KeepCase        bool     `env:"SLUG_KEEP_CASE"`
	KeepApostrophes bool     `env:"SLUG_KEEP_APOSTROPHES"`
	MaxLength       int      `env:"SLUG_MAX_LENGTH" envDefault:"80"`
	MaxAttempts     int      `env:"SLUG_MAX_ATTEMPTS" envDefault:"5"`
	SuffixLength    int      `env:"SLUG_SUFFIX_LENGTH" envDefault:"6"`
	Reserved        []string `env:"SLUG_RESERVED" envSeparator:","`
	// Cron spec for removing expired holds; empty disables the job.
	PurgeSchedule string `env:"SLUG_PURGE_SCHEDULE" envDefault:"@every 1m"`
}

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom parses the configuration from the given key/value pairs instead of
// the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, errors.Join(ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("STORE_SQLITE_PATH is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Postgres.ConnectionString == "" {
			errs = append(errs, errors.New("DATABASE_CONN_URL is required for the postgres driver"))
		}
	case DriverRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format))
	}

	if c.Registry.MaxLength < 1 {
		errs = append(errs, errors.New("SLUG_MAX_LENGTH must be positive"))
	}
	if c.Registry.MaxAttempts < 1 {
		errs = append(errs, errors.New("SLUG_MAX_ATTEMPTS must be positive"))
	}
	if _, err := c.Registry.SlugOptions(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalid}, errs...)...)
	}
	return nil
}

// SlugOptions builds the engine options used for claims.
func (r Registry) SlugOptions() (slug.Options, error) {
	filter, err := slug.NamedFilter(r.Filter)
	if err != nil {
		return slug.Options{}, err
	}

	opts := slug.DefaultOptions()
	opts.Separator = r.Separator
	opts.Filter = filter
	opts.LowerCase = !r.KeepCase
	opts.StripApostrophes = !r.KeepApostrophes

	if err := opts.Validate(); err != nil {
		return slug.Options{}, err
	}
	return opts, nil
}
