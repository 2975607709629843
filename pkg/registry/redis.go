package registry

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by Redis. Holds use native key expiry, so expired
// records disappear on their own and Purge has nothing to do.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed store. Keys are stored as "{prefix}:{slug}".
// An empty prefix stores bare slugs.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	store := registry.NewRedis(client, "slugs")
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

type redisRecord struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Insert stores rec with SETNX. Records already past their expiry are
// rejected with ErrInvalidRecord since Redis cannot hold them.
func (r *Redis) Insert(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	var ttl time.Duration
	if !rec.ExpiresAt.IsZero() {
		ttl = rec.ExpiresAt.Sub(rec.CreatedAt)
		if ttl <= 0 {
			return errors.Join(ErrInvalidRecord, errors.New("record expires before it is created"))
		}
	}

	data, err := json.Marshal(redisRecord{
		ID:        rec.ID.String(),
		Owner:     rec.Owner,
		Title:     rec.Title,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	})
	if err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	ok, err := r.client.SetNX(ctx, r.key(rec.Slug), data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaken
	}
	return nil
}

// Get returns the record held under slug.
func (r *Redis) Get(ctx context.Context, slug string) (Record, error) {
	data, err := r.client.Get(ctx, r.key(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	var stored redisRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return Record{}, errors.Join(ErrInvalidRecord, err)
	}

	id, err := uuid.Parse(stored.ID)
	if err != nil {
		return Record{}, errors.Join(ErrInvalidRecord, err)
	}

	return Record{
		ID:        id,
		Slug:      slug,
		Owner:     stored.Owner,
		Title:     stored.Title,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Delete removes the key held under slug.
func (r *Redis) Delete(ctx context.Context, slug string) error {
	return r.client.Del(ctx, r.key(slug)).Err()
}

// Purge is a no-op: Redis expires holds itself.
func (r *Redis) Purge(context.Context, time.Time) (int, error) {
	return 0, nil
}

// Ping checks the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close is a no-op. The client lifecycle is managed by the caller.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(slug string) string {
	if r.prefix == "" {
		return slug
	}
	return r.prefix + ":" + slug
}

var _ Store = (*Redis)(nil)
