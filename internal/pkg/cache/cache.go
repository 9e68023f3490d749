package cache

import (
	"context"
	"time"
)

// Store is a key-value cache for read-mostly reference data. Implementations
// must treat misses and transport failures as equivalent: callers always fall
// back to the database, so a broken cache degrades to slower reads, never to
// wrong data.
type Store interface {
	// Get unmarshals the cached value for key into target. Returns ErrCacheMiss
	// when the key is absent.
	Get(ctx context.Context, key string, target interface{}) error

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Invalidate removes a single key.
	Invalidate(ctx context.Context, key string) error

	// InvalidatePattern removes every key matching a glob pattern such as
	// "reference:leave_types:*".
	InvalidatePattern(ctx context.Context, pattern string) error
}
