package cache

import (
	"context"
	"time"
)

// noopStore always misses. Used when no cache backend is configured so that
// callers keep a single code path.
type noopStore struct{}

func NewNoopStore() Store {
	return noopStore{}
}

func (noopStore) Get(ctx context.Context, key string, target interface{}) error {
	return ErrCacheMiss
}

func (noopStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noopStore) Invalidate(ctx context.Context, key string) error {
	return nil
}

func (noopStore) InvalidatePattern(ctx context.Context, pattern string) error {
	return nil
}
