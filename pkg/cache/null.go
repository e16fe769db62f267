package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. Used when caching is disabled or when a
// run is forced fresh with --refresh.
type NullCache struct{}

// NewNullCache returns a cache that misses on every lookup.
func NewNullCache() *NullCache { return &NullCache{} }

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
