// Package cache stores solved planning runs on disk.
//
// Planner output is deterministic for a fixed problem, planner, space mode,
// and seed, which makes whole solutions cacheable: re-running the same
// configuration replays the stored path instead of planning again. The CLI
// bypasses the cache with --refresh and manages the directory with
// `chartwalk cache`.
package cache

import (
	"context"
	"time"
)

// TTLSolution is how long cached planning runs stay valid. Solutions are
// deterministic for a fixed configuration, so the TTL mostly bounds disk use.
const TTLSolution = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
