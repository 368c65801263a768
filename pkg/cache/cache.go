// Package cache stores generated drawings and rendered artifacts.
//
// Generating a large drawing (grid, walks, smoothing, deduplication) is
// deterministic for a given seed and set of options, so its result can be
// cached and re-rendered. The [Cache] interface is a plain byte store with
// TTLs; keys come from a [Keyer] so every option that changes the output
// also changes the key.
//
// Implementations:
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for several preview servers
//   - [NullCache]: caching disabled
//
// [Compressed] wraps any of them with zstd compression; instruction lists
// compress well.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c if it supports it and reports whether it did.
func Clear(ctx context.Context, c Cache) (bool, error) {
	cl, ok := c.(Clearer)
	if !ok {
		return false, nil
	}
	return true, cl.Clear(ctx)
}
