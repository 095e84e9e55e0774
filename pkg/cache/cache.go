// Package cache provides pluggable byte caches for HTTP response caching.
//
// Three backends are provided:
//   - FileCache: file-based storage for CLI usage
//   - RedisCache: Redis-backed storage for multi-instance deployments
//   - NullCache: no-op cache for tests or when caching is disabled
//
// Keys are arbitrary strings; backends hash them as needed. Values are raw
// bytes with an optional TTL. Use [Namespace] to scope keys per data source
// (e.g., "ndbc:") and avoid collisions between components sharing a backend.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache storage backends.
// All implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns (nil, false, nil) on a miss; expired entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value in the cache. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
