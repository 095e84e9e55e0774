package cache

import (
	"context"
	"time"
)

// namespaced wraps a Cache with a key prefix so that different data sources
// sharing one backend cannot collide.
type namespaced struct {
	inner  Cache
	prefix string
}

// Namespace returns a view of inner that prepends prefix to every key.
//
// Example usage:
//
//	backend, _ := cache.NewFileCache(dir)
//	pages := cache.Namespace(backend, "ndbc:")
//
// Namespaces can be nested; prefixes accumulate. Close is forwarded to the
// underlying backend, so close a shared backend only once.
func Namespace(inner Cache, prefix string) Cache {
	return &namespaced{inner: inner, prefix: prefix}
}

// Get retrieves a value using the prefixed key.
func (c *namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores a value using the prefixed key.
func (c *namespaced) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes the prefixed key.
func (c *namespaced) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the underlying backend.
func (c *namespaced) Close() error {
	return c.inner.Close()
}

// Ensure namespaced implements Cache.
var _ Cache = (*namespaced)(nil)
