package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	backend, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer backend.Close()

	ndbc := Namespace(backend, "ndbc:")
	other := Namespace(backend, "other:")

	if err := ndbc.Set(ctx, "page", []byte("html"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Same bare key in a different namespace must not collide
	if _, hit, _ := other.Get(ctx, "page"); hit {
		t.Error("namespaces should isolate keys")
	}

	// The backend sees the prefixed key
	if _, hit, _ := backend.Get(ctx, "ndbc:page"); !hit {
		t.Error("backend should store the prefixed key")
	}

	data, hit, err := ndbc.Get(ctx, "page")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v; want hit", hit, err)
	}
	if string(data) != "html" {
		t.Errorf("Get = %q, want %q", data, "html")
	}
}

func TestNamespaceNesting(t *testing.T) {
	ctx := context.Background()
	backend, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer backend.Close()

	nested := Namespace(Namespace(backend, "a:"), "b:")
	if err := nested.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := backend.Get(ctx, "a:b:k"); !hit {
		t.Error("nested namespaces should accumulate prefixes")
	}
}
