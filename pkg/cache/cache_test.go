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

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected miss before Set")
	}

	// Round-trip
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want %q", data, "value")
	}

	// Expired entries are misses
	if err := c.Set(ctx, "expired", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expected miss for expired entry")
	}

	// Delete removes, and deleting a missing key is not an error
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected miss after Delete")
	}
	if err := c.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
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

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// DataKey should include source hash in key
	dk1 := k.DataKey("students", DataKeyOpts{SourceHash: "aaa"})
	dk2 := k.DataKey("students", DataKeyOpts{SourceHash: "bbb"})
	if dk1 == dk2 {
		t.Error("Different DataKeyOpts should produce different keys")
	}

	// Different dataset IDs produce different keys
	dk3 := k.DataKey("cars", DataKeyOpts{SourceHash: "aaa"})
	if dk1 == dk3 {
		t.Error("Different dataset IDs should produce different keys")
	}

	// ChartKey varies with render options
	ck1 := k.ChartKey("hash123", ChartKeyOpts{Format: "svg", Style: "simple", Width: 960})
	ck2 := k.ChartKey("hash123", ChartKeyOpts{Format: "svg", Style: "simple", Width: 1200})
	if ck1 == ck2 {
		t.Error("Different ChartKeyOpts should produce different keys")
	}
	ck3 := k.ChartKey("hash123", ChartKeyOpts{Format: "png", Style: "simple", Width: 960})
	if ck1 == ck3 {
		t.Error("Different formats should produce different keys")
	}

	// Same inputs produce the same key
	if ck1 != k.ChartKey("hash123", ChartKeyOpts{Format: "svg", Style: "simple", Width: 960}) {
		t.Error("Keyer should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	key := scoped.DataKey("students", DataKeyOpts{SourceHash: "aaa"})
	if len(key) < 8 || key[:8] != "staging:" {
		t.Errorf("ScopedKeyer DataKey should be prefixed: %s", key)
	}
	if key[8:] != inner.DataKey("students", DataKeyOpts{SourceHash: "aaa"}) {
		t.Error("ScopedKeyer should delegate to inner keyer")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ChartKey("hash", ChartKeyOpts{Format: "svg"})
	if len(key) < 7 || key[:7] != "prefix:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
