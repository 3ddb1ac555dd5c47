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

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "layout:abc", []byte(`{"nodes":[]}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("Get hit=%v err=%v, want hit", hit, err)
	}
	if string(data) != `{"nodes":[]}` {
		t.Errorf("data = %s", data)
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("deleted key still hits")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	m1 := k.MembersKey("file:members.json")
	m2 := k.MembersKey("mongo:family/members")
	if m1 == m2 {
		t.Error("different sources should produce different members keys")
	}

	l1 := k.LayoutKey("hash123", LayoutKeyOpts{ViewportWidth: 1280, Density: "comfortable"})
	l2 := k.LayoutKey("hash123", LayoutKeyOpts{ViewportWidth: 640, Density: "comfortable"})
	if l1 == l2 {
		t.Error("different LayoutKeyOpts should produce different keys")
	}
	if l1 != k.LayoutKey("hash123", LayoutKeyOpts{ViewportWidth: 1280, Density: "comfortable"}) {
		t.Error("LayoutKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "site:main:")

	key := scoped.LayoutKey("h", LayoutKeyOpts{ViewportWidth: 800})
	if key == base.LayoutKey("h", LayoutKeyOpts{ViewportWidth: 800}) {
		t.Error("scoped key should differ from unscoped")
	}
	if key[:10] != "site:main:" {
		t.Errorf("scoped key missing prefix: %s", key)
	}
}
