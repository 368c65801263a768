package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/hexwalk/pkg/cache"
	"github.com/matzehuels/hexwalk/pkg/config"
)

func TestCacheLocation(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/var/cache/hexwalk"
	if loc, ok := cacheLocation(cfg); !ok || loc != "/var/cache/hexwalk" {
		t.Errorf("file location = %q, %v", loc, ok)
	}

	cfg.Cache.Backend = config.BackendRedis
	cfg.Cache.URL = "redis://localhost:6379/0"
	if loc, ok := cacheLocation(cfg); !ok || loc != cfg.Cache.URL {
		t.Errorf("redis location = %q, %v", loc, ok)
	}

	cfg.Cache.Backend = config.BackendNone
	if _, ok := cacheLocation(cfg); ok {
		t.Error("disabled cache should have no location")
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()
	c := New(io.Discard, LogInfo)

	cfg := config.Default()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")

	fc := c.newCache(ctx, cfg, false)
	defer fc.Close()
	if err := fc.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if data, hit, err := fc.Get(ctx, "k"); err != nil || !hit || string(data) != "value" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if cleared, err := cache.Clear(ctx, fc); !cleared || err != nil {
		t.Errorf("Clear() = %v, %v", cleared, err)
	}

	if _, ok := c.newCache(ctx, cfg, true).(cache.NullCache); !ok {
		t.Error("--no-cache should disable caching")
	}

	cfg.Cache.Backend = config.BackendRedis
	cfg.Cache.URL = "redis://127.0.0.1:1/0"
	if _, ok := c.newCache(ctx, cfg, false).(cache.NullCache); !ok {
		t.Error("an unreachable redis should fall back to no caching")
	}
}

func TestNewRunnerNamespace(t *testing.T) {
	ctx := context.Background()
	c := New(io.Discard, LogInfo)
	cfg := config.Default()
	cfg.Cache.Backend = config.BackendNone

	r := c.newRunner(ctx, cfg, false)
	if _, ok := r.Keyer.(cache.ScopedKeyer); ok {
		t.Error("no namespace should use the default keyer")
	}

	cfg.Cache.Namespace = "a3"
	r = c.newRunner(ctx, cfg, false)
	key := r.Keyer.DrawingKey(cache.DrawingKeyOpts{Seed: 1})
	if want := "a3:" + cache.NewDefaultKeyer().DrawingKey(cache.DrawingKeyOpts{Seed: 1}); key != want {
		t.Errorf("DrawingKey = %q, want %q", key, want)
	}
}
