package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	want := Default()
	if cfg.Server.Addr != want.Server.Addr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, want.Server.Addr)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Layout.Width != 1400 || cfg.Layout.Height != 800 {
		t.Errorf("Layout = %+v, want 1400x800", cfg.Layout)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9000"
data_dir = "/data/circuits"

[cache]
backend = "redis"
ttl = "1h"

[cache.redis]
addr = "redis.internal:6379"
db = 2

[layout]
width = 1000.0
height = 600.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Server.DataDir != "/data/circuits" {
		t.Errorf("DataDir = %q", cfg.Server.DataDir)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Std() != time.Hour {
		t.Errorf("TTL = %v, want 1h", cfg.Cache.TTL.Std())
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Cache.Redis)
	}
	if cfg.Layout.Width != 1000 || cfg.Layout.Height != 600 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("unset backend should keep default, got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Std() != 24*time.Hour {
		t.Errorf("unset ttl should keep default, got %v", cfg.Cache.TTL.Std())
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject unknown cache backends")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	path := writeConfig(t, `
[cache]
ttl = "soon"
`)
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject unparseable durations")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() should fail for an explicitly named missing file")
	}
}
