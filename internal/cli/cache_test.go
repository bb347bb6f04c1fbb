package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheClearRemovesEntries(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir := filepath.Join(xdg, appName)
	if err := os.MkdirAll(filepath.Join(dir, "la"), 0o755); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(dir, "la", "layout-entry")
	if err := os.WriteFile(entry, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("cache directory should be removed")
	}
}

func TestCacheClearEmpty(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear on empty cache error = %v", err)
	}
}
