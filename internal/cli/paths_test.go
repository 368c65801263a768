package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := dataDir()
	if err != nil {
		t.Fatalf("dataDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) || !strings.HasSuffix(dir, filepath.Join(".local", "share", appName)) {
		t.Errorf("dataDir() = %q, want ~/.local/share/%s", dir, appName)
	}

	t.Setenv("XDG_DATA_HOME", "/tmp/custom-data")
	if dir, _ := dataDir(); dir != filepath.Join("/tmp/custom-data", appName) {
		t.Errorf("dataDir() with XDG_DATA_HOME = %q", dir)
	}
}

func TestExportName(t *testing.T) {
	tests := []struct {
		prefix string
		number int
		ext    string
		want   string
	}{
		{"hexwalk", 7, "svg", "hexwalk_007.svg"},
		{"plot", 123, "json.zst", "plot_123.json.zst"},
		{"plot", 1234, "png", "plot_1234.png"},
	}
	for _, tt := range tests {
		if got := exportName(tt.prefix, tt.number, tt.ext); got != tt.want {
			t.Errorf("exportName(%q, %d, %q) = %q, want %q", tt.prefix, tt.number, tt.ext, got, tt.want)
		}
	}
}
