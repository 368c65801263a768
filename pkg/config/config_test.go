package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/hexwalk/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"canvas width", cfg.Canvas.Width, 150},
		{"canvas height", cfg.Canvas.Height, 100},
		{"scale", cfg.Canvas.Scale, 5},
		{"columns", float64(cfg.Grid.Columns), 10},
		{"rows", float64(cfg.Grid.Rows), 10},
		{"cell scale", cfg.Grid.CellScale, 12},
		{"keep fraction", cfg.Walk.KeepFraction, 0.5},
		{"smoothing points", float64(cfg.Walk.SmoothingPoints), 4},
		{"sharpness", cfg.Walk.SmoothingSharpness, 0.9},
		{"signature height", cfg.Signature.Height, 9},
		{"signature margin", cfg.Signature.Margin, 15},
		{"signature offset", cfg.Signature.Offset, 3},
		{"stroke width", cfg.Output.StrokeWidth, 0.4},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
	if cfg.CacheTTL() != 168*time.Hour {
		t.Errorf("CacheTTL() = %v", cfg.CacheTTL())
	}
	if cfg.PreviewInterval() != 16*time.Millisecond {
		t.Errorf("PreviewInterval() = %v", cfg.PreviewInterval())
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "hexwalk.toml", `
[canvas]
width = 297
height = 210

[walk]
keep_fraction = 0.75

[signature]
name = "ALICE"

[output]
formats = ["svg", "pdf"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != 297 || cfg.Canvas.Height != 210 {
		t.Errorf("canvas = %vx%v, want 297x210", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.Scale != 5 {
		t.Errorf("unset scale should keep default, got %v", cfg.Canvas.Scale)
	}
	if cfg.Walk.KeepFraction != 0.75 || cfg.Walk.SmoothingPoints != 4 {
		t.Errorf("walk = %+v", cfg.Walk)
	}
	if cfg.Signature.Name != "ALICE" || !cfg.Signature.Enabled {
		t.Errorf("signature = %+v", cfg.Signature)
	}
	if !slices.Equal(cfg.Output.Formats, []string{"svg", "pdf"}) {
		t.Errorf("formats = %v", cfg.Output.Formats)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "hexwalk.yaml", `
grid:
  columns: 20
  rows: 14
  outline: true
cache:
  backend: redis
  url: redis://localhost:6379/0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Grid.Columns != 20 || cfg.Grid.Rows != 14 || !cfg.Grid.Outline {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	if cfg.Grid.CellScale != 12 {
		t.Errorf("unset cell_scale should keep default, got %v", cfg.Grid.CellScale)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "hexwalk.yml", ""))
	if err != nil {
		t.Fatalf("Load(empty) error: %v", err)
	}
	if cfg.Canvas.Width != 150 {
		t.Errorf("empty file should give defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.Code
	}{
		{"unknown toml key", "c.toml", "[canvas]\nwidht = 3\n", errors.ErrCodeInvalidConfig},
		{"unknown yaml key", "c.yaml", "canvas:\n  widht: 3\n", errors.ErrCodeInvalidConfig},
		{"bad syntax", "c.toml", "[canvas\n", errors.ErrCodeInvalidConfig},
		{"bad extension", "c.json", "{}", errors.ErrCodeInvalidConfig},
		{"invalid value", "c.toml", "[walk]\nkeep_fraction = 1.5\n", errors.ErrCodeInvalidConfig},
		{"bad prefix", "c.toml", "[output]\nprefix = \"a/b\"\n", errors.ErrCodeInvalidPath},
		{"empty signature", "c.toml", "[signature]\nname = \" \"\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero scale", func(c *Config) { c.Canvas.Scale = 0 }},
		{"no rows", func(c *Config) { c.Grid.Rows = 0 }},
		{"negative smoothing", func(c *Config) { c.Walk.SmoothingPoints = -1 }},
		{"sharpness above one", func(c *Config) { c.Walk.SmoothingSharpness = 1.1 }},
		{"unknown format", func(c *Config) { c.Output.Formats = []string{"gif"} }},
		{"mongo without uri", func(c *Config) { c.Archive.Backend = BackendMongo }},
		{"unknown archive", func(c *Config) { c.Archive.Backend = "csv" }},
		{"redis without url", func(c *Config) { c.Cache.Backend = BackendRedis }},
		{"bad ttl", func(c *Config) { c.Cache.TTL = "soon" }},
		{"bad addr", func(c *Config) { c.Preview.Addr = "localhost" }},
		{"zero batch", func(c *Config) { c.Preview.Batch = 0 }},
		{"zero interval", func(c *Config) { c.Preview.Interval = "0s" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() error = nil")
			}
		})
	}

	cfg := Default()
	cfg.Signature.Enabled = false
	cfg.Signature.Name = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled signature should not need a name: %v", err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	if got := Find(dir); got != "" {
		t.Errorf("Find(empty) = %q", got)
	}

	yml := filepath.Join(dir, "hexwalk.yml")
	os.WriteFile(yml, nil, 0o644)
	if got := Find(dir); got != yml {
		t.Errorf("Find() = %q, want %q", got, yml)
	}

	toml := filepath.Join(dir, "hexwalk.toml")
	os.WriteFile(toml, nil, 0o644)
	if got := Find(dir); got != toml {
		t.Errorf("Find() = %q, want toml first", got)
	}
}
