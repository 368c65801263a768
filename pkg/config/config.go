// Package config loads hexwalk configuration files.
//
// A configuration file is TOML (.toml) or YAML (.yaml, .yml). Every field
// is optional; values missing from the file keep their [Default]. Unknown
// keys are rejected so typos do not silently fall back to defaults.
//
//	[canvas]
//	width = 297
//	height = 210
//
//	[walk]
//	keep_fraction = 0.6
//
//	[signature]
//	name = "ALICE"
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hexwalk/pkg/errors"
)

// Config is the full hexwalk configuration.
type Config struct {
	Canvas    Canvas    `toml:"canvas" yaml:"canvas"`
	Grid      Grid      `toml:"grid" yaml:"grid"`
	Walk      Walk      `toml:"walk" yaml:"walk"`
	Signature Signature `toml:"signature" yaml:"signature"`
	Output    Output    `toml:"output" yaml:"output"`
	Archive   Archive   `toml:"archive" yaml:"archive"`
	Cache     Cache     `toml:"cache" yaml:"cache"`
	Preview   Preview   `toml:"preview" yaml:"preview"`
}

// Canvas is the paper size in millimetres and the drawing units per
// millimetre.
type Canvas struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	Scale  float64 `toml:"scale" yaml:"scale"`
}

// Grid sizes the hexagonal tiling. The tiling is centered on the canvas.
type Grid struct {
	Columns   int     `toml:"columns" yaml:"columns"`
	Rows      int     `toml:"rows" yaml:"rows"`
	CellScale float64 `toml:"cell_scale" yaml:"cell_scale"`
	// Outline also draws the hexagon borders.
	Outline bool `toml:"outline" yaml:"outline"`
}

// Walk holds the walk and smoothing parameters.
type Walk struct {
	KeepFraction       float64 `toml:"keep_fraction" yaml:"keep_fraction"`
	SmoothingPoints    int     `toml:"smoothing_points" yaml:"smoothing_points"`
	SmoothingSharpness float64 `toml:"smoothing_sharpness" yaml:"smoothing_sharpness"`
	// Markers draws a small circle for walks that cover a single cell.
	Markers bool `toml:"markers" yaml:"markers"`
}

// Signature configures the text stamped in the bottom right corner.
// Height, Margin and Offset are in drawing units.
type Signature struct {
	Enabled bool    `toml:"enabled" yaml:"enabled"`
	Name    string  `toml:"name" yaml:"name"`
	Font    string  `toml:"font" yaml:"font"` // SVG font path; empty uses the built-in font
	Height  float64 `toml:"height" yaml:"height"`
	Margin  float64 `toml:"margin" yaml:"margin"`
	Offset  float64 `toml:"offset" yaml:"offset"`
}

// Output configures exported files.
type Output struct {
	Dir         string   `toml:"dir" yaml:"dir"`
	Prefix      string   `toml:"prefix" yaml:"prefix"`
	Formats     []string `toml:"formats" yaml:"formats"`
	StrokeWidth float64  `toml:"stroke_width" yaml:"stroke_width"` // millimetres
	DPI         float64  `toml:"dpi" yaml:"dpi"`
	Compress    bool     `toml:"compress" yaml:"compress"` // zstd-compress JSON exports
}

// Archive selects where export records are kept.
type Archive struct {
	Backend  string `toml:"backend" yaml:"backend"` // "sqlite", "mongo" or "none"
	Path     string `toml:"path" yaml:"path"`       // sqlite file; empty uses the data directory
	URI      string `toml:"uri" yaml:"uri"`
	Database string `toml:"database" yaml:"database"`
}

// Cache selects the drawing and artifact cache.
type Cache struct {
	Backend string `toml:"backend" yaml:"backend"` // "file", "redis" or "none"
	Dir     string `toml:"dir" yaml:"dir"`
	URL     string `toml:"url" yaml:"url"`
	TTL     string `toml:"ttl" yaml:"ttl"`
	// Namespace separates this configuration's entries in a shared Redis.
	Namespace string `toml:"namespace" yaml:"namespace"`
}

// Preview configures the progressive preview server.
type Preview struct {
	Addr string `toml:"addr" yaml:"addr"`
	// Batch is the number of instructions sent per tick.
	Batch    int    `toml:"batch" yaml:"batch"`
	Interval string `toml:"interval" yaml:"interval"`
}

// Backend names.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 150, Height: 100, Scale: 5},
		Grid:   Grid{Columns: 10, Rows: 10, CellScale: 12},
		Walk: Walk{
			KeepFraction:       0.5,
			SmoothingPoints:    4,
			SmoothingSharpness: 0.9,
		},
		Signature: Signature{
			Enabled: true,
			Name:    "HEXWALK",
			Height:  9,
			Margin:  15,
			Offset:  3,
		},
		Output: Output{
			Dir:         "exports",
			Prefix:      "hexwalk",
			Formats:     []string{"svg"},
			StrokeWidth: 0.4,
			DPI:         96,
		},
		Archive: Archive{Backend: BackendSQLite, Database: "hexwalk"},
		Cache:   Cache{Backend: BackendFile, TTL: "168h"},
		Preview: Preview{Addr: "127.0.0.1:8080", Batch: 4, Interval: "16ms"},
	}
}

// Load reads a configuration file on top of [Default]. The format follows
// the file extension.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", filepath.Base(path))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Find returns the first configuration file found in dir, trying
// hexwalk.toml, hexwalk.yaml and hexwalk.yml. It returns "" if none exists.
func Find(dir string) string {
	for _, name := range []string{"hexwalk.toml", "hexwalk.yaml", "hexwalk.yml"} {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// CacheTTL returns the parsed cache TTL.
func (c Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}

// PreviewInterval returns the parsed preview tick interval.
func (c Config) PreviewInterval() time.Duration {
	d, _ := time.ParseDuration(c.Preview.Interval)
	return d
}
