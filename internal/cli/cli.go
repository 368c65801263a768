// Package cli implements the hexwalk command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hexwalk/pkg/archive"
	"github.com/matzehuels/hexwalk/pkg/cache"
	"github.com/matzehuels/hexwalk/pkg/config"
	"github.com/matzehuels/hexwalk/pkg/glyph"
	"github.com/matzehuels/hexwalk/pkg/pipeline"
	"github.com/matzehuels/hexwalk/pkg/walk"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "hexwalk"

	// archiveFile is the sqlite database name inside the data directory.
	archiveFile = "archive.db"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by --config; empty searches the working directory.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads --config, or the first hexwalk config file in the
// working directory, or falls back to the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = config.Find(".")
	}
	if path == "" {
		c.Logger.Debug("no config file, using defaults")
		return config.Default(), nil
	}
	c.Logger.Debug("loading config", "path", path)
	return config.Load(path)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) *pipeline.Runner {
	var keyer cache.Keyer
	if ns := cfg.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns+":")
	}
	r := pipeline.NewRunner(c.newCache(ctx, cfg, noCache), keyer, c.Logger)
	r.TTL = cfg.CacheTTL()
	return r
}

// newCache opens the configured cache. An unreachable backend disables
// caching instead of failing the command.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache()
	}

	switch cfg.Cache.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.URL)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "error", err)
			return cache.NewNullCache()
		}
		return cache.Compressed(rc)
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache()
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "error", err)
			return cache.NewNullCache()
		}
		return cache.Compressed(fc)
	}
}

// openArchive opens the configured export archive.
func openArchive(ctx context.Context, cfg config.Config) (archive.Store, error) {
	opts := archive.Options{
		Backend:  cfg.Archive.Backend,
		Path:     cfg.Archive.Path,
		URI:      cfg.Archive.URI,
		Database: cfg.Archive.Database,
	}
	if (opts.Backend == config.BackendSQLite || opts.Backend == "") && opts.Path == "" {
		dir, err := dataDir()
		if err != nil {
			return nil, err
		}
		opts.Path = filepath.Join(dir, archiveFile)
	}
	return archive.Open(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/hexwalk/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory using XDG standard
// (~/.local/share/hexwalk/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions maps the configuration onto pipeline options. The
// signature text is filled in per export.
func (c *CLI) pipelineOptions(cfg config.Config, seed uint64) (pipeline.Options, error) {
	opts := pipeline.Options{
		Seed:         seed,
		CanvasWidth:  cfg.Canvas.Width,
		CanvasHeight: cfg.Canvas.Height,
		Scale:        cfg.Canvas.Scale,
		Columns:      cfg.Grid.Columns,
		Rows:         cfg.Grid.Rows,
		CellScale:    cfg.Grid.CellScale,
		Parameters: walk.Parameters{
			SmoothingPoints:    cfg.Walk.SmoothingPoints,
			SmoothingSharpness: cfg.Walk.SmoothingSharpness,
			KeepFraction:       cfg.Walk.KeepFraction,
		},
		Outline:         cfg.Grid.Outline,
		Markers:         cfg.Walk.Markers,
		SignatureHeight: cfg.Signature.Height,
		SignatureMargin: cfg.Signature.Margin,
		SignatureOffset: cfg.Signature.Offset,
		Formats:         cfg.Output.Formats,
		StrokeWidth:     cfg.Output.StrokeWidth,
		DPI:             cfg.Output.DPI,
		Compress:        cfg.Output.Compress,
		Logger:          c.Logger,
	}
	if cfg.Signature.Enabled && cfg.Signature.Font != "" {
		font, err := glyph.Load(cfg.Signature.Font)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Font = font
		opts.FontName = cfg.Signature.Font
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
