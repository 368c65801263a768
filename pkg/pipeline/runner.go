package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hexwalk/pkg/cache"
	"github.com/matzehuels/hexwalk/pkg/observability"
	"github.com/matzehuels/hexwalk/pkg/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Generate
	generateStart := time.Now()
	doc, key, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Document = doc
	result.DrawingKey = key
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.Cells = opts.Columns * opts.Rows
	result.Stats.Instructions = len(doc.Instructions)
	result.CacheInfo.GenerateHit = hit

	r.Logger.Info("generated drawing",
		"seed", doc.Seed,
		"instructions", len(doc.Instructions),
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, key, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo generates a drawing with caching and returns its
// cache key and whether it was a cache hit.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (sink.Document, string, bool, error) {
	r.applyLogger(&opts)
	opts.SetGenerateDefaults()
	if err := opts.ValidateForGenerate(); err != nil {
		return sink.Document{}, "", false, err
	}

	key := r.Keyer.DrawingKey(opts.DrawingKeyOpts())
	hooks := observability.Pipeline()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			doc, err := sink.ParseJSON(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "drawing")
				return doc, key, true, nil
			}
			r.Logger.Warn("discarding unreadable cached drawing", "key", key, "error", err)
		} else if err != nil {
			r.Logger.Warn("cache unavailable", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "drawing")
	}

	start := time.Now()
	hooks.OnGenerateStart(ctx, opts.Seed, opts.Columns*opts.Rows)
	d, err := Generate(ctx, opts)
	hooks.OnGenerateComplete(ctx, opts.Seed, len(d.Document.Instructions), time.Since(start), err)
	if err != nil {
		return sink.Document{}, "", false, err
	}

	if data, err := sink.RenderJSON(d.Document); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLDrawing)); err == nil {
			observability.Cache().OnCacheSet(ctx, "drawing", len(data))
		}
	}
	return d.Document, key, false, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache information.
func (r *Runner) Generate(ctx context.Context, opts Options) (sink.Document, error) {
	doc, _, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return doc, err
}

// RenderWithCacheInfo renders artifacts with caching and reports whether
// every one came from the cache. drawingKey scopes the artifact keys; an
// empty key (e.g. for an imported drawing) disables artifact caching.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc sink.Document, drawingKey string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := drawingKey != ""

	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		var key string
		if drawingKey != "" {
			key = r.Keyer.ArtifactKey(drawingKey, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
		}

		data, err := RenderFormat(doc, format, opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data

		if key != "" {
			if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
		if err := ctx.Err(); err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc sink.Document, drawingKey string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, drawingKey, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
