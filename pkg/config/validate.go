package config

import (
	"math"
	"slices"
	"time"

	"github.com/matzehuels/hexwalk/pkg/errors"
)

// Formats lists the export formats a configuration may request.
var Formats = []string{"svg", "pdf", "png", "json"}

// Validate reports the first invalid setting as an
// [errors.ErrCodeInvalidConfig] error.
func (c Config) Validate() error {
	if !positive(c.Canvas.Width) || !positive(c.Canvas.Height) || !positive(c.Canvas.Scale) {
		return invalid("canvas width, height and scale must be positive")
	}
	if c.Grid.Columns < 1 || c.Grid.Rows < 1 {
		return invalid("grid needs at least one column and one row, got %dx%d", c.Grid.Columns, c.Grid.Rows)
	}
	if !positive(c.Grid.CellScale) {
		return invalid("grid cell_scale must be positive, got %v", c.Grid.CellScale)
	}
	if c.Walk.KeepFraction < 0 || c.Walk.KeepFraction > 1 {
		return invalid("walk keep_fraction must be in [0,1], got %v", c.Walk.KeepFraction)
	}
	if c.Walk.SmoothingPoints < 0 {
		return invalid("walk smoothing_points must be non-negative, got %d", c.Walk.SmoothingPoints)
	}
	if c.Walk.SmoothingSharpness < 0 || c.Walk.SmoothingSharpness > 1 {
		return invalid("walk smoothing_sharpness must be in [0,1], got %v", c.Walk.SmoothingSharpness)
	}

	if c.Signature.Enabled {
		if err := errors.ValidateSignatureName(c.Signature.Name); err != nil {
			return err
		}
		if !positive(c.Signature.Height) {
			return invalid("signature height must be positive, got %v", c.Signature.Height)
		}
	}

	if err := errors.ValidateFilePrefix(c.Output.Prefix); err != nil {
		return err
	}
	for _, f := range c.Output.Formats {
		if !slices.Contains(Formats, f) {
			return invalid("unknown output format %q", f)
		}
	}
	if !positive(c.Output.StrokeWidth) || !positive(c.Output.DPI) {
		return invalid("output stroke_width and dpi must be positive")
	}

	switch c.Archive.Backend {
	case BackendSQLite, BackendNone, "":
	case BackendMongo:
		if c.Archive.URI == "" {
			return invalid("archive backend mongo needs a uri")
		}
	default:
		return invalid("unknown archive backend %q", c.Archive.Backend)
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone, "":
	case BackendRedis:
		if c.Cache.URL == "" {
			return invalid("cache backend redis needs a url")
		}
	default:
		return invalid("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache ttl")
		}
	}

	if err := errors.ValidateListenAddr(c.Preview.Addr); err != nil {
		return err
	}
	if c.Preview.Batch < 1 {
		return invalid("preview batch must be at least 1, got %d", c.Preview.Batch)
	}
	if d, err := time.ParseDuration(c.Preview.Interval); err != nil || d <= 0 {
		return invalid("preview interval must be a positive duration, got %q", c.Preview.Interval)
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
