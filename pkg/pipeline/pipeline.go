// Package pipeline provides the drawing pipeline for hexwalk.
//
// This package implements the complete grid → walk → smooth → build →
// render pipeline used by the CLI, the preview server and the studio. By
// centralizing this logic every entry point produces the same drawing for
// the same seed and options.
//
// # Architecture
//
// The pipeline consists of two cached stages:
//
//  1. Generate: build the hexagonal grid, cover it with random walks,
//     smooth them and turn them (plus the optional grid outline, markers
//     and signature) into a deduplicated instruction program.
//  2. Render: export the program to SVG, PDF, PNG or JSON.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:      42,
//	    Signature: "ALICE 007",
//	    Formats:   []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/hexwalk/pkg/cache"
	"github.com/matzehuels/hexwalk/pkg/errors"
	"github.com/matzehuels/hexwalk/pkg/glyph"
	"github.com/matzehuels/hexwalk/pkg/sink"
	"github.com/matzehuels/hexwalk/pkg/walk"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultCanvasWidth  = 150.0 // mm
	DefaultCanvasHeight = 100.0 // mm
	DefaultScale        = 5.0   // drawing units per mm

	DefaultColumns   = 10
	DefaultRows      = 10
	DefaultCellScale = 12.0

	DefaultSignatureHeight = 9.0
	DefaultSignatureMargin = 15.0
	DefaultSignatureOffset = 3.0

	DefaultDPI = 96.0
)

// DefaultParameters are the walk and smoothing parameters used when none
// are given.
var DefaultParameters = walk.Parameters{
	SmoothingPoints:    4,
	SmoothingSharpness: 0.9,
	KeepFraction:       0.5,
}

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the drawing pipeline.
// Zero values are replaced by the defaults above.
type Options struct {
	// Generate options
	Seed         uint64  `json:"seed"`
	Number       int     `json:"number,omitempty"` // export number recorded in the document
	CanvasWidth  float64 `json:"canvas_width,omitempty"`
	CanvasHeight float64 `json:"canvas_height,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
	Columns      int     `json:"columns,omitempty"`
	Rows         int     `json:"rows,omitempty"`
	CellScale    float64 `json:"cell_scale,omitempty"`

	// Parameters replaces DefaultParameters only if at least one field is
	// non-zero.
	Parameters walk.Parameters `json:"parameters"`

	Outline bool `json:"outline,omitempty"` // also draw the hexagon borders
	Markers bool `json:"markers,omitempty"` // circle walks of a single cell

	// Signature is the text stamped bottom right; empty disables it.
	Signature       string  `json:"signature,omitempty"`
	FontName        string  `json:"font,omitempty"` // identifies Font in cache keys
	SignatureHeight float64 `json:"signature_height,omitempty"`
	SignatureMargin float64 `json:"signature_margin,omitempty"`
	SignatureOffset float64 `json:"signature_offset,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"` // mm
	DPI         float64  `json:"dpi,omitempty"`
	Compress    bool     `json:"compress,omitempty"` // zstd-compress JSON
	Limit       int      `json:"limit,omitempty"`    // render only the first n instructions; 0 renders all

	Refresh bool `json:"refresh,omitempty"` // bypass cached drawings

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Font   *glyph.Font `json:"-"` // nil uses the built-in font

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the generated drawing.
	Document sink.Document

	// DrawingKey is the cache key of the drawing; artifacts derive theirs
	// from it.
	DrawingKey string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells        int
	Instructions int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the drawing came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidParameters, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option.
// Conditions the core packages would panic on are reported as
// [errors.ErrCodeInvalidParameters] errors instead. This method is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetGenerateDefaults()
	o.SetRenderDefaults()
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults sets default values for drawing generation.
func (o *Options) SetGenerateDefaults() {
	if o.CanvasWidth == 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.CanvasHeight == 0 {
		o.CanvasHeight = DefaultCanvasHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.CellScale == 0 {
		o.CellScale = DefaultCellScale
	}
	if o.Parameters == (walk.Parameters{}) {
		o.Parameters = DefaultParameters
	}
	if o.SignatureHeight == 0 {
		o.SignatureHeight = DefaultSignatureHeight
	}
	if o.SignatureMargin == 0 {
		o.SignatureMargin = DefaultSignatureMargin
	}
	if o.SignatureOffset == 0 {
		o.SignatureOffset = DefaultSignatureOffset
	}
	if o.FontName == "" {
		o.FontName = "builtin"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForGenerate checks the generate options.
func (o *Options) ValidateForGenerate() error {
	if !(o.CanvasWidth > 0 && o.CanvasHeight > 0 && o.Scale > 0) {
		return invalid("canvas size and scale must be positive")
	}
	if o.Number < 0 {
		return invalid("export number must not be negative, got %d", o.Number)
	}
	if o.Columns < 1 || o.Rows < 1 {
		return invalid("grid needs at least one column and one row, got %dx%d", o.Columns, o.Rows)
	}
	if !(o.CellScale > 0) {
		return invalid("cell scale must be positive, got %v", o.CellScale)
	}
	if err := o.Parameters.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameters, err, "walk parameters")
	}
	if o.Signature != "" {
		if err := errors.ValidateSignatureName(o.Signature); err != nil {
			return err
		}
		if !(o.SignatureHeight > 0) {
			return invalid("signature height must be positive, got %v", o.SignatureHeight)
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = sink.DefaultStrokeWidth
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender checks the render options.
func (o *Options) ValidateForRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if !(o.StrokeWidth > 0) || !(o.DPI > 0) {
		return invalid("stroke width and dpi must be positive")
	}
	if o.Limit < 0 {
		return invalid("limit must not be negative, got %d", o.Limit)
	}
	return nil
}

// Canvas returns the paper size in millimetres.
func (o *Options) Canvas() vec.Vec2 {
	return vec.Vec2{X: o.CanvasWidth, Y: o.CanvasHeight}
}

// DrawingKeyOpts returns cache key options for drawing generation.
func (o *Options) DrawingKeyOpts() cache.DrawingKeyOpts {
	k := cache.DrawingKeyOpts{
		Seed:               o.Seed,
		Number:             o.Number,
		Columns:            o.Columns,
		Rows:               o.Rows,
		CellScale:          o.CellScale,
		CanvasW:            o.CanvasWidth,
		CanvasH:            o.CanvasHeight,
		Scale:              o.Scale,
		SmoothingPoints:    o.Parameters.SmoothingPoints,
		SmoothingSharpness: o.Parameters.SmoothingSharpness,
		KeepFraction:       o.Parameters.KeepFraction,
		Outline:            o.Outline,
		Markers:            o.Markers,
		Signature:          o.Signature,
	}
	if o.Signature != "" {
		k.Font = fmt.Sprintf("%s@%g/%g/%g", o.FontName, o.SignatureHeight, o.SignatureMargin, o.SignatureOffset)
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		StrokeWidth: o.StrokeWidth,
		Limit:       o.Limit,
	}
	switch format {
	case FormatPNG:
		k.DPI = o.DPI
	case FormatJSON:
		if o.Compress {
			k.Format = FormatJSON + "+zstd"
		}
	}
	return k
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidParameters, format, args...)
}
