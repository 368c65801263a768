package cache

import (
	"fmt"
	"time"
)

// Keyer derives cache keys from the options that determine an output.
type Keyer interface {
	// DrawingKey identifies a generated instruction program.
	DrawingKey(opts DrawingKeyOpts) string
	// ArtifactKey identifies a rendered file of a drawing.
	ArtifactKey(drawingKey string, opts ArtifactKeyOpts) string
}

// DrawingKeyOpts lists everything that changes a generated drawing.
type DrawingKeyOpts struct {
	Seed      uint64  `json:"seed"`
	Number    int     `json:"number,omitempty"`
	Columns   int     `json:"columns"`
	Rows      int     `json:"rows"`
	CellScale float64 `json:"cell_scale"`
	CanvasW   float64 `json:"canvas_w"`
	CanvasH   float64 `json:"canvas_h"`
	Scale     float64 `json:"scale"`

	SmoothingPoints    int     `json:"smoothing_points"`
	SmoothingSharpness float64 `json:"smoothing_sharpness"`
	KeepFraction       float64 `json:"keep_fraction"`

	Outline   bool   `json:"outline,omitempty"`
	Markers   bool   `json:"markers,omitempty"`
	Signature string `json:"signature,omitempty"`
	// Font identifies the signature font, e.g. a path or "builtin".
	Font string `json:"font,omitempty"`
}

// ArtifactKeyOpts lists the render options of an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	StrokeWidth float64 `json:"stroke_width"`
	DPI         float64 `json:"dpi,omitempty"`
	Limit       int     `json:"limit,omitempty"`
}

// DefaultKeyer hashes the option structs.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DrawingKey returns "drawing:<sha256>".
func (DefaultKeyer) DrawingKey(opts DrawingKeyOpts) string {
	return hashKey("drawing", opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(drawingKey string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), drawingKey, opts)
}

// Default entry lifetimes.
const (
	TTLDrawing  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
