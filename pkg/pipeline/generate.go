package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/hexwalk/pkg/glyph"
	"github.com/matzehuels/hexwalk/pkg/hexgrid"
	"github.com/matzehuels/hexwalk/pkg/plot"
	"github.com/matzehuels/hexwalk/pkg/sink"
	"github.com/matzehuels/hexwalk/pkg/smooth"
	"github.com/matzehuels/hexwalk/pkg/walk"
)

// markerSegments is the number of sides of a single-cell marker.
const markerSegments = 8

// Drawing is a generated drawing together with the intermediate sizes the
// CLI reports.
type Drawing struct {
	Document sink.Document
	Grid     *hexgrid.Grid
	Walks    int
}

// BuildGrid lays out the tiling centered on the canvas (in drawing units).
func BuildGrid(opts Options) *hexgrid.Grid {
	canvas := opts.Canvas().Mul(opts.Scale)
	origin := hexgrid.Centered(opts.Columns, opts.Rows, opts.CellScale, canvas)
	return hexgrid.Build(opts.Columns, opts.Rows, opts.CellScale, origin)
}

// Generate runs the generate stage without caching. Options must have been
// validated; ctx is checked between stages.
func Generate(ctx context.Context, opts Options) (Drawing, error) {
	logger := opts.Logger

	grid := BuildGrid(opts)
	logger.Debug("built grid", "cells", grid.Len(), "links", grid.EdgeCount())

	rng := walk.NewRand(opts.Seed)
	every := max(grid.Len()/10, 1)
	walks := walk.Generate(grid, opts.Parameters, rng, walk.WithProgress(every, func(remaining, total int) {
		logger.Debug("walking", "visited", total-remaining, "total", total)
	}))
	logger.Debug("generated walks", "kept", len(walks), "points", walk.Points(walks))
	if err := ctx.Err(); err != nil {
		return Drawing{}, err
	}

	b := plot.NewBuilder()
	for _, w := range walks {
		if len(w) == 1 && opts.Markers {
			b.Add(plot.Circle(w[0], opts.CellScale/4, markerSegments))
			continue
		}
		b.Add(smooth.Smooth(w, opts.Parameters.SmoothingPoints, opts.Parameters.SmoothingSharpness))
	}
	if opts.Outline {
		b.AddAll(grid.Outlines()...)
	}
	if opts.Signature != "" {
		b.AddAll(signature(opts)...)
	}
	if err := ctx.Err(); err != nil {
		return Drawing{}, err
	}

	doc := sink.Document{
		ID:           uuid.NewString(),
		Number:       opts.Number,
		Seed:         opts.Seed,
		Canvas:       opts.Canvas(),
		Scale:        opts.Scale,
		Parameters:   opts.Parameters,
		Instructions: b.Instructions(),
		CreatedAt:    time.Now().UTC(),
	}
	logger.Debug("built program", "instructions", len(doc.Instructions), "edges", b.Edges())
	return Drawing{Document: doc, Grid: grid, Walks: len(walks)}, nil
}

func signature(opts Options) [][]vec.Vec2 {
	font := opts.Font
	if font == nil {
		font = glyph.Default()
	}
	return font.Sign(opts.Signature, opts.Canvas().Mul(opts.Scale), glyph.Placement{
		Height: opts.SignatureHeight,
		Margin: opts.SignatureMargin,
		Offset: opts.SignatureOffset,
	})
}
