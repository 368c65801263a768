// Package pkg provides the libraries behind hexwalk, a generator of
// plotter-ready line drawings.
//
// # Overview
//
// hexwalk tiles the canvas with hexagons, covers the tiling with random
// walks from cell center to cell center, smooths each walk into a curve
// and turns the curves into a program of pen-up and pen-down moves that
// never draws the same segment twice.
//
// # Architecture
//
//	seed + parameters
//	         ↓
//	    [hexgrid] (cells, neighbors, outlines)
//	         ↓
//	    [walk] (cover the grid with random walks)
//	         ↓
//	    [smooth] (resample walks into curves)
//	         ↓
//	    [plot] (deduplicated MoveTo/LineTo program)
//	         ↓
//	    [sink] (SVG, PDF, PNG, JSON, Graphviz)
//
// [pipeline] runs these stages with caching and is what the CLI, the
// preview server and the studio use.
//
// # Quick Start
//
//	grid := hexgrid.Build(10, 10, 12, hexgrid.Centered(10, 10, 12, vec.Vec2{X: 750, Y: 500}))
//	walks := walk.Generate(grid, pipeline.DefaultParameters, walk.NewRand(42))
//
//	b := plot.NewBuilder()
//	for _, w := range walks {
//	    b.Add(smooth.Smooth(w, 4, 0.9))
//	}
//	svg := sink.RenderSVG(sink.Document{
//	    Seed:         42,
//	    Canvas:       vec.Vec2{X: 150, Y: 100},
//	    Scale:        5,
//	    Instructions: b.Instructions(),
//	})
//
// # Supporting Packages
//
// [glyph] - SVG fonts and the signature stamped on each drawing.
//
// [fonts] - The embedded default font.
//
// [archive] - Export numbering and records (SQLite, MongoDB, memory).
//
// [cache] - Drawing and artifact cache (file, Redis, zstd compression).
//
// [config] - TOML and YAML configuration files.
//
// [errors] - Error codes shared by all packages.
//
// [observability] - Hooks for pipeline, cache and archive events.
//
// [buildinfo] - Version information set at build time.
//
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/pipeline
// [glyph]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/glyph
// [fonts]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/fonts
// [archive]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/archive
// [cache]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/buildinfo
//
// [hexgrid]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/hexgrid
// [walk]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/walk
// [smooth]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/smooth
// [plot]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/plot
// [sink]: https://pkg.go.dev/github.com/matzehuels/hexwalk/pkg/sink
package pkg
