// Package sink provides output formats for hexwalk drawings.
//
// # Overview
//
// A "sink" transforms a [Document] (drawing instructions plus the canvas it
// was generated for) into a final output format. This package provides
// renderers for:
//
//   - SVG: Plotter-ready vector file in millimetres
//   - PDF: Single page sized to the canvas
//   - PNG: Rasterised preview at a chosen DPI
//   - JSON: Drawing interchange format, optionally zstd-compressed
//   - DOT: The hexagonal grid's adjacency graph, via Graphviz
//
// # Units
//
// Instructions are in drawing units. The document's Scale says how many
// drawing units make one millimetre; the canvas is given in millimetres.
// Every sink divides by the scale, so a drawing built at scale 5 on a
// 150×100 mm canvas spans 750×500 drawing units.
//
// # SVG Output
//
// [RenderSVG] produces a single <path> with fill none and a black stroke,
// the format plotter software imports directly:
//
//	svg := sink.RenderSVG(doc, sink.WithStrokeWidth(0.4))
//
// [WithLimit] and [WithPointLimit] cut the program short, which is how the
// preview server animates a drawing.
//
// # JSON Output
//
// [RenderJSON] exports the document with its generation metadata (seed,
// parameters, export number). [ParseJSON] reads it back, transparently
// decompressing zstd input and validating it against the drawing schema
// before decoding.
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(d Document, opts ...FooOption) ([]byte, error)
//  2. Walk the instructions with a switch over plot.Op, or use plot.Strokes
//  3. Register the format in pipeline.Formats and internal/cli
package sink
