// Package fonts provides the embedded stroke font used for signatures.
//
// Plotter text must be drawn with single-line strokes, so the font is an
// SVG font whose glyph outlines are open polylines rather than filled
// contours. It is embedded directly into the binary using go:embed; any
// other SVG font (for example a Hershey font) can be loaded from disk with
// the glyph package instead.
package fonts

import (
	_ "embed"
)

// HexwalkSans is a monospaced single-stroke sans serif covering upper-case
// letters, digits, space and "?.-#". Lower-case text is drawn with the
// upper-case glyphs.

//go:embed hexwalk-sans.svg
var hexwalkSansSVG []byte

// HexwalkSansSVG returns the SVG font document.
func HexwalkSansSVG() []byte {
	return hexwalkSansSVG
}

// FontFamily is the font-family name declared by the embedded font.
const FontFamily = "hexwalk sans"
