package glyph

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Width returns the advance width of text rendered at the given em height,
// in drawing units.
func (f *Font) Width(text string, height float64) float64 {
	w := 0.0
	for _, r := range text {
		w += f.advance(r)
	}
	return w * height / f.UnitsPerEm
}

// Layout returns the strokes of text with the left end of its baseline at
// origin. Font units are scaled so that one em equals height; Y is flipped
// so glyphs stand upright in a Y-down drawing.
func (f *Font) Layout(text string, origin vec.Vec2, height float64) [][]vec.Vec2 {
	s := height / f.UnitsPerEm
	var (
		out [][]vec.Vec2
		pen float64
	)
	for _, r := range text {
		if g, ok := f.Glyph(r); ok {
			for _, stroke := range g.Strokes {
				pl := make([]vec.Vec2, len(stroke))
				for i, p := range stroke {
					pl[i] = vec.Vec2{
						X: origin.X + (pen+p.X)*s,
						Y: origin.Y - p.Y*s,
					}
				}
				out = append(out, pl)
			}
		}
		pen += f.advance(r)
	}
	return out
}

func (f *Font) advance(r rune) float64 {
	if g, ok := f.Glyph(r); ok {
		return g.Advance
	}
	return f.MissingAdvance
}

// Placement positions a signature in the bottom right corner of a canvas.
type Placement struct {
	Height float64 // em height
	Margin float64 // gap between the text end and the right edge
	Offset float64 // gap between the baseline and the bottom edge
}

// Sign lays out text right-aligned against the bottom right corner of a
// canvas of the given size.
func (f *Font) Sign(text string, canvas vec.Vec2, pl Placement) [][]vec.Vec2 {
	origin := vec.Vec2{
		X: canvas.X - f.Width(text, pl.Height) - pl.Margin,
		Y: canvas.Y - pl.Offset,
	}
	return f.Layout(text, origin, pl.Height)
}

// SignatureText formats the signature stamped on a numbered export.
func SignatureText(name string, number int) string {
	return fmt.Sprintf("%s %03d", name, number)
}
