package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/hexwalk/pkg/plot"
)

// DefaultDPI is the PNG resolution.
const DefaultDPI = 96

// maxPixels bounds the raster size.
const maxPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	dpi         float64
	strokeWidth float64
	limit       int
	pointLimit  int
}

// WithDPI sets the PNG resolution in dots per inch.
func WithDPI(dpi float64) PNGOption { return func(r *pngRenderer) { r.dpi = dpi } }

// WithPNGStrokeWidth sets the stroke width in millimetres.
func WithPNGStrokeWidth(mm float64) PNGOption { return func(r *pngRenderer) { r.strokeWidth = mm } }

// WithPNGLimit renders only the first n instructions.
func WithPNGLimit(n int) PNGOption { return func(r *pngRenderer) { r.limit = n } }

// WithPNGPointLimit renders only as much of the program as contains n
// drawn points.
func WithPNGPointLimit(n int) PNGOption { return func(r *pngRenderer) { r.pointLimit = n } }

// RenderPNG rasterises the document's strokes in black on white.
func RenderPNG(d Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{dpi: DefaultDPI, strokeWidth: DefaultStrokeWidth, limit: -1, pointLimit: -1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.dpi <= 0 || d.Scale <= 0 {
		return nil, fmt.Errorf("png: dpi and scale must be positive")
	}

	pxPerMM := r.dpi / 25.4
	w := int(math.Ceil(d.Canvas.X * pxPerMM))
	h := int(math.Ceil(d.Canvas.Y * pxPerMM))
	if w < 1 || h < 1 || w*h > maxPixels {
		return nil, fmt.Errorf("png: invalid image size %dx%d", w, h)
	}

	mask := rasterize(w, h, pxPerMM/d.Scale, r.strokeWidth*pxPerMM, truncate(d.Instructions, r.limit, r.pointLimit))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.DrawMask(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, mask, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize draws the strokes of instrs into a w×h coverage mask. The
// canvas is scaled uniformly to fit and strokes are strokePx wide.
func Rasterize(d Document, w, h int, strokePx float64, instrs []plot.Instruction) *image.Alpha {
	size := d.Size()
	if w < 1 || h < 1 || size.X <= 0 || size.Y <= 0 {
		return image.NewAlpha(image.Rect(0, 0, max(w, 0), max(h, 0)))
	}
	k := math.Min(float64(w)/size.X, float64(h)/size.Y)
	return rasterize(w, h, k, strokePx, instrs)
}

// rasterize scales drawing units by k.
func rasterize(w, h int, k, strokePx float64, instrs []plot.Instruction) *image.Alpha {
	half := float32(math.Max(strokePx, 1) / 2)
	ras := vector.NewRasterizer(w, h)
	for _, s := range plot.Strokes(instrs) {
		for i, p := range s {
			q := vec.Vec2{X: p.X * k, Y: p.Y * k}
			dot(ras, q, half)
			if i > 0 {
				prev := vec.Vec2{X: s[i-1].X * k, Y: s[i-1].Y * k}
				segment(ras, prev, q, half)
			}
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// segment adds a rectangle of half-width hw around a→b. All shapes share
// the same winding so overlaps accumulate instead of cancelling.
func segment(ras *vector.Rasterizer, a, b vec.Vec2, hw float32) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	nx, ny := float32(d.Y/l)*hw, float32(-d.X/l)*hw
	ax, ay, bx, by := float32(a.X), float32(a.Y), float32(b.X), float32(b.Y)
	ras.MoveTo(ax+nx, ay+ny)
	ras.LineTo(bx+nx, by+ny)
	ras.LineTo(bx-nx, by-ny)
	ras.LineTo(ax-nx, ay-ny)
	ras.ClosePath()
}

// dot adds an octagon of radius hw, giving round caps and joins.
func dot(ras *vector.Rasterizer, c vec.Vec2, hw float32) {
	ring := plot.Circle(c, float64(hw), 8)
	ras.MoveTo(float32(ring[0].X), float32(ring[0].Y))
	for _, p := range ring[1 : len(ring)-1] {
		ras.LineTo(float32(p.X), float32(p.Y))
	}
	ras.ClosePath()
}
