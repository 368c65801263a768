package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"github.com/matzehuels/hexwalk/pkg/plot"
)

// pointsPerMM converts millimetres to PDF points.
const pointsPerMM = 72 / 25.4

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	strokeWidth float64
	limit       int
}

// WithPDFStrokeWidth sets the stroke width in millimetres.
func WithPDFStrokeWidth(mm float64) PDFOption { return func(r *pdfRenderer) { r.strokeWidth = mm } }

// WithPDFLimit renders only the first n instructions.
func WithPDFLimit(n int) PDFOption { return func(r *pdfRenderer) { r.limit = n } }

// RenderPDF renders the document as a single PDF page the size of the
// canvas. Strokes use round caps and joins like a ballpoint pen.
func RenderPDF(d Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{strokeWidth: DefaultStrokeWidth, limit: -1}
	for _, opt := range opts {
		opt(&r)
	}
	if d.Scale <= 0 {
		return nil, fmt.Errorf("pdf: scale must be positive, got %v", d.Scale)
	}

	dir, err := os.MkdirTemp("", "hexwalk-pdf-")
	if err != nil {
		return nil, fmt.Errorf("pdf: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "drawing.pdf")

	w, h := d.Canvas.X*pointsPerMM, d.Canvas.Y*pointsPerMM
	page, err := document.CreateSinglePage(path, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return nil, fmt.Errorf("pdf: create page: %w", err)
	}

	// Drawing units to points, with the origin moved to the top left.
	k := pointsPerMM / d.Scale
	page.Transform(matrix.Matrix{k, 0, 0, -k, 0, h})

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(r.strokeWidth * d.Scale)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	strokes := plot.Strokes(plot.Prefix(d.Instructions, r.limit))
	for _, s := range strokes {
		page.MoveTo(s[0].X, s[0].Y)
		for _, p := range s[1:] {
			page.LineTo(p.X, p.Y)
		}
	}
	if len(strokes) > 0 {
		page.Stroke()
	}

	if err := page.Close(); err != nil {
		return nil, fmt.Errorf("pdf: write: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: read back: %w", err)
	}
	return data, nil
}
