package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/hexwalk/pkg/buildinfo"
	"github.com/matzehuels/hexwalk/pkg/plot"
)

// DefaultStrokeWidth is the pen width in millimetres.
const DefaultStrokeWidth = 0.4

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	strokeWidth float64
	limit       int
	pointLimit  int
}

// WithStrokeWidth sets the stroke width in millimetres.
func WithStrokeWidth(mm float64) SVGOption { return func(r *svgRenderer) { r.strokeWidth = mm } }

// WithLimit renders only the first n instructions.
func WithLimit(n int) SVGOption { return func(r *svgRenderer) { r.limit = n } }

// WithPointLimit renders only as much of the program as contains n drawn
// points.
func WithPointLimit(n int) SVGOption { return func(r *svgRenderer) { r.pointLimit = n } }

// RenderSVG renders the document as an SVG sized in millimetres. All
// instructions go into one path element; pen-up moves become M commands.
func RenderSVG(d Document, opts ...SVGOption) []byte {
	r := svgRenderer{strokeWidth: DefaultStrokeWidth, limit: -1, pointLimit: -1}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%smm" height="%smm">`+"\n",
		num(d.Canvas.X), num(d.Canvas.Y), num(d.Canvas.X), num(d.Canvas.Y))
	fmt.Fprintf(&buf, "  <!-- %s seed=%d -->\n", buildinfo.Creator(), d.Seed)

	instrs := truncate(d.Instructions, r.limit, r.pointLimit)
	if len(instrs) > 0 {
		fmt.Fprintf(&buf, `  <path fill="none" stroke="black" stroke-width="%s" d="`, num(r.strokeWidth))
		writePathData(&buf, d, instrs)
		buf.WriteString("\"/>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePathData(buf *bytes.Buffer, d Document, instrs []plot.Instruction) {
	for i, in := range instrs {
		if i > 0 {
			buf.WriteByte(' ')
		}
		p := d.toMM(in.Point)
		switch in.Op {
		case plot.OpMoveTo:
			buf.WriteByte('M')
		case plot.OpLineTo:
			buf.WriteByte('L')
		}
		buf.WriteString(num(p.X))
		buf.WriteByte(',')
		buf.WriteString(num(p.Y))
	}
}

// num formats v with at most three decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
