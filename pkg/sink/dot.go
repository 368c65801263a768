package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hexwalk/pkg/hexgrid"
)

// GridDOT converts the grid's adjacency graph to Graphviz DOT format. Each
// cell becomes a node labelled with its index and pinned to its center
// (in points, Y up) so position-aware engines such as neato -n reproduce the
// tiling. Every undirected link is written once.
func GridDOT(g *hexgrid.Grid) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=hexagon, style=filled, fillcolor=white, fontsize=10, width=0.4, height=0.4, fixedsize=true];\n")
	buf.WriteString("  edge [color=gray40];\n")
	buf.WriteString("\n")

	for _, c := range g.Cells {
		fmt.Fprintf(&buf, "  %d [pos=\"%s,%s!\"];\n", c.Index, num(c.Position.X), num(-c.Position.Y))
	}

	buf.WriteString("\n")
	for _, c := range g.Cells {
		for _, n := range c.Neighbors {
			if c.Index < n {
				fmt.Fprintf(&buf, "  %d -- %d;\n", c.Index, n)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element with one whose
// viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
