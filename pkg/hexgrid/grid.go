package hexgrid

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

var (
	sin30 = math.Sin(math.Pi / 6)
	cos30 = math.Cos(math.Pi / 6)
)

// Cell is a single hexagon of the tiling.
type Cell struct {
	Index     int
	Position  vec.Vec2
	Neighbors []int
	Vertices  [6]vec.Vec2
}

// Grid is an immutable hexagonal tiling.
type Grid struct {
	Cells     []Cell
	CellScale float64
	Columns   int
	Rows      int
}

// Extent returns the bounding size of a columns×rows tiling. It does not
// need a Grid and is used to center a grid on a canvas before building it.
func Extent(columns, rows int, cellScale float64) vec.Vec2 {
	return vec.Vec2{
		X: float64(columns) * cellScale * 2 * cos30,
		Y: float64(rows) * cellScale * 3 * sin30,
	}
}

// Centered returns the origin that centers a columns×rows tiling on a
// canvas of the given size.
func Centered(columns, rows int, cellScale float64, canvas vec.Vec2) vec.Vec2 {
	ext := Extent(columns, rows, cellScale)
	return vec.Vec2{X: (canvas.X - ext.X) / 2, Y: (canvas.Y - ext.Y) / 2}
}

// Build lays out a columns×rows tiling whose first cell center sits at
// origin. It panics if columns or rows is less than one or if cellScale is
// not a positive finite number.
func Build(columns, rows int, cellScale float64, origin vec.Vec2) *Grid {
	if columns < 1 || rows < 1 {
		panic(fmt.Sprintf("hexgrid: invalid dimensions %dx%d", columns, rows))
	}
	if !(cellScale > 0) || math.IsInf(cellScale, 0) {
		panic(fmt.Sprintf("hexgrid: invalid cell scale %v", cellScale))
	}

	g := &Grid{
		Cells:     make([]Cell, 0, columns*rows),
		CellScale: cellScale,
		Columns:   columns,
		Rows:      rows,
	}

	co := cos30 * cellScale
	si := sin30 * cellScale
	width := co * 2
	height := si * 3
	maxX, maxY := columns-1, rows-1

	for y := range rows {
		for x := range columns {
			pos := origin.Add(vec.Vec2{X: float64(x) * width, Y: float64(y) * height})
			odd := y%2 == 1
			if odd {
				pos.X += co
			}

			idx := len(g.Cells)
			c := Cell{Index: idx, Position: pos, Neighbors: make([]int, 0, 6)}

			if x > 0 {
				c.Neighbors = append(c.Neighbors, idx-1)
			}
			if x < maxX {
				c.Neighbors = append(c.Neighbors, idx+1)
			}

			// Diagonal column for the rows above and below.
			dx, diagonal := -1, x > 0
			if odd {
				dx, diagonal = 1, x < maxX
			}
			if y > 0 {
				c.Neighbors = append(c.Neighbors, idx-columns)
				if diagonal {
					c.Neighbors = append(c.Neighbors, idx-columns+dx)
				}
			}
			if y < maxY {
				c.Neighbors = append(c.Neighbors, idx+columns)
				if diagonal {
					c.Neighbors = append(c.Neighbors, idx+columns+dx)
				}
			}

			c.Vertices = ring(pos, cellScale)
			g.Cells = append(g.Cells, c)
		}
	}
	return g
}

// ring returns the six vertices of the hexagon centered at c, starting at
// the top vertex.
func ring(c vec.Vec2, r float64) [6]vec.Vec2 {
	w, h := r*cos30, r*sin30
	return [6]vec.Vec2{
		c.Add(vec.Vec2{X: 0, Y: r}),
		c.Add(vec.Vec2{X: -w, Y: h}),
		c.Add(vec.Vec2{X: -w, Y: -h}),
		c.Add(vec.Vec2{X: 0, Y: -r}),
		c.Add(vec.Vec2{X: w, Y: -h}),
		c.Add(vec.Vec2{X: w, Y: h}),
	}
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.Cells) }

// Cell returns the cell at index i.
func (g *Grid) Cell(i int) Cell { return g.Cells[i] }

// Position returns the center of cell i.
func (g *Grid) Position(i int) vec.Vec2 { return g.Cells[i].Position }

// IsNeighbor reports whether b is listed as a neighbour of a.
func (g *Grid) IsNeighbor(a, b int) bool {
	for _, n := range g.Cells[a].Neighbors {
		if n == b {
			return true
		}
	}
	return false
}

// EdgeCount returns the number of undirected adjacency links.
func (g *Grid) EdgeCount() int {
	n := 0
	for _, c := range g.Cells {
		n += len(c.Neighbors)
	}
	return n / 2
}

// Outlines returns every cell outline as a closed polyline of seven points
// (the first vertex repeated at the end). Adjacent cells share edges, so the
// result is meant to be fed through an edge-deduplicating consumer.
func (g *Grid) Outlines() [][]vec.Vec2 {
	out := make([][]vec.Vec2, len(g.Cells))
	for i, c := range g.Cells {
		line := make([]vec.Vec2, 0, 7)
		line = append(line, c.Vertices[:]...)
		out[i] = append(line, c.Vertices[0])
	}
	return out
}
