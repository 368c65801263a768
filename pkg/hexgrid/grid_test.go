package hexgrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

const eps = 1e-9

func TestBuildTwoRows(t *testing.T) {
	g := Build(1, 2, 10, vec.Vec2{})

	require.Equal(t, 2, g.Len())
	assert.Equal(t, []int{1}, g.Cell(0).Neighbors)
	assert.Equal(t, []int{0}, g.Cell(1).Neighbors)
	assert.Equal(t, 10.0, g.CellScale)
}

func TestBuildIndexMatchesPosition(t *testing.T) {
	g := Build(4, 3, 5, vec.Vec2{})
	for i, c := range g.Cells {
		assert.Equal(t, i, c.Index)
	}
}

func TestAdjacencySymmetric(t *testing.T) {
	sizes := []struct{ cols, rows int }{
		{1, 1}, {1, 2}, {2, 1}, {3, 3}, {5, 4}, {10, 10}, {7, 2},
	}
	for _, sz := range sizes {
		g := Build(sz.cols, sz.rows, 3, vec.Vec2{})
		for _, a := range g.Cells {
			seen := map[int]bool{}
			for _, b := range a.Neighbors {
				require.NotEqual(t, a.Index, b, "self reference in %dx%d", sz.cols, sz.rows)
				require.False(t, seen[b], "duplicate neighbour %d of %d", b, a.Index)
				seen[b] = true
				require.True(t, g.IsNeighbor(b, a.Index),
					"%dx%d: %d→%d is not mirrored", sz.cols, sz.rows, a.Index, b)
			}
		}
	}
}

func TestInteriorCellsHaveSixNeighbors(t *testing.T) {
	g := Build(6, 6, 4, vec.Vec2{})
	for y := 1; y < g.Rows-1; y++ {
		for x := 1; x < g.Columns-1; x++ {
			c := g.Cell(y*g.Columns + x)
			assert.Len(t, c.Neighbors, 6, "cell (%d,%d)", x, y)
		}
	}
}

func TestNeighborsAreGeometricallyAdjacent(t *testing.T) {
	const r = 7.0
	g := Build(5, 5, r, vec.Vec2{X: 3, Y: -2})
	want := 2 * r * math.Cos(math.Pi/6)
	for _, c := range g.Cells {
		for _, n := range c.Neighbors {
			d := g.Position(n).Sub(c.Position).Length()
			assert.InDelta(t, want, d, 1e-6, "distance %d→%d", c.Index, n)
		}
	}
}

func TestCornerCells(t *testing.T) {
	g := Build(3, 3, 1, vec.Vec2{})
	tests := []struct {
		idx  int
		want []int
	}{
		{0, []int{1, 3}},          // even row, left edge: no diagonal
		{2, []int{1, 5, 4}},       // even row, right edge
		{3, []int{4, 0, 1, 6, 7}}, // odd row, left edge
		{5, []int{4, 2, 8}},       // odd row, right edge: no diagonal
		{6, []int{7, 3}},          // last even row, left edge
	}
	for _, tt := range tests {
		assert.ElementsMatch(t, tt.want, g.Cell(tt.idx).Neighbors, "cell %d", tt.idx)
	}
}

func TestOddRowsShifted(t *testing.T) {
	const r = 10.0
	g := Build(2, 2, r, vec.Vec2{})
	w := 2 * r * math.Cos(math.Pi/6)
	h := 3 * r * math.Sin(math.Pi/6)

	assert.InDelta(t, 0, g.Position(0).X, eps)
	assert.InDelta(t, w, g.Position(1).X, eps)
	assert.InDelta(t, w/2, g.Position(2).X, eps)
	assert.InDelta(t, h, g.Position(2).Y, eps)
}

func TestVerticesStartAtTop(t *testing.T) {
	const r = 2.0
	g := Build(1, 1, r, vec.Vec2{X: 5, Y: 5})
	c := g.Cell(0)

	assert.InDelta(t, 5, c.Vertices[0].X, eps)
	assert.InDelta(t, 5+r, c.Vertices[0].Y, eps)
	assert.InDelta(t, 5-r, c.Vertices[3].Y, eps)
	for _, v := range c.Vertices {
		assert.InDelta(t, r, v.Sub(c.Position).Length(), 1e-9)
	}
}

func TestExtent(t *testing.T) {
	ext := Extent(10, 10, 12)
	assert.InDelta(t, 10*12*2*math.Cos(math.Pi/6), ext.X, eps)
	assert.InDelta(t, 10*12*3*math.Sin(math.Pi/6), ext.Y, eps)
}

func TestCentered(t *testing.T) {
	canvas := vec.Vec2{X: 750, Y: 500}
	origin := Centered(10, 10, 12, canvas)
	ext := Extent(10, 10, 12)
	assert.InDelta(t, canvas.X, 2*origin.X+ext.X, eps)
	assert.InDelta(t, canvas.Y, 2*origin.Y+ext.Y, eps)
}

func TestOutlinesClosed(t *testing.T) {
	g := Build(2, 2, 3, vec.Vec2{})
	outlines := g.Outlines()
	require.Len(t, outlines, 4)
	for i, o := range outlines {
		require.Len(t, o, 7)
		assert.Equal(t, o[0], o[6], "outline %d not closed", i)
	}
}

func TestEdgeCount(t *testing.T) {
	// 2x2: 0-1, 0-2, 1-2, 1-3, 2-3.
	g := Build(2, 2, 1, vec.Vec2{})
	assert.Equal(t, 5, g.EdgeCount())
}

func TestBuildPanicsOnInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		scale      float64
	}{
		{"zero columns", 0, 3, 1},
		{"zero rows", 3, 0, 1},
		{"negative rows", 3, -1, 1},
		{"zero scale", 3, 3, 0},
		{"negative scale", 3, 3, -2},
		{"NaN scale", 3, 3, math.NaN()},
		{"infinite scale", 3, 3, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { Build(tt.cols, tt.rows, tt.scale, vec.Vec2{}) })
		})
	}
}
