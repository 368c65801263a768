package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func pt(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func countLines(instrs []Instruction) int {
	n := 0
	for _, in := range instrs {
		if in.Op == OpLineTo {
			n++
		}
	}
	return n
}

func TestBuildReversedSegmentIsSkipped(t *testing.T) {
	got := Build(
		[]vec.Vec2{pt(0, 0), pt(10, 0)},
		[]vec.Vec2{pt(10, 0), pt(0, 0)},
	)
	want := []Instruction{
		MoveTo(pt(0, 0)),
		LineTo(pt(10, 0)),
		MoveTo(pt(10, 0)),
		MoveTo(pt(0, 0)),
	}
	assert.Equal(t, want, got)
}

func TestBuilderCursorAdvancesOverSkippedSegment(t *testing.T) {
	b := NewBuilder()
	b.Add([]vec.Vec2{pt(0, 0), pt(1, 0)})
	b.Add([]vec.Vec2{pt(1, 0), pt(0, 0), pt(0, 1)})

	want := []Instruction{
		MoveTo(pt(0, 0)),
		LineTo(pt(1, 0)),
		MoveTo(pt(1, 0)),
		MoveTo(pt(0, 0)),
		LineTo(pt(0, 1)),
	}
	assert.Equal(t, want, b.Instructions())
	assert.Equal(t, 2, b.Edges())
}

func TestBuilderIdempotentAcrossPasses(t *testing.T) {
	walks := [][]vec.Vec2{
		{pt(0, 0), pt(5, 0), pt(5, 5), pt(0, 5)},
		{pt(0, 5), pt(0, 0), pt(5, 5)},
		{pt(2.5, 2.5)},
	}
	b := NewBuilder()
	b.AddAll(walks...)
	first := len(b.Instructions())
	lines := countLines(b.Instructions())
	assert.Equal(t, 5, lines)

	b.AddAll(walks...)
	second := b.Instructions()[first:]
	assert.Zero(t, countLines(second))
	for _, in := range second {
		assert.Equal(t, OpMoveTo, in.Op)
	}
}

func TestBuilderNoSegmentDrawnTwice(t *testing.T) {
	walks := [][]vec.Vec2{
		{pt(0, 0), pt(1, 1), pt(2, 0), pt(1, 1), pt(0, 0)},
		{pt(2, 0), pt(1, 1)},
	}
	seen := map[EdgeKey]bool{}
	var pen vec.Vec2
	for _, in := range Build(walks...) {
		if in.Op == OpLineTo {
			key := NewEdgeKey(pen, in.Point)
			require.False(t, seen[key], "segment %v drawn twice", key)
			seen[key] = true
		}
		pen = in.Point
	}
	assert.Len(t, seen, 2)
}

func TestBuilderEdgeCases(t *testing.T) {
	assert.Empty(t, Build())
	assert.Empty(t, Build(nil, []vec.Vec2{}))
	assert.Equal(t, []Instruction{MoveTo(pt(3, 4))}, Build([]vec.Vec2{pt(3, 4)}))
}

func TestBuilderReset(t *testing.T) {
	seg := []vec.Vec2{pt(0, 0), pt(1, 0)}
	b := NewBuilder()
	b.Add(seg)
	b.Reset()
	assert.Empty(t, b.Instructions())
	assert.Zero(t, b.Edges())

	b.Add(seg)
	assert.Equal(t, 1, countLines(b.Instructions()))
}

func TestBuilderInstructionsCapped(t *testing.T) {
	b := NewBuilder()
	b.Add([]vec.Vec2{pt(0, 0), pt(1, 0)})
	got := b.Instructions()
	_ = append(got, MoveTo(pt(9, 9)))
	b.Add([]vec.Vec2{pt(5, 5)})
	assert.Equal(t, MoveTo(pt(5, 5)), b.Instructions()[2])
}

func TestNewEdgeKey(t *testing.T) {
	tests := []struct {
		name string
		a, b vec.Vec2
		c, d vec.Vec2
		same bool
	}{
		{"reversed", pt(1, 2), pt(3, 4), pt(3, 4), pt(1, 2), true},
		{"below quantum", pt(1.0001, 2), pt(3, 4), pt(1.0004, 2), pt(3, 4), true},
		{"one quantum apart", pt(1.0015, 2), pt(3, 4), pt(1.0025, 2), pt(3, 4), false},
		{"tie on x", pt(1, 5), pt(1, 2), pt(1, 2), pt(1, 5), true},
		{"different", pt(0, 0), pt(1, 0), pt(0, 0), pt(0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k1, k2 := NewEdgeKey(tt.a, tt.b), NewEdgeKey(tt.c, tt.d)
			if tt.same {
				assert.Equal(t, k1, k2)
			} else {
				assert.NotEqual(t, k1, k2)
			}
		})
	}

	k := NewEdgeKey(pt(2, 1), pt(1, 7))
	assert.Equal(t, EdgeKey{AX: 1000, AY: 7000, BX: 2000, BY: 1000}, k)
}

func TestPrefix(t *testing.T) {
	instrs := Build([]vec.Vec2{pt(0, 0), pt(1, 0), pt(2, 0), pt(3, 0)})
	orig := append([]Instruction(nil), instrs...)

	assert.Len(t, Prefix(instrs, 2), 2)
	assert.Len(t, Prefix(instrs, -1), 4)
	assert.Len(t, Prefix(instrs, 100), 4)
	assert.Empty(t, Prefix(instrs, 0))

	p := Prefix(instrs, 2)
	assert.Equal(t, 2, cap(p))
	_ = append(p, MoveTo(pt(9, 9)))
	assert.Equal(t, orig, instrs)
}

func TestPrefixPoints(t *testing.T) {
	instrs := Build(
		[]vec.Vec2{pt(0, 0), pt(1, 0), pt(2, 0)},
		[]vec.Vec2{pt(5, 5), pt(6, 5)},
	)
	// M L L M L
	tests := []struct {
		max  int
		want int
	}{
		{-1, 5},
		{0, 1},
		{1, 2},
		{2, 4},
		{3, 5},
		{10, 5},
	}
	for _, tt := range tests {
		assert.Len(t, PrefixPoints(instrs, tt.max), tt.want, "max %d", tt.max)
	}
}

func TestStrokes(t *testing.T) {
	instrs := []Instruction{
		MoveTo(pt(0, 0)),
		LineTo(pt(1, 0)),
		LineTo(pt(1, 1)),
		MoveTo(pt(4, 4)),
		MoveTo(pt(5, 5)),
		LineTo(pt(6, 5)),
		MoveTo(pt(9, 9)),
	}
	want := [][]vec.Vec2{
		{pt(0, 0), pt(1, 0), pt(1, 1)},
		{pt(5, 5), pt(6, 5)},
	}
	assert.Equal(t, want, Strokes(instrs))
	assert.Empty(t, Strokes(nil))
}

func TestSummarize(t *testing.T) {
	instrs := []Instruction{
		MoveTo(pt(1, 1)),
		LineTo(pt(4, 1)),
		LineTo(pt(4, 5)),
		MoveTo(pt(4, 8)),
		LineTo(pt(0, 8)),
	}
	s := Summarize(instrs)
	assert.Equal(t, 2, s.Moves)
	assert.Equal(t, 3, s.Lines)
	assert.InDelta(t, 11, s.DrawLength, 1e-12)
	assert.InDelta(t, 3, s.TravelLength, 1e-12)
	assert.Equal(t, Bounds{Min: pt(0, 1), Max: pt(4, 8)}, s.Bounds)
	assert.Equal(t, pt(4, 7), s.Bounds.Size())

	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestCircle(t *testing.T) {
	c := Circle(pt(10, 20), 3, 8)
	require.Len(t, c, 9)
	assert.Equal(t, c[0], c[8])
	for _, p := range c {
		assert.InDelta(t, 3, p.Sub(pt(10, 20)).Length(), 1e-9)
	}
	assert.InDelta(t, 2*3*math.Sin(math.Pi/8), c[1].Sub(c[0]).Length(), 1e-9)
	assert.Panics(t, func() { Circle(pt(0, 0), 1, 2) })
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "M", OpMoveTo.String())
	assert.Equal(t, "L", OpLineTo.String())
	assert.Equal(t, "L 1.5,2", LineTo(pt(1.5, 2)).String())
}
