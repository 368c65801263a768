package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/hexwalk/pkg/hexgrid"
)

var defaultParams = Parameters{SmoothingPoints: 4, SmoothingSharpness: 0.9, KeepFraction: 1}

func TestTraverseCoversEveryCellOnce(t *testing.T) {
	sizes := []struct{ cols, rows int }{{1, 1}, {1, 2}, {3, 1}, {4, 4}, {10, 10}, {17, 9}}
	for _, sz := range sizes {
		g := hexgrid.Build(sz.cols, sz.rows, 5, vec.Vec2{})
		for seed := range uint64(20) {
			paths := Traverse(g, NewRand(seed))

			seen := make([]int, g.Len())
			total := 0
			for _, p := range paths {
				require.NotEmpty(t, p)
				for _, idx := range p {
					seen[idx]++
					total++
				}
			}
			require.Equal(t, g.Len(), total, "%dx%d seed %d", sz.cols, sz.rows, seed)
			for idx, n := range seen {
				require.Equal(t, 1, n, "cell %d visited %d times", idx, n)
			}
		}
	}
}

func TestTraverseStepsAreAdjacent(t *testing.T) {
	g := hexgrid.Build(8, 8, 5, vec.Vec2{})
	for seed := range uint64(10) {
		for _, p := range Traverse(g, NewRand(seed)) {
			for i := 1; i < len(p); i++ {
				require.True(t, g.IsNeighbor(p[i-1], p[i]), "step %d→%d", p[i-1], p[i])
			}
		}
	}
}

func TestTraverseWalksEndWhenStuck(t *testing.T) {
	g := hexgrid.Build(6, 6, 5, vec.Vec2{})
	paths := Traverse(g, NewRand(7))

	visited := make([]bool, g.Len())
	for i, p := range paths {
		for _, idx := range p {
			visited[idx] = true
		}
		if i == len(paths)-1 {
			break
		}
		last := p[len(p)-1]
		for _, n := range g.Cell(last).Neighbors {
			assert.True(t, visited[n], "walk %d ended with unvisited neighbour %d", i, n)
		}
	}
}

func TestTwoCellGridYieldsOneWalk(t *testing.T) {
	g := hexgrid.Build(1, 2, 10, vec.Vec2{})
	for seed := range uint64(32) {
		walks := Generate(g, defaultParams, NewRand(seed))
		require.Len(t, walks, 1)
		require.Len(t, walks[0], 2)
		assert.ElementsMatch(t, []vec.Vec2{g.Position(0), g.Position(1)}, []vec.Vec2(walks[0]))
	}
}

func TestSingleCellGrid(t *testing.T) {
	g := hexgrid.Build(1, 1, 10, vec.Vec2{X: 4, Y: 2})
	walks := Generate(g, defaultParams, NewRand(1))
	require.Len(t, walks, 1)
	assert.Equal(t, Walk{{X: 4, Y: 2}}, walks[0])
}

func TestGenerateDeterministic(t *testing.T) {
	g := hexgrid.Build(12, 9, 4, vec.Vec2{X: 10, Y: 10})
	params := Parameters{SmoothingPoints: 3, SmoothingSharpness: 0.5, KeepFraction: 0.5}

	a := Generate(g, params, NewRand(99))
	b := Generate(g, params, NewRand(99))
	assert.Equal(t, a, b)

	c := Generate(g, params, NewRand(100))
	assert.NotEqual(t, a, c)
}

func TestSort(t *testing.T) {
	walks := []Walk{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		{{X: 1, Y: 5}},
		{{X: 3, Y: 1}},
		{{X: 3, Y: 4}},
		{{X: 9, Y: 9}, {X: 8, Y: 8}},
	}
	Sort(walks)

	want := []Walk{
		{{X: 3, Y: 4}},
		{{X: 3, Y: 1}},
		{{X: 1, Y: 5}},
		{{X: 9, Y: 9}, {X: 8, Y: 8}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	}
	assert.Equal(t, want, walks)
}

func TestKeep(t *testing.T) {
	walks := make([]Walk, 10)
	for i := range walks {
		walks[i] = make(Walk, i+1)
	}

	tests := []struct {
		keep     float64
		wantLen  int
		shortest int
	}{
		{1, 10, 1},
		{0.5, 5, 6},
		{0.25, 2, 9}, // round(7.5) drops 8
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := Keep(walks, tt.keep)
		require.Len(t, got, tt.wantLen, "keep %v", tt.keep)
		if tt.wantLen > 0 {
			assert.Len(t, got[0], tt.shortest)
			assert.Len(t, got[len(got)-1], 10, "longest walk must survive")
		}
	}
}

func TestKeepPanicsOutsideUnitRange(t *testing.T) {
	assert.Panics(t, func() { Keep(nil, 1.5) })
	assert.Panics(t, func() { Keep(nil, -0.1) })
}

func TestGeneratePanicsOnInvalidParameters(t *testing.T) {
	g := hexgrid.Build(2, 2, 1, vec.Vec2{})
	bad := []Parameters{
		{SmoothingPoints: -1, SmoothingSharpness: 0.5, KeepFraction: 0.5},
		{SmoothingPoints: 1, SmoothingSharpness: -0.5, KeepFraction: 0.5},
		{SmoothingPoints: 1, SmoothingSharpness: 0.5, KeepFraction: 2},
	}
	for _, p := range bad {
		assert.Error(t, p.Validate())
		assert.Panics(t, func() { Generate(g, p, NewRand(1)) })
	}
}

func TestGenerateKeepsLongest(t *testing.T) {
	g := hexgrid.Build(15, 15, 2, vec.Vec2{})
	all := Generate(g, Parameters{KeepFraction: 1}, NewRand(5))
	half := Generate(g, Parameters{KeepFraction: 0.5}, NewRand(5))

	require.Equal(t, g.Len(), Points(all))
	require.LessOrEqual(t, len(half), len(all))
	assert.Equal(t, all[len(all)-len(half):], half)
}

func TestWithProgress(t *testing.T) {
	g := hexgrid.Build(10, 10, 1, vec.Vec2{})
	var calls []int
	Traverse(g, NewRand(3), WithProgress(25, func(remaining, total int) {
		assert.Equal(t, 100, total)
		calls = append(calls, remaining)
	}))
	assert.Equal(t, []int{75, 50, 25, 0}, calls)
}
