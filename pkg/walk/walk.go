// Package walk covers a hexagonal grid with randomized walks.
//
// The traversal is a randomized depth-first cover with restart (a
// "drunkard's walk"): starting from a random cell it keeps stepping to a
// random unvisited neighbour and, when stuck, closes the current walk and
// restarts from a random unvisited cell. Every cell is visited exactly
// once across all walks.
//
// Randomness is always injected. Use [NewRand] for a seeded generator so a
// run can be reproduced:
//
//	rng := walk.NewRand(42)
//	walks := walk.Generate(grid, walk.Parameters{
//	    SmoothingPoints:    4,
//	    SmoothingSharpness: 0.9,
//	    KeepFraction:       0.5,
//	}, rng)
package walk

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/hexwalk/pkg/hexgrid"
)

// Walk is an ordered sequence of cell centers visited consecutively.
// A walk always holds at least one point.
type Walk []vec.Vec2

// Parameters configures the walk and smoothing stages.
type Parameters struct {
	SmoothingPoints    int     `json:"smoothing_points"`
	SmoothingSharpness float64 `json:"smoothing_sharpness"`
	KeepFraction       float64 `json:"keep_fraction"`
}

// Validate reports the first parameter outside its allowed range.
func (p Parameters) Validate() error {
	if p.SmoothingPoints < 0 {
		return fmt.Errorf("smoothing points must be non-negative, got %d", p.SmoothingPoints)
	}
	if !inUnit(p.SmoothingSharpness) {
		return fmt.Errorf("smoothing sharpness must be in [0,1], got %v", p.SmoothingSharpness)
	}
	if !inUnit(p.KeepFraction) {
		return fmt.Errorf("keep fraction must be in [0,1], got %v", p.KeepFraction)
	}
	return nil
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }

// NewRand returns a PCG-backed generator seeded from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Option configures a traversal.
type Option func(*traversal)

type traversal struct {
	every    int
	progress func(remaining, total int)
}

// WithProgress calls fn every `every` visited cells with the number of
// cells still unvisited.
func WithProgress(every int, fn func(remaining, total int)) Option {
	return func(t *traversal) {
		t.every = every
		t.progress = fn
	}
}

// Traverse covers g and returns the visited cell indices grouped by walk,
// in the order the walks were produced. It panics if g has no cells.
func Traverse(g *hexgrid.Grid, rng *rand.Rand, opts ...Option) [][]int {
	total := g.Len()
	if total == 0 {
		panic("walk: empty grid")
	}
	t := traversal{}
	for _, opt := range opts {
		opt(&t)
	}

	visited := make([]bool, total)
	unvisited := make([]int, total)
	// slot[i] is the position of cell i inside unvisited.
	slot := make([]int, total)
	for i := range unvisited {
		unvisited[i] = i
		slot[i] = i
	}
	remove := func(idx int) {
		pos, last := slot[idx], len(unvisited)-1
		moved := unvisited[last]
		unvisited[pos] = moved
		slot[moved] = pos
		unvisited = unvisited[:last]
	}

	var (
		walks      [][]int
		candidates []int
		current    = rng.IntN(total)
		path       = []int{current}
		remaining  = total
		counter    = 0
	)
	for remaining > 0 {
		visited[current] = true
		remove(current)
		remaining--

		candidates = candidates[:0]
		for _, n := range g.Cells[current].Neighbors {
			if !visited[n] {
				candidates = append(candidates, n)
			}
		}

		switch {
		case len(candidates) > 0:
			current = candidates[rng.IntN(len(candidates))]
			path = append(path, current)
		case remaining > 0:
			walks = append(walks, path)
			current = unvisited[rng.IntN(len(unvisited))]
			path = []int{current}
		}

		counter++
		if t.progress != nil && t.every > 0 && counter%t.every == 0 {
			t.progress(remaining, total)
		}
	}
	return append(walks, path)
}

// Generate covers g, converts the visited cells to their centers, sorts the
// walks with [Sort] and keeps the longest ones according to
// params.KeepFraction. It panics on invalid parameters.
func Generate(g *hexgrid.Grid, params Parameters, rng *rand.Rand, opts ...Option) []Walk {
	if err := params.Validate(); err != nil {
		panic("walk: " + err.Error())
	}
	paths := Traverse(g, rng, opts...)
	walks := make([]Walk, len(paths))
	for i, p := range paths {
		w := make(Walk, len(p))
		for j, idx := range p {
			w[j] = g.Position(idx)
		}
		walks[i] = w
	}
	Sort(walks)
	return Keep(walks, params.KeepFraction)
}

// Sort orders walks by ascending length. Walks of equal length are ordered
// by descending X, then descending Y of their first point. Empty walks sort
// first.
func Sort(walks []Walk) {
	slices.SortStableFunc(walks, func(a, b Walk) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 || len(a) == 0 {
			return c
		}
		if c := cmp.Compare(b[0].X, a[0].X); c != 0 {
			return c
		}
		return cmp.Compare(b[0].Y, a[0].Y)
	})
}

// Keep drops the first round(n·(1−keepFraction)) walks of an ascending
// sorted list, so the longest walks survive. The returned slice shares
// storage with walks.
func Keep(walks []Walk, keepFraction float64) []Walk {
	if !inUnit(keepFraction) {
		panic(fmt.Sprintf("walk: keep fraction must be in [0,1], got %v", keepFraction))
	}
	drop := int(math.Round(float64(len(walks)) * (1 - keepFraction)))
	drop = min(max(drop, 0), len(walks))
	return walks[drop:]
}

// Points returns the total number of points across walks.
func Points(walks []Walk) int {
	n := 0
	for _, w := range walks {
		n += len(w)
	}
	return n
}
