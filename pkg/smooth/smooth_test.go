package smooth

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func TestSmoothCorner(t *testing.T) {
	in := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	out := Smooth(in, 1, 0.5)

	require.Len(t, out, 3)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[2], out[2])

	// Bias points are (7.5, 0) and (10, 2.5).
	mid := out[1]
	assert.NotEqual(t, in[1], mid)
	assert.Greater(t, mid.X, 7.5)
	assert.Less(t, mid.X, 10.0)
	assert.Greater(t, mid.Y, 0.0)
	assert.Less(t, mid.Y, 2.5)
	assert.InDelta(t, 9.375, mid.X, 1e-12)
	assert.InDelta(t, 0.625, mid.Y, 1e-12)
}

func TestSmoothEndpointsPreserved(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		n := 2 + rng.IntN(12)
		in := make([]vec.Vec2, n)
		for i := range in {
			in[i] = vec.Vec2{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		}
		for _, count := range []int{0, 1, 2, 4, 9} {
			for _, s := range []float64{0, 0.25, 0.9, 1} {
				out := Smooth(in, count, s)
				require.NotEmpty(t, out)
				assert.Equal(t, in[0], out[0])
				assert.Equal(t, in[n-1], out[len(out)-1])
			}
		}
	}
}

func TestSmoothLength(t *testing.T) {
	in := []vec.Vec2{{X: 0}, {X: 1}, {X: 2, Y: 1}, {X: 3}, {X: 4, Y: 4}}
	for _, count := range []int{1, 3, 8} {
		assert.Len(t, Smooth(in, count, 0.5), 2+3*count)
	}
}

func TestSmoothShortInputUnchanged(t *testing.T) {
	tests := [][]vec.Vec2{
		nil,
		{{X: 1, Y: 1}},
		{{X: 1, Y: 1}, {X: 5, Y: 5}},
	}
	for _, in := range tests {
		out := Smooth(in, 4, 0.9)
		assert.Equal(t, len(in), len(out))
		for i := range in {
			assert.Equal(t, in[i], out[i])
		}
	}
}

func TestSmoothZeroCountPassesThrough(t *testing.T) {
	in := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	out := Smooth(in, 0, 0.5)
	assert.Equal(t, in, out)

	out[1] = vec.Vec2{X: -1}
	assert.Equal(t, vec.Vec2{X: 10, Y: 0}, in[1], "result must not alias the input")
}

func TestSmoothFullSharpnessCollapsesOnCorner(t *testing.T) {
	in := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	out := Smooth(in, 5, 1)
	for _, p := range out[1 : len(out)-1] {
		assert.InDelta(t, 10, p.X, 1e-12)
		assert.InDelta(t, 0, p.Y, 1e-12)
	}
}

func TestSmoothCollinearStaysOnLine(t *testing.T) {
	in := []vec.Vec2{{X: 0, Y: 3}, {X: 5, Y: 3}, {X: 10, Y: 3}}
	for _, p := range Smooth(in, 6, 0.3) {
		assert.InDelta(t, 3, p.Y, 1e-12)
	}
}

func TestSmoothPanics(t *testing.T) {
	in := []vec.Vec2{{}, {X: 1}, {X: 2}}
	assert.Panics(t, func() { Smooth(in, -1, 0.5) })
	assert.Panics(t, func() { Smooth(in, 2, -0.1) })
	assert.Panics(t, func() { Smooth(in, 2, 1.1) })
}

func TestQuadratic(t *testing.T) {
	a, c, b := vec.Vec2{X: 0}, vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 2}
	assert.Equal(t, a, Quadratic(a, c, b, 0))
	assert.Equal(t, b, Quadratic(a, c, b, 1))
	mid := Quadratic(a, c, b, 0.5)
	assert.InDelta(t, 1, mid.X, 1e-12)
	assert.InDelta(t, 1, mid.Y, 1e-12)
}
