// Package smooth rounds the corners of polylines.
//
// Each interior vertex is replaced by a short quadratic Bézier arc that
// starts and ends on the two adjacent segments. Sharpness pulls the arc's
// end points toward the corner: 0 starts the arc at the segment midpoints
// (softest curve), 1 collapses it onto the corner itself.
package smooth

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Smooth returns a denser copy of points with every interior corner
// replaced by count samples of a quadratic arc. The first and last points
// are kept exactly. Inputs with fewer than three points, or count == 0,
// are returned as an unmodified copy.
//
// Smooth panics if count is negative or sharpness is outside [0,1].
func Smooth(points []vec.Vec2, count int, sharpness float64) []vec.Vec2 {
	if count < 0 {
		panic(fmt.Sprintf("smooth: negative point count %d", count))
	}
	if !(sharpness >= 0 && sharpness <= 1) {
		panic(fmt.Sprintf("smooth: sharpness %v outside [0,1]", sharpness))
	}
	if len(points) < 3 || count == 0 {
		return append([]vec.Vec2(nil), points...)
	}

	out := make([]vec.Vec2, 0, 2+(len(points)-2)*count)
	out = append(out, points[0])
	for i := 1; i < len(points)-1; i++ {
		p1, p2, p3 := points[i-1], points[i], points[i+1]
		a := bias(midpoint(p1, p2), p2, sharpness)
		b := bias(midpoint(p3, p2), p2, sharpness)
		for j := range count {
			t := (float64(j) + 0.5) / float64(count)
			out = append(out, Quadratic(a, p2, b, t))
		}
	}
	return append(out, points[len(points)-1])
}

// Quadratic evaluates the quadratic Bézier curve a → c → b at t using
// nested linear interpolation.
func Quadratic(a, c, b vec.Vec2, t float64) vec.Vec2 {
	return lerp(lerp(a, c, t), lerp(c, b, t), t)
}

func midpoint(a, b vec.Vec2) vec.Vec2 { return a.Add(b).Mul(0.5) }

// bias moves p toward corner by the fraction s.
func bias(p, corner vec.Vec2, s float64) vec.Vec2 {
	return p.Add(corner.Sub(p).Mul(s))
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}
