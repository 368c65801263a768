package plot

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Prefix returns the first n instructions. A negative n, or one past the
// end, returns all of them. The result shares storage with instrs but has
// its capacity capped.
func Prefix(instrs []Instruction, n int) []Instruction {
	if n < 0 || n > len(instrs) {
		n = len(instrs)
	}
	return instrs[:n:n]
}

// PrefixPoints returns the longest prefix of instrs that contains at most
// maxPoints pen-down instructions. A negative maxPoints returns all.
func PrefixPoints(instrs []Instruction, maxPoints int) []Instruction {
	if maxPoints < 0 {
		return Prefix(instrs, -1)
	}
	drawn := 0
	for i, in := range instrs {
		if in.Op == OpLineTo {
			if drawn == maxPoints {
				return Prefix(instrs, i)
			}
			drawn++
		}
	}
	return Prefix(instrs, -1)
}

// Strokes returns the pen-down polylines of a program. Each stroke starts
// at the pen position before its first LineTo; strokes with no drawn
// segment are omitted.
func Strokes(instrs []Instruction) [][]vec.Vec2 {
	var (
		out     [][]vec.Vec2
		current []vec.Vec2
		pen     vec.Vec2
	)
	flush := func() {
		if len(current) >= 2 {
			out = append(out, current)
		}
		current = nil
	}
	for _, in := range instrs {
		switch in.Op {
		case OpMoveTo:
			flush()
		case OpLineTo:
			if current == nil {
				current = []vec.Vec2{pen}
			}
			current = append(current, in.Point)
		}
		pen = in.Point
	}
	flush()
	return out
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max vec.Vec2
}

// Size returns the width and height of the box.
func (b Bounds) Size() vec.Vec2 { return b.Max.Sub(b.Min) }

// Stats summarizes a program.
type Stats struct {
	Moves      int     `json:"moves"`
	Lines      int     `json:"lines"`
	DrawLength float64 `json:"draw_length"`
	// TravelLength is the pen-up distance, excluding the initial move.
	TravelLength float64 `json:"travel_length"`
	Bounds       Bounds  `json:"-"`
}

// Summarize walks the program once and reports counts, lengths and the
// bounding box of every visited point. The bounds of an empty program are
// the zero box.
func Summarize(instrs []Instruction) Stats {
	var s Stats
	if len(instrs) == 0 {
		return s
	}
	s.Bounds = Bounds{
		Min: vec.Vec2{X: math.Inf(1), Y: math.Inf(1)},
		Max: vec.Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	var pen vec.Vec2
	for i, in := range instrs {
		d := in.Point.Sub(pen).Length()
		switch in.Op {
		case OpMoveTo:
			s.Moves++
			if i > 0 {
				s.TravelLength += d
			}
		case OpLineTo:
			s.Lines++
			s.DrawLength += d
		}
		pen = in.Point
		s.Bounds.Min.X = math.Min(s.Bounds.Min.X, pen.X)
		s.Bounds.Min.Y = math.Min(s.Bounds.Min.Y, pen.Y)
		s.Bounds.Max.X = math.Max(s.Bounds.Max.X, pen.X)
		s.Bounds.Max.Y = math.Max(s.Bounds.Max.Y, pen.Y)
	}
	return s
}

// Circle returns a closed polyline approximating a circle with the given
// number of segments. The first and last points coincide. It panics if
// segments < 3.
func Circle(center vec.Vec2, radius float64, segments int) []vec.Vec2 {
	if segments < 3 {
		panic("plot: circle needs at least 3 segments")
	}
	pts := make([]vec.Vec2, segments+1)
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = vec.Vec2{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	pts[segments] = pts[0]
	return pts
}
