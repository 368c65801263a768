package plot

import "seehuhn.de/go/geom/vec"

// Builder accumulates instructions from polylines, drawing each distinct
// segment at most once. The set of drawn segments is shared by all
// polylines added to the same Builder until [Builder.Reset].
//
// A Builder is not safe for concurrent use.
type Builder struct {
	drawn  map[EdgeKey]struct{}
	instrs []Instruction
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{drawn: make(map[EdgeKey]struct{})}
}

// Add appends the instructions for one polyline. The pen moves to the first
// point, then every step either draws a new segment or, if that segment was
// already drawn, moves without drawing. Empty polylines are ignored; a
// single point yields just a MoveTo.
func (b *Builder) Add(points []vec.Vec2) {
	if len(points) == 0 {
		return
	}
	cursor := points[0]
	b.instrs = append(b.instrs, MoveTo(cursor))
	for _, p := range points[1:] {
		key := NewEdgeKey(cursor, p)
		if _, ok := b.drawn[key]; ok {
			b.instrs = append(b.instrs, MoveTo(p))
		} else {
			b.drawn[key] = struct{}{}
			b.instrs = append(b.instrs, LineTo(p))
		}
		cursor = p
	}
}

// AddAll calls [Builder.Add] for each polyline in order.
func (b *Builder) AddAll(polylines ...[]vec.Vec2) {
	for _, pl := range polylines {
		b.Add(pl)
	}
}

// Instructions returns the instructions accumulated so far. The result is
// capacity-capped, so appending to it never writes into the Builder.
func (b *Builder) Instructions() []Instruction {
	return b.instrs[:len(b.instrs):len(b.instrs)]
}

// Edges returns the number of distinct segments drawn so far.
func (b *Builder) Edges() int { return len(b.drawn) }

// Reset clears the instructions and the drawn-segment set.
func (b *Builder) Reset() {
	clear(b.drawn)
	b.instrs = nil
}

// Build is shorthand for a fresh Builder fed with polylines.
func Build(polylines ...[]vec.Vec2) []Instruction {
	b := NewBuilder()
	b.AddAll(polylines...)
	return b.Instructions()
}
