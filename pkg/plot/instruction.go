// Package plot turns polylines into pen-plotter drawing instructions.
//
// # Instructions
//
// An [Instruction] is either a pen-up relocation ([OpMoveTo]) or a
// pen-down stroke ([OpLineTo]) to a point. A []Instruction is one plotter
// session: the pen position is always the destination of the last
// instruction.
//
// # Deduplication
//
// A [Builder] converts polylines into instructions while making sure no
// segment is drawn twice. Segments are identified by an [EdgeKey] built from
// endpoints quantized to three decimals, independent of direction. When a
// polyline retraces an already drawn segment, the pen is lifted for that
// step instead:
//
//	b := plot.NewBuilder()
//	b.Add(walkA)
//	b.Add(walkB) // segments shared with walkA become MoveTo
//	instrs := b.Instructions()
//
// # Queries
//
// [Prefix] and [PrefixPoints] cut a program for progressive previews
// without copying or modifying it. [Strokes] recovers the pen-down
// polylines and [Summarize] reports counts, lengths and bounds.
package plot

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Op identifies the kind of an [Instruction].
type Op uint8

const (
	// OpMoveTo lifts the pen and moves it to Point.
	OpMoveTo Op = iota
	// OpLineTo draws a straight stroke from the pen position to Point.
	OpLineTo
)

// String returns the SVG path command letter for the op.
func (o Op) String() string {
	switch o {
	case OpMoveTo:
		return "M"
	case OpLineTo:
		return "L"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Instruction is a single drawing command.
type Instruction struct {
	Op    Op
	Point vec.Vec2
}

// MoveTo returns a pen-up instruction to p.
func MoveTo(p vec.Vec2) Instruction { return Instruction{Op: OpMoveTo, Point: p} }

// LineTo returns a pen-down instruction to p.
func LineTo(p vec.Vec2) Instruction { return Instruction{Op: OpLineTo, Point: p} }

func (in Instruction) String() string {
	return fmt.Sprintf("%s %g,%g", in.Op, in.Point.X, in.Point.Y)
}
