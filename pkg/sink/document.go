package sink

import (
	"time"

	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/hexwalk/pkg/plot"
	"github.com/matzehuels/hexwalk/pkg/walk"
)

// DocumentVersion is the current JSON document version.
const DocumentVersion = 1

// Document is a finished drawing together with what is needed to render
// or reproduce it.
type Document struct {
	ID     string
	Number int // export number; 0 if the drawing was never exported
	Seed   uint64

	// Canvas is the paper size in millimetres.
	Canvas vec.Vec2
	// Scale is the number of drawing units per millimetre.
	Scale float64

	Parameters   walk.Parameters
	Instructions []plot.Instruction
	CreatedAt    time.Time
}

// Size returns the canvas size in drawing units.
func (d Document) Size() vec.Vec2 { return d.Canvas.Mul(d.Scale) }

// toMM converts a point in drawing units to millimetres.
func (d Document) toMM(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: p.X / d.Scale, Y: p.Y / d.Scale}
}

// truncate applies the shared limit options to the document's program.
func truncate(instrs []plot.Instruction, limit, pointLimit int) []plot.Instruction {
	instrs = plot.Prefix(instrs, limit)
	return plot.PrefixPoints(instrs, pointLimit)
}
