package plot

import "seehuhn.de/go/geom/vec"

// quantum is the number of quantization steps per unit.
const quantum = 1000

// EdgeKey identifies an undirected segment by its quantized endpoints.
// Two segments share a key when their endpoints agree to three decimals,
// in either direction. EdgeKey is comparable and meant to be used as a map
// key.
type EdgeKey struct {
	AX, AY int32
	BX, BY int32
}

// NewEdgeKey returns the canonical key of the segment between a and b.
// Coordinates are multiplied by 1000 and truncated toward zero; the
// endpoint with the lower X (then lower Y) comes first.
func NewEdgeKey(a, b vec.Vec2) EdgeKey {
	ax, ay := quantize(a.X), quantize(a.Y)
	bx, by := quantize(b.X), quantize(b.Y)
	if ax > bx || (ax == bx && ay > by) {
		ax, ay, bx, by = bx, by, ax, ay
	}
	return EdgeKey{AX: ax, AY: ay, BX: bx, BY: by}
}

func quantize(v float64) int32 { return int32(v * quantum) }
