package physics

import (
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/vec"
)

// SolveDistance moves b so that its aspect-scaled distance to anchor becomes
// length. The direction is taken in scaled space but the correction is
// applied to raw coordinates, so for a non-square window the circle is
// slightly skewed. A bob sitting exactly on the anchor is left alone.
func SolveDistance(b *dynamo.Body, anchor, scale vec.Vec2, length float64) {
	delta := b.Position.Sub(anchor).Mul(scale)
	violation := delta.Len() - length
	b.Position.SubAssign(delta.Normalize().Scale(violation))
}

// Distance is the aspect-scaled distance between two points.
func Distance(a, b, scale vec.Vec2) float64 {
	return a.Sub(b).Mul(scale).Len()
}
