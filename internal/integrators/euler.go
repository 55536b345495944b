package integrators

import "github.com/san-kum/cartbob/internal/dynamo"

// Advance performs one semi-implicit Euler step: velocity first, then
// position from the updated velocity. PrevPosition keeps the position the
// body had before the step.
func Advance(b *dynamo.Body, dt float64) {
	b.Velocity.AddAssign(b.Acceleration.Scale(dt))
	b.PrevPosition = b.Position
	b.Position.AddAssign(b.Velocity.Scale(dt))
}
