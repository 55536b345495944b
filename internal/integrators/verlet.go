package integrators

import (
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/vec"
)

// Rederive replaces the body velocity with the one implied by its position
// history, damps it and clears the accumulated acceleration. Any position
// correction applied after Advance is thereby reflected in the velocity.
func Rederive(b *dynamo.Body, dt, damping float64) error {
	v, err := b.Position.Sub(b.PrevPosition).Div(dt)
	if err != nil {
		return err
	}
	v.ScaleAssign(damping)
	b.Velocity = v
	b.Acceleration = vec.Zero
	return nil
}
