package control

import (
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

// Feedback applies u = K · [x - target, vx, angle, omega] and presses keys
// from the sign of u.
type Feedback struct {
	K        [4]float64
	Target   float64
	Deadband float64
	BoostAt  float64
}

func NewFeedback(k [4]float64, target float64) *Feedback {
	return &Feedback{
		K:        k,
		Target:   target,
		Deadband: DefaultDeadband,
		BoostAt:  DefaultBoostAt,
	}
}

// NewSwingDamper accelerates the cart along the bob's angular velocity,
// which the bob feels as a pseudo-force against its swing, and pulls the
// cart gently back towards the window centre.
func NewSwingDamper() *Feedback {
	return NewFeedback([4]float64{-2.0, -0.5, 0, 0.8}, 0.5)
}

func (f *Feedback) Output(s *dynamo.SimulationState) float64 {
	x := [4]float64{
		s.Cart.Position.X - f.Target,
		s.Cart.Velocity.X,
		s.Bob.Angle,
		s.Bob.AngularVelocity,
	}
	u := 0.0
	for i := range x {
		u += f.K[i] * x[i]
	}
	return u
}

func (f *Feedback) Next(s *dynamo.SimulationState) sim.Input {
	return keys(f.Output(s), f.Deadband, f.BoostAt)
}
