package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/integrators"
	"github.com/san-kum/cartbob/internal/vec"
)

// AspectScale maps raw window-normalized deltas into a space where a circle
// on screen is a circle in numbers.
func AspectScale(aspect float64) vec.Vec2 {
	return vec.New(1, 1/aspect)
}

// BobAcceleration is gravity plus the pseudo-force of the cart's frame
// divided by the bob's mass. Mass cancels: the result is always
// Gravity - Cart.Acceleration.
func BobAcceleration(s *dynamo.SimulationState, p dynamo.Params) (vec.Vec2, error) {
	acc := p.Gravity
	pseudo := s.Cart.Acceleration.Scale(-s.Bob.Mass)
	perMass, err := pseudo.Div(s.Bob.Mass)
	if err != nil {
		return vec.Zero, fmt.Errorf("pseudo-force: %w", err)
	}
	acc.AddAssign(perMass)
	return acc, nil
}

// Step advances s by dt seconds. dt is not substepped; large values reduce
// accuracy. A division error (dt or bob mass near zero) aborts the step with
// the state partially updated, which hosts treat as fatal.
func Step(s *dynamo.SimulationState, p dynamo.Params, dt float64) error {
	scale := AspectScale(s.Aspect)

	acc, err := BobAcceleration(s, p)
	if err != nil {
		return stepErr(s, err)
	}
	s.Bob.Acceleration = acc

	prevAngle := s.Bob.Angle
	integrators.Advance(&s.Bob, dt)

	SolveDistance(&s.Bob, s.Cart.Position, scale, p.RestLength)
	if err := integrators.Rederive(&s.Bob, dt, p.Damping); err != nil {
		return stepErr(s, fmt.Errorf("bob velocity: %w", err))
	}

	s.Bob.Angle = Angle(s.Bob.Position, s.Cart.Position, scale)
	s.Bob.AngularVelocity = (s.Bob.Angle - prevAngle) / dt

	integrators.Advance(&s.Cart, dt)
	if err := integrators.Rederive(&s.Cart, dt, p.Damping); err != nil {
		return stepErr(s, fmt.Errorf("cart velocity: %w", err))
	}

	s.Time += dt
	s.Steps++
	return nil
}

// Angle is measured from the downward vertical in aspect-scaled space, x
// before y: a bob straight below the cart reads 0, one to its right pi/2.
// The branch cut sits straight above the cart, so analysis.WrapCount
// counts swings over the top rather than passes through the bottom.
func Angle(bob, cart, scale vec.Vec2) float64 {
	d := bob.Sub(cart).Mul(scale)
	return math.Atan2(d.X, -d.Y)
}

func stepErr(s *dynamo.SimulationState, err error) error {
	return &dynamo.StepError{Step: s.Steps, Time: s.Time, Wrapped: err}
}
