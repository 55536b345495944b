package analysis

import (
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
	"github.com/san-kum/cartbob/internal/vec"
)

// LyapunovExponent estimates how fast two unforced runs diverge when the
// second starts with its bob moved perturbation to the right.
//
// Algorithm:
// 1. Run both simulations with idle input
// 2. Measure the separation of the bob positions and velocities each frame
// 3. λ ≈ mean of ln(|δ(t)|/|δ0|) per unit time, renormalizing after each
// frame
//
// The damped swing converges, so values are expected to be negative.
func LyapunovExponent(newSim func() *sim.Simulation, dt, duration, perturbation float64) (float64, error) {
	if perturbation <= 0 || dt <= 0 {
		return 0, nil
	}

	a := newSim()
	b := newSim()
	b.State.Bob.Position.X += perturbation
	a.State.Running = true
	b.State.Running = true

	steps := int(math.Round(duration / dt))
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		if err := a.Frame(sim.Input{}, dt); err != nil {
			return 0, err
		}
		if err := b.Frame(sim.Input{}, dt); err != nil {
			return 0, err
		}

		sep := separation(a.State, b.State)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / perturbation)
		count++

		renormalize(a.State, b.State, perturbation/sep)
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}

func separation(a, b *dynamo.SimulationState) float64 {
	dp := b.Bob.Position.Sub(a.Bob.Position)
	dv := b.Bob.Velocity.Sub(a.Bob.Velocity).Scale(dt0)
	return math.Sqrt(dp.LenSq() + dv.LenSq())
}

// dt0 weights velocity differences as the displacement they cause over one
// default frame.
const dt0 = 1.0 / 120

func renormalize(a, b *dynamo.SimulationState, scale float64) {
	b.Bob.Position = pull(a.Bob.Position, b.Bob.Position, scale)
	b.Bob.Velocity = pull(a.Bob.Velocity, b.Bob.Velocity, scale)
}

func pull(ref, v vec.Vec2, scale float64) vec.Vec2 {
	return ref.Add(v.Sub(ref).Scale(scale))
}
