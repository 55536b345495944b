package metrics

import (
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

// KineticEnergy averages the bob's kinetic energy 0.5·m·|v|² over frames.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "bob_kinetic"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s *dynamo.SimulationState, in sim.Input) {
	e.total += kinetic(s.Bob)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change of the bob's mechanical
// energy, measured with the cart as the height reference, from the first
// observed frame. The damping factor makes this grow on any free swing.
type EnergyDrift struct {
	name     string
	gravity  float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(p dynamo.Params) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: math.Abs(p.Gravity.Y),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s *dynamo.SimulationState, in sim.Input) {
	energy := kinetic(s.Bob) + s.Bob.Mass*e.gravity*(s.Bob.Position.Y-s.Cart.Position.Y)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

func kinetic(b dynamo.Body) float64 {
	return 0.5 * b.Mass * b.Velocity.LenSq()
}
