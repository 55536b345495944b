package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
	"github.com/san-kum/cartbob/internal/vec"
)

func hangingState() *dynamo.SimulationState {
	s := dynamo.NewState()
	s.Aspect = 1.0
	s.Cart.Dimensions = vec.New(0.04, 0.04)
	s.Bob.Position = vec.New(0.5, 0.5-dynamo.DefaultRestLength)
	return s
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	s := hangingState()

	s.Bob.Velocity = vec.New(2, 0)
	m.Observe(s, sim.Input{})
	s.Bob.Velocity = vec.Zero
	m.Observe(s, sim.Input{})

	// mean of 2.0 and 0.0
	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected mean kinetic energy 1, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	p := dynamo.DefaultParams()
	m := NewEnergyDrift(p)
	s := hangingState()

	m.Observe(s, sim.Input{})
	if m.Value() != 0 {
		t.Errorf("expected no drift on first frame, got %f", m.Value())
	}

	// potential relative to the cart is -m·g·L0; adding that much kinetic
	// energy brings the total to zero, a drift of 1
	g := math.Abs(p.Gravity.Y)
	s.Bob.Velocity = vec.New(math.Sqrt(2*g*dynamo.DefaultRestLength), 0)
	m.Observe(s, sim.Input{})
	if math.Abs(m.Value()-1.0) > 1e-9 {
		t.Errorf("expected drift 1, got %f", m.Value())
	}
}

func TestConstraintError(t *testing.T) {
	p := dynamo.DefaultParams()
	m := NewConstraintError(p)
	s := hangingState()

	m.Observe(s, sim.Input{})
	if m.Value() > 1e-12 {
		t.Errorf("expected zero error at rest length, got %g", m.Value())
	}

	s.Bob.Position = vec.New(0.5, 0.2)
	m.Observe(s, sim.Input{})
	if math.Abs(m.Value()-0.05) > 1e-12 {
		t.Errorf("expected error 0.05, got %g", m.Value())
	}
}

func TestStability(t *testing.T) {
	p := dynamo.DefaultParams()
	m := NewStability(p, 0.01)
	if m.Value() != 1.0 {
		t.Errorf("expected 1 with no samples, got %f", m.Value())
	}

	s := hangingState()
	m.Observe(s, sim.Input{})
	s.Bob.Position = vec.New(0.5, 0.1)
	m.Observe(s, sim.Input{})

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestMaxAngle(t *testing.T) {
	m := NewMaxAngle()
	s := hangingState()
	for _, a := range []float64{0.1, -0.7, 0.3} {
		s.Bob.Angle = a
		m.Observe(s, sim.Input{})
	}
	if m.Value() != 0.7 {
		t.Errorf("expected 0.7, got %f", m.Value())
	}
}

func TestCartTravel(t *testing.T) {
	m := NewCartTravel()
	s := hangingState()
	for _, x := range []float64{0.5, 0.6, 0.4} {
		s.Cart.Position.X = x
		m.Observe(s, sim.Input{})
	}
	if math.Abs(m.Value()-0.3) > 1e-12 {
		t.Errorf("expected travel 0.3, got %f", m.Value())
	}
}

func TestWallHits(t *testing.T) {
	m := NewWallHits()
	s := hangingState()

	xs := []float64{0.5, 0.02, 0.02, 0.5, 0.98, 0.5}
	for _, x := range xs {
		s.Cart.Position.X = x
		m.Observe(s, sim.Input{})
	}
	if m.Value() != 2 {
		t.Errorf("expected 2 wall hits, got %f", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	s := hangingState()

	inputs := []sim.Input{{Left: true}, {}, {Right: true, Boost: true}, {Boost: true}}
	for _, in := range inputs {
		m.Observe(s, in)
	}
	if m.Value() != 0.5 {
		t.Errorf("expected effort 0.5, got %f", m.Value())
	}
}

func TestDefaultsHaveUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Defaults(dynamo.DefaultParams()) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
