package metrics

import (
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/physics"
	"github.com/san-kum/cartbob/internal/sim"
)

// ConstraintError is the worst deviation of the aspect-scaled rod length
// from the rest length.
type ConstraintError struct {
	name   string
	length float64
	max    float64
}

func NewConstraintError(p dynamo.Params) *ConstraintError {
	return &ConstraintError{
		name:   "constraint_error",
		length: p.RestLength,
	}
}

func (c *ConstraintError) Name() string { return c.name }

func (c *ConstraintError) Observe(s *dynamo.SimulationState, in sim.Input) {
	c.max = math.Max(c.max, rodError(s, c.length))
}

func (c *ConstraintError) Value() float64 { return c.max }

func (c *ConstraintError) Reset() { c.max = 0 }

// Stability is the fraction of frames whose rod length error stays under
// threshold.
type Stability struct {
	name       string
	length     float64
	threshold  float64
	violations int
	samples    int
}

func NewStability(p dynamo.Params, threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		length:    p.RestLength,
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(st *dynamo.SimulationState, in sim.Input) {
	s.samples++
	if rodError(st, s.length) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

func rodError(s *dynamo.SimulationState, length float64) float64 {
	scale := physics.AspectScale(s.Aspect)
	return math.Abs(physics.Distance(s.Bob.Position, s.Cart.Position, scale) - length)
}
