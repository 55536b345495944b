package metrics

import (
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

// ControlEffort is the fraction of frames with a direction key held.
type ControlEffort struct {
	name    string
	held    int
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(s *dynamo.SimulationState, in sim.Input) {
	if !in.Idle() {
		c.held++
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.held) / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.held = 0
	c.samples = 0
}
