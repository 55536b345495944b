package control

import (
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Next(s *dynamo.SimulationState) sim.Input {
	return sim.Input{}
}
