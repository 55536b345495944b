package control

import (
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

// Keyboard passes the key state last set by a host to the simulation.
type Keyboard struct {
	in sim.Input
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Set replaces the held keys.
func (k *Keyboard) Set(in sim.Input) {
	k.in = in
}

// Release lets go of every key.
func (k *Keyboard) Release() {
	k.in = sim.Input{}
}

func (k *Keyboard) Next(s *dynamo.SimulationState) sim.Input {
	return k.in
}
