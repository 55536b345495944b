// Package dynamo provides the state types shared by the cart/bob simulation.
//
// The package defines the records the physics core mutates and the hosts
// read back every frame:
//
//   - [Body]: position, motion and display state of one simulated object
//   - [SimulationState]: the cart, the bob and the frame-level flags
//   - [Params]: gravity, rest length and damping used by the step function
//   - [Snapshot]: flat per-step record used by recorders and storage
//
// # Example
//
//	s := dynamo.NewState()
//	p := dynamo.DefaultParams()
//	s.Running = true
//	err := physics.Step(s, p, 1.0/120)
//
// # Thread Safety
//
// SimulationState is NOT thread-safe. A host owns one state and drives it
// from a single goroutine; parallel sweeps create one state per run.
package dynamo
