package sim

import (
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/physics"
	"github.com/san-kum/cartbob/internal/vec"
)

const (
	DefaultSpeed        = 500.0
	DefaultBoostFactor  = 2.0
	DefaultCartWidthPx  = 50.0
	DefaultCartHeightPx = 30.0
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// HostParams describe how key state turns into cart acceleration and how
// big the cart is on screen.
type HostParams struct {
	Speed        float64
	BoostFactor  float64
	CartWidthPx  float64
	CartHeightPx float64
}

func DefaultHostParams() HostParams {
	return HostParams{
		Speed:        DefaultSpeed,
		BoostFactor:  DefaultBoostFactor,
		CartWidthPx:  DefaultCartWidthPx,
		CartHeightPx: DefaultCartHeightPx,
	}
}

// Simulation is the boundary between a host loop and the physics core.
type Simulation struct {
	State  *dynamo.SimulationState
	Params dynamo.Params
	Host   HostParams

	width, height int
	initial       *dynamo.SimulationState
}

// NewSimulation takes ownership of state and sizes it for the default
// window. Reset returns to the state as it is after construction.
func NewSimulation(state *dynamo.SimulationState, params dynamo.Params, host HostParams) *Simulation {
	s := &Simulation{
		State:  state,
		Params: params,
		Host:   host,
	}
	s.Resize(DefaultWindowWidth, DefaultWindowHeight)
	s.initial = state.Clone()
	return s
}

// Resize recomputes the aspect ratio and the cart extents for a window of
// the given pixel size. Non-positive sizes are ignored.
func (s *Simulation) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.State.Aspect = float64(width) / float64(height)
	s.State.Cart.Dimensions = vec.New(s.Host.CartWidthPx/float64(width), s.Host.CartHeightPx/float64(height))
}

func (s *Simulation) WindowSize() (int, int) {
	return s.width, s.height
}

// ApplyInput accumulates this frame's key state into the cart acceleration.
func (s *Simulation) ApplyInput(in Input, dt float64) {
	speed := s.Host.Speed
	if in.Boost {
		speed *= s.Host.BoostFactor
	}
	if in.Left {
		s.State.Cart.Acceleration.X += -dt * speed
	}
	if in.Right {
		s.State.Cart.Acceleration.X += dt * speed
	}
}

// ClampCart keeps the cart rectangle inside [0,1] horizontally and stops it
// dead when it touches a wall. It reports whether a clamp happened.
func (s *Simulation) ClampCart() bool {
	c := &s.State.Cart
	half := c.Dimensions.X / 2
	clamped := false
	if c.Position.X-half < 0 {
		c.Position.X = half
		c.Velocity = vec.Zero
		clamped = true
	}
	if c.Position.X+half > 1 {
		c.Position.X = 1 - half
		c.Velocity = vec.Zero
		clamped = true
	}
	return clamped
}

// Toggle flips the running flag and returns the new value.
func (s *Simulation) Toggle() bool {
	s.State.Running = !s.State.Running
	return s.State.Running
}

func (s *Simulation) Running() bool {
	return s.State.Running
}

// Frame runs one host frame: input, wall clamp, then a physics step if the
// simulation is running. A paused frame touches nothing, so pausing freezes
// the state exactly.
func (s *Simulation) Frame(in Input, dt float64) error {
	if !s.State.Running {
		return nil
	}
	s.ApplyInput(in, dt)
	s.ClampCart()
	return physics.Step(s.State, s.Params, dt)
}

// Prime runs one unconditional step, the way the window host settles the
// bob before its first frame.
func (s *Simulation) Prime(dt float64) error {
	return physics.Step(s.State, s.Params, dt)
}

// Reset restores the state captured at construction, paused.
func (s *Simulation) Reset() {
	*s.State = *s.initial
	s.State.Running = false
	s.Resize(s.width, s.height)
}

func (s *Simulation) Cart() dynamo.Body {
	return s.State.Cart
}

func (s *Simulation) Bob() dynamo.Body {
	return s.State.Bob
}
