package dynamo

import (
	"fmt"
	"math"

	"github.com/san-kum/cartbob/internal/vec"
)

const (
	DefaultRestLength = 0.25
	DefaultDamping    = 0.99
	DefaultAspect     = 1280.0 / 720.0
	DefaultBobRadius  = 10.0
)

// DefaultGravity is a visual-scale constant, not 9.8 m/s².
var DefaultGravity = vec.New(0, -9.8*0.4)

// Body is one simulated object in normalized window space [0,1]x[0,1].
// Dimensions is only meaningful for the cart, Radius only for the bob.
// Angle and AngularVelocity are derived display quantities.
type Body struct {
	Position        vec.Vec2
	PrevPosition    vec.Vec2
	Velocity        vec.Vec2
	Acceleration    vec.Vec2
	Dimensions      vec.Vec2
	Radius          float64
	Mass            float64
	Angle           float64
	AngularVelocity float64
}

func NewBody(pos vec.Vec2) Body {
	return Body{
		Position:     pos,
		PrevPosition: pos,
		Mass:         1.0,
	}
}

func (b *Body) IsValid() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite() && b.Acceleration.IsFinite() &&
		!math.IsNaN(b.Angle) && !math.IsInf(b.Angle, 0) &&
		!math.IsNaN(b.AngularVelocity) && !math.IsInf(b.AngularVelocity, 0)
}

type Params struct {
	Gravity    vec.Vec2
	RestLength float64
	Damping    float64
}

func DefaultParams() Params {
	return Params{
		Gravity:    DefaultGravity,
		RestLength: DefaultRestLength,
		Damping:    DefaultDamping,
	}
}

func (p Params) Validate() error {
	if p.RestLength <= 0 {
		return fmt.Errorf("%w: rest length %g", ErrParameterBounds, p.RestLength)
	}
	if p.Damping <= 0 || p.Damping > 1 {
		return fmt.Errorf("%w: damping %g", ErrParameterBounds, p.Damping)
	}
	if !p.Gravity.IsFinite() {
		return fmt.Errorf("%w: gravity %v", ErrParameterBounds, p.Gravity)
	}
	return nil
}

// SimulationState is everything one simulation instance owns.
type SimulationState struct {
	Cart    Body
	Bob     Body
	Aspect  float64
	Running bool
	Time    float64
	Steps   int
}

// NewState places cart and bob on top of each other at the window centre,
// paused, with the default window aspect.
func NewState() *SimulationState {
	centre := vec.New(0.5, 0.5)
	bob := NewBody(centre)
	bob.Radius = DefaultBobRadius
	return &SimulationState{
		Cart:   NewBody(centre),
		Bob:    bob,
		Aspect: DefaultAspect,
	}
}

func (s *SimulationState) Clone() *SimulationState {
	c := *s
	return &c
}

func (s *SimulationState) IsValid() bool {
	return s.Cart.IsValid() && s.Bob.IsValid()
}

// Snapshot is a flat copy of the values the hosts display.
type Snapshot struct {
	Time            float64
	CartPosition    vec.Vec2
	CartVelocity    vec.Vec2
	BobPosition     vec.Vec2
	BobVelocity     vec.Vec2
	Angle           float64
	AngularVelocity float64
}

func (s *SimulationState) Snapshot() Snapshot {
	return Snapshot{
		Time:            s.Time,
		CartPosition:    s.Cart.Position,
		CartVelocity:    s.Cart.Velocity,
		BobPosition:     s.Bob.Position,
		BobVelocity:     s.Bob.Velocity,
		Angle:           s.Bob.Angle,
		AngularVelocity: s.Bob.AngularVelocity,
	}
}

// SnapshotFields names the columns of Snapshot.Values, in order.
var SnapshotFields = []string{
	"cart_x", "cart_y", "cart_vx", "cart_vy",
	"bob_x", "bob_y", "bob_vx", "bob_vy",
	"angle", "omega",
}

// Values flattens the snapshot, time excluded.
func (s Snapshot) Values() []float64 {
	return []float64{
		s.CartPosition.X, s.CartPosition.Y, s.CartVelocity.X, s.CartVelocity.Y,
		s.BobPosition.X, s.BobPosition.Y, s.BobVelocity.X, s.BobVelocity.Y,
		s.Angle, s.AngularVelocity,
	}
}

// SnapshotFromValues is the inverse of Values.
func SnapshotFromValues(t float64, v []float64) (Snapshot, error) {
	if len(v) < len(SnapshotFields) {
		return Snapshot{}, fmt.Errorf("%w: want %d values, got %d", ErrInvalidState, len(SnapshotFields), len(v))
	}
	return Snapshot{
		Time:            t,
		CartPosition:    vec.New(v[0], v[1]),
		CartVelocity:    vec.New(v[2], v[3]),
		BobPosition:     vec.New(v[4], v[5]),
		BobVelocity:     vec.New(v[6], v[7]),
		Angle:           v[8],
		AngularVelocity: v[9],
	}, nil
}

func (s Snapshot) IsValid() bool {
	for _, v := range s.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
