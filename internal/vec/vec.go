// Package vec provides the 2-D vector value type used by the physics core.
//
// Division is strict and reports [ErrDivisionByZero] for divisors below
// [Epsilon]; normalization is lenient and returns the zero vector instead.
package vec

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the magnitude below which divisors and lengths count as zero.
const Epsilon = 1e-10

var ErrDivisionByZero = errors.New("vec: division by near-zero scalar")

type Vec2 struct {
	X, Y float64
}

var Zero = Vec2{}

func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Mul scales each component by the matching component of o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Div(s float64) (Vec2, error) {
	if math.Abs(s) < Epsilon {
		return Vec2{}, fmt.Errorf("%w: %g", ErrDivisionByZero, s)
	}
	return Vec2{v.X / s, v.Y / s}, nil
}

func (v *Vec2) AddAssign(o Vec2) {
	v.X += o.X
	v.Y += o.Y
}

func (v *Vec2) SubAssign(o Vec2) {
	v.X -= o.X
	v.Y -= o.Y
}

func (v *Vec2) ScaleAssign(s float64) {
	v.X *= s
	v.Y *= s
}

// DivAssign divides v in place. On error v is left unchanged.
func (v *Vec2) DivAssign(s float64) error {
	if math.Abs(s) < Epsilon {
		return fmt.Errorf("%w: %g", ErrDivisionByZero, s)
	}
	v.X /= s
	v.Y /= s
	return nil
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector along v, or the zero vector when v is
// shorter than Epsilon.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Equal reports whether both components differ by less than Epsilon.
func (v Vec2) Equal(o Vec2) bool {
	return math.Abs(v.X-o.X) < Epsilon && math.Abs(v.Y-o.Y) < Epsilon
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
