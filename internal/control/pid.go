package control

import (
	"fmt"
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

const (
	DefaultDeadband = 0.05
	DefaultBoostAt  = 1.0
)

// PID steers the cart towards Target (normalized x) by holding left or right
// whenever the controller output leaves the deadband.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	Deadband float64
	BoostAt  float64
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		Target:   target,
		Deadband: DefaultDeadband,
		BoostAt:  DefaultBoostAt,
		first:    true,
	}
}

// Output is the raw controller value for the cart position x at time t.
func (p *PID) Output(x, t float64) float64 {
	err := p.Target - x

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.Kp * err
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return u
	}
	return p.Kp * err
}

func (p *PID) Next(s *dynamo.SimulationState) sim.Input {
	return keys(p.Output(s.Cart.Position.X, s.Time), p.Deadband, p.BoostAt)
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     p.Kp,
		"Ki":     p.Ki,
		"Kd":     p.Kd,
		"Target": p.Target,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// keys turns a signed controller output into held keys.
func keys(u, deadband, boostAt float64) sim.Input {
	var in sim.Input
	switch {
	case u > deadband:
		in.Right = true
	case u < -deadband:
		in.Left = true
	}
	in.Boost = !in.Idle() && math.Abs(u) > boostAt
	return in
}
