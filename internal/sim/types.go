package sim

import "github.com/san-kum/cartbob/internal/dynamo"

// Input is the key state a host samples once per frame.
type Input struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Boost bool `json:"boost"`
}

func (in Input) Idle() bool {
	return !in.Left && !in.Right
}

// Driver produces the input for the next frame. Keyboards, scripts and
// controllers all sit behind it.
type Driver interface {
	Next(s *dynamo.SimulationState) Input
}

type Metric interface {
	Name() string
	Observe(s *dynamo.SimulationState, in Input)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s *dynamo.SimulationState, in Input)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 120,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	Snapshots []dynamo.Snapshot
	Inputs    []Input
	Metrics   map[string]float64
	Steps     int
	Errors    []error
}

// Times returns the time column of the recorded snapshots.
func (r *Result) Times() []float64 {
	t := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		t[i] = s.Time
	}
	return t
}

// Angles returns the bob angle column of the recorded snapshots.
func (r *Result) Angles() []float64 {
	a := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		a[i] = s.Angle
	}
	return a
}
