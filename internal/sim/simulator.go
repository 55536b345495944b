package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
)

// Recorder drives a Simulation headlessly at a fixed time step and keeps
// every frame.
type Recorder struct {
	sim       *Simulation
	driver    Driver
	metrics   []Metric
	observers []Observer
}

func NewRecorder(s *Simulation, driver Driver) *Recorder {
	return &Recorder{
		sim:       s,
		driver:    driver,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Recorder) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Recorder) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run starts the simulation and records Duration/Dt frames. A step error is
// fatal and returned together with the frames recorded so far.
func (r *Recorder) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Snapshots: make([]dynamo.Snapshot, 0, steps+1),
		Inputs:    make([]Input, 0, steps),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	st := r.sim.State
	st.Running = true
	result.Snapshots = append(result.Snapshots, st.Snapshot())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		in := r.driver.Next(st)

		if err := r.sim.Frame(in, cfg.Dt); err != nil {
			result.Errors = append(result.Errors, err)
			r.collect(result)
			return result, err
		}

		for _, m := range r.metrics {
			m.Observe(st, in)
		}
		for _, obs := range r.observers {
			obs.OnFrame(st, in)
		}

		if cfg.ValidateState && !st.IsValid() {
			err := &dynamo.StepError{Step: st.Steps, Time: st.Time, Wrapped: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			break
		}

		result.Steps++
		result.Snapshots = append(result.Snapshots, st.Snapshot())
		result.Inputs = append(result.Inputs, in)
	}

	r.collect(result)
	return result, nil
}

func (r *Recorder) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrParameterBounds, cfg.Duration)
	}
	return nil
}
