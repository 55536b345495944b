package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/cartbob/internal/config"
	"github.com/san-kum/cartbob/internal/sim"
)

// Experiment is one headless run assembled from a Config.
type Experiment struct {
	cfg      *config.Config
	sim      *sim.Simulation
	driver   sim.Driver
	recorder *sim.Recorder
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(registry *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	driver, err := registry.GetDriver(e.cfg)
	if err != nil {
		return err
	}

	e.sim = e.cfg.NewSimulation()
	e.driver = driver
	e.recorder = sim.NewRecorder(e.sim, driver)
	for _, m := range registry.DefaultMetrics(e.cfg) {
		e.recorder.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.recorder == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.recorder.Run(ctx, e.cfg.SimConfig())
}

// Scenario packages the experiment for sim.Sweep. Every call builds a fresh
// simulation and driver so scenarios never share state.
func (e *Experiment) Scenario(registry *Registry) (sim.Scenario, error) {
	if _, err := registry.GetDriver(e.cfg); err != nil {
		return nil, err
	}
	return func() (*sim.Simulation, sim.Driver, []sim.Metric) {
		driver, _ := registry.GetDriver(e.cfg) // checked above
		return e.cfg.NewSimulation(), driver, registry.DefaultMetrics(e.cfg)
	}, nil
}

// GetRecorder returns the underlying recorder for adding observers
func (e *Experiment) GetRecorder() *sim.Recorder {
	return e.recorder
}

func (e *Experiment) Simulation() *sim.Simulation {
	return e.sim
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}
