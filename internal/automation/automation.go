// Package automation runs scripted sequences of recorded simulations and
// one-dimensional parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cartbob/internal/config"
	"github.com/san-kum/cartbob/internal/control"
	"github.com/san-kum/cartbob/internal/experiment"
	"github.com/san-kum/cartbob/internal/logger"
	"github.com/san-kum/cartbob/internal/sim"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Zero values keep what the preset (or the
// default config) says.
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Driver   string             `yaml:"driver"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Width    int                `yaml:"width"`
	Height   int                `yaml:"height"`
	Params   map[string]float64 `yaml:"params"`
	Script   []control.Segment  `yaml:"script"`
	SaveAs   string             `yaml:"save_as"`
}

// StepResult pairs a finished run with the configuration that produced it.
type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &scenario, nil
}

// Config resolves a step into a validated configuration.
func (st ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if st.Preset != "" {
		cfg = config.GetPreset(st.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", st.Preset)
		}
	}
	if st.Driver != "" {
		cfg.Run.Driver = st.Driver
	}
	if st.Duration > 0 {
		cfg.Run.Duration = st.Duration
	}
	if st.Dt > 0 {
		cfg.Run.Dt = st.Dt
	}
	if st.Width > 0 {
		cfg.Window.Width = st.Width
	}
	if st.Height > 0 {
		cfg.Window.Height = st.Height
	}
	if len(st.Script) > 0 {
		cfg.Run.Script = append([]control.Segment(nil), st.Script...)
	}
	for name, v := range st.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (st ScenarioStep) name(i int) string {
	switch {
	case st.SaveAs != "":
		return st.SaveAs
	case st.Preset != "":
		return st.Preset
	}
	return fmt.Sprintf("step-%d", i+1)
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the runs finished so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.name(i)
		logger.L().Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", name)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs one configuration across evenly spaced values of a
// single parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Result     *sim.Result
}

// RunSweep executes a parameter sweep. The runs are independent and go
// through sim.Sweep in parallel.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	values := make([]float64, sweep.NumSteps)
	scenarios := make([]sim.Scenario, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := range values {
		values[i] = sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, values[i]); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, values[i], err)
		}
		sc, err := experiment.New(cfg).Scenario(registry)
		if err != nil {
			return nil, err
		}
		scenarios[i] = sc
	}

	runs, err := sim.Sweep(ctx, scenarios, sweep.Base.SimConfig())
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		results[i] = SweepResult{ParamValue: values[i], Result: r}
	}
	return results, nil
}
