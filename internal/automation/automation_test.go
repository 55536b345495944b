package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cartbob/internal/config"
	"github.com/san-kum/cartbob/internal/experiment"
)

const scenarioYAML = `
name: warmup
description: drop, then shove
steps:
  - preset: swing
    duration: 0.5
  - preset: rest
    driver: script
    duration: 0.5
    script:
      - {start: 0.1, end: 0.3, key: right}
    params:
      damping: 0.95
    save_as: nudged
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "warmup" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if len(sc.Steps[1].Script) != 1 || sc.Steps[1].Script[0].Key != "right" {
		t.Errorf("script not parsed: %+v", sc.Steps[1].Script)
	}

	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for a scenario without steps")
	}
}

func TestStepConfig(t *testing.T) {
	step := ScenarioStep{Preset: "rest", Width: 720, Params: map[string]float64{"kp": 9}}
	cfg, err := step.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 720 || cfg.Run.ControllerParams.Kp != 9 {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	tests := []ScenarioStep{
		{Preset: "nope"},
		{Params: map[string]float64{"bogus": 1}},
		{Params: map[string]float64{"damping": 2}},
	}
	for _, tt := range tests {
		if _, err := tt.Config(); err == nil {
			t.Errorf("expected error for %+v", tt)
		}
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "swing" || results[1].Name != "nudged" {
		t.Errorf("unexpected names %q, %q", results[0].Name, results[1].Name)
	}
	for _, r := range results {
		if r.Result.Steps != 60 {
			t.Errorf("%s: expected 60 steps, got %d", r.Name, r.Result.Steps)
		}
	}
	if results[1].Result.Metrics["control_effort"] == 0 {
		t.Error("scripted step should have held a key")
	}
}

func TestRunSweep(t *testing.T) {
	base := config.GetPreset("swing")
	base.Run.Duration = 0.25

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      base,
		ParamName: "rest_length",
		ParamMin:  0.1,
		ParamMax:  0.3,
		NumSteps:  3,
	}, experiment.NewRegistry())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if math.Abs(results[1].ParamValue-0.2) > 1e-12 {
		t.Errorf("middle value = %v, want 0.2", results[1].ParamValue)
	}
	for _, r := range results {
		if r.Result.Steps != 30 {
			t.Errorf("rest_length %.2f: expected 30 steps, got %d", r.ParamValue, r.Result.Steps)
		}
	}

	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: base, ParamName: "kp", NumSteps: 1}, experiment.NewRegistry()); err == nil {
		t.Error("expected error for a single-step sweep")
	}
}
