package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Run.Driver != "none" {
		t.Errorf("expected driver none, got %s", cfg.Run.Driver)
	}
	if diff := cmp.Diff(dynamo.DefaultParams(), cfg.Params()); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sim.DefaultHostParams(), cfg.HostParams()); diff != "" {
		t.Errorf("host params mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cartbob.yaml")
	cfg := GetPreset("shove")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  rest_length: 0.3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Physics.RestLength != 0.3 {
		t.Errorf("expected rest length 0.3, got %f", cfg.Physics.RestLength)
	}
	if cfg.Physics.Damping != dynamo.DefaultDamping {
		t.Errorf("damping should keep its default, got %f", cfg.Physics.Damping)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }},
		{"massless bob", func(c *Config) { c.Physics.BobMass = 0 }},
		{"zero dt", func(c *Config) { c.Run.Dt = 0 }},
		{"negative speed", func(c *Config) { c.Host.Speed = -1 }},
		{"damping above one", func(c *Config) { c.Physics.Damping = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestNewSimulation(t *testing.T) {
	cfg := GetPreset("square")
	s := cfg.NewSimulation()

	if s.State.Aspect != 1.0 {
		t.Errorf("expected aspect 1, got %f", s.State.Aspect)
	}
	if s.State.Bob.Mass != cfg.Physics.BobMass {
		t.Errorf("expected bob mass %f, got %f", cfg.Physics.BobMass, s.State.Bob.Mass)
	}
	if s.Running() {
		t.Error("simulation should start paused")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("rest")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Init.BobY != 0.25 {
		t.Errorf("expected bob y 0.25, got %f", cfg.Init.BobY)
	}

	// each call returns an independent copy
	cfg.Init.BobY = 0
	if GetPreset("rest").Init.BobY != 0.25 {
		t.Error("preset was mutated through a previous result")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	for name, v := range map[string]float64{"kp": 7, "damping": 0.95, "speed": 300, "rest_length": 0.3} {
		if err := cfg.SetParam(name, v); err != nil {
			t.Fatalf("SetParam(%s): %v", name, err)
		}
	}
	if cfg.Run.ControllerParams.Kp != 7 || cfg.Physics.Damping != 0.95 || cfg.Host.Speed != 300 || cfg.Physics.RestLength != 0.3 {
		t.Errorf("params not applied: %+v", cfg)
	}
	if err := cfg.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := GetPreset("shove")
	cp := cfg.Clone()
	cp.Run.Script[0].Key = "left"
	cp.Window.Width = 10

	if cfg.Run.Script[0].Key != "right" || cfg.Window.Width == 10 {
		t.Error("clone shares state with the original")
	}
}
