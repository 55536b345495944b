package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cartbob/internal/control"
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
	"github.com/san-kum/cartbob/internal/vec"
)

const (
	DefaultWidth    = sim.DefaultWindowWidth
	DefaultHeight   = sim.DefaultWindowHeight
	DefaultFPS      = 120
	DefaultDt       = 1.0 / 120
	DefaultDuration = 10.0
	DefaultKp       = 4.0
	DefaultKi       = 0.0
	DefaultKd       = 1.5
	DefaultTarget   = 0.5
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Host    HostConfig    `yaml:"host"`
	Run     RunConfig     `yaml:"run"`
	Init    InitConfig    `yaml:"init"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Font   string `yaml:"font"`
}

type PhysicsConfig struct {
	Gravity    [2]float64 `yaml:"gravity"`
	RestLength float64    `yaml:"rest_length"`
	Damping    float64    `yaml:"damping"`
	BobMass    float64    `yaml:"bob_mass"`
}

type HostConfig struct {
	Speed        float64 `yaml:"speed"`
	BoostFactor  float64 `yaml:"boost_factor"`
	CartWidthPx  float64 `yaml:"cart_width_px"`
	CartHeightPx float64 `yaml:"cart_height_px"`
}

type RunConfig struct {
	Dt               float64           `yaml:"dt"`
	Duration         float64           `yaml:"duration"`
	Driver           string            `yaml:"driver"`
	ControllerParams ControllerConfig  `yaml:"controller_params"`
	Script           []control.Segment `yaml:"script"`
}

type ControllerConfig struct {
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	Target float64 `yaml:"target"`
}

type InitConfig struct {
	CartX   float64 `yaml:"cart_x"`
	CartY   float64 `yaml:"cart_y"`
	CartVX  float64 `yaml:"cart_vx"`
	BobX    float64 `yaml:"bob_x"`
	BobY    float64 `yaml:"bob_y"`
	BobVX   float64 `yaml:"bob_vx"`
	BobVY   float64 `yaml:"bob_vy"`
	Running bool    `yaml:"running"`
}

func DefaultConfig() *Config {
	g := dynamo.DefaultGravity
	h := sim.DefaultHostParams()
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Physics: PhysicsConfig{
			Gravity:    [2]float64{g.X, g.Y},
			RestLength: dynamo.DefaultRestLength,
			Damping:    dynamo.DefaultDamping,
			BobMass:    1.0,
		},
		Host: HostConfig{
			Speed:        h.Speed,
			BoostFactor:  h.BoostFactor,
			CartWidthPx:  h.CartWidthPx,
			CartHeightPx: h.CartHeightPx,
		},
		Run: RunConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
			Driver:   "none",
			ControllerParams: ControllerConfig{
				Kp:     DefaultKp,
				Ki:     DefaultKi,
				Kd:     DefaultKd,
				Target: DefaultTarget,
			},
		},
		Init: InitConfig{
			CartX: 0.5,
			CartY: 0.5,
			BobX:  0.5,
			BobY:  0.5,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", dynamo.ErrParameterBounds, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", dynamo.ErrParameterBounds, c.Window.FPS)
	}
	if c.Physics.BobMass <= 0 {
		return fmt.Errorf("%w: bob mass %g", dynamo.ErrParameterBounds, c.Physics.BobMass)
	}
	if c.Host.Speed < 0 || c.Host.BoostFactor <= 0 {
		return fmt.Errorf("%w: speed %g boost %g", dynamo.ErrParameterBounds, c.Host.Speed, c.Host.BoostFactor)
	}
	if c.Run.Dt <= 0 || c.Run.Duration <= 0 {
		return fmt.Errorf("%w: dt %g duration %g", dynamo.ErrParameterBounds, c.Run.Dt, c.Run.Duration)
	}
	return c.Params().Validate()
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		Gravity:    vec.New(c.Physics.Gravity[0], c.Physics.Gravity[1]),
		RestLength: c.Physics.RestLength,
		Damping:    c.Physics.Damping,
	}
}

func (c *Config) HostParams() sim.HostParams {
	return sim.HostParams{
		Speed:        c.Host.Speed,
		BoostFactor:  c.Host.BoostFactor,
		CartWidthPx:  c.Host.CartWidthPx,
		CartHeightPx: c.Host.CartHeightPx,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Run.Dt,
		Duration:      c.Run.Duration,
		ValidateState: true,
	}
}

// NewState builds the initial simulation state described by the init
// section.
func (c *Config) NewState() *dynamo.SimulationState {
	s := dynamo.NewState()
	s.Cart = dynamo.NewBody(vec.New(c.Init.CartX, c.Init.CartY))
	s.Cart.Velocity = vec.New(c.Init.CartVX, 0)
	bob := dynamo.NewBody(vec.New(c.Init.BobX, c.Init.BobY))
	bob.Velocity = vec.New(c.Init.BobVX, c.Init.BobVY)
	bob.Mass = c.Physics.BobMass
	bob.Radius = dynamo.DefaultBobRadius
	s.Bob = bob
	s.Running = c.Init.Running
	return s
}

// NewSimulation wires state, physics and host parameters for the configured
// window size.
func (c *Config) NewSimulation() *sim.Simulation {
	s := sim.NewSimulation(c.NewState(), c.Params(), c.HostParams())
	s.Resize(c.Window.Width, c.Window.Height)
	return s
}

func (c *Config) GetControllerParams() map[string]float64 {
	return map[string]float64{
		"kp":     c.Run.ControllerParams.Kp,
		"ki":     c.Run.ControllerParams.Ki,
		"kd":     c.Run.ControllerParams.Kd,
		"target": c.Run.ControllerParams.Target,
	}
}

// SetParam sets a tunable value by the name scenario files and the tuner
// use.
func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "kp":
		c.Run.ControllerParams.Kp = value
	case "ki":
		c.Run.ControllerParams.Ki = value
	case "kd":
		c.Run.ControllerParams.Kd = value
	case "target":
		c.Run.ControllerParams.Target = value
	case "damping":
		c.Physics.Damping = value
	case "rest_length":
		c.Physics.RestLength = value
	case "bob_mass":
		c.Physics.BobMass = value
	case "speed":
		c.Host.Speed = value
	case "boost_factor":
		c.Host.BoostFactor = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// Clone returns a deep copy, so a copy's script can be edited freely.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Run.Script = append([]control.Segment(nil), c.Run.Script...)
	return &cp
}
