package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/cartbob/internal/config"
	"github.com/san-kum/cartbob/internal/control"
	"github.com/san-kum/cartbob/internal/metrics"
	"github.com/san-kum/cartbob/internal/sim"
)

type Registry struct {
	drivers map[string]func(*config.Config) (sim.Driver, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		drivers: make(map[string]func(*config.Config) (sim.Driver, error)),
	}

	r.drivers["none"] = func(cfg *config.Config) (sim.Driver, error) {
		return control.NewNone(), nil
	}
	r.drivers["keyboard"] = func(cfg *config.Config) (sim.Driver, error) {
		return control.NewKeyboard(), nil
	}
	r.drivers["pid"] = func(cfg *config.Config) (sim.Driver, error) {
		params := cfg.GetControllerParams()
		return control.NewPID(params["kp"], params["ki"], params["kd"], params["target"]), nil
	}
	r.drivers["damper"] = func(cfg *config.Config) (sim.Driver, error) {
		return control.NewSwingDamper(), nil
	}
	r.drivers["script"] = func(cfg *config.Config) (sim.Driver, error) {
		return control.NewScript(cfg.Run.Script)
	}

	return r
}

func (r *Registry) GetDriver(cfg *config.Config) (sim.Driver, error) {
	fn, ok := r.drivers[cfg.Run.Driver]
	if !ok {
		return nil, fmt.Errorf("unknown driver: %s", cfg.Run.Driver)
	}
	return fn(cfg)
}

func (r *Registry) ListDrivers() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(cfg *config.Config) []sim.Metric {
	return metrics.Defaults(cfg.Params())
}
