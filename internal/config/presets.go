package config

import (
	"sort"

	"github.com/san-kum/cartbob/internal/control"
)

// Presets build a fresh Config each call so callers can edit the result.
var Presets = map[string]func() *Config{
	"rest": func() *Config {
		cfg := DefaultConfig()
		cfg.Init.BobY = 0.5 - cfg.Physics.RestLength
		return cfg
	},
	"swing": func() *Config {
		cfg := DefaultConfig()
		cfg.Init.BobX = 0.5 + cfg.Physics.RestLength
		cfg.Init.BobY = 0.5
		cfg.Run.Duration = 20.0
		return cfg
	},
	"shove": func() *Config {
		cfg := DefaultConfig()
		cfg.Init.BobY = 0.5 - cfg.Physics.RestLength
		cfg.Run.Driver = "script"
		cfg.Run.Script = []control.Segment{
			{Start: 0.5, End: 1.0, Key: "right"},
			{Start: 3.0, End: 3.25, Key: "left", Boost: true},
		}
		return cfg
	},
	"centre": func() *Config {
		cfg := DefaultConfig()
		cfg.Init.CartX = 0.2
		cfg.Init.BobX = 0.2
		cfg.Init.BobY = 0.5 - cfg.Physics.RestLength
		cfg.Run.Driver = "pid"
		return cfg
	},
	"square": func() *Config {
		cfg := DefaultConfig()
		cfg.Window.Width = 720
		cfg.Window.Height = 720
		cfg.Init.BobX = 0.5 + cfg.Physics.RestLength
		return cfg
	},
	"wide": func() *Config {
		cfg := DefaultConfig()
		cfg.Window.Width = 1920
		cfg.Window.Height = 600
		cfg.Init.BobX = 0.5 + cfg.Physics.RestLength
		return cfg
	},
}

func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
