package config

import "sort"

// Presets are named bodies and discretizations. Each entry only lists what
// differs from DefaultConfig.
var Presets = map[string]func(c *Config){
	"strawberry": func(c *Config) {},
	"blueberry": func(c *Config) {
		c.Radius = 0.006
		c.Nodes = 60
		c.Dt = 1
		c.Duration = 6 * 3600
		c.Checkpoints = []int{0, 1, 2, 3, 4, 6}
	},
	"cherry": func(c *Config) {
		c.Radius = 0.011
		c.Diffusivity = 3.0e-9
		c.Dt = 1
		c.Duration = 12 * 3600
		c.Checkpoints = []int{0, 1, 2, 4, 8, 12}
	},
	"apricot": func(c *Config) {
		c.Radius = 0.022
		c.Diffusivity = 1.8e-9
		c.Duration = 24 * 3600
		c.Checkpoints = []int{0, 1, 6, 12, 18, 24}
	},
	"coarse": func(c *Config) {
		c.Nodes = 50
		c.Dt = 20
	},
	"fine": func(c *Config) {
		c.Nodes = 200
		c.Dt = 1
		c.Workers = 4
	},
	"unstable": func(c *Config) {
		c.Dt = 20
		c.Duration = 3600
		c.Checkpoints = []int{0, 1}
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = name
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
