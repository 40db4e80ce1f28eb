package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/drysim/internal/radial"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRadius         = 0.02
	DefaultDiffusivity    = 2.5e-9
	DefaultInitial        = 1.0
	DefaultNodes          = 100
	DefaultDt             = 5.0
	DefaultDuration       = 16 * radial.SecondsPerHour
	DefaultDiagnosticHour = 1
	DefaultWorkers        = 1
	DefaultDPI            = 300
)

var DefaultCheckpoints = []int{0, 1, 3, 6, 9, 12}

type Config struct {
	Name            string       `yaml:"name"`
	Radius          float64      `yaml:"radius"`
	Diffusivity     float64      `yaml:"diffusivity"`
	Initial         float64      `yaml:"initial"`
	Nodes           int          `yaml:"nodes"`
	Dt              float64      `yaml:"dt"`
	Duration        float64      `yaml:"duration"`
	Checkpoints     []int        `yaml:"checkpoints"`
	DiagnosticHour  int          `yaml:"diagnostic_hour"`
	Workers         int          `yaml:"workers"`
	StrictStability bool         `yaml:"strict_stability"`
	Output          OutputConfig `yaml:"output"`
}

// OutputConfig names the optional artifacts of a run. Empty paths are skipped.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	DPI        int    `yaml:"dpi"`
	ProfilePNG string `yaml:"profile_png"`
	DiskPNG    string `yaml:"disk_png"`
	ProfileSVG string `yaml:"profile_svg"`
	Movie      string `yaml:"movie"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:           "strawberry",
		Radius:         DefaultRadius,
		Diffusivity:    DefaultDiffusivity,
		Initial:        DefaultInitial,
		Nodes:          DefaultNodes,
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
		Checkpoints:    append([]int(nil), DefaultCheckpoints...),
		DiagnosticHour: DefaultDiagnosticHour,
		Workers:        DefaultWorkers,
		Output: OutputConfig{
			DPI: DefaultDPI,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto overlays the file at path on a copy of base. Fields the file
// does not mention keep base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Checkpoints = append([]int(nil), c.Checkpoints...)
	return &cp
}

// Params converts the configuration into solver parameters.
func (c *Config) Params() radial.Params {
	return radial.Params{
		Radius:      c.Radius,
		Diffusivity: c.Diffusivity,
		Initial:     c.Initial,
		Nodes:       c.Nodes,
		Dt:          c.Dt,
		Duration:    c.Duration,
		Checkpoints: append([]int(nil), c.Checkpoints...),
		Workers:     c.Workers,
	}
}

// Validate checks everything that must hold before a run starts.
func (c *Config) Validate() error {
	errs := []error{c.Params().Validate()}
	if c.DiagnosticHour < 0 {
		errs = append(errs, &radial.ParamError{Field: "diagnostic_hour", Value: c.DiagnosticHour, Reason: "must not be negative"})
	}
	if c.Output.DPI < 0 {
		errs = append(errs, &radial.ParamError{Field: "output.dpi", Value: c.Output.DPI, Reason: "must not be negative"})
	}
	if c.StrictStability && c.Nodes > 0 {
		errs = append(errs, radial.CheckStability(c.Params()))
	}
	return errors.Join(errs...)
}

// Warnings lists conditions that do not stop a run but likely spoil it.
func (c *Config) Warnings() []string {
	p := c.Params()
	if p.Validate() != nil {
		return nil
	}
	var warnings []string
	if err := radial.CheckStability(p); err != nil && !c.StrictStability {
		warnings = append(warnings, err.Error())
	}
	if missed := radial.MissedCheckpoints(p); len(missed) > 0 {
		warnings = append(warnings, fmt.Sprintf("checkpoints %v will not be captured (beyond duration or not a multiple of dt=%gs)", missed, c.Dt))
	}
	return warnings
}

// DiskSize is the number of samples along each axis of the 2D cross-section.
func (c *Config) DiskSize() int {
	return 2*c.Nodes + 1
}
