package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/drysim/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrUnknownPreset = errors.New("experiment: unknown preset")

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun starts from a preset (or the defaults) and overlays Config,
// which holds any subset of the config file fields.
type ScenarioRun struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(sc.Runs) == 0 {
		return nil, fmt.Errorf("scenario %s: no runs", path)
	}
	return &sc, nil
}

// Resolve builds the configuration of a run.
func (r *ScenarioRun) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if r.Preset != "" {
		cfg = config.GetPreset(r.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, r.Preset)
		}
	}
	if !r.Config.IsZero() {
		if err := r.Config.Decode(cfg); err != nil {
			return nil, err
		}
	}
	if r.Name != "" {
		cfg.Name = r.Name
	}
	return cfg, nil
}

// RunScenario executes every run in order and stops at the first failure,
// returning the outcomes completed so far.
func RunScenario(ctx context.Context, sc *Scenario, log logrus.FieldLogger) ([]*Outcome, error) {
	if log == nil {
		log = discard()
	}
	outcomes := make([]*Outcome, 0, len(sc.Runs))

	for i := range sc.Runs {
		run := &sc.Runs[i]
		cfg, err := run.Resolve()
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		log.WithFields(logrus.Fields{
			"scenario": sc.Name,
			"step":     fmt.Sprintf("%d/%d", i+1, len(sc.Runs)),
		}).Infof("running %s", cfg.Name)

		out, err := Execute(ctx, cfg, log)
		if err != nil {
			return outcomes, fmt.Errorf("run %d (%s): %w", i+1, cfg.Name, err)
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
