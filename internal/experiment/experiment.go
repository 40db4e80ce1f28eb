package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/drysim/internal/config"
	"github.com/san-kum/drysim/internal/metrics"
	"github.com/san-kum/drysim/internal/radial"
	"github.com/sirupsen/logrus"
)

// Outcome is a finished run together with its recorded metrics.
type Outcome struct {
	Name    string
	Config  *config.Config
	Result  *radial.Result
	Metrics map[string]float64
}

// Experiment is one configured run of the solver.
type Experiment struct {
	cfg      *config.Config
	log      logrus.FieldLogger
	solver   *radial.Solver
	recorder *metrics.Recorder
}

// New wraps a copy of cfg. A nil logger discards log output.
func New(cfg *config.Config, log logrus.FieldLogger) *Experiment {
	if log == nil {
		log = discard()
	}
	return &Experiment{
		cfg: cfg.Clone(),
		log: log.WithField("run", cfg.Name),
	}
}

// Setup validates the configuration, logs its warnings, and builds the
// solver with the default metrics and the given observers attached.
func (e *Experiment) Setup(observers ...radial.Observer) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	for _, w := range e.cfg.Warnings() {
		e.log.Warn(w)
	}

	p := e.cfg.Params()
	s, err := radial.New(p)
	if err != nil {
		return err
	}
	e.recorder = metrics.NewRecorder(metrics.Default(p)...)
	s.AddObserver(e.recorder)
	for _, o := range observers {
		s.AddObserver(o)
	}
	e.solver = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	e.log.WithFields(logrus.Fields{
		"steps":     e.solver.TotalSteps(),
		"stability": radial.StabilityNumber(e.cfg.Params()),
	}).Debug("starting run")

	res, err := e.solver.Run(ctx)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"steps":   res.Steps,
		"elapsed": res.Elapsed(),
		"wall":    res.Wall,
	}).Info("run complete")

	return &Outcome{
		Name:    e.cfg.Name,
		Config:  e.cfg,
		Result:  res,
		Metrics: e.recorder.Values(),
	}, nil
}

// Execute is New, Setup and Run in one call.
func Execute(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, observers ...radial.Observer) (*Outcome, error) {
	e := New(cfg, log)
	if err := e.Setup(observers...); err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
