package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/san-kum/drysim/internal/config"
	"github.com/san-kum/drysim/internal/radial"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

var ErrUnknownParam = errors.New("experiment: unknown sweep parameter")

// setters apply a swept value to a configuration.
var setters = map[string]func(c *config.Config, v float64){
	"diffusivity": func(c *config.Config, v float64) { c.Diffusivity = v },
	"dt":          func(c *config.Config, v float64) { c.Dt = v },
	"radius":      func(c *config.Config, v float64) { c.Radius = v },
	"nodes":       func(c *config.Config, v float64) { c.Nodes = int(math.Round(v)) },
	"initial":     func(c *config.Config, v float64) { c.Initial = v },
}

func SweepParams() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sweep runs Base once for each of Points evenly spaced values of Param
// between Min and Max. Workers > 1 runs that many points concurrently.
type Sweep struct {
	Base    *config.Config
	Param   string
	Min     float64
	Max     float64
	Points  int
	Workers int
}

// SweepPoint summarizes one run of a sweep.
type SweepPoint struct {
	Value     float64
	Stability float64
	Steps     int
	Center    float64
	Remaining float64
	Bounds    float64
	FinalMin  float64
	FinalMax  float64
	Outcome   *Outcome
}

func (s *Sweep) Values() []float64 {
	if s.Points <= 1 {
		return []float64{s.Min}
	}
	vals := floats.Span(make([]float64, s.Points), s.Min, s.Max)
	vals[len(vals)-1] = s.Max
	return vals
}

// RunSweep runs every point of s, Workers at a time. Points are returned in
// value order; on failure it returns the points before the first failing one.
func RunSweep(ctx context.Context, s *Sweep, log logrus.FieldLogger) ([]SweepPoint, error) {
	set, ok := setters[s.Param]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownParam, s.Param, SweepParams())
	}
	if log == nil {
		log = discard()
	}

	vals := s.Values()
	results := make([]SweepPoint, len(vals))
	errs := make([]error, len(vals))

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, v := range vals {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, v float64) {
			defer wg.Done()
			defer func() { <-sem }()

			results[idx], errs[idx] = s.runPoint(ctx, set, v, log)
			if errs[idx] == nil {
				log.WithFields(logrus.Fields{
					"point":  fmt.Sprintf("%d/%d", idx+1, len(vals)),
					s.Param:  v,
					"center": results[idx].Center,
				}).Info("sweep point done")
			}
		}(i, v)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return results[:i], fmt.Errorf("sweep %s=%g: %w", s.Param, vals[i], err)
		}
	}
	return results, nil
}

func (s *Sweep) runPoint(ctx context.Context, set func(*config.Config, float64), v float64, log logrus.FieldLogger) (SweepPoint, error) {
	cfg := s.Base.Clone()
	set(cfg, v)
	cfg.Name = fmt.Sprintf("%s_%s%g", s.Base.Name, s.Param, v)

	out, err := Execute(ctx, cfg, log)
	if err != nil {
		return SweepPoint{}, err
	}

	final := out.Result.Final
	return SweepPoint{
		Value:     v,
		Stability: radial.StabilityNumber(cfg.Params()),
		Steps:     out.Result.Steps,
		Center:    final[0],
		Remaining: out.Metrics["moisture_remaining"],
		Bounds:    out.Metrics["bounds"],
		FinalMin:  floats.Min(final),
		FinalMax:  floats.Max(final),
		Outcome:   out,
	}, nil
}
