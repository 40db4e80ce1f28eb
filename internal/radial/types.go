package radial

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

const SecondsPerHour = 3600.0

// MaxSteps bounds Duration/Dt so the step count fits an int on every platform.
const MaxSteps = math.MaxInt32

// Params holds the material and discretization settings of one run.
type Params struct {
	Radius      float64 // m
	Diffusivity float64 // m²/s
	Initial     float64 // normalized concentration at t=0
	Nodes       int     // n; the grid has n+1 points
	Dt          float64 // s
	Duration    float64 // s
	Checkpoints []int   // whole hours to capture
	Workers     int     // >1 splits each interior sweep across goroutines
}

func DefaultParams() Params {
	return Params{
		Radius:      0.02,
		Diffusivity: 2.5e-9,
		Initial:     1.0,
		Nodes:       100,
		Dt:          5,
		Duration:    16 * SecondsPerHour,
		Checkpoints: []int{0, 1, 3, 6, 9, 12},
		Workers:     1,
	}
}

// Spacing returns dr = R/n.
func (p Params) Spacing() float64 { return p.Radius / float64(p.Nodes) }

// Steps returns the number of whole time steps that fit in Duration.
func (p Params) Steps() int { return int(p.Duration / p.Dt) }

// Validate reports every violated construction invariant at once.
func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any, reason string) {
		if !ok {
			errs = append(errs, &ParamError{Field: field, Value: value, Reason: reason})
		}
	}
	check(p.Nodes >= 2, "nodes", p.Nodes, "must be at least 2")
	check(p.Radius > 0 && !math.IsInf(p.Radius, 0), "radius", p.Radius, "must be positive and finite")
	check(p.Dt > 0 && !math.IsInf(p.Dt, 0), "dt", p.Dt, "must be positive and finite")
	check(p.Duration > 0 && !math.IsInf(p.Duration, 0), "duration", p.Duration, "must be positive and finite")
	check(p.Diffusivity >= 0 && !math.IsInf(p.Diffusivity, 0), "diffusivity", p.Diffusivity, "must be non-negative and finite")
	if p.Dt > 0 && p.Duration > 0 && !math.IsInf(p.Duration, 0) {
		check(p.Duration/p.Dt <= MaxSteps, "duration", p.Duration, fmt.Sprintf("needs more than %d steps of dt=%gs", MaxSteps, p.Dt))
	}
	check(!math.IsNaN(p.Initial) && !math.IsInf(p.Initial, 0), "initial", p.Initial, "must be finite")
	check(p.Workers >= 0, "workers", p.Workers, "must not be negative")
	for _, h := range p.Checkpoints {
		check(h >= 0, "checkpoints", h, "hours must not be negative")
	}
	return errors.Join(errs...)
}

// Grid is the ordered set of radial node positions. Treat it as read-only.
type Grid []float64

// Field is the concentration at each grid node.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Snapshots maps a simulated hour to the field captured at that instant.
// An hour is absent until it has been captured.
type Snapshots map[int]Field

// Hours returns the captured hours in ascending order.
func (s Snapshots) Hours() []int {
	hours := make([]int, 0, len(s))
	for h := range s {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}

// Observer is notified after every completed step. The field passed in is
// the solver's live buffer and must not be retained or modified.
type Observer interface {
	OnStep(step int, elapsed float64, f Field)
}

// CheckpointObserver is additionally told about every captured checkpoint.
// The field is the stored snapshot.
type CheckpointObserver interface {
	Observer
	OnCheckpoint(hour int, f Field)
}

// Result is the terminal state of a run.
type Result struct {
	Params    Params
	Grid      Grid
	Final     Field
	Snapshots Snapshots
	Steps     int
	Wall      time.Duration
}

// Elapsed is the simulated time covered by the run in seconds.
func (r *Result) Elapsed() float64 { return float64(r.Steps) * r.Params.Dt }

func (r *Result) String() string {
	return fmt.Sprintf("%d steps, %.1f h simulated, %d checkpoints, center %.2f%%",
		r.Steps, r.Elapsed()/SecondsPerHour, len(r.Snapshots), r.Final[0]*100)
}
