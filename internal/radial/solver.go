package radial

import (
	"context"
	"time"
)

// Solver advances a concentration field with the FTCS scheme and captures
// checkpoints. It is not safe for concurrent use.
type Solver struct {
	params    Params
	grid      Grid
	cur, next Field
	snapshots Snapshots
	wanted    map[int]bool
	steps     int
	completed int
	dr2, dr2x float64
	coef      float64
	observers []Observer
}

// New validates p, builds the grid and the uniform initial field, and
// captures hour 0 when it is requested.
func New(p Params) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Checkpoints = append([]int(nil), p.Checkpoints...)

	dr := p.Spacing()
	s := &Solver{
		params:    p,
		grid:      NewGrid(p.Radius, p.Nodes),
		cur:       NewField(p.Nodes, p.Initial),
		next:      make(Field, p.Nodes+1),
		snapshots: make(Snapshots, len(p.Checkpoints)),
		wanted:    make(map[int]bool, len(p.Checkpoints)),
		steps:     p.Steps(),
		dr2:       dr * dr,
		dr2x:      2 * dr,
		coef:      p.Diffusivity * p.Dt,
	}
	for _, h := range p.Checkpoints {
		s.wanted[h] = true
	}
	if s.wanted[0] {
		s.snapshots[0] = s.cur.Clone()
	}
	return s, nil
}

func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Solver) Params() Params       { return s.params }
func (s *Solver) Grid() Grid           { return s.grid }
func (s *Solver) Field() Field         { return s.cur }
func (s *Solver) Snapshots() Snapshots { return s.snapshots }
func (s *Solver) Completed() int       { return s.completed }
func (s *Solver) TotalSteps() int      { return s.steps }
func (s *Solver) Done() bool           { return s.completed >= s.steps }
func (s *Solver) Elapsed() float64     { return float64(s.completed) * s.params.Dt }

// Step advances one time step, then captures a checkpoint if the new elapsed
// time lands on a requested hour. It returns false once the run is done.
func (s *Solver) Step() bool {
	if s.Done() {
		return false
	}

	parallelFor(1, s.params.Nodes, s.params.Workers, s.sweep)
	s.next[0] = s.next[1]
	s.next[s.params.Nodes] = 0

	s.cur, s.next = s.next, s.cur
	s.completed++

	elapsed := s.Elapsed()
	for _, o := range s.observers {
		o.OnStep(s.completed, elapsed, s.cur)
	}
	s.capture(elapsed)
	return true
}

// sweep updates interior nodes [start, end) of next from cur.
func (s *Solver) sweep(start, end int) {
	src, dst, r := s.cur, s.next, s.grid
	for i := start; i < end; i++ {
		d2C := (src[i+1] - 2*src[i] + src[i-1]) / s.dr2
		dC := (src[i+1] - src[i-1]) / s.dr2x
		dst[i] = src[i] + s.coef*(d2C+(2/r[i])*dC)
	}
}

func (s *Solver) capture(elapsed float64) {
	hour, ok := hourAt(elapsed)
	if !ok || !s.wanted[hour] {
		return
	}
	if _, seen := s.snapshots[hour]; seen {
		return
	}
	snap := s.cur.Clone()
	s.snapshots[hour] = snap
	for _, o := range s.observers {
		if co, ok := o.(CheckpointObserver); ok {
			co.OnCheckpoint(hour, snap)
		}
	}
}

// Run steps until done. The context is checked between steps only.
func (s *Solver) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	for !s.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		s.Step()
	}
	return s.Result(time.Since(start)), nil
}

// Result snapshots the current state. Final is a copy of the live field.
func (s *Solver) Result(wall time.Duration) *Result {
	snaps := make(Snapshots, len(s.snapshots))
	for h, f := range s.snapshots {
		snaps[h] = f
	}
	return &Result{
		Params:    s.params,
		Grid:      s.grid,
		Final:     s.cur.Clone(),
		Snapshots: snaps,
		Steps:     s.completed,
		Wall:      wall,
	}
}

// Simulate builds a solver for p and runs it to completion.
func Simulate(ctx context.Context, p Params, observers ...Observer) (*Result, error) {
	s, err := New(p)
	if err != nil {
		return nil, err
	}
	for _, o := range observers {
		s.AddObserver(o)
	}
	return s.Run(ctx)
}
