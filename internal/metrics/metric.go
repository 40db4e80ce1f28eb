package metrics

import "github.com/san-kum/drysim/internal/radial"

// Metric accumulates a scalar over the steps of a run.
type Metric interface {
	Name() string
	Observe(step int, elapsed float64, f radial.Field)
	Value() float64
	Reset()
}

// Recorder feeds every solver step to a set of metrics. It satisfies
// radial.Observer.
type Recorder struct {
	metrics []Metric
}

func NewRecorder(ms ...Metric) *Recorder {
	return &Recorder{metrics: ms}
}

func (r *Recorder) OnStep(step int, elapsed float64, f radial.Field) {
	for _, m := range r.metrics {
		m.Observe(step, elapsed, f)
	}
}

// Values returns the current value of every metric keyed by name.
func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Reset() {
	for _, m := range r.metrics {
		m.Reset()
	}
}

// Default returns the metrics recorded for every run of p.
func Default(p radial.Params) []Metric {
	g := radial.NewGrid(p.Radius, p.Nodes)
	return []Metric{
		NewMoistureRemaining(g, p.Initial),
		NewCenterConcentration(p.Initial),
		NewBounds(p.Initial),
	}
}
