package radial

import (
	"fmt"
	"io"
)

// Readout prints the concentration at five sampled nodes when the
// checkpoint for Hour is captured.
type Readout struct {
	W    io.Writer
	Grid Grid
	Hour int
}

func NewReadout(w io.Writer, g Grid, hour int) *Readout {
	return &Readout{W: w, Grid: g, Hour: hour}
}

func (r *Readout) OnStep(int, float64, Field) {}

func (r *Readout) OnCheckpoint(hour int, f Field) {
	if hour != r.Hour {
		return
	}
	fmt.Fprintf(r.W, "Concentration values at %.0fs:\n", float64(hour)*SecondsPerHour)
	for j, i := range SampleNodes(len(f) - 1) {
		fmt.Fprintf(r.W, "Node %d (r = %.1f mm): %.2f%%\n", j, r.Grid[i]*1000, f[i]*100)
	}
}
