package render

import (
	"fmt"

	"github.com/san-kum/drysim/internal/radial"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Profile plots one concentration-versus-radius line per captured hour.
// Radius is drawn in millimetres and concentration in percent.
func Profile(g radial.Grid, snaps radial.Snapshots) (*plot.Plot, error) {
	if len(snaps) == 0 {
		return nil, fmt.Errorf("render: no snapshots to plot")
	}

	p := plot.New()
	p.X.Label.Text = "Radius (mm)"
	p.Y.Label.Text = "Concentration (%)"
	boldAxes(p)
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, h := range snaps.Hours() {
		f := snaps[h]
		if len(f) != len(g) {
			return nil, fmt.Errorf("render: hour %d has %d values for %d nodes", h, len(f), len(g))
		}
		pts := make(plotter.XYs, len(g))
		for j := range g {
			pts[j].X = g[j] * 1000
			pts[j].Y = f[j] * 100
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("render: hour %d: %w", h, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(LegendLabel(h), line)
	}

	return p, nil
}
