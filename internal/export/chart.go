// Package export renders stored profiles as vector charts.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/san-kum/drysim/internal/radial"
	"github.com/san-kum/drysim/internal/render"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 640
)

// ProfileChart builds a go-chart line chart with one series per captured
// hour, radius in mm against concentration in %.
func ProfileChart(g radial.Grid, snaps radial.Snapshots, width, height int) (*chart.Chart, error) {
	hours := snaps.Hours()
	if len(hours) == 0 {
		return nil, fmt.Errorf("export: no snapshots to chart")
	}

	xs := make([]float64, len(g))
	for i, r := range g {
		xs[i] = r * 1000
	}

	minY, maxY := 0.0, 0.0
	series := make([]chart.Series, 0, len(hours))
	for i, h := range hours {
		f := snaps[h]
		if len(f) != len(g) {
			return nil, fmt.Errorf("export: hour %d has %d values for %d nodes", h, len(f), len(g))
		}
		if !f.IsValid() {
			return nil, fmt.Errorf("export: hour %d holds non-finite values", h)
		}
		ys := make([]float64, len(f))
		for j, c := range f {
			ys[j] = c * 100
			minY = math.Min(minY, ys[j])
			maxY = math.Max(maxY, ys[j])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    render.LegendLabel(h),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}

	if maxY == minY {
		maxY = minY + 1
	}

	graph := &chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Radius (mm)",
			Range: &chart.ContinuousRange{Min: xs[0], Max: xs[len(xs)-1]},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.1f", v.(float64))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Concentration (%)",
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph, nil
}

// ProfileSVG writes the profile chart as SVG.
func ProfileSVG(w io.Writer, g radial.Grid, snaps radial.Snapshots, width, height int) error {
	graph, err := ProfileChart(g, snaps, width, height)
	if err != nil {
		return err
	}
	return graph.Render(chart.SVG, w)
}
