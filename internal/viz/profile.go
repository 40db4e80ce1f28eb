package viz

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/drysim/internal/radial"
	"github.com/san-kum/drysim/internal/render"
)

// ProfileOptions sizes the ASCII profile chart in terminal cells.
type ProfileOptions struct {
	Width  int
	Height int
}

func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{Width: 60, Height: 15}
}

// ProfilePlot draws concentration (%) against radius, one series per
// captured hour. Hours holding non-finite values are left out.
func ProfilePlot(g radial.Grid, snaps radial.Snapshots, opts ProfileOptions) string {
	var (
		data   [][]float64
		labels []string
		colors []asciigraph.AnsiColor
	)
	for i, h := range snaps.Hours() {
		f := snaps[h]
		if !f.IsValid() {
			continue
		}
		ys := make([]float64, len(f))
		for j, c := range f {
			ys[j] = c * 100
		}
		data = append(data, ys)
		labels = append(labels, render.LegendLabel(h))
		colors = append(colors, CurrentTheme.SeriesColor(i))
	}
	if len(data) == 0 {
		return "(no finite profiles to plot)"
	}

	radius := 0.0
	if len(g) > 0 {
		radius = g[len(g)-1] * 1000
	}
	return asciigraph.PlotMany(data,
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(labels...),
		asciigraph.Caption(fmt.Sprintf("Concentration (%%) vs radius, 0 to %.1f mm", radius)),
	)
}

// FieldPlot draws a single field, used for the live view.
func FieldPlot(f radial.Field, opts ProfileOptions, caption string) string {
	ys := make([]float64, len(f))
	for i, c := range f {
		if math.IsInf(c, 0) {
			c = math.NaN()
		}
		ys[i] = c * 100
	}
	return asciigraph.Plot(ys,
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(CurrentTheme.SeriesColor(0)),
		asciigraph.Caption(caption),
	)
}

// ReadoutTable lays out the five sampled nodes of a checkpoint.
func ReadoutTable(g radial.Grid, f radial.Field, hour int) string {
	rows := make([][]string, 0, 5)
	for j, i := range radial.SampleNodes(len(f) - 1) {
		rows = append(rows, []string{
			fmt.Sprintf("%d", j),
			fmt.Sprintf("%.1f", g[i]*1000),
			fmt.Sprintf("%.2f%%", f[i]*100),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Padding(0, 1).Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(CurrentTheme.Muted)).
		Headers("Node", "r (mm)", "C").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	title := TitleStyle().Render(fmt.Sprintf("Concentration at %s (%.0fs)", render.LegendLabel(hour), float64(hour)*radial.SecondsPerHour))
	return title + "\n" + t.Render()
}
