package render

import (
	"fmt"
	"image/color"

	"github.com/san-kum/drysim/internal/radial"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const paletteSize = 255

// blues runs from white at 0% to dark blue at 100%.
func blues() (palette.ColorMap, error) {
	dark2light, err := moreland.NewLuminance([]color.Color{
		color.NRGBA{R: 8, G: 48, B: 107, A: 255},
		color.NRGBA{R: 66, G: 146, B: 198, A: 255},
		color.NRGBA{R: 247, G: 251, B: 255, A: 255},
	})
	if err != nil {
		return nil, err
	}
	cmap := palette.Reverse(dark2light)
	cmap.SetMin(0)
	cmap.SetMax(100)
	return cmap, nil
}

// diskGrid exposes a radial.Disk in plot units (mm, %).
type diskGrid struct {
	d *radial.Disk
}

func (g diskGrid) Dims() (c, r int) {
	n := len(g.d.Coords)
	return n, n
}

func (g diskGrid) Z(c, r int) float64 { return g.d.Values[r][c] * 100 }
func (g diskGrid) X(c int) float64    { return g.d.Coords[c] * 1000 }
func (g diskGrid) Y(r int) float64    { return g.d.Coords[r] * 1000 }

// DiskFigure is the cross-section heat map with its color bar.
type DiskFigure struct {
	Map *plot.Plot
	Bar *plot.Plot
}

func (f *DiskFigure) Draw(c draw.Canvas) {
	width := c.Max.X - c.Min.X
	f.Map.Draw(draw.Crop(c, 0, -colorBarWidth, 0, 0))
	f.Bar.Draw(draw.Crop(c, width-colorBarWidth, 0, 0, 0))
}

// Disk draws the cross-section through the center. Points outside the
// sphere are left transparent. The center is marked and labelled with its
// concentration.
func Disk(d *radial.Disk) (*DiskFigure, error) {
	if len(d.Coords) < 2 {
		return nil, fmt.Errorf("render: disk needs at least 2 samples per axis")
	}
	cmap, err := blues()
	if err != nil {
		return nil, err
	}
	pal := cmap.Palette(paletteSize)
	colors := pal.Colors()

	hm := plotter.NewHeatMap(diskGrid{d: d}, pal)
	hm.Min, hm.Max = cmap.Min(), cmap.Max()
	hm.NaN = color.Transparent
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	hm.Rasterized = true

	m := plot.New()
	m.X.Label.Text = "x (mm)"
	m.Y.Label.Text = "y (mm)"
	boldAxes(m)
	m.Add(hm)

	center, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
	if err != nil {
		return nil, err
	}
	center.GlyphStyle.Color = centerColor
	center.GlyphStyle.Shape = draw.CircleGlyph{}
	center.GlyphStyle.Radius = vg.Points(3)
	m.Add(center)

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 1, Y: 1}},
		Labels: []string{fmt.Sprintf("%.2f%%", d.Center*100)},
	})
	if err != nil {
		return nil, err
	}
	label.TextStyle[0].Color = centerColor
	label.TextStyle[0].Font.Size = vg.Points(10)
	m.Add(label)

	r := d.Radius * 1000
	m.X.Min, m.X.Max = -r, r
	m.Y.Min, m.Y.Max = -r, r

	bar := plot.New()
	bar.HideX()
	bar.Y.Label.Text = "Concentration (%)"
	boldAxes(bar)
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true, Colors: paletteSize})

	return &DiskFigure{Map: m, Bar: bar}, nil
}
