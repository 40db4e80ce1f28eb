// Package render draws solved concentration fields as publication figures:
// the radial profile at every captured hour, the 2D cross-section through
// the center, and an MJPEG movie of the cross-section over time.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	DefaultDPI = 300

	ProfileWidth  = 6 * vg.Inch
	ProfileHeight = 4.5 * vg.Inch
	DiskWidth     = 5.6 * vg.Inch
	DiskHeight    = 4.5 * vg.Inch

	colorBarWidth = 1.1 * vg.Inch
)

var (
	centerColor = color.RGBA{R: 220, A: 255}
	labelSize   = vg.Points(12)
)

// Figure is anything that can lay itself out on a canvas. *plot.Plot
// satisfies it.
type Figure interface {
	Draw(c draw.Canvas)
}

// LegendLabel names the line of a captured hour.
func LegendLabel(hour int) string {
	if hour > 1 {
		return fmt.Sprintf("%d hours", hour)
	}
	return fmt.Sprintf("%d hour", hour)
}

func boldAxes(p *plot.Plot) {
	for _, ts := range []*text.Style{&p.X.Label.TextStyle, &p.Y.Label.TextStyle} {
		ts.Font.Weight = xfont.WeightBold
		ts.Font.Size = labelSize
	}
}

// WritePNG rasterizes f at the given physical size and resolution.
func WritePNG(w io.Writer, f Figure, width, height vg.Length, dpi int) error {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	f.Draw(draw.New(c))
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

func SavePNG(path string, f Figure, width, height vg.Length, dpi int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(file, f, width, height, dpi); err != nil {
		file.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return file.Close()
}
