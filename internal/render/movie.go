package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/icza/mjpeg"
	"github.com/san-kum/drysim/internal/radial"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// MovieOptions sizes the frames of a snapshot movie in pixels.
type MovieOptions struct {
	Width, Height int
	FPS           int
	DiskSize      int
}

func DefaultMovieOptions(nodes int) MovieOptions {
	return MovieOptions{
		Width:    800,
		Height:   640,
		FPS:      2,
		DiskSize: 2*nodes + 1,
	}
}

// Movie writes one cross-section frame per captured hour, in hour order,
// to an MJPEG AVI file at path.
func Movie(path string, g radial.Grid, snaps radial.Snapshots, opts MovieOptions) error {
	hours := snaps.Hours()
	if len(hours) == 0 {
		return fmt.Errorf("render: no snapshots to animate")
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 || opts.DiskSize < 2 {
		return fmt.Errorf("render: invalid movie options %+v", opts)
	}

	aw, err := mjpeg.New(path, int32(opts.Width), int32(opts.Height), int32(opts.FPS))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, h := range hours {
		buf.Reset()
		if err := movieFrame(&buf, g, snaps[h], h, opts); err != nil {
			aw.Close()
			return fmt.Errorf("render: frame for hour %d: %w", h, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			aw.Close()
			return err
		}
	}
	return aw.Close()
}

func movieFrame(buf *bytes.Buffer, g radial.Grid, f radial.Field, hour int, opts MovieOptions) error {
	d, err := radial.NewDisk(g, f, opts.DiskSize)
	if err != nil {
		return err
	}
	fig, err := Disk(d)
	if err != nil {
		return err
	}
	fig.Map.Title.Text = LegendLabel(hour)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	c := vgimg.NewWith(vgimg.UseImage(img), vgimg.UseDPI(96))
	fig.Draw(draw.New(c))
	_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(buf)
	return err
}
