package render

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/drysim/internal/radial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallRun(t *testing.T) *radial.Result {
	t.Helper()
	p := radial.DefaultParams()
	p.Nodes = 20
	p.Dt = 60
	p.Duration = 3 * 3600
	p.Checkpoints = []int{0, 1, 3}
	res, err := radial.Simulate(context.Background(), p)
	require.NoError(t, err)
	return res
}

func TestLegendLabel(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "0 hour"},
		{1, "1 hour"},
		{2, "2 hours"},
		{12, "12 hours"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LegendLabel(tt.hour))
	}
}

func TestProfilePNG(t *testing.T) {
	res := smallRun(t)

	p, err := Profile(res.Grid, res.Snapshots)
	require.NoError(t, err)
	assert.Equal(t, "Radius (mm)", p.X.Label.Text)
	assert.Equal(t, "Concentration (%)", p.Y.Label.Text)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p, ProfileWidth, ProfileHeight, 100))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 450, cfg.Height)
}

func TestProfileErrors(t *testing.T) {
	g := radial.NewGrid(0.02, 4)

	_, err := Profile(g, radial.Snapshots{})
	assert.Error(t, err)

	_, err = Profile(g, radial.Snapshots{1: radial.Field{1, 1}})
	assert.Error(t, err)

	_, err = Profile(g, radial.Snapshots{1: radial.Field{1, math.NaN(), 1, 1, 0}})
	assert.Error(t, err, "non-finite values cannot be drawn as a line")
}

func TestDiskFigure(t *testing.T) {
	res := smallRun(t)
	d, err := radial.NewDisk(res.Grid, res.Final, 41)
	require.NoError(t, err)

	fig, err := Disk(d)
	require.NoError(t, err)
	assert.Equal(t, "x (mm)", fig.Map.X.Label.Text)
	assert.Equal(t, "y (mm)", fig.Map.Y.Label.Text)
	assert.InDelta(t, -20, fig.Map.X.Min, 1e-9)
	assert.InDelta(t, 20, fig.Map.Y.Max, 1e-9)

	path := filepath.Join(t.TempDir(), "disk.png")
	require.NoError(t, SavePNG(path, fig, DiskWidth, DiskHeight, 72))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.InDelta(t, 403, img.Bounds().Dx(), 1)
	assert.InDelta(t, 324, img.Bounds().Dy(), 1)
}

func TestDiskRejectsDegenerateGrid(t *testing.T) {
	_, err := Disk(&radial.Disk{Radius: 0.02, Coords: []float64{0}})
	assert.Error(t, err)
}

func TestBluesRunsLightToDark(t *testing.T) {
	cmap, err := blues()
	require.NoError(t, err)

	lo, err := cmap.At(0)
	require.NoError(t, err)
	hi, err := cmap.At(100)
	require.NoError(t, err)

	lum := func(r, g, b uint32) float64 { return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b) }
	lr, lg, lb, _ := lo.RGBA()
	hr, hg, hb, _ := hi.RGBA()
	assert.Greater(t, lum(lr, lg, lb), lum(hr, hg, hb), "zero should be lighter than full")
}

func TestMovie(t *testing.T) {
	res := smallRun(t)
	path := filepath.Join(t.TempDir(), "drying.avi")

	opts := DefaultMovieOptions(res.Params.Nodes)
	opts.Width, opts.Height = 320, 256
	require.NoError(t, Movie(path, res.Grid, res.Snapshots, opts))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "AVI ", string(data[8:12]))
}

func TestMovieErrors(t *testing.T) {
	g := radial.NewGrid(0.02, 4)
	dir := t.TempDir()

	assert.Error(t, Movie(filepath.Join(dir, "a.avi"), g, radial.Snapshots{}, DefaultMovieOptions(4)))

	opts := DefaultMovieOptions(4)
	opts.FPS = 0
	snaps := radial.Snapshots{0: radial.NewField(4, 1)}
	assert.Error(t, Movie(filepath.Join(dir, "b.avi"), g, snaps, opts))
}
