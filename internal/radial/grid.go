package radial

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/interp"
)

// NewGrid returns n+1 evenly spaced nodes from the center (0) to the surface (R).
func NewGrid(radius float64, n int) Grid {
	g := floats.Span(make([]float64, n+1), 0, radius)
	g[n] = radius
	return Grid(g)
}

// NewField returns n+1 nodes all set to c0.
func NewField(n int, c0 float64) Field {
	f := make(Field, n+1)
	for i := range f {
		f[i] = c0
	}
	return f
}

// SampleNodes returns five evenly spaced node indices from center to surface.
func SampleNodes(n int) []int {
	return []int{0, n / 4, n / 2, 3 * n / 4, n}
}

// Integral is the trapezoidal integral of r²·C over the grid, proportional
// to the moisture held in the sphere.
func Integral(g Grid, f Field) float64 {
	w := make([]float64, len(f))
	for i, r := range g {
		w[i] = r * r * f[i]
	}
	return integrate.Trapezoidal(g, w)
}

// Profile interpolates a field linearly between nodes. Values beyond either
// end of the grid are clamped to the end nodes.
type Profile struct {
	pl interp.PiecewiseLinear
}

func NewProfile(g Grid, f Field) (*Profile, error) {
	p := &Profile{}
	if err := p.pl.Fit(g, f); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) At(r float64) float64 { return p.pl.Predict(r) }

// Disk is a Cartesian cross-section through the center of the sphere.
// Values[row][col] holds the concentration at (Coords[col], Coords[row]);
// points outside the sphere are NaN.
type Disk struct {
	Radius float64
	Coords []float64
	Values [][]float64
	Center float64
}

// NewDisk samples the field on m×m points spanning [-R, R] in x and y.
func NewDisk(g Grid, f Field, m int) (*Disk, error) {
	prof, err := NewProfile(g, f)
	if err != nil {
		return nil, err
	}
	radius := g[len(g)-1]
	coords := floats.Span(make([]float64, m), -radius, radius)
	coords[0], coords[m-1] = -radius, radius
	values := make([][]float64, m)
	for row, y := range coords {
		values[row] = make([]float64, m)
		for col, x := range coords {
			d := math.Hypot(x, y)
			if d > radius {
				values[row][col] = math.NaN()
				continue
			}
			values[row][col] = prof.At(d)
		}
	}
	return &Disk{
		Radius: radius,
		Coords: coords,
		Values: values,
		Center: prof.At(0),
	}, nil
}
