package metrics

import (
	"math"

	"github.com/san-kum/drysim/internal/radial"
	"gonum.org/v1/gonum/floats"
)

// boundsTol absorbs rounding in the convex-combination update.
const boundsTol = 1e-12

// Bounds is the fraction of steps whose field stays inside [0, C0]. A
// stable run scores 1; an unstable one oscillates outside the range.
type Bounds struct {
	name       string
	lo, hi     float64
	violations int
	samples    int
}

func NewBounds(c0 float64) *Bounds {
	lo, hi := 0.0, c0
	if hi < lo {
		lo, hi = hi, lo
	}
	return &Bounds{
		name: "bounds",
		lo:   lo,
		hi:   hi,
	}
}

func (b *Bounds) Name() string { return b.name }

func (b *Bounds) Observe(step int, elapsed float64, f radial.Field) {
	if len(f) == 0 {
		return
	}
	b.samples++
	tol := boundsTol * math.Max(1, math.Abs(b.hi))
	if !f.IsValid() || floats.Min(f) < b.lo-tol || floats.Max(f) > b.hi+tol {
		b.violations++
	}
}

func (b *Bounds) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounds) Reset() {
	b.violations = 0
	b.samples = 0
}
