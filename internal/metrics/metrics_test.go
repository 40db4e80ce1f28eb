package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/drysim/internal/radial"
)

func TestMoistureRemaining(t *testing.T) {
	g := radial.NewGrid(0.02, 100)
	m := NewMoistureRemaining(g, 1.0)

	if m.Value() != 1 {
		t.Errorf("expected 1 before any step, got %f", m.Value())
	}

	m.Observe(1, 5, radial.NewField(100, 0.5))
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected 1 after reset, got %f", m.Value())
	}
}

func TestMoistureRemainingDryBody(t *testing.T) {
	g := radial.NewGrid(0.02, 10)
	m := NewMoistureRemaining(g, 0)
	m.Observe(1, 5, radial.NewField(10, 0))
	if m.Value() != 0 {
		t.Errorf("expected 0 for a body with no moisture, got %f", m.Value())
	}
}

func TestCenterConcentration(t *testing.T) {
	c := NewCenterConcentration(1.0)
	if c.Value() != 1.0 {
		t.Errorf("expected initial value, got %f", c.Value())
	}

	c.Observe(1, 5, radial.Field{0.8, 0.7, 0})
	if c.Value() != 0.8 {
		t.Errorf("expected 0.8, got %f", c.Value())
	}

	c.Reset()
	if c.Value() != 1.0 {
		t.Errorf("expected 1 after reset, got %f", c.Value())
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name   string
		fields []radial.Field
		want   float64
	}{
		{"no samples", nil, 1},
		{"inside", []radial.Field{{1, 0.5, 0}, {0.9, 0.4, 0}}, 1},
		{"overshoot", []radial.Field{{1, 0.5, 0}, {1.2, 0.4, 0}}, 0.5},
		{"negative", []radial.Field{{1, -0.1, 0}}, 0},
		{"nan", []radial.Field{{math.NaN(), 0.5, 0}}, 0},
		{"rounding", []radial.Field{{1 + 1e-15, 0.5, -1e-15}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBounds(1.0)
			for i, f := range tt.fields {
				b.Observe(i+1, float64(i+1), f)
			}
			if got := b.Value(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestRecorderOnStableRun(t *testing.T) {
	p := radial.DefaultParams()
	p.Duration = 3600
	rec := NewRecorder(Default(p)...)

	res, err := radial.Simulate(context.Background(), p, rec)
	if err != nil {
		t.Fatal(err)
	}

	v := rec.Values()
	if len(v) != 3 {
		t.Fatalf("expected 3 metrics, got %v", v)
	}
	if v["bounds"] != 1 {
		t.Errorf("stable run left bounds: %f", v["bounds"])
	}
	if v["moisture_remaining"] <= 0 || v["moisture_remaining"] >= 1 {
		t.Errorf("moisture remaining out of range: %f", v["moisture_remaining"])
	}
	if v["center_concentration"] != res.Final[0] {
		t.Errorf("center %f does not match final field %f", v["center_concentration"], res.Final[0])
	}

	rec.Reset()
	if rec.Values()["moisture_remaining"] != 1 {
		t.Error("reset did not clear metrics")
	}
}

func TestRecorderFlagsUnstableRun(t *testing.T) {
	p := radial.DefaultParams()
	p.Dt = 20
	p.Duration = 200
	p.Checkpoints = nil
	rec := NewRecorder(NewBounds(p.Initial))

	if _, err := radial.Simulate(context.Background(), p, rec); err != nil {
		t.Fatal(err)
	}
	if got := rec.Values()["bounds"]; got >= 1 {
		t.Errorf("expected violations for dt=20, got %f", got)
	}
}
