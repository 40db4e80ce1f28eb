package metrics

import "github.com/san-kum/drysim/internal/radial"

// MoistureRemaining is the fraction of the initial moisture still held by
// the sphere after the latest observed step.
type MoistureRemaining struct {
	name    string
	grid    radial.Grid
	initial float64
	current float64
}

func NewMoistureRemaining(g radial.Grid, c0 float64) *MoistureRemaining {
	return &MoistureRemaining{
		name:    "moisture_remaining",
		grid:    g,
		initial: radial.Integral(g, radial.NewField(len(g)-1, c0)),
		current: 1,
	}
}

func (m *MoistureRemaining) Name() string { return m.name }

func (m *MoistureRemaining) Observe(step int, elapsed float64, f radial.Field) {
	if m.initial == 0 {
		m.current = 0
		return
	}
	m.current = radial.Integral(m.grid, f) / m.initial
}

func (m *MoistureRemaining) Value() float64 { return m.current }

func (m *MoistureRemaining) Reset() { m.current = 1 }

// CenterConcentration tracks the concentration at r = 0, the last point of
// the body to dry.
type CenterConcentration struct {
	name    string
	initial float64
	current float64
}

func NewCenterConcentration(c0 float64) *CenterConcentration {
	return &CenterConcentration{
		name:    "center_concentration",
		initial: c0,
		current: c0,
	}
}

func (c *CenterConcentration) Name() string { return c.name }

func (c *CenterConcentration) Observe(step int, elapsed float64, f radial.Field) {
	if len(f) > 0 {
		c.current = f[0]
	}
}

func (c *CenterConcentration) Value() float64 { return c.current }

func (c *CenterConcentration) Reset() { c.current = c.initial }
