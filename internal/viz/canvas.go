package viz

import (
	"math"
	"strings"

	"github.com/san-kum/drysim/internal/radial"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// bayer is the ordered-dither threshold for each sub-pixel of a cell.
var bayer = [4][2]float64{
	{0.0625, 0.5625},
	{0.8125, 0.3125},
	{0.1875, 0.6875},
	{0.9375, 0.4375},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawDisk shades the cross-section of the sphere: dot density follows the
// concentration, the rim is always drawn.
func (c *Canvas) DrawDisk(g radial.Grid, f radial.Field) error {
	prof, err := radial.NewProfile(g, f)
	if err != nil {
		return err
	}
	radius := g[len(g)-1]
	pw, ph := c.Width*2, c.Height*4
	// Braille cells are roughly twice as tall as wide, so sub-pixels are square.
	side := math.Min(float64(pw), float64(ph))
	scale := 2 * radius / side
	ox, oy := float64(pw)/2, float64(ph)/2

	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			rx := (float64(x) + 0.5 - ox) * scale
			ry := (oy - float64(y) - 0.5) * scale
			d := math.Hypot(rx, ry)
			if d > radius {
				continue
			}
			if radius-d < scale || prof.At(d) > bayer[y%4][x%2] {
				c.Set(x, y)
			}
		}
	}
	return nil
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
