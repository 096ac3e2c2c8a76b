package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille patterns are 2x4 dots per cell; bit layout per sub-row:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBase = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// FieldSize is the side of the square coordinate space anchors live in.
const FieldSize = 100.0

// Canvas is a braille canvas of Cols x Rows cells. Each cell remembers the
// ink of the last dot drawn into it so it can be coloured on render.
type Canvas struct {
	Cols, Rows int
	dots       [][]rune
	ink        [][]int
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows}
	c.dots = make([][]rune, rows)
	c.ink = make([][]int, rows)
	for i := range c.dots {
		c.dots[i] = make([]rune, cols)
		c.ink[i] = make([]int, cols)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.dots {
		for j := range c.dots[i] {
			c.dots[i][j] = brailleBase
			c.ink[i][j] = -1
		}
	}
}

// Dot sets the sub-pixel (x, y); sub-pixel space is (Cols*2) x (Rows*4).
func (c *Canvas) Dot(x, y, ink int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.dots[row][col] |= dotBits[y%4][x%2]
	c.ink[row][col] = ink
}

// Lit reports whether the sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Cols || y/4 >= c.Rows {
		return false
	}
	return c.dots[y/4][x/2]&dotBits[y%4][x%2] != 0
}

// toSub maps field coordinates onto sub-pixels.
func (c *Canvas) toSub(fx, fy float64) (int, int) {
	sx := float64(c.Cols*2-1) / FieldSize
	sy := float64(c.Rows*4-1) / FieldSize
	return int(math.Round(fx * sx)), int(math.Round(fy * sy))
}

func (c *Canvas) Point(fx, fy float64, ink int) {
	x, y := c.toSub(fx, fy)
	c.Dot(x, y, ink)
}

// Line draws between two field points with Bresenham's algorithm.
func (c *Canvas) Line(fx0, fy0, fx1, fy1 float64, ink int) {
	x0, y0 := c.toSub(fx0, fy0)
	x1, y1 := c.toSub(fx1, fy1)

	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Dot(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Ring outlines a circle of field radius r.
func (c *Canvas) Ring(fx, fy, r float64, ink int) {
	steps := max(12, int(r*8))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Point(fx+r*math.Cos(a), fy+r*math.Sin(a), ink)
	}
}

// Disc fills a circle of field radius r.
func (c *Canvas) Disc(fx, fy, r float64, ink int) {
	x0, y0 := c.toSub(fx-r, fy-r)
	x1, y1 := c.toSub(fx+r, fy+r)
	cx, cy := c.toSub(fx, fy)
	rx, ry := float64(x1-x0)/2, float64(y1-y0)/2
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			nx, ny := float64(x-cx), float64(y-cy)
			if rx == 0 || ry == 0 || nx*nx/(rx*rx)+ny*ny/(ry*ry) <= 1 {
				c.Dot(x, y, ink)
			}
		}
	}
}

// String renders without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.dots {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colours each cell with palette[ink]. Cells with no ink, or ink
// outside the palette, are written plain.
func (c *Canvas) Render(palette []lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.dots {
		for j, r := range row {
			ink := c.ink[i][j]
			if ink >= 0 && ink < len(palette) {
				b.WriteString(palette[ink].Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
