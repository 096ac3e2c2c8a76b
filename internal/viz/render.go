package viz

import (
	"math"
	"strings"

	"github.com/san-kum/trainviz/internal/quantum"
)

const center = FieldSize / 2

// Sizes in field units, scaled from the 400px canvas of the desktop version.
const (
	backdropRadius = 45.0
	backdropStep   = 5.0
	originalSize   = 1.5
	reconSize      = 1.0
	glowStep       = 0.5
	coreSize       = 7.5
	coreStep       = 1.5
)

// DrawQuantum paints one snapshot: backdrop rings, the spiral path of each
// channel, packets with their glow, and the core with a spoke at the current
// rotation.
func DrawQuantum(c *Canvas, anchors []quantum.SpiralAnchor, s quantum.Snapshot) {
	c.Clear()

	for i := 0; i < 3; i++ {
		c.Ring(center, center, backdropRadius-float64(i)*backdropStep, inkRing)
	}

	for ch := 0; ch < quantum.Channels; ch++ {
		var prev *quantum.SpiralAnchor
		for i := range anchors {
			a := &anchors[i]
			if a.Channel != ch {
				continue
			}
			if prev != nil {
				c.Line(prev.X, prev.Y, a.X, a.Y, ch)
			}
			prev = a
		}
	}

	for _, p := range s.Packets {
		size := reconSize
		if p.Kind == quantum.Original {
			size = originalSize
		}
		c.Disc(p.X, p.Y, size, p.Channel)
		for i := 1; i < 3; i++ {
			c.Ring(p.X, p.Y, size+float64(i)*glowStep, p.Channel)
		}
	}

	for i := 0; i < 4; i++ {
		c.Ring(center, center, coreSize-float64(i)*coreStep, inkCore)
	}
	rad := s.Rotation * math.Pi / 180
	c.Line(center, center, center+coreSize*math.Cos(rad), center+coreSize*math.Sin(rad), inkCore)
}

// shades runs from dark to bright.
const shades = " .:-=+*#%@"

// RenderFrame downsamples a size x size row-major frame to cols x rows
// characters, averaging each block and mapping it onto a shade ramp.
func RenderFrame(pixels []byte, size, cols, rows int) string {
	if size <= 0 || cols <= 0 || rows <= 0 || len(pixels) < size*size {
		return ""
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		y0, y1 := r*size/rows, max((r+1)*size/rows, r*size/rows+1)
		for col := 0; col < cols; col++ {
			x0, x1 := col*size/cols, max((col+1)*size/cols, col*size/cols+1)
			sum, n := 0, 0
			for y := y0; y < y1 && y < size; y++ {
				for x := x0; x < x1 && x < size; x++ {
					sum += int(pixels[y*size+x])
					n++
				}
			}
			level := 0
			if n > 0 {
				level = sum / n * len(shades) / 256
			}
			b.WriteByte(shades[level])
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
