// Package export writes still images of the visualizations as SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/trainviz/internal/quantum"
	"github.com/san-kum/trainviz/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG draws every lit braille sub-pixel of the canvas as a dot.
func CanvasToSVG(c *viz.Canvas, scale float64) string {
	if c == nil || scale <= 0 {
		return ""
	}

	cols, rows := c.Cols*2, c.Rows*4
	var sb strings.Builder
	header(&sb, float64(cols)*scale, float64(rows)*scale)
	sb.WriteString(`<g fill="#e5e7eb">` + "\n")

	r := scale * 0.4
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if !c.Lit(x, y) {
				continue
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SnapshotToSVG renders one quantum frame as vector shapes on a square of
// side px. Field coordinates (0..100) are scaled to fit.
func SnapshotToSVG(anchors []quantum.SpiralAnchor, s quantum.Snapshot, px int) string {
	if px <= 0 {
		return ""
	}
	k := float64(px) / viz.FieldSize
	mid := viz.FieldSize / 2 * k

	var sb strings.Builder
	header(&sb, float64(px), float64(px))

	for ch := 0; ch < quantum.Channels; ch++ {
		var pts []string
		for _, a := range anchors {
			if a.Channel == ch {
				pts = append(pts, fmt.Sprintf("%.1f,%.1f", a.X*k, a.Y*k))
			}
		}
		if len(pts) > 1 {
			fmt.Fprintf(&sb, `<polyline fill="none" stroke="%s" stroke-opacity="0.4" points="%s"/>`+"\n",
				viz.ChannelColor(ch), strings.Join(pts, " "))
		}
	}

	for _, p := range s.Packets {
		r := 1.0
		if p.Kind == quantum.Original {
			r = 1.5
		}
		fmt.Fprintf(&sb, `<circle class="%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>`+"\n",
			p.Kind, p.X*k, p.Y*k, r*k, viz.ChannelColor(p.Channel), p.Energy)
	}

	rad := s.Rotation * math.Pi / 180
	spoke := 7.5 * k
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#ffffff" stroke-opacity="%.2f"/>`+"\n",
		mid, mid, spoke, 0.3+0.7*s.EnergyLevel)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ffffff"/>`+"\n",
		mid, mid, mid+spoke*math.Cos(rad), mid+spoke*math.Sin(rad))

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values as a polyline scaled to width x height, with 10%
// padding on both axes.
func SeriesToSVG(values []float64, width, height int, stroke string) string {
	if len(values) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)

	step := float64(width) / float64(len(values)-1)
	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
