package quantum

import (
	"math"

	"github.com/san-kum/trainviz/internal/sim"
)

// Channels is the number of colour channels packets and anchors cycle through.
const Channels = 4

// SpiralAnchor is one precomputed point on the decorative spiral.
type SpiralAnchor struct {
	X, Y    float64
	Angle   float64
	Radius  float64
	Channel int
	Energy  float64
}

type SpiralParams struct {
	Count       int
	OuterRadius float64
	RadiusSpan  float64
	CenterX     float64
	CenterY     float64
	Turns       float64
}

func DefaultSpiralParams() SpiralParams {
	return SpiralParams{
		Count:       24,
		OuterRadius: 48,
		RadiusSpan:  40,
		CenterX:     50,
		CenterY:     50,
		Turns:       4,
	}
}

func (p SpiralParams) Validate() error {
	if p.Count < 1 {
		return sim.InvalidParameter("quantum: anchor count must be positive, got %d", p.Count)
	}
	for _, v := range []float64{p.OuterRadius, p.RadiusSpan, p.CenterX, p.CenterY, p.Turns} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return sim.InvalidParameter("quantum: non-finite spiral parameter %v", v)
		}
	}
	return nil
}

// GenerateSpiral lays out p.Count anchors winding inwards. The result depends
// on p only.
func GenerateSpiral(p SpiralParams) ([]SpiralAnchor, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	anchors := make([]SpiralAnchor, p.Count)
	n := float64(p.Count)
	for i := range anchors {
		frac := float64(i) / n
		angle := frac * p.Turns * 2 * math.Pi
		radius := p.OuterRadius - frac*p.RadiusSpan
		anchors[i] = SpiralAnchor{
			X:       p.CenterX + math.Cos(angle)*radius,
			Y:       p.CenterY + math.Sin(angle)*radius,
			Angle:   angle,
			Radius:  radius,
			Channel: i % Channels,
			Energy:  1.0,
		}
	}
	return anchors, nil
}
