package metrics

import (
	"math"

	"github.com/san-kum/trainviz/internal/quantum"
)

type PeakPackets struct {
	peak int
}

func NewPeakPackets() *PeakPackets { return &PeakPackets{} }

func (p *PeakPackets) Name() string { return "peak_packets" }

func (p *PeakPackets) OnTick(tick int, s quantum.Snapshot) {
	p.peak = max(p.peak, s.PacketCount)
}

func (p *PeakPackets) Value() float64 { return float64(p.peak) }
func (p *PeakPackets) Reset()         { p.peak = 0 }

type MeanPackets struct {
	sum     int
	samples int
}

func NewMeanPackets() *MeanPackets { return &MeanPackets{} }

func (p *MeanPackets) Name() string { return "mean_packets" }

func (p *MeanPackets) OnTick(tick int, s quantum.Snapshot) {
	p.sum += s.PacketCount
	p.samples++
}

func (p *MeanPackets) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.sum) / float64(p.samples)
}

func (p *MeanPackets) Reset() {
	p.sum = 0
	p.samples = 0
}

// ChannelSkew is the largest share any single channel held of the live
// packets, averaged over ticks that had packets. 0.25 is perfectly balanced.
type ChannelSkew struct {
	sum     float64
	samples int
}

func NewChannelSkew() *ChannelSkew { return &ChannelSkew{} }

func (c *ChannelSkew) Name() string { return "channel_skew" }

func (c *ChannelSkew) OnTick(tick int, s quantum.Snapshot) {
	if s.PacketCount == 0 {
		return
	}
	top := 0
	for _, n := range s.ChannelCounts() {
		top = max(top, n)
	}
	c.sum += float64(top) / float64(s.PacketCount)
	c.samples++
}

func (c *ChannelSkew) Value() float64 {
	if c.samples == 0 {
		return math.NaN()
	}
	return c.sum / float64(c.samples)
}

func (c *ChannelSkew) Reset() {
	c.sum = 0
	c.samples = 0
}
