package metrics

import (
	"sort"

	"github.com/san-kum/trainviz/internal/quantum"
)

// Metric summarises a quantum run. Every metric is also a driver observer.
type Metric interface {
	Name() string
	OnTick(tick int, s quantum.Snapshot)
	Value() float64
	Reset()
}

// Set fans snapshots out to several metrics.
type Set []Metric

func Defaults() Set {
	return Set{
		NewMeanEnergy(),
		NewPeakPackets(),
		NewMeanPackets(),
		NewChannelSkew(),
	}
}

func (s Set) OnTick(tick int, snap quantum.Snapshot) {
	for _, m := range s {
		m.OnTick(tick, snap)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns the metric names in a stable order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.Name()
	}
	sort.Strings(names)
	return names
}
