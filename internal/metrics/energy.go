package metrics

import "github.com/san-kum/trainviz/internal/quantum"

type MeanEnergy struct {
	sum     float64
	samples int
}

func NewMeanEnergy() *MeanEnergy { return &MeanEnergy{} }

func (e *MeanEnergy) Name() string { return "mean_energy" }

func (e *MeanEnergy) OnTick(tick int, s quantum.Snapshot) {
	e.sum += s.EnergyLevel
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}
