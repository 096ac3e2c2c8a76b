package telemetry

import (
	"github.com/san-kum/trainviz/internal/noise"
	"github.com/san-kum/trainviz/internal/quantum"
	"github.com/san-kum/trainviz/internal/session"
)

// TickRecord is one row of ticks.csv.
type TickRecord struct {
	Tick          int     `csv:"tick"`
	Time          float64 `csv:"time"`
	Rotation      float64 `csv:"rotation"`
	EnergyLevel   float64 `csv:"energy_level"`
	PacketCount   int     `csv:"packet_count"`
	Originals     int     `csv:"originals"`
	Reconstructed int     `csv:"reconstructed"`
}

func TickFromSnapshot(s quantum.Snapshot) TickRecord {
	originals, reconstructed := s.CountKinds()
	return TickRecord{
		Tick:          s.Tick,
		Time:          s.Time,
		Rotation:      s.Rotation,
		EnergyLevel:   s.EnergyLevel,
		PacketCount:   s.PacketCount,
		Originals:     originals,
		Reconstructed: reconstructed,
	}
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Iteration int     `csv:"iteration"`
	Seed      int64   `csv:"seed"`
	Mode      string  `csv:"mode"`
	Size      int     `csv:"size"`
	Frame     int     `csv:"frame"`
	Role      string  `csv:"role"`
	Min       float64 `csv:"min"`
	Max       float64 `csv:"max"`
	Mean      float64 `csv:"mean"`
	StdDev    float64 `csv:"stddev"`
}

func FramesFromSet(set session.FrameSet) []FrameRecord {
	records := make([]FrameRecord, len(set.Frames))
	for i, f := range set.Frames {
		st := noise.ComputeStats(f.Pixels)
		records[i] = FrameRecord{
			Iteration: set.Iteration,
			Seed:      set.Seed,
			Mode:      set.Mode.String(),
			Size:      set.Size,
			Frame:     f.Index,
			Role:      string(f.Role),
			Min:       st.Min,
			Max:       st.Max,
			Mean:      st.Mean,
			StdDev:    st.StdDev,
		}
	}
	return records
}
