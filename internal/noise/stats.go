package noise

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the intensities of one quantized frame.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

func ComputeStats(pixels []byte) Stats {
	if len(pixels) == 0 {
		return Stats{}
	}
	values := make([]float64, len(pixels))
	for i, p := range pixels {
		values[i] = float64(p)
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return Stats{
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Mean:   mean,
		StdDev: std,
	}
}
