package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/trainviz/internal/sim"
)

// Spectrum is the one-sided magnitude spectrum of a series sampled every Dt.
// Power[0] is DC; the Nyquist bin is dropped.
type Spectrum struct {
	Power []float64
	Dt    float64
	N     int // padded length
}

// Frequency of bin k in Hz.
func (s Spectrum) Frequency(k int) float64 {
	return float64(k) / (float64(s.N) * s.Dt)
}

// Dominant returns the strongest bin above DC. ok is false when there is no
// such bin or the series was flat.
func (s Spectrum) Dominant() (freq, period float64, ok bool) {
	best, idx := 0.0, 0
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > best {
			best, idx = s.Power[k], k
		}
	}
	if idx == 0 {
		return 0, 0, false
	}
	freq = s.Frequency(idx)
	return freq, 1 / freq, true
}

// PowerSpectrum removes the mean, zero-pads to the next power of two and
// transforms.
func PowerSpectrum(series []float64, dt float64) (Spectrum, error) {
	if len(series) < 2 {
		return Spectrum{}, sim.InvalidParameter("analysis: need at least 2 samples, got %d", len(series))
	}
	if dt <= 0 {
		return Spectrum{}, sim.InvalidParameter("analysis: sample spacing must be positive, got %v", dt)
	}

	n := 1
	for n < len(series) {
		n *= 2
	}

	mean := stat.Mean(series, nil)
	padded := make([]float64, n)
	for i, v := range series {
		padded[i] = v - mean
	}

	coeffs := fourier.NewFFT(n).Coefficients(nil, padded)
	power := make([]float64, n/2)
	for i := range power {
		power[i] = cmplx.Abs(coeffs[i])
	}
	return Spectrum{Power: power, Dt: dt, N: n}, nil
}
