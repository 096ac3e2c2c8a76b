package sim

import (
	"math"
	"time"
)

// Stepper is anything the driver can advance one tick at a time.
// Advance must run to completion before returning; the driver never overlaps calls.
type Stepper[S any] interface {
	Advance(dt float64) (S, error)
}

// Observer receives every successful tick result. Results are owned by the
// observer for the duration of the call only.
type Observer[S any] interface {
	OnTick(tick int, s S)
}

// ObserverFunc adapts a plain function to an Observer.
type ObserverFunc[S any] func(tick int, s S)

func (f ObserverFunc[S]) OnTick(tick int, s S) { f(tick, s) }

type Config struct {
	// Dt is the simulated time passed to every Advance call.
	Dt float64
	// Interval is the wall-clock cadence between ticks. Zero runs headless,
	// as fast as the stepper allows.
	Interval time.Duration
	// MaxTicks stops the run after that many ticks. Zero means unbounded.
	MaxTicks int
}

// Preset cadences of the two animations.
const (
	QuantumDt       = 0.1
	QuantumInterval = 50 * time.Millisecond
	ImagesDt        = 0.1
	ImagesInterval  = 100 * time.Millisecond
)

func DefaultConfig() Config {
	return Config{
		Dt:       QuantumDt,
		Interval: QuantumInterval,
	}
}

func (c Config) Validate() error {
	if !ValidDt(c.Dt) {
		return InvalidParameter("dt must be finite and non-negative, got %v", c.Dt)
	}
	if c.Interval < 0 {
		return InvalidParameter("interval must be non-negative, got %v", c.Interval)
	}
	if c.MaxTicks < 0 {
		return InvalidParameter("max ticks must be non-negative, got %d", c.MaxTicks)
	}
	return nil
}

// ValidDt reports whether dt is a usable time step: finite and not negative.
func ValidDt(dt float64) bool {
	return dt >= 0 && !math.IsInf(dt, 0)
}

type Result struct {
	Ticks     int
	Failed    int
	Simulated float64
	Elapsed   time.Duration
	Errors    []error
}
