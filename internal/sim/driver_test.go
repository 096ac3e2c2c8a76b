package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

type counter struct {
	calls int
	sum   float64
	fail  map[int]bool
}

func (c *counter) Advance(dt float64) (float64, error) {
	c.calls++
	if c.fail[c.calls] {
		return 0, InvalidParameter("call %d", c.calls)
	}
	c.sum += dt
	return c.sum, nil
}

func TestDriverRun(t *testing.T) {
	c := &counter{}
	d := NewDriver[float64](c, Config{Dt: 0.1, MaxTicks: 10})

	var seen []float64
	d.AddObserver(ObserverFunc[float64](func(tick int, s float64) {
		seen = append(seen, s)
	}))

	result, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Ticks != 10 {
		t.Errorf("expected 10 ticks, got %d", result.Ticks)
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 observations, got %d", len(seen))
	}
	if d.Training() {
		t.Error("driver still training after run")
	}
	if diff := result.Simulated - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected 1.0s simulated, got %f", result.Simulated)
	}
}

func TestDriverInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative dt", Config{Dt: -0.1}},
		{"nan dt", Config{Dt: math.NaN()}},
		{"infinite dt", Config{Dt: math.Inf(1)}},
		{"negative interval", Config{Dt: 0.1, Interval: -time.Second}},
		{"negative max ticks", Config{Dt: 0.1, MaxTicks: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDriver[float64](&counter{}, tt.cfg)
			_, err := d.Run(context.Background())
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestDriverSkipsFailedTicks(t *testing.T) {
	c := &counter{fail: map[int]bool{3: true, 7: true}}
	d := NewDriver[float64](c, Config{Dt: 1, MaxTicks: 10})

	observed := 0
	d.AddObserver(ObserverFunc[float64](func(int, float64) { observed++ }))

	result, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Failed != 2 || len(result.Errors) != 2 {
		t.Fatalf("expected 2 failed ticks, got %d (%d errors)", result.Failed, len(result.Errors))
	}
	if observed != 8 {
		t.Errorf("expected 8 observations, got %d", observed)
	}

	var tickErr *TickError
	if !errors.As(result.Errors[0], &tickErr) {
		t.Fatalf("expected *TickError, got %T", result.Errors[0])
	}
	if tickErr.Tick != 2 {
		t.Errorf("expected failure at tick 2, got %d", tickErr.Tick)
	}
	if !errors.Is(result.Errors[0], ErrInvalidParameter) {
		t.Error("tick error does not unwrap to the stepper error")
	}
}

func TestDriverContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver[float64](&counter{}, Config{Dt: 0.1})
	result, err := d.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result.Ticks != 0 {
		t.Errorf("expected no ticks, got %d", result.Ticks)
	}
}

func TestDriverStopFromCallback(t *testing.T) {
	d := NewDriver[float64](&counter{}, Config{Dt: 0.5})

	result, err := d.RunWithCallback(context.Background(), func(tick int, s float64) bool {
		return tick < 4
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Ticks != 5 {
		t.Errorf("expected 5 ticks, got %d", result.Ticks)
	}
}

func TestDriverInterval(t *testing.T) {
	d := NewDriver[float64](&counter{}, Config{Dt: 0.1, Interval: 5 * time.Millisecond, MaxTicks: 4})

	result, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Ticks != 4 {
		t.Errorf("expected 4 ticks, got %d", result.Ticks)
	}
	if result.Elapsed < 15*time.Millisecond {
		t.Errorf("ticks not paced: elapsed %v", result.Elapsed)
	}
}

func TestTickError(t *testing.T) {
	err := &TickError{Tick: 150, Time: 1.5, Wrapped: ErrRangeOverflow}
	expected := "tick 150 (t=1.5000): sim: value outside quantization range"
	if err.Error() != expected {
		t.Errorf("TickError.Error() = %q, want %q", err.Error(), expected)
	}
}
