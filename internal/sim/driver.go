package sim

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Driver runs a Stepper at a fixed cadence on a single goroutine and forwards
// every result to its observers. It stops when the context is done, MaxTicks is
// reached, or Stop clears the training toggle.
type Driver[S any] struct {
	stepper   Stepper[S]
	cfg       Config
	observers []Observer[S]
	logger    *slog.Logger
	training  atomic.Bool
}

func NewDriver[S any](stepper Stepper[S], cfg Config) *Driver[S] {
	return &Driver[S]{
		stepper:   stepper,
		cfg:       cfg,
		observers: make([]Observer[S], 0),
		logger:    slog.Default(),
	}
}

func (d *Driver[S]) AddObserver(o Observer[S]) { d.observers = append(d.observers, o) }
func (d *Driver[S]) SetLogger(l *slog.Logger)  { d.logger = l }

// Training reports whether the driver is currently scheduling ticks.
func (d *Driver[S]) Training() bool { return d.training.Load() }

// Stop clears the training toggle. The tick in flight, if any, completes and
// no further tick is scheduled. Safe to call from any goroutine.
func (d *Driver[S]) Stop() { d.training.Store(false) }

// Run blocks until the run ends. A failed tick is recorded in the result and
// skipped; it never ends the run. The returned error is non-nil only for an
// invalid config or a done context.
func (d *Driver[S]) Run(ctx context.Context) (*Result, error) {
	if err := d.cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]error, 0)}
	start := time.Now()
	defer func() { result.Elapsed = time.Since(start) }()

	var ticker *time.Ticker
	if d.cfg.Interval > 0 {
		ticker = time.NewTicker(d.cfg.Interval)
		defer ticker.Stop()
	}

	d.training.Store(true)
	defer d.training.Store(false)

	for tick := 0; d.cfg.MaxTicks == 0 || tick < d.cfg.MaxTicks; tick++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-ticker.C:
			}
		} else {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
		}

		if !d.training.Load() {
			d.logger.Debug("training toggle cleared", "ticks", result.Ticks)
			return result, nil
		}

		s, err := d.stepper.Advance(d.cfg.Dt)
		result.Ticks++
		if err != nil {
			tickErr := &TickError{Tick: tick, Time: result.Simulated, Wrapped: err}
			result.Errors = append(result.Errors, tickErr)
			result.Failed++
			d.logger.Warn("tick skipped", "tick", tick, "error", err)
			continue
		}
		result.Simulated += d.cfg.Dt

		for _, o := range d.observers {
			o.OnTick(tick, s)
		}
	}

	return result, nil
}

// RunWithCallback drives the stepper like Run but hands each result to fn
// instead of the observers. Returning false from fn ends the run.
func (d *Driver[S]) RunWithCallback(ctx context.Context, fn func(tick int, s S) bool) (*Result, error) {
	stop := &callbackObserver[S]{fn: fn, driver: d}
	saved := d.observers
	d.observers = []Observer[S]{stop}
	defer func() { d.observers = saved }()
	return d.Run(ctx)
}

type callbackObserver[S any] struct {
	fn     func(int, S) bool
	driver *Driver[S]
}

func (c *callbackObserver[S]) OnTick(tick int, s S) {
	if !c.fn(tick, s) {
		c.driver.Stop()
	}
}
