package quantum

import "time"

// Clock feeds the energy oscillation. Now is read once per tick, after
// Advance has been told about the tick's delta.
type Clock interface {
	Advance(dt float64)
	Now() float64
}

// VirtualClock accumulates simulated time, so identical dt sequences give
// identical energy curves.
type VirtualClock struct {
	t float64
}

func (c *VirtualClock) Advance(dt float64) { c.t += dt }
func (c *VirtualClock) Now() float64       { return c.t }

// WallClock reads real time in seconds since the epoch, so the energy drift
// follows the wall clock rather than dt. Output is not reproducible across runs.
type WallClock struct{}

func (WallClock) Advance(float64) {}

func (WallClock) Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
