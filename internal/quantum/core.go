package quantum

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/trainviz/internal/sim"
)

const (
	DefaultSpawnProbability = 0.4
	DefaultEnergyLevel      = 0.5

	rotationRate   = 2.0
	energySwing    = 0.1
	pairOffsetSpan = 0.1
	packetEnergy   = 0.7
	packetSpread   = 0.3
)

// Core is the particle field simulator.
type Core struct {
	anchors     []SpiralAnchor
	packets     []Packet
	rotation    float64
	energyLevel float64
	spawnProb   float64
	clock       Clock
	rng         *rand.Rand
	ticks       int
}

type options struct {
	spiral    SpiralParams
	spawnProb float64
	seed      uint64
	seeded    bool
	clock     Clock
}

type Option func(*options)

func WithSpiral(p SpiralParams) Option { return func(o *options) { o.spiral = p } }

func WithAnchorCount(n int) Option { return func(o *options) { o.spiral.Count = n } }

func WithSpawnProbability(p float64) Option { return func(o *options) { o.spawnProb = p } }

func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = uint64(seed)
		o.seeded = true
	}
}

// WithClock replaces the default VirtualClock, e.g. with WallClock{}.
func WithClock(c Clock) Option { return func(o *options) { o.clock = c } }

func New(opts ...Option) (*Core, error) {
	o := options{
		spiral:    DefaultSpiralParams(),
		spawnProb: DefaultSpawnProbability,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validProbability(o.spawnProb); err != nil {
		return nil, err
	}
	anchors, err := GenerateSpiral(o.spiral)
	if err != nil {
		return nil, err
	}

	seed := o.seed
	if !o.seeded {
		seed = rand.Uint64()
	}
	clock := o.clock
	if clock == nil {
		clock = &VirtualClock{}
	}

	return &Core{
		anchors:     anchors,
		packets:     make([]Packet, 0),
		energyLevel: DefaultEnergyLevel,
		spawnProb:   o.spawnProb,
		clock:       clock,
		rng:         rand.New(rand.NewPCG(seed, seed)),
	}, nil
}

func validProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return sim.InvalidParameter("quantum: spawn probability must be in [0,1], got %v", p)
	}
	return nil
}

// Advance runs one tick and returns the resulting snapshot. A negative or
// non-finite dt is rejected and leaves the core untouched.
func (c *Core) Advance(dt float64) (Snapshot, error) {
	if !sim.ValidDt(dt) {
		return Snapshot{}, sim.InvalidParameter("quantum: dt must be finite and non-negative, got %v", dt)
	}

	c.ticks++
	c.clock.Advance(dt)

	c.rotation = math.Mod(c.rotation+dt*rotationRate, 360)

	c.energyLevel += math.Sin(c.clock.Now()) * energySwing * dt
	c.energyLevel = math.Max(0, math.Min(1, c.energyLevel))

	if c.rng.Float64() < c.spawnProb {
		c.spawnPair()
	}

	live := c.packets[:0]
	for i := range c.packets {
		if c.packets[i].advance(dt) {
			live = append(live, c.packets[i])
		}
	}
	clear(c.packets[len(live):])
	c.packets = live

	return c.Snapshot(), nil
}

func (c *Core) spawnPair() {
	channel := c.rng.IntN(Channels)
	offset := c.rng.Float64() * pairOffsetSpan

	c.packets = append(c.packets,
		c.newPacket(channel, Original, 0),
		c.newPacket(channel, Reconstructed, offset),
	)
}

func (c *Core) newPacket(channel int, kind Kind, progress float64) Packet {
	return Packet{
		ID:       c.clock.Now() + c.rng.Float64(),
		Channel:  channel,
		Kind:     kind,
		Progress: progress,
		Energy:   c.rng.Float64()*packetSpread + packetEnergy,
	}
}

// Snapshot exports the current state without advancing it.
func (c *Core) Snapshot() Snapshot {
	views := make([]PacketView, len(c.packets))
	last := float64(len(c.anchors) - 1)
	for i, p := range c.packets {
		a := c.anchors[int(p.Progress*last)]
		views[i] = PacketView{
			X:       a.X,
			Y:       a.Y,
			Channel: p.Channel,
			Kind:    p.Kind,
			Energy:  p.Energy,
		}
	}
	return Snapshot{
		Tick:        c.ticks,
		Time:        c.clock.Now(),
		Rotation:    c.rotation,
		EnergyLevel: c.energyLevel,
		PacketCount: len(c.packets),
		Packets:     views,
	}
}

func (c *Core) SetSpawnProbability(p float64) error {
	if err := validProbability(p); err != nil {
		return err
	}
	c.spawnProb = p
	return nil
}

// Reset clears all packets and restores the initial rotation and energy.
// Anchors and the random stream are kept.
func (c *Core) Reset() {
	c.packets = c.packets[:0]
	c.rotation = 0
	c.energyLevel = DefaultEnergyLevel
	c.ticks = 0
	if vc, ok := c.clock.(*VirtualClock); ok {
		vc.t = 0
	}
}

func (c *Core) Anchors() []SpiralAnchor {
	out := make([]SpiralAnchor, len(c.anchors))
	copy(out, c.anchors)
	return out
}

func (c *Core) Packets() []Packet {
	out := make([]Packet, len(c.packets))
	copy(out, c.packets)
	return out
}

func (c *Core) Rotation() float64         { return c.rotation }
func (c *Core) EnergyLevel() float64      { return c.energyLevel }
func (c *Core) SpawnProbability() float64 { return c.spawnProb }
func (c *Core) Ticks() int                { return c.ticks }
