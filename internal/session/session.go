// Package session holds the state of the image training environment: seed,
// iteration counter, display mode, image size and the frames of the current
// iteration.
package session

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/trainviz/internal/noise"
	"github.com/san-kum/trainviz/internal/sim"
)

const (
	DefaultSeed       = 1337
	DefaultImageSize  = 256
	DefaultFrameCount = 8

	MinImageSize  = 28
	MaxImageSize  = 512
	ImageSizeStep = 4
)

type Role string

const (
	RoleOriginal      Role = "original"
	RoleReconstructed Role = "reconstructed"
)

// Frame is one quantized image, row-major, Size*Size bytes.
type Frame struct {
	Index  int
	Role   Role
	Size   int
	Pixels []byte
}

// FrameSet is everything a renderer needs for one iteration. Frames stay valid
// until the session produces the next set.
type FrameSet struct {
	Iteration int
	Seed      int64
	Mode      noise.Mode
	Size      int
	Frames    []Frame
}

type Config struct {
	Seed       int64
	ImageSize  int
	FrameCount int
	Mode       noise.Mode
}

func DefaultConfig() Config {
	return Config{
		Seed:       DefaultSeed,
		ImageSize:  DefaultImageSize,
		FrameCount: DefaultFrameCount,
		Mode:       noise.SandPlot,
	}
}

// Session keeps all mutable environment state in one struct. It is driven
// from a single goroutine.
type Session struct {
	seed       int64
	iteration  int
	mode       noise.Mode
	size       int
	frameCount int
	training   bool

	pool    *sim.FramePool
	current FrameSet
	logger  *slog.Logger

	field func(*noise.Generator, noise.Mode, int) (noise.Grid, error)
}

func New(cfg Config) (*Session, error) {
	if cfg.FrameCount <= 0 {
		return nil, sim.InvalidParameter("session: frame count must be positive, got %d", cfg.FrameCount)
	}
	if cfg.ImageSize <= 0 {
		return nil, sim.InvalidParameter("session: image size must be positive, got %d", cfg.ImageSize)
	}
	mode, err := noise.ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		seed:       cfg.Seed,
		mode:       mode,
		size:       ClampImageSize(cfg.ImageSize),
		frameCount: cfg.FrameCount,
		logger:     slog.Default(),
		field:      (*noise.Generator).Field,
	}
	s.pool = sim.NewFramePool(s.size * s.size)
	if err := s.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) SetLogger(l *slog.Logger) { s.logger = l }

// ClampImageSize snaps v onto the slider range: [28,512] in steps of 4.
func ClampImageSize(v int) int {
	v = max(MinImageSize, min(MaxImageSize, v))
	return MinImageSize + (v-MinImageSize+ImageSizeStep/2)/ImageSizeStep*ImageSizeStep
}

// Advance runs one training iteration: bump seed and counter, regenerate.
// dt is accepted for the driver's benefit and must be non-negative.
func (s *Session) Advance(dt float64) (FrameSet, error) {
	if !sim.ValidDt(dt) {
		return FrameSet{}, sim.InvalidParameter("session: dt must be finite and non-negative, got %v", dt)
	}
	s.seed++
	s.iteration++
	if err := s.Regenerate(); err != nil {
		return FrameSet{}, err
	}
	return s.current, nil
}

// Regenerate rebuilds every frame from the current seed, mode and size. The
// previous frames are released back to the pool first. On error no frames are
// held and every buffer taken during the attempt is returned.
func (s *Session) Regenerate() error {
	s.release()

	gen := noise.New(s.seed)
	frames := make([]Frame, 0, s.frameCount)
	fail := func(err error) error {
		for _, f := range frames {
			s.pool.Put(f.Pixels)
		}
		return err
	}
	for i := range s.frameCount {
		grid, err := s.field(gen, s.mode, s.size)
		if err != nil {
			return fail(err)
		}
		pixels := s.pool.Get()
		clamped, err := noise.QuantizeInto(pixels, grid, s.size)
		if err != nil {
			s.pool.Put(pixels)
			return fail(err)
		}
		if clamped > 0 {
			s.logger.Warn("frame clamped",
				"frame", i,
				"cells", clamped,
				"error", sim.ErrRangeOverflow)
		}
		frames = append(frames, Frame{Index: i, Role: roleOf(i), Size: s.size, Pixels: pixels})
	}

	s.current = FrameSet{
		Iteration: s.iteration,
		Seed:      s.seed,
		Mode:      s.mode,
		Size:      s.size,
		Frames:    frames,
	}
	return nil
}

func (s *Session) release() {
	for _, f := range s.current.Frames {
		s.pool.Put(f.Pixels)
	}
	s.current.Frames = nil
}

// roleOf pairs even indices as originals with odd reconstructions.
func roleOf(i int) Role {
	if i%2 == 0 {
		return RoleOriginal
	}
	return RoleReconstructed
}

// ToggleMode flips sandplot/mnist and regenerates without advancing.
func (s *Session) ToggleMode() error {
	s.mode = s.mode.Toggle()
	return s.Regenerate()
}

// SetImageSize snaps v to the slider range and regenerates.
func (s *Session) SetImageSize(v int) error {
	size := ClampImageSize(v)
	if size != s.size {
		s.release()
		s.size = size
		s.pool = sim.NewFramePool(size * size)
	}
	return s.Regenerate()
}

// ToggleTraining flips the training flag and returns the new value.
func (s *Session) ToggleTraining() bool {
	s.training = !s.training
	return s.training
}

func (s *Session) Training() bool    { return s.training }
func (s *Session) Iteration() int    { return s.iteration }
func (s *Session) Seed() int64       { return s.seed }
func (s *Session) Mode() noise.Mode  { return s.mode }
func (s *Session) ImageSize() int    { return s.size }
func (s *Session) Current() FrameSet { return s.current }
