package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/trainviz/internal/noise"
	"github.com/san-kum/trainviz/internal/quantum"
	"github.com/san-kum/trainviz/internal/session"
	"github.com/san-kum/trainviz/internal/sim"
)

const (
	DefaultTicks        = 600
	DefaultIterations   = 20
	DefaultTelemetryDir = ".trainviz"
)

type Config struct {
	Quantum   QuantumConfig   `yaml:"quantum"`
	Images    ImagesConfig    `yaml:"images"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type QuantumConfig struct {
	Seed             int64   `yaml:"seed"`
	Anchors          int     `yaml:"anchors"`
	OuterRadius      float64 `yaml:"outer_radius"`
	RadiusSpan       float64 `yaml:"radius_span"`
	SpawnProbability float64 `yaml:"spawn_probability"`
	WallClock        bool    `yaml:"wall_clock"`
	Dt               float64 `yaml:"dt"`
	IntervalMs       int     `yaml:"interval_ms"`
	Ticks            int     `yaml:"ticks"`
}

type ImagesConfig struct {
	Seed       int64   `yaml:"seed"`
	Mode       string  `yaml:"mode"`
	ImageSize  int     `yaml:"image_size"`
	Frames     int     `yaml:"frames"`
	Dt         float64 `yaml:"dt"`
	IntervalMs int     `yaml:"interval_ms"`
	Iterations int     `yaml:"iterations"`
}

type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

func DefaultConfig() *Config {
	spiral := quantum.DefaultSpiralParams()
	return &Config{
		Quantum: QuantumConfig{
			Anchors:          spiral.Count,
			OuterRadius:      spiral.OuterRadius,
			RadiusSpan:       spiral.RadiusSpan,
			SpawnProbability: quantum.DefaultSpawnProbability,
			Dt:               sim.QuantumDt,
			IntervalMs:       int(sim.QuantumInterval / time.Millisecond),
			Ticks:            DefaultTicks,
		},
		Images: ImagesConfig{
			Seed:       session.DefaultSeed,
			Mode:       string(noise.SandPlot),
			ImageSize:  session.DefaultImageSize,
			Frames:     session.DefaultFrameCount,
			Dt:         sim.ImagesDt,
			IntervalMs: int(sim.ImagesInterval / time.Millisecond),
			Iterations: DefaultIterations,
		},
		Telemetry: TelemetryConfig{
			Dir: DefaultTelemetryDir,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys absent from the file keep the
// values base already had (a preset, usually). base is modified in place.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	q := c.Quantum
	if q.Anchors < 1 {
		return sim.InvalidParameter("config: quantum.anchors must be positive, got %d", q.Anchors)
	}
	if !(q.SpawnProbability >= 0 && q.SpawnProbability <= 1) {
		return sim.InvalidParameter("config: quantum.spawn_probability must be in [0,1], got %v", q.SpawnProbability)
	}
	if !sim.ValidDt(q.Dt) || !sim.ValidDt(c.Images.Dt) {
		return sim.InvalidParameter("config: dt must be finite and non-negative")
	}
	if q.IntervalMs < 0 || c.Images.IntervalMs < 0 {
		return sim.InvalidParameter("config: interval_ms must be non-negative")
	}
	if q.Ticks < 0 || c.Images.Iterations < 0 {
		return sim.InvalidParameter("config: run length must be non-negative")
	}
	if _, err := noise.ParseMode(c.Images.Mode); err != nil {
		return fmt.Errorf("config: images.mode: %w", err)
	}
	if c.Images.ImageSize <= 0 {
		return sim.InvalidParameter("config: images.image_size must be positive, got %d", c.Images.ImageSize)
	}
	if c.Images.Frames <= 0 {
		return sim.InvalidParameter("config: images.frames must be positive, got %d", c.Images.Frames)
	}
	return nil
}

// QuantumOptions translates the quantum section into simulator options.
// A zero seed leaves the simulator randomly seeded.
func (c *Config) QuantumOptions() []quantum.Option {
	q := c.Quantum
	spiral := quantum.DefaultSpiralParams()
	spiral.Count = q.Anchors
	spiral.OuterRadius = q.OuterRadius
	spiral.RadiusSpan = q.RadiusSpan

	opts := []quantum.Option{
		quantum.WithSpiral(spiral),
		quantum.WithSpawnProbability(q.SpawnProbability),
	}
	if q.Seed != 0 {
		opts = append(opts, quantum.WithSeed(q.Seed))
	}
	if q.WallClock {
		opts = append(opts, quantum.WithClock(quantum.WallClock{}))
	}
	return opts
}

func (c *Config) QuantumDriver() sim.Config {
	return sim.Config{
		Dt:       c.Quantum.Dt,
		Interval: time.Duration(c.Quantum.IntervalMs) * time.Millisecond,
		MaxTicks: c.Quantum.Ticks,
	}
}

func (c *Config) SessionConfig() session.Config {
	return session.Config{
		Seed:       c.Images.Seed,
		ImageSize:  c.Images.ImageSize,
		FrameCount: c.Images.Frames,
		Mode:       noise.Mode(c.Images.Mode),
	}
}

func (c *Config) ImagesDriver() sim.Config {
	return sim.Config{
		Dt:       c.Images.Dt,
		Interval: time.Duration(c.Images.IntervalMs) * time.Millisecond,
		MaxTicks: c.Images.Iterations,
	}
}
