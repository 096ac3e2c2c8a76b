// Package automation replays scripted control sequences against the
// training session and sweeps simulator parameters headless.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/trainviz/internal/metrics"
	"github.com/san-kum/trainviz/internal/noise"
	"github.com/san-kum/trainviz/internal/quantum"
	"github.com/san-kum/trainviz/internal/session"
	"github.com/san-kum/trainviz/internal/sim"
	"github.com/san-kum/trainviz/internal/telemetry"
)

// Scenario is a scripted sequence of control changes, each followed by a
// number of training iterations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Seed        int64          `yaml:"seed"`
	Frames      int            `yaml:"frames"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep sets the controls it names, then trains. Zero fields leave the
// control as it is.
type ScenarioStep struct {
	Mode       string `yaml:"mode"`
	ImageSize  int    `yaml:"image_size"`
	Iterations int    `yaml:"iterations"`
}

// StepResult summarises the last frame set of a step.
type StepResult struct {
	Step       int
	Mode       noise.Mode
	Size       int
	Iteration  int
	Seed       int64
	MeanLevel  float64
	MeanStdDev float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return sim.InvalidParameter("scenario %q has no steps", sc.Name)
	}
	for i, st := range sc.Steps {
		if st.Mode != "" {
			if _, err := noise.ParseMode(st.Mode); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if st.ImageSize < 0 || st.Iterations < 0 {
			return sim.InvalidParameter("step %d: negative value", i+1)
		}
	}
	return nil
}

func (sc *Scenario) sessionConfig() session.Config {
	cfg := session.DefaultConfig()
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	if sc.Frames > 0 {
		cfg.FrameCount = sc.Frames
	}
	return cfg
}

// RunScenario executes every step against a fresh session. observe, when not
// nil, sees every frame set the session produces.
func RunScenario(ctx context.Context, sc *Scenario, observe func(int, session.FrameSet)) ([]StepResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	sess, err := session.New(sc.sessionConfig())
	if err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(sc.Steps))
	for i, st := range sc.Steps {
		if st.Mode != "" {
			want, _ := noise.ParseMode(st.Mode)
			if want != sess.Mode() {
				if err := sess.ToggleMode(); err != nil {
					return results, fmt.Errorf("step %d: %w", i+1, err)
				}
			}
		}
		if st.ImageSize > 0 {
			if err := sess.SetImageSize(st.ImageSize); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		if st.Iterations > 0 {
			driver := sim.NewDriver[session.FrameSet](sess, sim.Config{Dt: sim.ImagesDt, MaxTicks: st.Iterations})
			if observe != nil {
				driver.AddObserver(sim.ObserverFunc[session.FrameSet](observe))
			}
			if _, err := driver.Run(ctx); err != nil {
				return results, fmt.Errorf("step %d run: %w", i+1, err)
			}
		}

		results = append(results, summarize(i+1, sess.Current()))
		slog.Debug("scenario step done", "scenario", sc.Name, "step", i+1, "iteration", sess.Iteration())
	}
	return results, nil
}

func summarize(step int, set session.FrameSet) StepResult {
	records := telemetry.FramesFromSet(set)
	means := make([]float64, len(records))
	devs := make([]float64, len(records))
	for i, r := range records {
		means[i] = r.Mean
		devs[i] = r.StdDev
	}
	return StepResult{
		Step:       step,
		Mode:       set.Mode,
		Size:       set.Size,
		Iteration:  set.Iteration,
		Seed:       set.Seed,
		MeanLevel:  stat.Mean(means, nil),
		MeanStdDev: stat.Mean(devs, nil),
	}
}

// SpawnSweep runs the particle field once per spawn probability in
// [Min, Max] and records the packet metrics of each run. Runs are
// independent and execute concurrently.
type SpawnSweep struct {
	Min, Max float64
	Steps    int
	Ticks    int
	Dt       float64
	Seed     int64
}

type SweepResult struct {
	SpawnProbability float64
	Metrics          map[string]float64
	FinalPackets     int
}

func RunSweep(ctx context.Context, sweep SpawnSweep) ([]SweepResult, error) {
	if sweep.Steps < 2 {
		return nil, sim.InvalidParameter("sweep needs at least 2 steps, got %d", sweep.Steps)
	}
	if !(sweep.Min >= 0 && sweep.Max <= 1 && sweep.Min <= sweep.Max) {
		return nil, sim.InvalidParameter("sweep range [%v, %v] outside [0,1]", sweep.Min, sweep.Max)
	}
	if !sim.ValidDt(sweep.Dt) {
		return nil, sim.InvalidParameter("sweep dt must be finite and non-negative, got %v", sweep.Dt)
	}
	if sweep.Ticks <= 0 {
		return nil, sim.InvalidParameter("sweep ticks must be positive, got %d", sweep.Ticks)
	}

	results := make([]SweepResult, sweep.Steps)
	errs := make([]error, sweep.Steps)
	step := (sweep.Max - sweep.Min) / float64(sweep.Steps-1)

	// Every run owns its own core and driver.
	var wg sync.WaitGroup
	for i := 0; i < sweep.Steps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = runSpawn(ctx, sweep, min(sweep.Min+float64(idx)*step, sweep.Max))
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

func runSpawn(ctx context.Context, sweep SpawnSweep, p float64) (SweepResult, error) {
	core, err := quantum.New(quantum.WithSpawnProbability(p), quantum.WithSeed(sweep.Seed))
	if err != nil {
		return SweepResult{}, err
	}

	set := metrics.Defaults()
	driver := sim.NewDriver[quantum.Snapshot](core, sim.Config{Dt: sweep.Dt, MaxTicks: sweep.Ticks})
	driver.AddObserver(set)
	if _, err := driver.Run(ctx); err != nil {
		return SweepResult{}, fmt.Errorf("spawn %.3f: %w", p, err)
	}
	slog.Debug("sweep run done", "spawn", p, "ticks", sweep.Ticks)

	return SweepResult{
		SpawnProbability: p,
		Metrics:          set.Values(),
		FinalPackets:     core.Snapshot().PacketCount,
	}, nil
}
