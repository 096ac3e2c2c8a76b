package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/trainviz/internal/analysis"
	"github.com/san-kum/trainviz/internal/automation"
	"github.com/san-kum/trainviz/internal/config"
	"github.com/san-kum/trainviz/internal/export"
	"github.com/san-kum/trainviz/internal/metrics"
	"github.com/san-kum/trainviz/internal/noise"
	"github.com/san-kum/trainviz/internal/quantum"
	"github.com/san-kum/trainviz/internal/session"
	"github.com/san-kum/trainviz/internal/sim"
	"github.com/san-kum/trainviz/internal/telemetry"
	"github.com/san-kum/trainviz/internal/viz"
)

var (
	configFile   string
	preset       string
	telemetryDir string
	logLevel     string

	seed       int64
	dt         float64
	intervalMs int
	ticks      int
	realtime   bool

	// quantum
	anchors   int
	spawnProb float64
	wallClock bool

	// images
	mode      string
	imageSize int
	frames    int

	benchTicks int

	sweepMin, sweepMax     float64
	sweepSteps, sweepTicks int
	sweepSeed              int64

	// svg output
	outFile   string
	plotSVG   string
	svgPixels int
	braille   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trainviz",
		Short: "training visualization engines",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, []string{"quantum"})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&telemetryDir, "telemetry", "", "write run telemetry under this directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	quantumCmd := &cobra.Command{
		Use:   "quantum",
		Short: "run the particle field headless and summarise it",
		Args:  cobra.NoArgs,
		RunE:  runQuantum,
	}
	addRunFlags(quantumCmd)
	addQuantumFlags(quantumCmd)

	imagesCmd := &cobra.Command{
		Use:   "images",
		Short: "run noise frame iterations headless and print frame stats",
		Args:  cobra.NoArgs,
		RunE:  runImages,
	}
	addRunFlags(imagesCmd)
	addImagesFlags(imagesCmd)

	liveCmd := &cobra.Command{
		Use:       "live [quantum|images]",
		Short:     "interactive terminal view",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"quantum", "images"},
		RunE:      runLive,
	}
	addRunFlags(liveCmd)
	addQuantumFlags(liveCmd)
	addImagesFlags(liveCmd)

	spiralCmd := &cobra.Command{
		Use:   "spiral",
		Short: "print the spiral anchor layout",
		Args:  cobra.NoArgs,
		RunE:  printSpiral,
	}
	spiralCmd.Flags().IntVar(&anchors, "anchors", quantum.DefaultSpiralParams().Count, "number of anchors")

	presetsCmd := &cobra.Command{
		Use:   "presets [quantum|images]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []string{"quantum", "images"}
			if len(args) > 0 {
				kinds = args[:1]
			}
			for _, kind := range kinds {
				names := config.ListPresets(kind)
				if len(names) == 0 {
					fmt.Printf("no presets for %s\n", kind)
					continue
				}
				fmt.Printf("presets for %s:\n", kind)
				for _, p := range names {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run]",
		Short: "plot a recorded quantum run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the packet count series to this svg file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "advance the particle field and save the last frame as svg",
		Args:  cobra.NoArgs,
		RunE:  saveSnapshot,
	}
	addRunFlags(snapshotCmd)
	addQuantumFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "quantum.svg", "output file")
	snapshotCmd.Flags().IntVar(&svgPixels, "px", 400, "image side in pixels")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal braille canvas")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run]",
		Short: "frequency analysis of a recorded energy level",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the particle field",
		Args:  cobra.NoArgs,
		RunE:  benchCore,
	}
	benchCmd.Flags().Float64Var(&dt, "dt", sim.QuantumDt, "time step per tick")
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 5000, "ticks per case")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a scripted sequence of image session controls",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the packet spawn probability",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "lowest spawn probability")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "highest spawn probability")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of probabilities")
	sweepCmd.Flags().IntVar(&sweepTicks, "ticks", config.DefaultTicks, "ticks per run")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", 42, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	rootCmd.AddCommand(quantumCmd, imagesCmd, liveCmd, spiralCmd, presetsCmd, plotCmd, snapshotCmd,
		analyzeCmd, benchCmd, scenarioCmd, sweepCmd, listCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	f.Float64Var(&dt, "dt", sim.QuantumDt, "time step per tick")
	f.IntVar(&intervalMs, "interval", 0, "milliseconds between ticks")
	f.IntVar(&ticks, "ticks", 0, "ticks (quantum) or iterations (images) to run, must be positive")
	f.BoolVar(&realtime, "realtime", false, "pace headless runs at the configured interval")
}

func addQuantumFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&anchors, "anchors", quantum.DefaultSpiralParams().Count, "number of spiral anchors")
	f.Float64Var(&spawnProb, "spawn", quantum.DefaultSpawnProbability, "packet pair spawn probability per tick")
	f.BoolVar(&wallClock, "wall-clock", false, "drive energy from wall time instead of simulated time")
}

func addImagesFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&mode, "mode", string(noise.SandPlot), "frame mode (sandplot, mnist)")
	f.IntVar(&imageSize, "size", session.DefaultImageSize, "image side in pixels")
	f.IntVar(&frames, "frames", session.DefaultFrameCount, "frames per iteration")
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig layers defaults, then the preset, then the config file, then any
// flag the user actually set.
func loadConfig(cmd *cobra.Command, kind string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if !config.Apply(cfg, kind, preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
	}
	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	switch kind {
	case "quantum":
		q := &cfg.Quantum
		if flags.Changed("seed") {
			q.Seed = seed
		}
		if flags.Changed("dt") {
			q.Dt = dt
		}
		if flags.Changed("interval") {
			q.IntervalMs = intervalMs
		}
		if flags.Changed("ticks") {
			q.Ticks = ticks
		}
		if flags.Changed("anchors") {
			q.Anchors = anchors
		}
		if flags.Changed("spawn") {
			q.SpawnProbability = spawnProb
		}
		if flags.Changed("wall-clock") {
			q.WallClock = wallClock
		}
	case "images":
		im := &cfg.Images
		if flags.Changed("seed") {
			im.Seed = seed
		}
		if flags.Changed("dt") {
			im.Dt = dt
		}
		if flags.Changed("interval") {
			im.IntervalMs = intervalMs
		}
		if flags.Changed("ticks") {
			im.Iterations = ticks
		}
		if flags.Changed("mode") {
			im.Mode = mode
		}
		if flags.Changed("size") {
			im.ImageSize = imageSize
		}
		if flags.Changed("frames") {
			im.Frames = frames
		}
	}

	if flags.Changed("telemetry") {
		cfg.Telemetry.Enabled = telemetryDir != ""
		cfg.Telemetry.Dir = telemetryDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openTelemetry(cfg *config.Config, kind string) (*telemetry.Output, error) {
	if !cfg.Telemetry.Enabled {
		return nil, nil
	}
	out, err := telemetry.Open(cfg.Telemetry.Dir, kind)
	if err != nil {
		return nil, err
	}
	if err := out.WriteConfig(cfg); err != nil {
		out.Close()
		return nil, err
	}
	slog.Info("recording telemetry", "run", out.ID(), "dir", out.Dir())
	return out, nil
}

// finishRun treats an interrupt as a normal end of run.
func finishRun(result *sim.Result, err error) (*sim.Result, error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	if result == nil {
		return nil, err
	}
	if err != nil {
		slog.Info("run interrupted", "ticks", result.Ticks)
	}
	return result, nil
}

// requireBound rejects headless runs with no tick limit. Those would never
// finish and their recorded series would grow without end.
func requireBound(runCfg sim.Config, what string) error {
	if runCfg.MaxTicks <= 0 {
		return sim.InvalidParameter("%s needs a positive tick count; use live for an open-ended view", what)
	}
	return nil
}

func runQuantum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "quantum")
	if err != nil {
		return err
	}

	core, err := quantum.New(cfg.QuantumOptions()...)
	if err != nil {
		return err
	}

	out, err := openTelemetry(cfg, "quantum")
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			slog.Error("closing telemetry", "error", err)
		}
	}()

	runCfg := cfg.QuantumDriver()
	if err := requireBound(runCfg, "quantum"); err != nil {
		return err
	}
	if !realtime {
		runCfg.Interval = 0
	}

	set := metrics.Defaults()
	var packets, energy []float64

	driver := sim.NewDriver[quantum.Snapshot](core, runCfg)
	driver.AddObserver(set)
	driver.AddObserver(out)
	driver.AddObserver(sim.ObserverFunc[quantum.Snapshot](func(_ int, s quantum.Snapshot) {
		packets = append(packets, float64(s.PacketCount))
		energy = append(energy, s.EnergyLevel)
	}))

	fmt.Printf("running quantum field (%d anchors, spawn %.2f)...\n", cfg.Quantum.Anchors, cfg.Quantum.SpawnProbability)
	result, err := finishRun(driver.Run(cmd.Context()))
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Millisecond))
	if id := out.ID(); id != "" {
		fmt.Printf("run id: %s\n", id)
	}
	fmt.Printf("ticks: %s (failed %d)\n", humanize.Comma(int64(result.Ticks)), result.Failed)
	fmt.Printf("simulated: %.2fs\n", result.Simulated)

	fmt.Println("\nmetrics:")
	values := set.Values()
	for _, name := range set.Names() {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}

	plotSeries(packets, "packet count")
	plotSeries(energy, "energy level")
	return nil
}

func runImages(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "images")
	if err != nil {
		return err
	}

	sess, err := session.New(cfg.SessionConfig())
	if err != nil {
		return err
	}

	out, err := openTelemetry(cfg, "images")
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			slog.Error("closing telemetry", "error", err)
		}
	}()

	runCfg := cfg.ImagesDriver()
	if err := requireBound(runCfg, "images"); err != nil {
		return err
	}
	if !realtime {
		runCfg.Interval = 0
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITER\tSEED\tMODE\tSIZE\tMIN\tMAX\tMEAN\tSTDDEV")

	var pixels uint64
	driver := sim.NewDriver[session.FrameSet](sess, runCfg)
	driver.AddObserver(sim.ObserverFunc[session.FrameSet](out.FrameObserver()))
	driver.AddObserver(sim.ObserverFunc[session.FrameSet](func(_ int, set session.FrameSet) {
		for _, r := range telemetry.FramesFromSet(set) {
			fmt.Fprintf(w, "%d.%d\t%d\t%s\t%d\t%.0f\t%.0f\t%.2f\t%.2f\n",
				r.Iteration, r.Frame, r.Seed, r.Mode, r.Size, r.Min, r.Max, r.Mean, r.StdDev)
			pixels += uint64(r.Size * r.Size)
		}
	}))

	result, err := finishRun(driver.Run(cmd.Context()))
	if err != nil {
		return err
	}
	w.Flush()

	fmt.Printf("\n%s iterations, %s pixels (%s) in %v\n",
		humanize.Comma(int64(result.Ticks)),
		humanize.Comma(int64(pixels)),
		humanize.Bytes(pixels),
		result.Elapsed.Round(time.Millisecond))
	if id := out.ID(); id != "" {
		fmt.Printf("run id: %s\n", id)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	kind := "quantum"
	if len(args) > 0 {
		kind = args[0]
	}

	cfg, err := loadConfig(cmd, kind)
	if err != nil {
		return err
	}

	// The terminal owns stdout while the view runs.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	switch kind {
	case "images":
		sess, err := session.New(cfg.SessionConfig())
		if err != nil {
			return err
		}
		runCfg := cfg.ImagesDriver()
		runCfg.MaxTicks = 0
		return viz.RunImages(sess, runCfg)
	default:
		core, err := quantum.New(cfg.QuantumOptions()...)
		if err != nil {
			return err
		}
		runCfg := cfg.QuantumDriver()
		runCfg.MaxTicks = 0
		return viz.RunQuantum(core, runCfg)
	}
}

func printSpiral(cmd *cobra.Command, args []string) error {
	p := quantum.DefaultSpiralParams()
	p.Count = anchors
	points, err := quantum.GenerateSpiral(p)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tCHANNEL\tANGLE\tRADIUS\tX\tY")
	for i, a := range points {
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.2f\t%.2f\t%.2f\n", i, a.Channel, a.Angle, a.Radius, a.X, a.Y)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	base := telemetryDir
	if base == "" {
		base = config.DefaultTelemetryDir
	}
	runs, err := telemetry.ListRuns(base)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tWHEN\tTICKS\tFRAMES\tDT")
	for _, r := range runs {
		step := r.Config.Quantum.Dt
		if r.Kind == "images" {
			step = r.Config.Images.Dt
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.3fs\n",
			r.ID, r.Kind, humanize.Time(r.Modified),
			humanize.Comma(int64(r.Ticks)), humanize.Comma(int64(r.Frames)), step)
	}
	return w.Flush()
}

// runDir accepts a run directory or a run id under the telemetry directory.
func runDir(arg string) string {
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	base := telemetryDir
	if base == "" {
		base = config.DefaultTelemetryDir
	}
	return filepath.Join(base, arg)
}

func loadRun(arg string) (string, []telemetry.TickRecord, error) {
	dir := runDir(arg)
	records, err := telemetry.LoadTicks(filepath.Join(dir, telemetry.TicksFile))
	if err != nil {
		return dir, nil, err
	}
	if len(records) < 2 {
		return dir, nil, fmt.Errorf("not enough ticks recorded in %s", dir)
	}
	return dir, records, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	dir, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	packets := make([]float64, len(records))
	energy := make([]float64, len(records))
	rotation := make([]float64, len(records))
	for i, r := range records {
		packets[i] = float64(r.PacketCount)
		energy[i] = r.EnergyLevel
		rotation[i] = r.Rotation
	}

	fmt.Printf("%s: %s ticks, %.2fs simulated\n", filepath.Base(dir),
		humanize.Comma(int64(len(records))), records[len(records)-1].Time)
	plotSeries(packets, "packet count")
	plotSeries(energy, "energy level")
	plotSeries(rotation, "rotation (deg)")

	if plotSVG != "" {
		svg := export.SeriesToSVG(packets, 800, 240, viz.ChannelColor(0))
		if err := os.WriteFile(plotSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", plotSVG)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	dir, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	// Prefer the recorded step; fall back to the spacing of the samples.
	step := records[1].Time - records[0].Time
	if cfg, err := config.Load(filepath.Join(dir, telemetry.ConfigFile)); err == nil && cfg.Quantum.Dt > 0 {
		step = cfg.Quantum.Dt
		if cfg.Quantum.WallClock {
			slog.Warn("run used the wall clock; energy drift is not periodic in ticks", "run", filepath.Base(dir))
		}
	}

	energy := make([]float64, len(records))
	for i, r := range records {
		energy[i] = r.EnergyLevel
	}

	ps, err := analysis.PowerSpectrum(energy, step)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", filepath.Base(dir))
	fmt.Printf("samples: %s (padded to %d), dt %.3fs\n\n", humanize.Comma(int64(len(energy))), ps.N, step)
	plotSeries(ps.Power[:max(len(ps.Power)/4, 2)], "energy power spectrum")

	freq, period, ok := ps.Dominant()
	if !ok {
		fmt.Println("\nenergy level is flat")
		return nil
	}
	fmt.Printf("\ndominant frequency: %.4f hz\n", freq)
	fmt.Printf("period: %.3f s\n", period)
	return nil
}

func benchCore(cmd *cobra.Command, args []string) error {
	counts := []int{24, 96, 384}
	probs := []float64{quantum.DefaultSpawnProbability, 1.0}

	fmt.Printf("benchmarking quantum core, %s ticks per case\n\n", humanize.Comma(int64(benchTicks)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANCHORS\tSPAWN\tTICKS\tPACKETS\tTIME\tTICKS/SEC")

	for _, n := range counts {
		for _, p := range probs {
			core, err := quantum.New(quantum.WithAnchorCount(n), quantum.WithSpawnProbability(p), quantum.WithSeed(42))
			if err != nil {
				return err
			}

			driver := sim.NewDriver[quantum.Snapshot](core, sim.Config{Dt: dt, MaxTicks: benchTicks})
			result, err := finishRun(driver.Run(cmd.Context()))
			if err != nil {
				return err
			}

			rate := 0.0
			if result.Elapsed > 0 {
				rate = float64(result.Ticks) / result.Elapsed.Seconds()
			}
			fmt.Fprintf(w, "%d\t%.2f\t%d\t%d\t%v\t%s\n",
				n, p, result.Ticks, core.Snapshot().PacketCount, result.Elapsed.Round(time.Microsecond), humanize.Comma(int64(rate)))
		}
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %s\n\n", sc.Name, sc.Description)
	results, err := automation.RunScenario(cmd.Context(), sc, nil)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODE\tSIZE\tITER\tSEED\tMEAN\tSTDDEV")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.2f\t%.2f\n",
			r.Step, r.Mode, r.Size, r.Iteration, r.Seed, r.MeanLevel, r.MeanStdDev)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	results, err := automation.RunSweep(cmd.Context(), automation.SpawnSweep{
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
		Ticks: sweepTicks,
		Dt:    sim.QuantumDt,
		Seed:  sweepSeed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPAWN\tFINAL\tPEAK\tMEAN\tSKEW")
	finals := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%.2f\t%d\t%.0f\t%.1f\t%.3f\n",
			r.SpawnProbability, r.FinalPackets, r.Metrics["peak_packets"], r.Metrics["mean_packets"], r.Metrics["channel_skew"])
		finals[i] = float64(r.FinalPackets)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	plotSeries(finals, "final packets by spawn probability")
	return nil
}

func saveSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "quantum")
	if err != nil {
		return err
	}
	core, err := quantum.New(cfg.QuantumOptions()...)
	if err != nil {
		return err
	}

	runCfg := cfg.QuantumDriver()
	if err := requireBound(runCfg, "snapshot"); err != nil {
		return err
	}
	runCfg.Interval = 0

	var last quantum.Snapshot
	driver := sim.NewDriver[quantum.Snapshot](core, runCfg)
	driver.AddObserver(sim.ObserverFunc[quantum.Snapshot](func(_ int, s quantum.Snapshot) { last = s }))
	if _, err := finishRun(driver.Run(cmd.Context())); err != nil {
		return err
	}

	var svg string
	if braille {
		canvas := viz.NewCanvas(60, 30)
		viz.DrawQuantum(canvas, core.Anchors(), last)
		svg = export.CanvasToSVG(canvas, float64(svgPixels)/120)
	} else {
		svg = export.SnapshotToSVG(core.Anchors(), last, svgPixels)
	}
	if svg == "" {
		return fmt.Errorf("nothing to draw at %dpx", svgPixels)
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (tick %d, %d packets)\n", outFile, last.Tick, last.PacketCount)
	return nil
}

func plotSeries(data []float64, caption string) {
	if len(data) < 2 {
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Printf("\n%s\n", graph)
}
