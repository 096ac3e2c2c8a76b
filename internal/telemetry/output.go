// Package telemetry writes per-tick and per-frame records of a run as CSV,
// alongside the YAML config that produced them.
package telemetry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/san-kum/trainviz/internal/config"
	"github.com/san-kum/trainviz/internal/quantum"
	"github.com/san-kum/trainviz/internal/session"
)

const (
	TicksFile  = "ticks.csv"
	FramesFile = "frames.csv"
	ConfigFile = "run.yaml"
)

// csvSink appends records to one file, writing the header only once.
type csvSink struct {
	path          string
	file          *os.File
	headerWritten bool
}

func (s *csvSink) write(records any) error {
	if s.file == nil {
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Base(s.path), err)
		}
		s.file = f
	}
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.file); err != nil {
			return err
		}
		s.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

func (s *csvSink) close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// Output is one run directory. A nil *Output discards everything, so callers
// can leave telemetry disabled without branching.
type Output struct {
	id     string
	dir    string
	ticks  csvSink
	frames csvSink
	err    error
	logger *slog.Logger
}

// Open creates <baseDir>/<kind>_<id>. An empty baseDir disables output and
// returns nil.
func Open(baseDir, kind string) (*Output, error) {
	if baseDir == "" {
		return nil, nil
	}

	id := fmt.Sprintf("%s_%s", kind, uuid.NewString()[:8])
	dir := filepath.Join(baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Output{
		id:     id,
		dir:    dir,
		ticks:  csvSink{path: filepath.Join(dir, TicksFile)},
		frames: csvSink{path: filepath.Join(dir, FramesFile)},
		logger: slog.Default(),
	}, nil
}

func (o *Output) ID() string {
	if o == nil {
		return ""
	}
	return o.id
}

func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// WriteConfig saves the effective configuration as YAML.
func (o *Output) WriteConfig(cfg *config.Config) error {
	if o == nil {
		return nil
	}
	return config.Save(filepath.Join(o.dir, ConfigFile), cfg)
}

func (o *Output) WriteTick(r TickRecord) error {
	if o == nil {
		return nil
	}
	if err := o.ticks.write([]TickRecord{r}); err != nil {
		return fmt.Errorf("writing tick: %w", err)
	}
	return nil
}

func (o *Output) WriteFrames(records []FrameRecord) error {
	if o == nil || len(records) == 0 {
		return nil
	}
	if err := o.frames.write(records); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// OnTick records a quantum snapshot. Write failures are logged once and
// reported by Close.
func (o *Output) OnTick(tick int, s quantum.Snapshot) {
	if o == nil || o.err != nil {
		return
	}
	o.fail(o.WriteTick(TickFromSnapshot(s)))
}

// FrameObserver records the per-frame statistics of every iteration.
func (o *Output) FrameObserver() func(int, session.FrameSet) {
	return func(_ int, set session.FrameSet) {
		if o == nil || o.err != nil {
			return
		}
		o.fail(o.WriteFrames(FramesFromSet(set)))
	}
}

func (o *Output) fail(err error) {
	if err == nil {
		return
	}
	o.err = err
	o.logger.Error("telemetry disabled for the rest of the run", "dir", o.dir, "error", err)
}

func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	return errors.Join(o.err, o.ticks.close(), o.frames.close())
}

// LoadTicks reads back a ticks.csv written by Output.
func LoadTicks(path string) ([]TickRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []TickRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}
