package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/trainviz/internal/config"
)

// RunInfo describes one recorded run directory.
type RunInfo struct {
	ID       string
	Kind     string
	Modified time.Time
	Config   *config.Config
	Ticks    int
	Frames   int
}

// ListRuns returns every run under baseDir that has a readable run.yaml,
// newest first. A missing baseDir is not an error.
func ListRuns(baseDir string) ([]RunInfo, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunInfo{}, nil
		}
		return nil, err
	}

	runs := make([]RunInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(baseDir, entry.Name())
		cfg, err := config.Load(filepath.Join(dir, ConfigFile))
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		run := RunInfo{
			ID:       entry.Name(),
			Kind:     strings.SplitN(entry.Name(), "_", 2)[0],
			Modified: info.ModTime(),
			Config:   cfg,
		}
		if ticks, err := LoadTicks(filepath.Join(dir, TicksFile)); err == nil {
			run.Ticks = len(ticks)
		}
		if frames, err := LoadFrames(filepath.Join(dir, FramesFile)); err == nil {
			run.Frames = len(frames)
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Modified.After(runs[j].Modified) })
	return runs, nil
}

// LoadFrames reads back a frames.csv written by Output.
func LoadFrames(path string) ([]FrameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []FrameRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}
