package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/trainviz/internal/noise"
	"github.com/san-kum/trainviz/internal/session"
	"github.com/san-kum/trainviz/internal/sim"
)

const scenarioYAML = `
name: demo
description: train, switch to mnist, then grow the images
seed: 10
frames: 4
steps:
  - image_size: 32
    iterations: 3
  - mode: mnist
    iterations: 2
  - image_size: 64
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	sets := 0
	results, err := RunScenario(context.Background(), sc, func(int, session.FrameSet) { sets++ })
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if sets != 5 {
		t.Errorf("observed %d frame sets, want 5", sets)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	want := []struct {
		mode      noise.Mode
		size      int
		iteration int
		seed      int64
	}{
		{noise.SandPlot, 32, 3, 13},
		{noise.MNIST, 32, 5, 15},
		{noise.MNIST, 64, 5, 15},
	}
	for i, w := range want {
		r := results[i]
		if r.Mode != w.mode || r.Size != w.size || r.Iteration != w.iteration || r.Seed != w.seed {
			t.Errorf("step %d = %+v, want %+v", i+1, r, w)
		}
	}

	if results[0].MeanLevel < 100 || results[0].MeanLevel > 155 {
		t.Errorf("sandplot mean level %.1f, want about 127", results[0].MeanLevel)
	}
	if results[1].MeanLevel > 25 {
		t.Errorf("mnist mean level %.1f, want at most 25", results[1].MeanLevel)
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no steps", "name: empty\n"},
		{"bad mode", "steps:\n  - mode: cifar\n"},
		{"negative", "steps:\n  - iterations: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScenario(writeScenario(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), SpawnSweep{Min: 0, Max: 1, Steps: 3, Ticks: 100, Dt: 0.1, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].SpawnProbability != 0 || results[0].FinalPackets != 0 {
		t.Errorf("p=0 run: %+v", results[0])
	}
	if results[2].SpawnProbability != 1 || results[2].FinalPackets != 200 {
		t.Errorf("p=1 run: %+v", results[2])
	}
	if got := results[2].Metrics["peak_packets"]; got != 200 {
		t.Errorf("peak packets = %v, want 200", got)
	}
	mid := results[1].FinalPackets
	if mid <= 0 || mid >= 200 {
		t.Errorf("p=0.5 run ended with %d packets", mid)
	}
}

func TestRunSweep_Invalid(t *testing.T) {
	tests := []SpawnSweep{
		{Min: 0, Max: 1, Steps: 1, Ticks: 10},
		{Min: 0.5, Max: 0.2, Steps: 3, Ticks: 10},
		{Min: 0, Max: 1.5, Steps: 3, Ticks: 10},
		{Min: 0, Max: 1, Steps: 3, Ticks: 0},
		{Min: 0, Max: 1, Steps: 3, Ticks: 10, Dt: math.NaN()},
		{Min: math.NaN(), Max: 1, Steps: 3, Ticks: 10},
	}
	for _, sw := range tests {
		if _, err := RunSweep(context.Background(), sw); !errors.Is(err, sim.ErrInvalidParameter) {
			t.Errorf("%+v: expected ErrInvalidParameter, got %v", sw, err)
		}
	}
}
