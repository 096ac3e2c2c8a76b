package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/trainviz/internal/config"
	"github.com/san-kum/trainviz/internal/quantum"
	"github.com/san-kum/trainviz/internal/session"
)

func TestListRuns(t *testing.T) {
	base := t.TempDir()

	q, err := Open(base, "quantum")
	if err != nil {
		t.Fatal(err)
	}
	if err := q.WriteConfig(config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 4; i++ {
		q.OnTick(i, quantum.Snapshot{Tick: i})
	}
	if err := q.Close(); err != nil {
		t.Fatal(err)
	}

	im, err := Open(base, "images")
	if err != nil {
		t.Fatal(err)
	}
	if err := im.WriteConfig(config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	im.FrameObserver()(1, session.FrameSet{
		Iteration: 1,
		Size:      1,
		Frames: []session.Frame{
			{Index: 0, Size: 1, Pixels: []byte{7}},
			{Index: 1, Size: 1, Pixels: []byte{9}},
		},
	})
	if err := im.Close(); err != nil {
		t.Fatal(err)
	}

	// Directories without run.yaml are not runs.
	if err := os.Mkdir(filepath.Join(base, "scratch"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := ListRuns(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	byKind := map[string]RunInfo{}
	for _, r := range runs {
		byKind[r.Kind] = r
	}
	if r := byKind["quantum"]; r.ID != q.ID() || r.Ticks != 4 || r.Frames != 0 {
		t.Errorf("quantum run %+v", r)
	}
	if r := byKind["images"]; r.ID != im.ID() || r.Frames != 2 || r.Ticks != 0 {
		t.Errorf("images run %+v", r)
	}
	if byKind["quantum"].Config == nil {
		t.Error("config not loaded")
	}
}

func TestListRuns_Missing(t *testing.T) {
	runs, err := ListRuns(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
