package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/trainviz/internal/quantum"
)

func TestCanvasDot(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Dot(3, 5, 0)
	if !c.Lit(3, 5) {
		t.Fatal("dot (3,5) should be lit")
	}
	if c.Lit(2, 5) {
		t.Error("neighbour (2,5) should not be lit")
	}

	// Out of range is ignored.
	c.Dot(-1, 0, 0)
	c.Dot(100, 100, 0)
	if c.Lit(100, 100) {
		t.Error("out of range dot reported lit")
	}

	c.Clear()
	if c.Lit(3, 5) {
		t.Error("Clear left a dot behind")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(5, 3)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 5 {
			t.Errorf("line has %d cells, want 5", n)
		}
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Line(10, 10, 90, 70, 1)

	for _, p := range [][2]float64{{10, 10}, {90, 70}} {
		x, y := c.toSub(p[0], p[1])
		if !c.Lit(x, y) {
			t.Errorf("endpoint %v not lit", p)
		}
	}
}

func TestDrawQuantumLightsAnchors(t *testing.T) {
	anchors, err := quantum.GenerateSpiral(quantum.DefaultSpiralParams())
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(60, 30)
	DrawQuantum(c, anchors, quantum.Snapshot{})

	for i, a := range anchors {
		x, y := c.toSub(a.X, a.Y)
		if !c.Lit(x, y) {
			t.Errorf("anchor %d at (%.1f, %.1f) not drawn", i, a.X, a.Y)
		}
	}
}

func TestRenderFrame(t *testing.T) {
	const size = 16
	dark := make([]byte, size*size)
	bright := make([]byte, size*size)
	for i := range bright {
		bright[i] = 255
	}

	tests := []struct {
		name   string
		pixels []byte
		want   byte
	}{
		{"dark", dark, ' '},
		{"bright", bright, '@'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderFrame(tt.pixels, size, 8, 4)
			lines := strings.Split(out, "\n")
			if len(lines) != 4 {
				t.Fatalf("got %d rows, want 4", len(lines))
			}
			for _, l := range lines {
				if len(l) != 8 {
					t.Fatalf("row %q has %d cols, want 8", l, len(l))
				}
				if strings.Trim(l, string(tt.want)) != "" {
					t.Errorf("row %q, want only %q", l, tt.want)
				}
			}
		})
	}
}

func TestRenderFrameInvalid(t *testing.T) {
	if got := RenderFrame(make([]byte, 3), 2, 4, 4); got != "" {
		t.Errorf("short buffer rendered %q", got)
	}
	if got := RenderFrame(nil, 0, 4, 4); got != "" {
		t.Errorf("zero size rendered %q", got)
	}
}

func TestGaugeClamps(t *testing.T) {
	if g := gauge(1.3, 10); !strings.HasSuffix(g, "1.00") || strings.Contains(g, "-") {
		t.Errorf("overshoot gauge = %q", g)
	}
	if g := gauge(-0.2, 10); !strings.HasSuffix(g, "0.00") || strings.Contains(g, "=") {
		t.Errorf("undershoot gauge = %q", g)
	}
}

func TestPaletteCoversInks(t *testing.T) {
	if inkCore != quantum.Channels {
		t.Errorf("inkCore = %d, want %d", inkCore, quantum.Channels)
	}
	if len(palette) != inkRing+1 {
		t.Errorf("palette has %d styles, want %d", len(palette), inkRing+1)
	}
	if ChannelColor(quantum.Channels+1) != ChannelColor(1) {
		t.Error("channel colours should wrap")
	}
}
