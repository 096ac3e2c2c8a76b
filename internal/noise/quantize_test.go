package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/trainviz/internal/sim"
)

func TestQuantize_UniformField(t *testing.T) {
	g := New(1337)
	for _, size := range []int{1, 2, 28, 100, 256} {
		grid, err := g.UniformField(size)
		if err != nil {
			t.Fatal(err)
		}
		pixels, err := Quantize(grid, size)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if len(pixels) != size*size {
			t.Errorf("size %d: expected %d pixels, got %d", size, size*size, len(pixels))
		}
	}
}

func TestQuantize_RowMajorTruncation(t *testing.T) {
	grid := Grid{
		{0, 0.5},
		{0.999, 1},
	}
	pixels, err := Quantize(grid, 2)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{0, 127, 254, 255}
	for i := range want {
		if pixels[i] != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, pixels[i], want[i])
		}
	}
}

func TestQuantizeCounted_Clamps(t *testing.T) {
	grid := Grid{
		{-0.5, 1.5, math.NaN()},
		{math.Inf(1), math.Inf(-1), 0.2},
		{1, 0, 0.99},
	}
	pixels, clamped, err := QuantizeCounted(grid, 3)
	if err != nil {
		t.Fatal(err)
	}

	if clamped != 5 {
		t.Errorf("expected 5 clamped cells, got %d", clamped)
	}
	want := []byte{0, 255, 0, 255, 0, 51, 255, 0, 252}
	for i := range want {
		if pixels[i] != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, pixels[i], want[i])
		}
	}
}

func TestQuantize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		size int
	}{
		{"zero size", Grid{}, 0},
		{"negative size", Grid{}, -2},
		{"short grid", Grid{{0, 0}}, 2},
		{"ragged row", Grid{{0, 0}, {0}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Quantize(tt.grid, tt.size); !errors.Is(err, sim.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestQuantizeInto_BufferSize(t *testing.T) {
	grid := NewGrid(3)
	if _, err := QuantizeInto(make([]byte, 8), grid, 3); !errors.Is(err, sim.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats([]byte{0, 255, 0, 255})
	if s.Min != 0 || s.Max != 255 {
		t.Errorf("unexpected bounds %+v", s)
	}
	if s.Mean != 127.5 {
		t.Errorf("mean %f, want 127.5", s.Mean)
	}
	if math.Abs(s.StdDev-147.224318643) > 1e-6 {
		t.Errorf("stddev %f", s.StdDev)
	}

	if ComputeStats(nil) != (Stats{}) {
		t.Error("empty frame should give zero stats")
	}
	if one := ComputeStats([]byte{9}); one.StdDev != 0 || one.Mean != 9 {
		t.Errorf("single pixel stats %+v", one)
	}
}
