package noise

import (
	"math"

	"github.com/san-kum/trainviz/internal/sim"
)

// Quantize flattens grid row-major into size*size bytes, scaling each cell by
// 255 and truncating. Cells outside [0,1] are clamped; NaN maps to 0.
func Quantize(grid Grid, size int) ([]byte, error) {
	out, _, err := QuantizeCounted(grid, size)
	return out, err
}

// QuantizeCounted is Quantize that also reports how many cells were clamped.
func QuantizeCounted(grid Grid, size int) ([]byte, int, error) {
	if err := validSize(size); err != nil {
		return nil, 0, err
	}
	out := make([]byte, size*size)
	clamped, err := QuantizeInto(out, grid, size)
	if err != nil {
		return nil, 0, err
	}
	return out, clamped, nil
}

// QuantizeInto writes into dst, which must hold exactly size*size bytes.
func QuantizeInto(dst []byte, grid Grid, size int) (int, error) {
	if err := validSize(size); err != nil {
		return 0, err
	}
	if len(grid) != size {
		return 0, sim.InvalidParameter("noise: grid has %d rows, want %d", len(grid), size)
	}
	if len(dst) != size*size {
		return 0, sim.InvalidParameter("noise: buffer holds %d pixels, want %d", len(dst), size*size)
	}

	clamped := 0
	for i, row := range grid {
		if len(row) != size {
			return 0, sim.InvalidParameter("noise: row %d has %d cells, want %d", i, len(row), size)
		}
		for j, v := range row {
			b, ok := toByte(v)
			if !ok {
				clamped++
			}
			dst[i*size+j] = b
		}
	}
	return clamped, nil
}

func toByte(v float64) (byte, bool) {
	switch {
	case math.IsNaN(v):
		return 0, false
	case v < 0:
		return 0, false
	case v >= 1:
		return 255, v == 1
	default:
		return byte(v * 255), true
	}
}
