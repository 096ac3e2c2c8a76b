// Package noise generates the random intensity fields shown in the image
// training grid and converts them to 8-bit pixels.
//
// Each Generator owns its random stream; two generators never disturb each
// other's sequences, and equal seeds give equal fields.
package noise

import (
	"math/rand/v2"

	"github.com/san-kum/trainviz/internal/sim"
)

// sparseAmplitude is the noise amplitude of the "mnist" field.
const sparseAmplitude = 0.1

// Grid is a square field of intensities, indexed [row][col].
type Grid [][]float64

func NewGrid(size int) Grid {
	cells := make([]float64, size*size)
	g := make(Grid, size)
	for i := range g {
		g[i] = cells[i*size : (i+1)*size : (i+1)*size]
	}
	return g
}

func (g Grid) Size() int { return len(g) }

type Generator struct {
	seed int64
	rng  *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{
		seed: seed,
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
	}
}

func (g *Generator) Seed() int64 { return g.seed }

// UniformField fills a size x size grid with values uniform in [0,1).
func (g *Generator) UniformField(size int) (Grid, error) {
	if err := validSize(size); err != nil {
		return nil, err
	}
	grid := NewGrid(size)
	for _, row := range grid {
		for j := range row {
			row[j] = g.rng.Float64()
		}
	}
	return grid, nil
}

// SparseField fills a size x size grid with a zero baseline plus noise of
// amplitude 0.1, so every value lies in [0,0.1).
func (g *Generator) SparseField(size int) (Grid, error) {
	if err := validSize(size); err != nil {
		return nil, err
	}
	grid := NewGrid(size)
	for _, row := range grid {
		for j := range row {
			row[j] = 0 + g.rng.Float64()*sparseAmplitude
		}
	}
	return grid, nil
}

// Field dispatches on the display mode.
func (g *Generator) Field(mode Mode, size int) (Grid, error) {
	switch mode {
	case SandPlot:
		return g.UniformField(size)
	case MNIST:
		return g.SparseField(size)
	default:
		return nil, sim.InvalidParameter("noise: unknown mode %q", string(mode))
	}
}

func validSize(size int) error {
	if size <= 0 {
		return sim.InvalidParameter("noise: size must be positive, got %d", size)
	}
	return nil
}
