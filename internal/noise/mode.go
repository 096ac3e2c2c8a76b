package noise

import (
	"strings"

	"github.com/san-kum/trainviz/internal/sim"
)

// Mode selects the field shown in the grid. The names are labels only.
type Mode string

const (
	SandPlot Mode = "sandplot"
	MNIST    Mode = "mnist"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case SandPlot, MNIST:
		return m, nil
	default:
		return "", sim.InvalidParameter("noise: unknown mode %q", s)
	}
}

// Toggle flips between the two modes. Anything unknown toggles to SandPlot.
func (m Mode) Toggle() Mode {
	if m == SandPlot {
		return MNIST
	}
	return SandPlot
}

func (m Mode) String() string { return string(m) }
