package quantum

import "fmt"

type Kind int

const (
	Original Kind = iota
	Reconstructed
)

func (k Kind) String() string {
	switch k {
	case Original:
		return "original"
	case Reconstructed:
		return "reconstructed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ProgressRate is the progress gained per unit of simulated time.
const ProgressRate = 0.02

// Packet travels the spiral from progress 0 to 1 and is dropped once past 1.
type Packet struct {
	ID       float64
	Channel  int
	Kind     Kind
	Progress float64
	Energy   float64
}

// advance moves the packet and reports whether it is still live.
func (p *Packet) advance(dt float64) bool {
	p.Progress += dt * ProgressRate
	return p.Progress <= 1
}
