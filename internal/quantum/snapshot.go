package quantum

// PacketView is the render descriptor of one live packet.
type PacketView struct {
	X, Y    float64
	Channel int
	Kind    Kind
	Energy  float64
}

// Snapshot is the state exported by one tick. It shares nothing with the Core.
type Snapshot struct {
	Tick        int
	Time        float64
	Rotation    float64
	EnergyLevel float64
	PacketCount int
	Packets     []PacketView
}

// CountKinds returns how many live packets are originals and reconstructions.
func (s Snapshot) CountKinds() (originals, reconstructed int) {
	for _, p := range s.Packets {
		if p.Kind == Original {
			originals++
		} else {
			reconstructed++
		}
	}
	return originals, reconstructed
}

// ChannelCounts returns the number of live packets on each channel.
func (s Snapshot) ChannelCounts() [Channels]int {
	var counts [Channels]int
	for _, p := range s.Packets {
		if p.Channel >= 0 && p.Channel < Channels {
			counts[p.Channel]++
		}
	}
	return counts
}
