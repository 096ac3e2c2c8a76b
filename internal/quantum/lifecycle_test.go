package quantum_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trainviz/internal/quantum"
)

var _ = Describe("Packet lifecycle", func() {
	var core *quantum.Core

	advance := func(n int, dt float64) []int {
		counts := make([]int, 0, n)
		for i := 0; i < n; i++ {
			snap, err := core.Advance(dt)
			Expect(err).NotTo(HaveOccurred())
			counts = append(counts, snap.PacketCount)
		}
		return counts
	}

	BeforeEach(func() {
		var err error
		core, err = quantum.New(quantum.WithSeed(2024), quantum.WithSpawnProbability(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(core.Anchors()).To(HaveLen(24))
	})

	Context("with a spawn on every tick at dt=0.1", func() {
		It("grows by one pair per tick before anything can expire", func() {
			counts := advance(400, 0.1)
			for i, n := range counts {
				Expect(n).To(Equal(2*(i+1)), "tick %d", i)
			}
		})

		It("levels off once the first packets pass the end of the spiral", func() {
			counts := advance(1000, 0.1)

			Expect(counts[399]).To(Equal(800))
			Expect(counts[999]).To(BeNumerically("<", 2000))
			Expect(counts[999]).To(BeNumerically(">", 900))
			Expect(counts[999]).To(BeNumerically("<=", 1002))
		})

		It("drains to zero once spawning stops", func() {
			advance(600, 0.1)
			Expect(core.SetSpawnProbability(0)).To(Succeed())

			counts := advance(600, 0.1)
			for i := 1; i < len(counts); i++ {
				Expect(counts[i]).To(BeNumerically("<=", counts[i-1]))
			}
			Expect(counts[len(counts)-1]).To(BeZero())
		})
	})

	It("never reports progress past the end of the spiral", func() {
		for i := 0; i < 300; i++ {
			_, err := core.Advance(1.7)
			Expect(err).NotTo(HaveOccurred())
			for _, p := range core.Packets() {
				Expect(p.Progress).To(BeNumerically(">=", 0))
				Expect(p.Progress).To(BeNumerically("<=", 1))
			}
		}
	})

	It("keeps both kinds balanced per channel while nothing expires", func() {
		snap := quantum.Snapshot{}
		for i := 0; i < 100; i++ {
			var err error
			snap, err = core.Advance(0.1)
			Expect(err).NotTo(HaveOccurred())
		}

		originals, reconstructed := snap.CountKinds()
		Expect(originals).To(Equal(100))
		Expect(reconstructed).To(Equal(100))

		total := 0
		for _, n := range snap.ChannelCounts() {
			Expect(n % 2).To(BeZero())
			total += n
		}
		Expect(total).To(Equal(200))
	})
})
