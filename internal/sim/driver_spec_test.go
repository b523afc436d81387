package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/transition"
)

var _ = Describe("Driving a projection transition", func() {
	var (
		cam       *projection.Camera
		simulator *sim.Simulator
	)

	BeforeEach(func() {
		cam = projection.NewCamera(projection.DefaultParams(), projection.Orthographic)
		simulator = sim.New(transition.New(cam))
	})

	Context("from orthographic over one second in tenth-second ticks", func() {
		var result *sim.Result

		BeforeEach(func() {
			var err error
			result, err = simulator.Run(context.Background(), sim.Config{Dt: 0.1, Duration: 1.0, MaxFrames: 50})
			Expect(err).NotTo(HaveOccurred())
		})

		It("finishes in perspective after ten ticks", func() {
			Expect(result.FramesTaken).To(Equal(10))
			Expect(cam.Mode()).To(Equal(projection.Perspective))
		})

		It("ends on the native perspective matrix", func() {
			native := projection.Compute(cam.Params(), projection.Perspective)
			Expect(projection.ApproxEqual(result.FinalMatrix, native, 1e-6)).To(BeTrue())
			Expect(cam.IsCustom()).To(BeFalse())
		})

		It("eases in with the squared fraction", func() {
			Expect(result.Frames[4].Fraction).To(BeNumerically("~", 0.5, 1e-12))
			Expect(result.Frames[4].Eased).To(BeNumerically("~", 0.25, 1e-12))
		})

		It("never reports a decreasing eased factor", func() {
			eased := result.Eased()
			for i := 1; i < len(eased); i++ {
				Expect(eased[i]).To(BeNumerically(">=", eased[i-1]))
			}
		})
	})

	Context("from perspective", func() {
		BeforeEach(func() {
			cam.SetMode(projection.Perspective)
		})

		It("eases out with the square root of the fraction", func() {
			result, err := simulator.Run(context.Background(), sim.Config{Dt: 0.25, Duration: 1.0, MaxFrames: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Frames[0].Eased).To(BeNumerically("~", 0.5, 1e-12))
			Expect(result.FinalMode).To(Equal(projection.Orthographic))
		})
	})

	Context("with a non-positive duration", func() {
		It("switches immediately without intermediate frames", func() {
			result, err := simulator.Run(context.Background(), sim.Config{Dt: 0.1, Duration: -2, MaxFrames: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.FramesTaken).To(BeZero())
			Expect(result.Frames).To(HaveLen(1))
			Expect(result.Frames[0].Final).To(BeTrue())
			Expect(cam.Mode()).To(Equal(projection.Perspective))
		})
	})

	Context("with a jittered clock", func() {
		It("still finalizes on the exact native matrix", func() {
			result, err := simulator.Run(context.Background(), sim.Config{Dt: 1.0 / 60, Duration: 0.75, MaxFrames: 500, Jitter: 0.4, Seed: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.FinalMatrix).To(Equal(projection.Compute(cam.Params(), projection.Perspective)))
		})
	})
})
