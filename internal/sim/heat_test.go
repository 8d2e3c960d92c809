package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
)

var _ = Describe("HeatRunner", func() {
	var (
		runner *sim.HeatRunner
		cfg    sim.HeatConfig
	)

	BeforeEach(func() {
		runner = sim.NewHeatRunner()
		cfg = sim.HeatConfig{
			Plate:      physics.Plate{Width: 0.1, Height: 0.1, Nodes: 11},
			Alpha:      1.11e-4,
			Iterations: 10,
			Initial:    300,
			Boundary:   physics.UniformBoundary{Temp: 273},
		}
	})

	It("produces one frame per iteration plus the initial plate", func() {
		traj, err := runner.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Frames).To(HaveLen(11))
		Expect(traj.Times).To(HaveLen(11))
		Expect(traj.Dt).To(Equal(cfg.Plate.DefaultDt()))
		Expect(traj.Times[10]).To(BeNumerically("~", 10*traj.Dt, 1e-18))
	})

	It("leaves a uniform plate unchanged", func() {
		cfg.Boundary = physics.UniformBoundary{Temp: 300}
		traj, err := runner.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, f := range traj.Frames {
			Expect(mat.Equal(f, traj.Frames[0])).To(BeTrue())
		}
	})

	It("applies the boundary to the initial frame", func() {
		traj, err := runner.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Frames[0].At(0, 5)).To(Equal(273.0))
		Expect(traj.Frames[0].At(5, 5)).To(Equal(300.0))
	})

	It("reapplies the source after the boundary", func() {
		src := physics.HeatSource{Power: 1, Radius: 0.015, XPercent: 0, YPercent: 50}
		cfg.Source = &src
		cfg.Alpha = 0.5

		traj, err := runner.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		for i, f := range traj.Frames {
			Expect(f.At(0, 5)).To(Equal(src.Temperature()), "frame %d", i)
			Expect(f.At(0, 0)).To(Equal(273.0), "frame %d", i)
			Expect(f.At(10, 5)).To(Equal(273.0), "frame %d", i)
		}
		Expect(traj.Final().At(2, 5)).To(BeNumerically(">", 300))
	})

	It("matches the serial result with workers", func() {
		cfg.Boundary = physics.EdgeBoundary{Left: 400, Right: 250, Bottom: 300, Top: 350}
		cfg.Alpha = 1
		serial, err := runner.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		cfg.Workers = 4
		parallel, err := runner.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(serial.Final(), parallel.Final())).To(BeTrue())
	})

	It("rejects an unstable step when asked to", func() {
		hx, hy := cfg.Plate.Spacing()
		cfg.Alpha = 1
		cfg.Dt = 2 * physics.MaxStableDt(cfg.Alpha, hx, hy)
		cfg.CheckStability = true

		_, err := runner.Run(context.Background(), cfg)
		Expect(err).To(MatchError(dynamo.ErrUnstable))

		cfg.CheckStability = false
		_, err = runner.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a plate without interior", func() {
		cfg.Plate.Nodes = 2
		_, err := runner.Run(context.Background(), cfg)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("stops on cancellation with the frames so far", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		traj, err := runner.Run(ctx, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(traj.Frames).To(HaveLen(1))
	})
})
