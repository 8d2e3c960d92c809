package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
)

func pair(mass, radius, gap, speed float64) ([]physics.Body, dynamo.State) {
	bodies := []physics.Body{{Mass: mass, Radius: radius}, {Mass: mass, Radius: radius}}
	x0 := dynamo.State{
		Pos: []r3.Vec{{}, {X: gap}},
		Vel: []r3.Vec{{X: speed}, {X: -speed}},
	}
	return bodies, x0
}

func separation(s dynamo.State) float64 {
	return r3.Norm(r3.Sub(s.Pos[0], s.Pos[1]))
}

var _ = Describe("NBodyRunner", func() {
	var (
		runner *sim.NBodyRunner
		cfg    sim.NBodyConfig
	)

	BeforeEach(func() {
		runner = sim.NewNBodyRunner()
		cfg = sim.DefaultNBodyConfig()
	})

	It("pulls two heavy bodies together step after step", func() {
		bodies, x0 := pair(1e13, 1, 100, 0)
		cfg.Dt = 0.01
		cfg.Iterations = 10

		res, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StoppedEarly).To(BeFalse())
		Expect(res.States).To(HaveLen(11))

		for i := 1; i < len(res.States); i++ {
			Expect(separation(res.States[i])).To(BeNumerically("<", separation(res.States[i-1])), "step %d", i)
			Expect(res.States[i].Vel[0].X).To(BeNumerically(">", res.States[i-1].Vel[0].X))
		}
	})

	It("stops before the step after bodies touch", func() {
		bodies, x0 := pair(1, 1, 2.5, 1)
		cfg.Dt = 0.1
		cfg.Iterations = 100

		res, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StoppedEarly).To(BeTrue())
		Expect(res.Collisions).To(Equal([]physics.Pair{{I: 1, J: 2}}))
		Expect(res.StepsTaken).To(Equal(3))
		Expect(res.HaltReason).To(ContainSubstring("1-2"))
	})

	It("reports contact reached on the last step", func() {
		bodies, x0 := pair(1, 1, 2.5, 1)
		cfg.Dt = 0.1
		cfg.Iterations = 3

		res, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StoppedEarly).To(BeFalse())
		Expect(res.StepsTaken).To(Equal(3))
		Expect(res.Collisions).To(Equal([]physics.Pair{{I: 1, J: 2}}))
	})

	It("takes no step when the bodies start in contact", func() {
		bodies, x0 := pair(1, 1, 1, 0)
		res, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StepsTaken).To(BeZero())
		Expect(res.States).To(HaveLen(1))
	})

	It("integrates through contact when collisions are allowed", func() {
		bodies, x0 := pair(1, 1, 2.5, 1)
		cfg.Dt = 0.1
		cfg.Iterations = 5
		cfg.AllowCollisions = true

		res, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StoppedEarly).To(BeFalse())
		Expect(res.StepsTaken).To(Equal(5))
		Expect(res.Collisions).To(BeNil())
	})

	It("reports the share of states inside the escape radius", func() {
		bodies, x0 := pair(1, 0, 10, -1)
		cfg.Dt = 1
		cfg.Iterations = 10
		cfg.EscapeRadius = 15

		res, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKeyWithValue("stability", BeNumerically("~", 6.0/11, 1e-12)))
	})

	It("turns coincident bodies into a SimError", func() {
		bodies, x0 := pair(1, 0, 0, 0)
		cfg.AllowCollisions = true

		_, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
	})

	It("gives identical trajectories with parallel forces", func() {
		bodies := []physics.Body{{Mass: 1e13, Radius: 1}, {Mass: 2e13, Radius: 1}, {Mass: 3e13, Radius: 1}, {Mass: 5e12, Radius: 1}}
		x0 := dynamo.State{
			Pos: []r3.Vec{{X: 100}, {Y: 100}, {Z: 100}, {X: -80, Y: -80}},
			Vel: []r3.Vec{{Y: 2}, {Z: 2}, {X: 2}, {}},
		}
		cfg.Dt = 1
		cfg.Iterations = 20

		serial, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())

		cfg.Workers = 3
		parallel, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(parallel.States).To(Equal(serial.States))
	})

	It("keeps a circular binary's energy", func() {
		m := 1e13
		d := 100.0
		v := math.Sqrt(physics.G * m / (2 * d))
		bodies := []physics.Body{{Mass: m, Radius: 1}, {Mass: m, Radius: 1}}
		x0 := dynamo.State{
			Pos: []r3.Vec{{X: -d / 2}, {X: d / 2}},
			Vel: []r3.Vec{{Y: -v}, {Y: v}},
		}
		cfg.Dt = 0.5
		cfg.Iterations = 400

		res, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EnergyDrift).To(BeNumerically("<", 1e-4))
		Expect(res.MinSeparation).To(BeNumerically("~", d, 1))
	})

	DescribeTable("validates input",
		func(bodies []physics.Body, x0 dynamo.State, want error) {
			_, err := runner.Run(context.Background(), bodies, x0, cfg)
			Expect(err).To(MatchError(want))
		},
		Entry("single body", []physics.Body{{Mass: 1}}, dynamo.NewState(1), dynamo.ErrTooFewBodies),
		Entry("state too short", []physics.Body{{Mass: 1}, {Mass: 1}, {Mass: 1}}, dynamo.NewState(2), dynamo.ErrDimensionMismatch),
	)

	It("rejects an unknown integrator", func() {
		bodies, x0 := pair(1, 1, 10, 0)
		cfg.Integrator = "rk45"
		_, err := runner.Run(context.Background(), bodies, x0, cfg)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Ensemble", func() {
	It("returns results in member order", func() {
		var members []sim.Member
		for _, gap := range []float64{50, 100, 200} {
			bodies, x0 := pair(1e13, 1, gap, 0)
			cfg := sim.DefaultNBodyConfig()
			cfg.Iterations = 5
			members = append(members, sim.Member{Bodies: bodies, X0: x0, Config: cfg})
		}

		results, err := sim.NewEnsemble(sim.NewNBodyRunner(), 2).Run(context.Background(), members)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, gap := range []float64{50, 100, 200} {
			Expect(separation(results[i].States[0])).To(Equal(gap))
			Expect(results[i].StepsTaken).To(Equal(5))
		}
	})

	It("fails when any member fails", func() {
		bodies, x0 := pair(1, 1, 10, 0)
		good := sim.Member{Bodies: bodies, X0: x0, Config: sim.DefaultNBodyConfig()}
		bad := sim.Member{Bodies: bodies[:1], X0: dynamo.NewState(1), Config: sim.DefaultNBodyConfig()}

		_, err := sim.NewEnsemble(sim.NewNBodyRunner(), 0).Run(context.Background(), []sim.Member{good, bad})
		Expect(err).To(MatchError(dynamo.ErrTooFewBodies))
	})
})
