package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
)

var falling = dynamo.SolverFunc[float64](func(pos, _ []r3.Vec, _ float64, g float64) []r3.Vec {
	acc := make([]r3.Vec, len(pos))
	for i := range acc {
		acc[i] = r3.Vec{Z: -g}
	}
	return acc
})

type countingObserver struct {
	steps []int
}

func (o *countingObserver) OnStep(step int, _ float64, _ dynamo.State) {
	o.steps = append(o.steps, step)
}

var _ = Describe("Simulator", func() {
	var (
		s   *sim.Simulator[float64]
		x0  dynamo.State
		cfg dynamo.Config
	)

	BeforeEach(func() {
		s = sim.New[float64](falling, integrators.NewRK4[float64](), 9.8)
		x0 = dynamo.State{Pos: []r3.Vec{{Z: 100}}, Vel: []r3.Vec{{X: 1}}}
		cfg = dynamo.Config{Dt: 0.5, Iterations: 4, ValidateState: true}
	})

	It("records the initial state and one state per step", func() {
		res, err := s.Run(context.Background(), x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States).To(HaveLen(5))
		Expect(res.Times).To(Equal([]float64{0, 0.5, 1, 1.5, 2}))
		Expect(res.StepsTaken).To(Equal(4))
		Expect(res.Halted).To(BeFalse())

		final := res.Final()
		Expect(final.Pos[0].X).To(BeNumerically("~", 2, 1e-12))
		Expect(final.Pos[0].Z).To(BeNumerically("~", 100-0.5*9.8*4, 1e-9))
	})

	It("does not modify the initial state", func() {
		before := x0.Clone()
		_, err := s.Run(context.Background(), x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(x0).To(Equal(before))
	})

	It("notifies observers for every recorded state", func() {
		obs := &countingObserver{}
		s.AddObserver(obs)
		_, err := s.Run(context.Background(), x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.steps).To(Equal([]int{0, 1, 2, 3, 4}))
	})

	It("stops when a halter fires on the previous state", func() {
		s.AddHalter(sim.HalterFunc(func(step int, _ float64, _ dynamo.State) (string, bool) {
			return "enough", step == 2
		}))
		res, err := s.Run(context.Background(), x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Halted).To(BeTrue())
		Expect(res.HaltReason).To(Equal("enough"))
		Expect(res.StepsTaken).To(Equal(2))
		Expect(res.States).To(HaveLen(3))
	})

	It("returns the partial trajectory when cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := s.Run(ctx, x0, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res).NotTo(BeNil())
		Expect(res.States).To(HaveLen(1))
	})

	It("reports a non-finite state as a SimError", func() {
		bad := sim.New[float64](dynamo.SolverFunc[float64](func(pos, _ []r3.Vec, _ float64, _ float64) []r3.Vec {
			return []r3.Vec{{X: math.NaN()}}
		}), integrators.NewEuler[float64](), 0)

		res, err := bad.Run(context.Background(), x0, cfg)
		Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())

		var simErr *dynamo.SimError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Step).To(Equal(1))
		Expect(res.StepsTaken).To(Equal(0))
		Expect(res.Errors).To(HaveLen(1))
	})

	DescribeTable("rejects bad configs",
		func(c dynamo.Config) {
			_, err := s.Run(context.Background(), x0, c)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		},
		Entry("zero dt", dynamo.Config{Dt: 0, Iterations: 1}),
		Entry("negative dt", dynamo.Config{Dt: -1, Iterations: 1}),
		Entry("no iterations", dynamo.Config{Dt: 1, Iterations: 0}),
	)
})

var _ = Describe("RunPendulum", func() {
	It("conserves energy with rk4", func() {
		res, err := sim.RunPendulum(context.Background(), 1, 0.3, 0, "rk4", dynamo.Config{Dt: 0.01, Iterations: 500, ValidateState: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["energy_drift"]).To(BeNumerically("<", 1e-7))

		released := physics.StandardGravity * (1 - math.Cos(0.3))
		Expect(res.Metrics["energy"]).To(BeNumerically("~", released, 1e-6))
	})

	It("rejects an unknown integrator", func() {
		_, err := sim.RunPendulum(context.Background(), 1, 0.3, 0, "midpoint", dynamo.DefaultConfig())
		Expect(err).To(HaveOccurred())
	})
})
