package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Stability is the fraction of observed states whose positions all stay
// within threshold of the origin.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(step int, t float64, x dynamo.State) {
	s.samples++
	for _, p := range x.Pos {
		if r3.Norm(p) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// MinSeparation records the closest approach between any two bodies.
type MinSeparation struct {
	name string
	min  float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{name: "min_separation", min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return m.name }

func (m *MinSeparation) Observe(step int, t float64, x dynamo.State) {
	for i := 0; i < len(x.Pos); i++ {
		for j := i + 1; j < len(x.Pos); j++ {
			m.min = math.Min(m.min, r3.Norm(r3.Sub(x.Pos[i], x.Pos[j])))
		}
	}
}

func (m *MinSeparation) Value() float64 { return m.min }

func (m *MinSeparation) Reset() { m.min = math.Inf(1) }
