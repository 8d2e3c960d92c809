package physics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// StefanBoltzmann is σ in W/(m²·K⁴).
const StefanBoltzmann = 5.670374419e-8

// HeatSource is a disc of fixed temperature on the plate. Its centre sits at
// XPercent and YPercent of the plate width and height.
type HeatSource struct {
	Power    float64
	Radius   float64
	XPercent float64
	YPercent float64
}

// Temperature is the black-body temperature of a disc radiating Power:
// (P / (σπr²))^¼.
func (s HeatSource) Temperature() float64 {
	return math.Pow(s.Power/(StefanBoltzmann*math.Pi*s.Radius*s.Radius), 0.25)
}

// Apply pins every node within Radius of the source centre, in place.
func (s HeatSource) Apply(T *mat.Dense, xs, ys []float64) {
	temp := s.Temperature()
	cx := s.XPercent / 100 * (xs[len(xs)-1] - xs[0])
	cy := s.YPercent / 100 * (ys[len(ys)-1] - ys[0])
	r2 := s.Radius * s.Radius
	for i, x := range xs {
		for j, y := range ys {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				T.Set(i, j, temp)
			}
		}
	}
}
