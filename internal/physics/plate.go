package physics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Plate is a rectangular plate discretised into Nodes × Nodes grid points,
// endpoints included. Grid rows follow x and columns follow y.
type Plate struct {
	Width  float64
	Height float64
	Nodes  int
}

// Axes returns the node coordinates along x and y.
func (p Plate) Axes() (xs, ys []float64) {
	xs = floats.Span(make([]float64, p.Nodes), 0, p.Width)
	ys = floats.Span(make([]float64, p.Nodes), 0, p.Height)
	return xs, ys
}

// Spacing returns the mean node spacing along x and y.
func (p Plate) Spacing() (hx, hy float64) {
	xs, ys := p.Axes()
	return meanStep(xs), meanStep(ys)
}

// DefaultDt is half the product of the spacings.
func (p Plate) DefaultDt() float64 {
	hx, hy := p.Spacing()
	return 0.5 * hx * hy
}

// Uniform returns a grid with every node at temp.
func (p Plate) Uniform(temp float64) *mat.Dense {
	data := make([]float64, p.Nodes*p.Nodes)
	for i := range data {
		data[i] = temp
	}
	return mat.NewDense(p.Nodes, p.Nodes, data)
}

func meanStep(axis []float64) float64 {
	if len(axis) < 2 {
		return 0
	}
	d := make([]float64, len(axis)-1)
	for i := range d {
		d[i] = axis[i+1] - axis[i]
	}
	return stat.Mean(d, nil)
}
