package integrators

import "gonum.org/v1/gonum/spatial/r3"

// axpy returns x + a*y elementwise.
func axpy(x []r3.Vec, a float64, y []r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(x))
	for i := range x {
		out[i] = r3.Add(x[i], r3.Scale(a, y[i]))
	}
	return out
}

// scale returns a*x elementwise.
func scale(a float64, x []r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(x))
	for i := range x {
		out[i] = r3.Scale(a, x[i])
	}
	return out
}
