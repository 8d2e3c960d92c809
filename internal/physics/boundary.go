package physics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Boundary imposes fixed temperatures on the outer nodes of a grid, in
// place. xs and ys are the node coordinates returned by [Plate.Axes].
type Boundary interface {
	Apply(T *mat.Dense, xs, ys []float64)
}

// UniformBoundary holds all four edges at one temperature.
type UniformBoundary struct {
	Temp float64
}

func (b UniformBoundary) Apply(T *mat.Dense, _, _ []float64) {
	EdgeBoundary{Left: b.Temp, Right: b.Temp, Bottom: b.Temp, Top: b.Temp}.Apply(T, nil, nil)
}

// EdgeBoundary gives each edge its own temperature. Left is x = 0 and
// Bottom is y = 0. A corner takes the mean of the two edges meeting there.
type EdgeBoundary struct {
	Left, Right, Bottom, Top float64
}

func (b EdgeBoundary) Apply(T *mat.Dense, _, _ []float64) {
	rows, cols := T.Dims()
	last, top := rows-1, cols-1
	for y := 0; y < cols; y++ {
		T.Set(0, y, b.Left)
		T.Set(last, y, b.Right)
	}
	for x := 0; x < rows; x++ {
		T.Set(x, 0, b.Bottom)
		T.Set(x, top, b.Top)
	}
	T.Set(0, 0, stat.Mean([]float64{b.Left, b.Bottom}, nil))
	T.Set(0, top, stat.Mean([]float64{b.Left, b.Top}, nil))
	T.Set(last, 0, stat.Mean([]float64{b.Right, b.Bottom}, nil))
	T.Set(last, top, stat.Mean([]float64{b.Right, b.Top}, nil))
}

// CornerBoundary fixes the four corners and ramps each edge linearly between
// the corners at its ends.
type CornerBoundary struct {
	BottomLeft, BottomRight, TopLeft, TopRight float64
}

func (b CornerBoundary) Apply(T *mat.Dense, xs, ys []float64) {
	rows, cols := T.Dims()
	last, top := rows-1, cols-1
	for y := 0; y < cols; y++ {
		f := ramp(ys, y)
		T.Set(0, y, lerp(b.BottomLeft, b.TopLeft, f))
		T.Set(last, y, lerp(b.BottomRight, b.TopRight, f))
	}
	for x := 0; x < rows; x++ {
		f := ramp(xs, x)
		T.Set(x, 0, lerp(b.BottomLeft, b.BottomRight, f))
		T.Set(x, top, lerp(b.TopLeft, b.TopRight, f))
	}
}

// ramp is the fractional position of node k along axis.
func ramp(axis []float64, k int) float64 {
	span := axis[len(axis)-1] - axis[0]
	if span == 0 {
		return 0
	}
	return (axis[k] - axis[0]) / span
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}
