package physics

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// HeatStep advances the temperature grid by one explicit Euler step of the
// five-point Laplacian. Only interior nodes change. The boundary is copied
// as is and has to be imposed again by the caller.
//
// No stability check is made: see [MaxStableDt].
func HeatStep(T *mat.Dense, dt, alpha, hx, hy float64) *mat.Dense {
	out := mat.DenseCopyOf(T)
	rows, _ := T.Dims()
	if rows < 3 {
		return out
	}
	heatRows(out, T, 1, rows-1, alpha*alpha*dt, hx*hx, hy*hy)
	return out
}

// HeatStepParallel is [HeatStep] with interior rows split across workers.
// Every node is computed by the same expression, so results are identical.
func HeatStepParallel(T *mat.Dense, dt, alpha, hx, hy float64, workers int) *mat.Dense {
	out := mat.DenseCopyOf(T)
	rows, _ := T.Dims()
	if rows < 3 {
		return out
	}
	k, hx2, hy2 := alpha*alpha*dt, hx*hx, hy*hy
	_ = dynamo.ParallelFor(rows-2, workers, func(start, end int) error {
		heatRows(out, T, start+1, end+1, k, hx2, hy2)
		return nil
	})
	return out
}

func heatRows(out, T *mat.Dense, from, to int, k, hx2, hy2 float64) {
	_, cols := T.Dims()
	for x := from; x < to; x++ {
		for y := 1; y < cols-1; y++ {
			c := T.At(x, y)
			dxx := (T.At(x-1, y) - 2*c + T.At(x+1, y)) / hx2
			dyy := (T.At(x, y-1) - 2*c + T.At(x, y+1)) / hy2
			out.Set(x, y, c+k*(dxx+dyy))
		}
	}
}

// MaxStableDt is the largest step for which the explicit scheme does not
// diverge: hx²hy² / (2α²(hx²+hy²)).
func MaxStableDt(alpha, hx, hy float64) float64 {
	hx2, hy2 := hx*hx, hy*hy
	return hx2 * hy2 / (2 * alpha * alpha * (hx2 + hy2))
}
