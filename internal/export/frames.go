package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
)

// PlotFrame is one sampled instant as plain number lists. Body frames fill
// X, Y and Z with one entry per body. Heat frames fill X and Y with the
// plate axes and Values with the grid, Values[i][j] at (X[i], Y[j]).
type PlotFrame struct {
	Index  int         `json:"index"`
	Time   float64     `json:"time"`
	X      []float64   `json:"x"`
	Y      []float64   `json:"y"`
	Z      []float64   `json:"z,omitempty"`
	Values [][]float64 `json:"values,omitempty"`
}

// SampleIndexes picks about view evenly spaced indexes out of total, always
// starting at 0 and ending at total-1. A view of zero or at least total keeps
// every index.
func SampleIndexes(total, view int) []int {
	if total <= 0 {
		return nil
	}
	step := 1
	if view > 0 && view < total {
		step = total / view
	}
	idx := make([]int, 0, total/step+2)
	for i := 0; i < total; i += step {
		idx = append(idx, i)
	}
	if last := total - 1; idx[len(idx)-1] != last {
		idx = append(idx, last)
	}
	return idx
}

func NBodyFrames(tr *sim.Trajectory, view int) []PlotFrame {
	indexes := SampleIndexes(len(tr.States), view)
	frames := make([]PlotFrame, 0, len(indexes))
	for _, i := range indexes {
		s := tr.States[i]
		f := PlotFrame{
			Index: i,
			Time:  tr.Times[i],
			X:     make([]float64, s.Len()),
			Y:     make([]float64, s.Len()),
			Z:     make([]float64, s.Len()),
		}
		for b, p := range s.Pos {
			f.X[b], f.Y[b], f.Z[b] = p.X, p.Y, p.Z
		}
		frames = append(frames, f)
	}
	return frames
}

func HeatFrames(h *sim.HeatTrajectory, plate physics.Plate, view int) []PlotFrame {
	xs, ys := plate.Axes()
	indexes := SampleIndexes(len(h.Frames), view)
	frames := make([]PlotFrame, 0, len(indexes))
	for _, i := range indexes {
		T := h.Frames[i]
		r, c := T.Dims()
		values := make([][]float64, r)
		for row := range values {
			values[row] = make([]float64, c)
			for col := range values[row] {
				values[row][col] = T.At(row, col)
			}
		}
		frames = append(frames, PlotFrame{
			Index:  i,
			Time:   h.Times[i],
			X:      xs,
			Y:      ys,
			Values: values,
		})
	}
	return frames
}

func WriteJSON(w io.Writer, frames []PlotFrame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(frames)
}
