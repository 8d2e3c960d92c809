package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// Scene is a precomputed run the live view can replay frame by frame.
type Scene interface {
	Name() string
	Len() int
	Time(i int) float64
	// Render draws frame i into a w x h character block.
	Render(i int, cam *Camera, theme Theme, w, h int) string
	// Series is the scalar history charted beside the frame.
	Series() (caption string, values []float64)
	Stats(i int) [][2]string
}

type NBodyScene struct {
	traj   *sim.Trajectory
	masses []float64
	energy []float64
	// Trail is how many past frames are drawn behind each body.
	Trail int
}

func NewNBodyScene(tr *sim.Trajectory, masses []float64) *NBodyScene {
	energy := make([]float64, len(tr.States))
	for i, s := range tr.States {
		energy[i] = physics.TotalEnergy(s, masses)
	}
	return &NBodyScene{traj: tr, masses: masses, energy: energy, Trail: 200}
}

func (s *NBodyScene) Name() string       { return "nbody" }
func (s *NBodyScene) Len() int           { return len(s.traj.States) }
func (s *NBodyScene) Time(i int) float64 { return s.traj.Times[i] }

// Points returns every recorded position, for fitting a camera.
func (s *NBodyScene) Points() []r3.Vec {
	var pts []r3.Vec
	for _, st := range s.traj.States {
		pts = append(pts, st.Pos...)
	}
	return pts
}

func (s *NBodyScene) Render(i int, cam *Camera, theme Theme, w, h int) string {
	c := NewCanvas(w, h)
	dw, dh := c.Dots()
	for k := max(0, i-s.Trail); k < i; k++ {
		for _, p := range s.traj.States[k].Pos {
			if x, y, _, ok := cam.Project(p, dw, dh); ok {
				c.Set(x, y)
			}
		}
	}
	for _, p := range s.traj.States[i].Pos {
		if x, y, _, ok := cam.Project(p, dw, dh); ok {
			c.Disc(x, y, 2)
		}
	}
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(c.String())
}

func (s *NBodyScene) Series() (string, []float64) {
	return "total energy", s.energy
}

func (s *NBodyScene) Stats(i int) [][2]string {
	st := s.traj.States[i]
	drift := 0.0
	if e0 := s.energy[0]; e0 != 0 {
		drift = (s.energy[i] - e0) / e0
	}
	p := physics.Momentum(st, s.masses)
	return [][2]string{
		{"Bodies", fmt.Sprintf("%d", st.Len())},
		{"Energy", fmt.Sprintf("%.4g J", s.energy[i])},
		{"Drift", fmt.Sprintf("%.2e", drift)},
		{"Momentum", fmt.Sprintf("%.3g", r3.Norm(p))},
		{"Min sep", fmt.Sprintf("%.4g m", physics.MinSeparation(st.Pos))},
	}
}

// HeatScene shades the plate with one cell per character. Colours are
// scaled to the coldest and hottest node of the whole run.
type HeatScene struct {
	traj   *sim.HeatTrajectory
	mean   []float64
	lo, hi float64
}

func NewHeatScene(h *sim.HeatTrajectory) *HeatScene {
	s := &HeatScene{traj: h, mean: make([]float64, len(h.Frames))}
	for i, T := range h.Frames {
		s.mean[i] = stat.Mean(T.RawMatrix().Data, nil)
		lo, hi := mat.Min(T), mat.Max(T)
		if i == 0 || lo < s.lo {
			s.lo = lo
		}
		if i == 0 || hi > s.hi {
			s.hi = hi
		}
	}
	return s
}

func (s *HeatScene) Name() string       { return "heat" }
func (s *HeatScene) Len() int           { return len(s.traj.Frames) }
func (s *HeatScene) Time(i int) float64 { return s.traj.Times[i] }

// Render samples the grid with x to the right and y upwards. The camera is
// not used.
func (s *HeatScene) Render(i int, _ *Camera, _ Theme, w, h int) string {
	T := s.traj.Frames[i]
	rows, cols := T.Dims()
	span := s.hi - s.lo

	var b strings.Builder
	for line := 0; line < h; line++ {
		if line > 0 {
			b.WriteByte('\n')
		}
		j := cols - 1 - line*cols/h
		for col := 0; col < w; col++ {
			k := col * rows / w
			frac := 0.0
			if span > 0 {
				frac = (T.At(k, j) - s.lo) / span
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(HeatColor(frac))).Render("█"))
		}
	}
	return b.String()
}

func (s *HeatScene) Series() (string, []float64) {
	return "mean temperature", s.mean
}

func (s *HeatScene) Stats(i int) [][2]string {
	T := s.traj.Frames[i]
	n, _ := T.Dims()
	return [][2]string{
		{"Nodes", fmt.Sprintf("%d x %d", n, n)},
		{"Mean", fmt.Sprintf("%.2f K", s.mean[i])},
		{"Min", fmt.Sprintf("%.2f K", mat.Min(T))},
		{"Max", fmt.Sprintf("%.2f K", mat.Max(T))},
	}
}
