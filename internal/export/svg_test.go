package export

import (
	"strings"
	"testing"

	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"gonum.org/v1/gonum/mat"
)

func TestTrajectorySVG(t *testing.T) {
	svg := TrajectorySVG(twoBodyTrajectory(), []string{"#123456"}, 200, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if n := strings.Count(svg, "<path"); n != 2 {
		t.Errorf("got %d paths, want one per body", n)
	}
	if !strings.Contains(svg, `stroke="#123456"`) {
		t.Error("explicit body colour not used")
	}
	if n := strings.Count(svg, " L"); n != 6 {
		t.Errorf("got %d line segments, want 6", n)
	}
}

func TestTrajectorySVGNeedsTwoStates(t *testing.T) {
	tr := &sim.Trajectory{States: twoBodyTrajectory().States[:1]}
	if svg := TrajectorySVG(tr, nil, 10, 10); svg != "" {
		t.Errorf("single state svg = %q", svg)
	}
}

func TestHeatmapSVG(t *testing.T) {
	T := mat.NewDense(2, 2, []float64{0, 1, 2, 3})
	svg := HeatmapSVG(T, 100, 100)
	if n := strings.Count(svg, "<rect x="); n != 4 {
		t.Errorf("got %d cells, want 4", n)
	}
	if !strings.Contains(svg, `fill="#000080"`) || !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("coldest and hottest cells not on the ramp ends")
	}

	flat := HeatmapSVG(physics.Plate{Nodes: 3}.Uniform(5), 30, 30)
	if n := strings.Count(flat, `fill="#000080"`); n != 9 {
		t.Errorf("uniform plate has %d cold cells, want 9", n)
	}
}
