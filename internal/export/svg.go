package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/viz"
	"gonum.org/v1/gonum/mat"
)

const svgBackground = "#0a0a0a"

// TrajectorySVG draws the xy projection of every body path. colors are used
// per body and fall back to the theme palette when short.
func TrajectorySVG(tr *sim.Trajectory, colors []string, width, height int) string {
	if len(tr.States) < 2 {
		return ""
	}

	minX, maxX := tr.States[0].Pos[0].X, tr.States[0].Pos[0].X
	minY, maxY := tr.States[0].Pos[0].Y, tr.States[0].Pos[0].Y
	for _, s := range tr.States {
		for _, p := range s.Pos {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, width, height)

	theme := viz.GetTheme("")
	for b := 0; b < tr.States[0].Len(); b++ {
		stroke := theme.BodyColor(b)
		if b < len(colors) && colors[b] != "" {
			stroke = colors[b]
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
		for i, s := range tr.States {
			p := s.Pos[b]
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// HeatmapSVG draws one rect per grid node, shaded from the coldest to the
// hottest value of T. Row i is drawn left to right and column j bottom to top.
func HeatmapSVG(T *mat.Dense, width, height int) string {
	r, c := T.Dims()
	lo, hi := mat.Min(T), mat.Max(T)
	span := hi - lo

	cw := float64(width) / float64(r)
	ch := float64(height) / float64(c)

	var sb strings.Builder
	header(&sb, width, height)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			frac := 0.0
			if span > 0 {
				frac = (T.At(i, j) - lo) / span
			}
			fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
				float64(i)*cw, float64(c-1-j)*ch, cw, ch, viz.HeatColor(frac))
		}
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)
}
