package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pair names two bodies by their 1-based index, I < J.
type Pair struct {
	I, J int
}

func (p Pair) String() string { return fmt.Sprintf("%d-%d", p.I, p.J) }

// Collisions reports every pair of bodies whose separation does not exceed
// the sum of their radii. Touching bodies count as colliding. Pairs come out
// ordered by I then J. The bool is false, with a nil slice, when nothing
// collides.
func Collisions(radii []float64, pos []r3.Vec) ([]Pair, bool) {
	var pairs []Pair
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			if radii[i]+radii[j] >= r3.Norm(r3.Sub(pos[i], pos[j])) {
				pairs = append(pairs, Pair{I: i + 1, J: j + 1})
			}
		}
	}
	return pairs, len(pairs) > 0
}
