package physics

// Body is the fixed description of one body. Color is only used for
// display.
type Body struct {
	Mass   float64
	Radius float64
	Color  string
}

func Masses(bodies []Body) []float64 {
	out := make([]float64, len(bodies))
	for i, b := range bodies {
		out[i] = b.Mass
	}
	return out
}

func Radii(bodies []Body) []float64 {
	out := make([]float64, len(bodies))
	for i, b := range bodies {
		out[i] = b.Radius
	}
	return out
}
