package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/dynamo"
)

var names = map[string]struct{}{
	"rk4":      {},
	"euler":    {},
	"verlet":   {},
	"leapfrog": {},
}

// ByName returns the integrator registered under name.
func ByName[P any](name string) (dynamo.Integrator[P], error) {
	switch name {
	case "rk4":
		return NewRK4[P](), nil
	case "euler":
		return NewEuler[P](), nil
	case "verlet":
		return NewVerlet[P](), nil
	case "leapfrog":
		return NewLeapfrog[P](), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}

// Names lists the registered integrators in sorted order.
func Names() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
