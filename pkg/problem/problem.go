package problem

import (
	"slices"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
)

// Problem is a constrained planning problem: a manifold, a start and goal on
// it, and a validity predicate over ambient states.
type Problem struct {
	// Name identifies the problem in the CLI and in cache keys.
	Name string

	// Description is a one-line summary shown by `chartwalk problems`.
	Description string

	// Constraint defines the manifold all valid states must lie on.
	Constraint manifold.Constraint

	// Start and Goal are ambient states; they are projected onto the
	// manifold before planning.
	Start, Goal linalg.Vector

	// Valid reports whether a state is collision-free. Nil means every
	// state is valid.
	Valid manifold.ValidityChecker
}

// IsValid applies the validity checker, treating nil as always-valid.
func (p *Problem) IsValid(x linalg.Vector) bool {
	return p.Valid == nil || p.Valid(x)
}

// builders maps problem names to constructors. Constructors return fresh
// Problem values so callers can mutate start/goal without aliasing.
var builders = map[string]func() *Problem{
	"sphere": newSphere,
	"circle": newCircle,
	"torus":  newTorus,
	"klein":  newKlein,
	"chain":  newChain,
}

// Names returns the built-in problem names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the built-in problem with the given name.
func Lookup(name string) (*Problem, bool) {
	b, ok := builders[name]
	if !ok {
		return nil, false
	}
	return b(), true
}

// All returns every built-in problem, sorted by name.
func All() []*Problem {
	out := make([]*Problem, 0, len(builders))
	for _, name := range Names() {
		p, _ := Lookup(name)
		out = append(out, p)
	}
	return out
}
