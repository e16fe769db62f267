package manifold

import (
	"math/rand/v2"

	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// Bounds is the axis-aligned hypercube the ambient space is confined to.
// Both manifold representations reject traversal steps that leave it.
type Bounds struct {
	Low, High float64
}

// DefaultBounds is the ambient bounding box used by every built-in problem.
var DefaultBounds = Bounds{Low: -10, High: 10}

// Contains reports whether every component of x lies within the bounds.
func (b Bounds) Contains(x linalg.Vector) bool {
	for _, v := range x {
		if v < b.Low || v > b.High {
			return false
		}
	}
	return true
}

// Space is a manifold-aware configuration space. Implementations keep
// sampled and traversed states on (or within tolerance of) the constraint
// zero set; planners call them without knowing which representation is in
// use.
//
// Implementations are not safe for concurrent use: the atlas representation
// mutates its chart set during Traverse and SampleUniform.
type Space interface {
	// Constraint returns the constraint the space is built around.
	Constraint() Constraint

	// Bounds returns the ambient bounding box.
	Bounds() Bounds

	// SampleUniform draws an on-manifold state, or reports failure when the
	// underlying projection diverges for the drawn seed point.
	SampleUniform(rng *rand.Rand) (linalg.Vector, bool)

	// Traverse walks the manifold from `from` toward `to` in small steps.
	// It returns the visited states, starting with `from`, and whether `to`
	// was reached. A partial walk (reached == false) still returns the valid
	// prefix, which planners use for truncated extensions.
	Traverse(from, to linalg.Vector) ([]linalg.Vector, bool)

	// Distance returns the ambient-space distance between two states.
	Distance(a, b linalg.Vector) float64

	// Equal reports whether two states coincide within the space's step
	// resolution.
	Equal(a, b linalg.Vector) bool
}
