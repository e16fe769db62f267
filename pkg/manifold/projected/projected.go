// Package projected implements the projection-based manifold representation:
// states are kept on the constraint zero set by interpolating in the ambient
// space and Newton-projecting every intermediate point. It trades the atlas
// bookkeeping of package atlas for more projection work per step.
package projected

import (
	"errors"
	"math/rand/v2"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
)

// ErrBadOptions is returned by New when delta is not positive.
var ErrBadOptions = errors.New("invalid projection options")

// Options tunes the projected space.
type Options struct {
	// Delta is the interpolation step size.
	Delta float64

	// Projection tunes the Newton projection applied after each step.
	Projection manifold.ProjectionParams

	// Bounds is the ambient bounding box traversal must stay inside.
	Bounds manifold.Bounds
}

// DefaultOptions returns the step size the original projection demos use.
func DefaultOptions() Options {
	return Options{
		Delta:      0.02,
		Projection: manifold.DefaultProjection,
		Bounds:     manifold.DefaultBounds,
	}
}

// Space is the projection-based manifold representation.
type Space struct {
	constraint manifold.Constraint
	opts       Options
}

// New creates a projected space over the given constraint.
func New(c manifold.Constraint, opts Options) (*Space, error) {
	if opts.Delta <= 0 {
		return nil, ErrBadOptions
	}
	return &Space{constraint: c, opts: opts}, nil
}

// Constraint returns the constraint the space is built around.
func (s *Space) Constraint() manifold.Constraint { return s.constraint }

// Bounds returns the ambient bounding box.
func (s *Space) Bounds() manifold.Bounds { return s.opts.Bounds }

// Options returns the space parameters.
func (s *Space) Options() Options { return s.opts }

// Project maps an arbitrary ambient point onto the manifold.
func (s *Space) Project(x linalg.Vector) (linalg.Vector, error) {
	return manifold.Project(s.constraint, x, s.opts.Projection)
}

// SampleUniform draws a uniform ambient point inside the bounds and projects
// it onto the manifold. Fails when the projection diverges or lands outside
// the bounds.
func (s *Space) SampleUniform(rng *rand.Rand) (linalg.Vector, bool) {
	n := s.constraint.AmbientDim()
	x := linalg.NewVector(n)
	for i := range x {
		x[i] = s.opts.Bounds.Low + rng.Float64()*(s.opts.Bounds.High-s.opts.Bounds.Low)
	}

	on, err := s.Project(x)
	if err != nil || !s.opts.Bounds.Contains(on) {
		return nil, false
	}
	return on, true
}

// Traverse walks from `from` toward `to` by stepping delta along the ambient
// segment and projecting each intermediate state. The walk stops early when a
// projection diverges, a state leaves the bounds, or progress stalls.
func (s *Space) Traverse(from, to linalg.Vector) ([]linalg.Vector, bool) {
	states := []linalg.Vector{from.Clone()}
	cur := from.Clone()

	maxIters := int(from.Dist(to)/s.opts.Delta)*4 + 20
	for iter := 0; iter < maxIters; iter++ {
		dist := cur.Dist(to)
		if dist <= s.opts.Delta {
			states = append(states, to.Clone())
			return states, true
		}

		step := cur.Add(to.Sub(cur).Scale(s.opts.Delta / dist))
		next, err := s.Project(step)
		if err != nil {
			return states, false
		}
		if !s.opts.Bounds.Contains(next) {
			return states, false
		}
		if next.Dist(to) >= dist {
			return states, false
		}

		cur = next
		states = append(states, cur)
	}
	return states, false
}

// Distance returns the ambient Euclidean distance between states.
func (s *Space) Distance(a, b linalg.Vector) float64 { return a.Dist(b) }

// Equal reports whether two states coincide within half a step.
func (s *Space) Equal(a, b linalg.Vector) bool { return a.Dist(b) <= s.opts.Delta/2 }
