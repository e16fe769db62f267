package atlas

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
)

var (
	// ErrBadOptions is returned by New when a parameter is outside its
	// valid range.
	ErrBadOptions = errors.New("invalid atlas options")

	// ErrAnchorFailed is returned by AnchorChart when the anchor point
	// cannot be projected onto the manifold or has no full-rank tangent
	// space.
	ErrAnchorFailed = errors.New("cannot anchor chart")
)

// Options tunes the atlas. Zero values are replaced by DefaultOptions
// field-by-field is NOT done; pass DefaultOptions() and override.
type Options struct {
	// Exploration biases chart selection during sampling toward frontier
	// charts (those whose polytope is not yet closed off by neighbors).
	// 0 never prefers the frontier, 1 always does.
	Exploration float64

	// Rho is the validity radius of a chart in its own coordinates.
	Rho float64

	// Alpha is the maximum angle between the chart plane and the manifold
	// tangent before a traversal step forces a new chart.
	Alpha float64

	// Epsilon is the maximum distance between a lifted chart point and its
	// projection onto the manifold.
	Epsilon float64

	// Delta is the traversal step size in chart coordinates.
	Delta float64

	// MaxChartsPerExtension caps how many charts a single Traverse call may
	// create before giving up.
	MaxChartsPerExtension int

	// Projection tunes the Newton projection used by psi.
	Projection manifold.ProjectionParams

	// Bounds is the ambient bounding box traversal must stay inside.
	Bounds manifold.Bounds
}

// DefaultOptions returns the parameter set the original atlas demos use.
func DefaultOptions() Options {
	return Options{
		Exploration:           0.5,
		Rho:                   0.5,
		Alpha:                 math.Pi / 8,
		Epsilon:               0.2,
		Delta:                 0.02,
		MaxChartsPerExtension: 200,
		Projection:            manifold.DefaultProjection,
		Bounds:                manifold.DefaultBounds,
	}
}

func (o Options) validate() error {
	switch {
	case o.Exploration < 0 || o.Exploration > 1:
		return ErrBadOptions
	case o.Rho <= 0 || o.Epsilon <= 0 || o.Delta <= 0:
		return ErrBadOptions
	case o.Alpha <= 0 || o.Alpha >= math.Pi/2:
		return ErrBadOptions
	case o.Delta >= o.Rho:
		return ErrBadOptions
	case o.MaxChartsPerExtension <= 0:
		return ErrBadOptions
	}
	return nil
}

// Space is the atlas-based manifold representation. It grows its chart set
// lazily during sampling and traversal.
//
// Space is not safe for concurrent use.
type Space struct {
	constraint manifold.Constraint
	opts       Options
	charts     []*Chart
}

// New creates an empty atlas over the given constraint.
// Anchor at least one chart (normally the start and goal states) before
// sampling.
func New(c manifold.Constraint, opts Options) (*Space, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Space{constraint: c, opts: opts}, nil
}

// Constraint returns the constraint the atlas is built around.
func (s *Space) Constraint() manifold.Constraint { return s.constraint }

// Bounds returns the ambient bounding box.
func (s *Space) Bounds() manifold.Bounds { return s.opts.Bounds }

// Options returns the atlas parameters.
func (s *Space) Options() Options { return s.opts }

// ChartCount returns the number of charts created so far.
func (s *Space) ChartCount() int { return len(s.charts) }

// Charts returns the chart list in creation order. The slice is shared; do
// not modify it.
func (s *Space) Charts() []*Chart { return s.charts }

// RhoS returns the chart radius inflated by the alpha cone, the natural
// extension range for planners running on this atlas.
func (s *Space) RhoS() float64 { return s.opts.Rho / math.Cos(s.opts.Alpha) }

// AnchorChart projects x onto the manifold and creates a chart there.
// Start and goal states are anchored this way before planning so sampling
// has somewhere to grow from.
func (s *Space) AnchorChart(x linalg.Vector) (*Chart, error) {
	on, err := manifold.Project(s.constraint, x, s.opts.Projection)
	if err != nil {
		return nil, errors.Join(ErrAnchorFailed, err)
	}
	return s.newChart(on)
}

// newChart creates a chart at the on-manifold point x and wires separating
// borders against every chart close enough to overlap.
func (s *Space) newChart(x linalg.Vector) (*Chart, error) {
	basis, err := manifold.TangentBasis(s.constraint, x)
	if err != nil {
		return nil, errors.Join(ErrAnchorFailed, err)
	}

	c := &Chart{id: len(s.charts), origin: x.Clone(), basis: basis}
	for _, other := range s.charts {
		if x.Dist(other.origin) > 2*s.opts.Rho {
			continue
		}
		c.addBorder(c.ToChart(other.origin))
		other.addBorder(other.ToChart(c.origin))
	}
	s.charts = append(s.charts, c)
	return c, nil
}

// psi maps chart coordinates onto the manifold: lift into the tangent plane,
// then Newton-project. Fails when projection diverges or drifts further than
// epsilon from the lift.
func (s *Space) psi(c *Chart, u linalg.Vector) (linalg.Vector, error) {
	lift := c.Lift(u)
	on, err := manifold.Project(s.constraint, lift, s.opts.Projection)
	if err != nil {
		return nil, err
	}
	if on.Dist(lift) > s.opts.Epsilon {
		return nil, manifold.ErrProjectionDiverged
	}
	return on, nil
}

// owningChart returns the chart best suited to represent x: the one whose
// polytope contains x's chart coordinates within rho, preferring the chart
// with the nearest origin. Returns nil when no chart covers x.
func (s *Space) owningChart(x linalg.Vector) *Chart {
	var best *Chart
	bestDist := math.Inf(1)
	for _, c := range s.charts {
		d := x.Dist(c.origin)
		if d >= bestDist || d > s.RhoS() {
			continue
		}
		u := c.ToChart(x)
		if u.Norm() > s.opts.Rho || !c.inPolytope(u) {
			continue
		}
		best, bestDist = c, d
	}
	return best
}

// chartFor returns a chart covering x, creating one when no existing chart
// does. x must already be on the manifold.
func (s *Space) chartFor(x linalg.Vector) (*Chart, bool, error) {
	if c := s.owningChart(x); c != nil {
		return c, false, nil
	}
	c, err := s.newChart(x)
	return c, true, err
}

// SampleUniform draws an on-manifold state by picking a chart, sampling
// uniformly in its rho ball, and mapping through psi. Chart choice is biased
// toward the frontier with probability Exploration. Fails when the atlas has
// no charts yet, the projection diverges, or the sample leaves the bounds.
func (s *Space) SampleUniform(rng *rand.Rand) (linalg.Vector, bool) {
	if len(s.charts) == 0 {
		return nil, false
	}

	c := s.pickChart(rng)
	k := manifold.ManifoldDim(s.constraint)

	// Uniform in the k-ball: gaussian direction, radius by inverse CDF.
	u := linalg.NewVector(k)
	for i := range u {
		u[i] = rng.NormFloat64()
	}
	u.Normalize()
	r := s.opts.Rho * math.Pow(rng.Float64(), 1/float64(k))
	u = u.Scale(r)

	x, err := s.psi(c, u)
	if err != nil || !s.opts.Bounds.Contains(x) {
		return nil, false
	}
	return x, true
}

// pickChart selects a chart for sampling, preferring frontier charts with
// probability Exploration.
func (s *Space) pickChart(rng *rand.Rand) *Chart {
	if rng.Float64() < s.opts.Exploration {
		var frontier []*Chart
		for _, c := range s.charts {
			if s.isFrontier(c) {
				frontier = append(frontier, c)
			}
		}
		if len(frontier) > 0 {
			return frontier[rng.IntN(len(frontier))]
		}
	}
	return s.charts[rng.IntN(len(s.charts))]
}

// Distance returns the ambient Euclidean distance between states.
func (s *Space) Distance(a, b linalg.Vector) float64 { return a.Dist(b) }

// Equal reports whether two states coincide within half a traversal step.
func (s *Space) Equal(a, b linalg.Vector) bool { return a.Dist(b) <= s.opts.Delta/2 }
