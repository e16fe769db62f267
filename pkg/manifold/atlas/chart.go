package atlas

import (
	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// border is a halfspace in chart coordinates separating a chart from one of
// its neighbors: points u with u·normal <= offset are on this chart's side.
type border struct {
	normal linalg.Vector
	offset float64
}

// Chart is a local linearization of the manifold: an on-manifold origin with
// an orthonormal tangent basis. Chart coordinates u map to ambient points via
// origin + basis*u followed by projection back onto the manifold.
type Chart struct {
	id      int
	origin  linalg.Vector
	basis   linalg.Matrix // ambient x manifold-dim, orthonormal columns
	borders []border
}

// ID returns the chart's creation-order identifier.
func (c *Chart) ID() int { return c.id }

// Origin returns the on-manifold anchor point of the chart.
func (c *Chart) Origin() linalg.Vector { return c.origin }

// ToChart maps an ambient point into the chart's tangent coordinates.
func (c *Chart) ToChart(x linalg.Vector) linalg.Vector {
	return c.basis.TransMulVec(x.Sub(c.origin))
}

// Lift maps chart coordinates to the ambient tangent plane, without
// projecting back onto the manifold.
func (c *Chart) Lift(u linalg.Vector) linalg.Vector {
	return c.origin.Add(c.basis.MulVec(u))
}

// inPolytope reports whether u is on this chart's side of every neighbor
// border.
func (c *Chart) inPolytope(u linalg.Vector) bool {
	for _, b := range c.borders {
		if u.Dot(b.normal) > b.offset {
			return false
		}
	}
	return true
}

// addBorder inserts the separating halfplane between c and the neighbor
// whose origin maps to v in c's coordinates. The border bisects the segment
// from c's origin to the neighbor's.
func (c *Chart) addBorder(v linalg.Vector) {
	half := v.Norm() / 2
	if half == 0 {
		return
	}
	c.borders = append(c.borders, border{normal: v.Clone().Normalize(), offset: half})
}
