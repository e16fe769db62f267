package atlas

import (
	"math"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
)

// meshSides is the number of vertices used to discretize a chart's rho
// circle before clipping against its neighbor borders.
const meshSides = 16

// Polygons returns one ambient-space polygon per chart: the chart's rho disc
// clipped by its neighbor borders, with vertices mapped back onto the
// manifold where projection succeeds. Only meaningful for 2-manifolds; other
// dimensions return nil.
func (s *Space) Polygons() [][]linalg.Vector {
	if manifold.ManifoldDim(s.constraint) != 2 {
		return nil
	}

	polys := make([][]linalg.Vector, 0, len(s.charts))
	for _, c := range s.charts {
		poly := s.chartPolygon(c)
		if len(poly) < 3 {
			continue
		}
		ambient := make([]linalg.Vector, len(poly))
		for i, u := range poly {
			if x, err := s.psi(c, u); err == nil {
				ambient[i] = x
			} else {
				ambient[i] = c.Lift(u)
			}
		}
		polys = append(polys, ambient)
	}
	return polys
}

// FrontierPercent estimates how much of the explored region still borders
// unexplored manifold, as the percentage of charts on the frontier.
func (s *Space) FrontierPercent() float64 {
	if len(s.charts) == 0 {
		return 0
	}
	frontier := 0
	for _, c := range s.charts {
		if s.isFrontier(c) {
			frontier++
		}
	}
	return 100 * float64(frontier) / float64(len(s.charts))
}

// isFrontier reports whether the chart's validity region is not fully closed
// off by neighbor borders. For 2-manifolds this checks whether the clipped
// polygon still touches the rho circle; higher dimensions fall back to a
// border-count heuristic.
func (s *Space) isFrontier(c *Chart) bool {
	k := manifold.ManifoldDim(s.constraint)
	if k != 2 {
		return len(c.borders) < 2*k
	}
	for _, u := range s.chartPolygon(c) {
		if u.Norm() >= s.opts.Rho*0.999 {
			return true
		}
	}
	return false
}

// chartPolygon returns the chart's clipped validity polygon in chart
// coordinates (2-manifolds only).
func (s *Space) chartPolygon(c *Chart) []linalg.Vector {
	poly := make([]linalg.Vector, meshSides)
	for i := range poly {
		a := 2 * math.Pi * float64(i) / meshSides
		poly[i] = linalg.Vector{s.opts.Rho * math.Cos(a), s.opts.Rho * math.Sin(a)}
	}
	for _, b := range c.borders {
		poly = clipHalfplane(poly, b)
		if len(poly) == 0 {
			break
		}
	}
	return poly
}

// clipHalfplane clips a convex polygon against u·normal <= offset
// (Sutherland-Hodgman, single edge).
func clipHalfplane(poly []linalg.Vector, b border) []linalg.Vector {
	out := make([]linalg.Vector, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn := cur.Dot(b.normal) <= b.offset
		prevIn := prev.Dot(b.normal) <= b.offset

		if curIn != prevIn {
			// Edge crosses the border; keep the intersection point.
			dc := cur.Dot(b.normal)
			dp := prev.Dot(b.normal)
			t := (b.offset - dp) / (dc - dp)
			out = append(out, prev.Lerp(cur, t))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}
