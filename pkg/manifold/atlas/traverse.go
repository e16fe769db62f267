package atlas

import (
	"math"

	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// Traverse walks the manifold from `from` toward `to`, stepping delta at a
// time in chart coordinates and hopping charts as the local linearization
// degrades. The returned slice starts with `from`; the second result reports
// whether `to` was reached.
//
// A walk stops early when:
//   - a step's projection diverges or exceeds the epsilon lift error,
//   - the step leaves the ambient bounds,
//   - more than MaxChartsPerExtension charts were created, or
//   - progress toward the target stalls.
func (s *Space) Traverse(from, to linalg.Vector) ([]linalg.Vector, bool) {
	states := []linalg.Vector{from.Clone()}

	cur := from.Clone()
	chart, _, err := s.chartFor(cur)
	if err != nil {
		return states, false
	}

	// Tangent deviation bound: a manifold step of delta may cover at most
	// delta/cos(alpha) in the ambient space before the chart is judged stale.
	maxStep := s.opts.Delta / math.Cos(s.opts.Alpha)

	created := 0
	maxIters := int(from.Dist(to)/s.opts.Delta)*4 + 20

	for iter := 0; iter < maxIters; iter++ {
		dist := cur.Dist(to)
		if dist <= s.opts.Delta {
			states = append(states, to.Clone())
			return states, true
		}

		u := chart.ToChart(cur)
		uTarget := chart.ToChart(to)
		dir := uTarget.Sub(u)
		if dir.Norm() < 1e-12 {
			// Target is normal to the chart plane; need a fresh chart.
			dir = nil
		} else {
			dir.Normalize()
		}

		var next linalg.Vector
		stale := dir == nil
		if !stale {
			step := u.Add(dir.Scale(s.opts.Delta))
			x, err := s.psi(chart, step)
			switch {
			case err != nil:
				stale = true
			case x.Dist(cur) > maxStep:
				stale = true
			case step.Norm() > s.opts.Rho:
				stale = true
			default:
				next = x
			}
		}

		if stale {
			if created++; created > s.opts.MaxChartsPerExtension {
				return states, false
			}
			fresh, err := s.newChart(cur)
			if err != nil {
				return states, false
			}
			chart = fresh
			continue
		}

		if !s.opts.Bounds.Contains(next) {
			return states, false
		}
		if next.Dist(to) >= dist {
			// No progress; the walk is trapped.
			return states, false
		}

		cur = next
		states = append(states, cur)
	}
	return states, false
}
