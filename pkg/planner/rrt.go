package planner

import (
	"context"
)

// rrt is the classic goal-biased rapidly-exploring random tree.
type rrt struct {
	*base
}

func newRRT(s Setup) (Planner, error) {
	b, err := newBase(s)
	if err != nil {
		return nil, err
	}
	return &rrt{base: b}, nil
}

func (p *rrt) Name() string { return "rrt" }

func (p *rrt) Solve(ctx context.Context) (*Solution, error) {
	if err := p.checkEndpoints(); err != nil {
		return nil, err
	}

	tree := []node{{state: p.setup.Start, parent: -1, vertex: p.data.AddVertex(p.setup.Start)}}
	best := 0
	bestDist := p.setup.Space.Distance(p.setup.Start, p.setup.Goal)

	iters := 0
	for !done(ctx) {
		iters++

		target, ok := p.sampleTarget()
		if !ok {
			continue
		}

		from := p.nearest(tree, target)
		state, _ := p.extend(tree[from].state, target)
		if state == nil {
			continue
		}

		n := node{state: state, parent: from, vertex: p.data.AddVertex(state)}
		tree = append(tree, n)
		p.data.AddEdge(tree[from].vertex, n.vertex)
		idx := len(tree) - 1

		d := p.setup.Space.Distance(state, p.setup.Goal)
		if d < bestDist {
			best, bestDist = idx, d
		}

		// Close enough to try a direct connection to the goal.
		if d <= p.setup.Range && p.motionValid(state, p.setup.Goal) {
			g := node{state: p.setup.Goal, parent: idx, vertex: p.data.AddVertex(p.setup.Goal)}
			tree = append(tree, g)
			p.data.AddEdge(n.vertex, g.vertex)
			return &Solution{
				Status:     StatusExact,
				Path:       pathTo(tree, len(tree)-1),
				Iterations: iters,
			}, nil
		}
	}

	return approximate(tree, best, bestDist, iters), nil
}

// approximate builds the budget-expired solution: the path to the tree node
// closest to the goal, or no-solution when the tree never left the start.
func approximate(tree []node, best int, bestDist float64, iters int) *Solution {
	if best == 0 {
		return &Solution{Status: StatusNoSolution, Iterations: iters}
	}
	return &Solution{
		Status:             StatusApproximate,
		Path:               pathTo(tree, best),
		ApproxGoalDistance: bestDist,
		Iterations:         iters,
	}
}
