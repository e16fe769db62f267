package planner

import (
	"context"
	"math"
)

// rrtStar is RRT with asymptotically-optimal rewiring: new nodes pick the
// cheapest valid parent in a shrinking neighborhood and offer themselves as
// a shortcut to their neighbors.
type rrtStar struct {
	*base
}

func newRRTStar(s Setup) (Planner, error) {
	b, err := newBase(s)
	if err != nil {
		return nil, err
	}
	return &rrtStar{base: b}, nil
}

func (p *rrtStar) Name() string { return "rrtstar" }

func (p *rrtStar) Solve(ctx context.Context) (*Solution, error) {
	if err := p.checkEndpoints(); err != nil {
		return nil, err
	}

	tree := []node{{state: p.setup.Start, parent: -1, vertex: p.data.AddVertex(p.setup.Start)}}
	best := 0
	bestDist := p.setup.Space.Distance(p.setup.Start, p.setup.Goal)

	// Index of the goal node once connected; its cost keeps improving as
	// rewiring shortens upstream paths.
	goalIdx := -1

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

		// Choose the cheapest valid parent within the rewiring radius.
		radius := p.rewireRadius(len(tree))
		parent := from
		cost := tree[from].cost + p.setup.Space.Distance(tree[from].state, state)
		var neighbors []int
		for i := range tree {
			d := p.setup.Space.Distance(tree[i].state, state)
			if d > radius {
				continue
			}
			neighbors = append(neighbors, i)
			if c := tree[i].cost + d; c < cost && p.motionValid(tree[i].state, state) {
				parent, cost = i, c
			}
		}

		n := node{state: state, parent: parent, cost: cost, vertex: p.data.AddVertex(state)}
		tree = append(tree, n)
		p.data.AddEdge(tree[parent].vertex, n.vertex)
		idx := len(tree) - 1

		// Rewire neighbors through the new node when that is cheaper.
		for _, i := range neighbors {
			if i == parent {
				continue
			}
			d := p.setup.Space.Distance(state, tree[i].state)
			if c := cost + d; c < tree[i].cost && p.motionValid(state, tree[i].state) {
				tree[i].parent = idx
				tree[i].cost = c
				p.data.AddEdge(n.vertex, tree[i].vertex)
			}
		}

		d := p.setup.Space.Distance(state, p.setup.Goal)
		if d < bestDist {
			best, bestDist = idx, d
		}

		if goalIdx < 0 && d <= p.setup.Range && p.motionValid(state, p.setup.Goal) {
			g := node{
				state:  p.setup.Goal,
				parent: idx,
				cost:   cost + d,
				vertex: p.data.AddVertex(p.setup.Goal),
			}
			tree = append(tree, g)
			p.data.AddEdge(n.vertex, g.vertex)
			goalIdx = len(tree) - 1
			// Keep iterating: remaining budget buys a shorter path.
		}
	}

	if goalIdx >= 0 {
		return &Solution{
			Status:     StatusExact,
			Path:       pathTo(tree, goalIdx),
			Iterations: iters,
		}, nil
	}
	return approximate(tree, best, bestDist, iters), nil
}

// rewireRadius shrinks with tree size so rewiring cost stays bounded while
// neighborhoods remain dense enough for optimality.
func (p *rrtStar) rewireRadius(n int) float64 {
	if n < 2 {
		return p.setup.Range
	}
	r := 2 * p.setup.Range * math.Pow(math.Log(float64(n))/float64(n), 0.5)
	return math.Min(math.Max(r, p.setup.Range/4), p.setup.Range)
}
