package planner

import (
	"context"
	"slices"

	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// rrtConnect grows one tree from the start and one from the goal, aiming
// each new extension of one tree at the frontier of the other.
type rrtConnect struct {
	*base
}

func newRRTConnect(s Setup) (Planner, error) {
	b, err := newBase(s)
	if err != nil {
		return nil, err
	}
	return &rrtConnect{base: b}, nil
}

func (p *rrtConnect) Name() string { return "rrtconnect" }

func (p *rrtConnect) Solve(ctx context.Context) (*Solution, error) {
	if err := p.checkEndpoints(); err != nil {
		return nil, err
	}

	startTree := []node{{state: p.setup.Start, parent: -1, vertex: p.data.AddVertex(p.setup.Start)}}
	goalTree := []node{{state: p.setup.Goal, parent: -1, vertex: p.data.AddVertex(p.setup.Goal)}}

	// Track the closest start-tree node to the goal for the approximate
	// fallback.
	best := 0
	bestDist := p.setup.Space.Distance(p.setup.Start, p.setup.Goal)

	a, bTree := &startTree, &goalTree
	iters := 0
	for !done(ctx) {
		iters++

		target, ok := p.sampleValid(10)
		if !ok {
			continue
		}

		// Extend tree A toward the sample.
		fromA := p.nearest(*a, target)
		state, _ := p.extend((*a)[fromA].state, target)
		if state == nil {
			a, bTree = bTree, a
			continue
		}
		n := node{state: state, parent: fromA, vertex: p.data.AddVertex(state)}
		*a = append(*a, n)
		p.data.AddEdge((*a)[fromA].vertex, n.vertex)
		newIdx := len(*a) - 1

		if a == &startTree {
			if d := p.setup.Space.Distance(state, p.setup.Goal); d < bestDist {
				best, bestDist = newIdx, d
			}
		}

		// Greedily connect tree B to the new state.
		fromB := p.nearest(*bTree, state)
		cur := fromB
		for !done(ctx) {
			reachedState, reached := p.extend((*bTree)[cur].state, state)
			if reachedState == nil {
				break
			}
			c := node{state: reachedState, parent: cur, vertex: p.data.AddVertex(reachedState)}
			*bTree = append(*bTree, c)
			p.data.AddEdge((*bTree)[cur].vertex, c.vertex)
			cur = len(*bTree) - 1

			if reached || p.setup.Space.Distance(reachedState, state) <= p.setup.GoalThreshold {
				return &Solution{
					Status:     StatusExact,
					Path:       p.joinTrees(startTree, goalTree, a == &startTree, newIdx, cur),
					Iterations: iters,
				}, nil
			}
		}

		a, bTree = bTree, a
	}

	return approximate(startTree, best, bestDist, iters), nil
}

// joinTrees stitches the meeting point of the two trees into a single
// start-to-goal path. aIsStart tells which tree received the sample
// extension this round; aIdx and bIdx are the meeting nodes in the A and B
// trees.
func (p *rrtConnect) joinTrees(startTree, goalTree []node, aIsStart bool, aIdx, bIdx int) []linalg.Vector {
	startIdx, goalIdx := bIdx, aIdx
	if aIsStart {
		startIdx, goalIdx = aIdx, bIdx
	}

	path := pathTo(startTree, startIdx)

	// The goal-tree path runs goal-first; reverse it onto the start half,
	// dropping the duplicated meeting state.
	goalHalf := pathTo(goalTree, goalIdx)
	slices.Reverse(goalHalf)
	if len(goalHalf) > 0 && p.setup.Space.Equal(path[len(path)-1], goalHalf[0]) {
		goalHalf = goalHalf[1:]
	}
	return append(path, goalHalf...)
}
