package planner

import (
	"context"
	"math/rand/v2"

	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// base carries the machinery every planner shares: the setup, a seeded RNG,
// and the exploration graph.
type base struct {
	setup Setup
	rng   *rand.Rand
	data  Data
}

func newBase(s Setup) (*base, error) {
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &base{
		setup: s,
		rng:   rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (b *base) Data() *Data { return &b.data }

// checkEndpoints verifies that the start and goal pass the validity checker.
func (b *base) checkEndpoints() error {
	if !b.setup.valid(b.setup.Start) || !b.setup.valid(b.setup.Goal) {
		return ErrInvalidStart
	}
	return nil
}

// sampleTarget returns the goal with probability GoalBias, otherwise a valid
// uniform sample. Reports failure when no valid sample turns up within a few
// tries (the caller just retries on the next iteration).
func (b *base) sampleTarget() (linalg.Vector, bool) {
	if b.rng.Float64() < b.setup.GoalBias {
		return b.setup.Goal, true
	}
	return b.sampleValid(10)
}

func (b *base) sampleValid(tries int) (linalg.Vector, bool) {
	for i := 0; i < tries; i++ {
		x, ok := b.setup.Space.SampleUniform(b.rng)
		if ok && b.setup.valid(x) {
			return x, true
		}
	}
	return nil, false
}

// extend walks from `from` toward `to`, truncating at the extension range
// and at the first invalid state. Returns the furthest valid state (nil when
// the walk made no progress) and whether `to` itself was reached.
func (b *base) extend(from, to linalg.Vector) (linalg.Vector, bool) {
	states, walked := b.setup.Space.Traverse(from, to)

	var last linalg.Vector
	var length float64
	for i := 1; i < len(states); i++ {
		length += states[i].Dist(states[i-1])
		if length > b.setup.Range || !b.setup.valid(states[i]) {
			return last, false
		}
		last = states[i]
	}
	return last, walked && last != nil
}

// motionValid reports whether the full walk from `from` to `to` stays valid.
func (b *base) motionValid(from, to linalg.Vector) bool {
	states, reached := b.setup.Space.Traverse(from, to)
	if !reached {
		return false
	}
	for _, x := range states[1:] {
		if !b.setup.valid(x) {
			return false
		}
	}
	return true
}

// done reports whether the context budget has expired.
func done(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// node is a tree vertex with a parent link for path extraction.
type node struct {
	state  linalg.Vector
	parent int // index into the tree, -1 for the root
	cost   float64
	vertex int // index into base.data
}

// nearest returns the index of the tree node closest to x.
func (b *base) nearest(tree []node, x linalg.Vector) int {
	best := 0
	bestDist := b.setup.Space.Distance(tree[0].state, x)
	for i := 1; i < len(tree); i++ {
		if d := b.setup.Space.Distance(tree[i].state, x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// pathTo walks parent links from node i back to the root and returns the
// root-first state sequence.
func pathTo(tree []node, i int) []linalg.Vector {
	var rev []linalg.Vector
	for ; i >= 0; i = tree[i].parent {
		rev = append(rev, tree[i].state)
	}

	path := make([]linalg.Vector, len(rev))
	for j := range rev {
		path[j] = rev[len(rev)-1-j]
	}
	return path
}
