package planner

import (
	"container/heap"
	"context"
	"math"
	"slices"

	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// prmBatch is the number of samples added to the roadmap between queries.
const prmBatch = 25

// prmNeighbors is how many nearest roadmap nodes each new sample attempts to
// connect to.
const prmNeighbors = 8

// prm is a probabilistic roadmap planner: it grows a graph of valid samples
// and answers with the shortest roadmap path, re-querying after every batch.
type prm struct {
	*base
}

func newPRM(s Setup) (Planner, error) {
	b, err := newBase(s)
	if err != nil {
		return nil, err
	}
	return &prm{base: b}, nil
}

func (p *prm) Name() string { return "prm" }

func (p *prm) Solve(ctx context.Context) (*Solution, error) {
	if err := p.checkEndpoints(); err != nil {
		return nil, err
	}

	// Roadmap vertices 0 and 1 are the start and goal.
	states := []linalg.Vector{p.setup.Start, p.setup.Goal}
	adj := [][]prmEdge{nil, nil}
	p.data.AddVertex(p.setup.Start)
	p.data.AddVertex(p.setup.Goal)
	p.tryConnect(states, adj, 1)

	iters := 0
	for !done(ctx) {
		for i := 0; i < prmBatch && !done(ctx); i++ {
			iters++
			x, ok := p.sampleValid(10)
			if !ok {
				continue
			}
			states = append(states, x)
			adj = append(adj, nil)
			p.data.AddVertex(x)
			p.tryConnect(states, adj, len(states)-1)
		}

		if path, ok := shortestPath(states, adj, 0, 1); ok {
			return &Solution{Status: StatusExact, Path: path, Iterations: iters}, nil
		}
	}

	return p.approximateFromRoadmap(states, adj, iters), nil
}

// prmEdge is one weighted adjacency entry.
type prmEdge struct {
	to     int
	weight float64
}

// tryConnect links roadmap node i to its nearest neighbors with valid
// motions.
func (p *prm) tryConnect(states []linalg.Vector, adj [][]prmEdge, i int) {
	type cand struct {
		j int
		d float64
	}
	cands := make([]cand, 0, len(states)-1)
	for j := range states {
		if j != i {
			cands = append(cands, cand{j, p.setup.Space.Distance(states[i], states[j])})
		}
	}
	slices.SortFunc(cands, func(a, b cand) int {
		switch {
		case a.d < b.d:
			return -1
		case a.d > b.d:
			return 1
		default:
			return 0
		}
	})

	connected := 0
	for _, c := range cands {
		if connected >= prmNeighbors {
			break
		}
		if !p.motionValid(states[i], states[c.j]) {
			continue
		}
		adj[i] = append(adj[i], prmEdge{to: c.j, weight: c.d})
		adj[c.j] = append(adj[c.j], prmEdge{to: i, weight: c.d})
		p.data.AddEdge(i, c.j)
		connected++
	}
}

// approximateFromRoadmap returns the path to the start-reachable node
// closest to the goal.
func (p *prm) approximateFromRoadmap(states []linalg.Vector, adj [][]prmEdge, iters int) *Solution {
	dist, prev := dijkstra(adj, 0)

	best := -1
	bestGoalDist := math.Inf(1)
	for i, d := range dist {
		if i == 1 || math.IsInf(d, 1) {
			continue
		}
		if gd := p.setup.Space.Distance(states[i], p.setup.Goal); gd < bestGoalDist {
			best, bestGoalDist = i, gd
		}
	}
	if best <= 0 {
		return &Solution{Status: StatusNoSolution, Iterations: iters}
	}
	return &Solution{
		Status:             StatusApproximate,
		Path:               rebuildPath(states, prev, best),
		ApproxGoalDistance: bestGoalDist,
		Iterations:         iters,
	}
}

// shortestPath runs Dijkstra and rebuilds the from→to path when connected.
func shortestPath(states []linalg.Vector, adj [][]prmEdge, from, to int) ([]linalg.Vector, bool) {
	dist, prev := dijkstra(adj, from)
	if math.IsInf(dist[to], 1) {
		return nil, false
	}
	return rebuildPath(states, prev, to), true
}

func rebuildPath(states []linalg.Vector, prev []int, to int) []linalg.Vector {
	var rev []linalg.Vector
	for i := to; i >= 0; i = prev[i] {
		rev = append(rev, states[i])
	}
	slices.Reverse(rev)
	return rev
}

// dijkstra returns shortest distances and predecessor links from source.
// Unreachable nodes keep +Inf distance and predecessor -1 (the source's
// predecessor is also -1).
func dijkstra(adj [][]prmEdge, source int) (dist []float64, prev []int) {
	n := len(adj)
	dist = make([]float64, n)
	prev = make([]int, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[source] = 0

	pq := &edgeHeap{{to: source, weight: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(prmEdge)
		if cur.weight > dist[cur.to] {
			continue
		}
		for _, e := range adj[cur.to] {
			if d := dist[cur.to] + e.weight; d < dist[e.to] {
				dist[e.to] = d
				prev[e.to] = cur.to
				heap.Push(pq, prmEdge{to: e.to, weight: d})
			}
		}
	}
	return dist, prev
}

// edgeHeap is a min-heap of tentative distances for dijkstra.
type edgeHeap []prmEdge

func (h edgeHeap) Len() int           { return len(h) }
func (h edgeHeap) Less(i, j int) bool { return h[i].weight < h[j].weight }
func (h edgeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *edgeHeap) Push(x any)        { *h = append(*h, x.(prmEdge)) }
func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
