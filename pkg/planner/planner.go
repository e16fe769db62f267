package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
)

var (
	// ErrUnknownPlanner is returned by New for unregistered planner names.
	ErrUnknownPlanner = errors.New("unknown planner")

	// ErrInvalidSetup is returned when the setup is missing a space, start,
	// goal, or a positive extension range.
	ErrInvalidSetup = errors.New("invalid planner setup")

	// ErrInvalidStart is returned by Solve when the start or goal state
	// fails the validity checker.
	ErrInvalidStart = errors.New("start or goal state is invalid")
)

// Status classifies a planning outcome.
type Status int

const (
	// StatusNoSolution means the search never progressed toward the goal.
	// The original driver reports it as a normal, non-error outcome.
	StatusNoSolution Status = iota

	// StatusApproximate means the budget expired with a path that ends
	// short of the goal; Solution.ApproxGoalDistance holds the gap.
	StatusApproximate

	// StatusExact means the returned path reaches the goal.
	StatusExact
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusExact:
		return "exact"
	case StatusApproximate:
		return "approximate"
	default:
		return "no solution"
	}
}

// Solved reports whether the status carries a usable path.
func (s Status) Solved() bool { return s != StatusNoSolution }

// Solution is the result of a Solve call.
type Solution struct {
	Status Status

	// Path is the waypoint sequence from the start state to the goal (exact)
	// or to the closest reached state (approximate). Empty for no-solution.
	Path []linalg.Vector

	// ApproxGoalDistance is the remaining distance to the goal for
	// approximate solutions, zero for exact ones.
	ApproxGoalDistance float64

	// Iterations counts planner loop iterations, for logging.
	Iterations int
}

// Data is the planner's exploration graph: every state the planner kept and
// the motions connecting them. The CLI dumps it to PLY and DOT.
type Data struct {
	Vertices []linalg.Vector
	Edges    [][2]int
}

// AddVertex appends a vertex and returns its index.
func (d *Data) AddVertex(x linalg.Vector) int {
	d.Vertices = append(d.Vertices, x)
	return len(d.Vertices) - 1
}

// AddEdge records a motion between two vertex indices.
func (d *Data) AddEdge(from, to int) {
	d.Edges = append(d.Edges, [2]int{from, to})
}

// Setup carries everything a planner needs. Space, Start, Goal, and Range
// are mandatory; the rest defaults via normalize.
type Setup struct {
	Space manifold.Space

	// Valid is the collision checker; nil accepts every state.
	Valid manifold.ValidityChecker

	// Start and Goal must already lie on the manifold.
	Start, Goal linalg.Vector

	// Range caps the length of a single tree extension.
	Range float64

	// GoalThreshold is the distance at which a state counts as the goal.
	// Defaults to a tenth of Range.
	GoalThreshold float64

	// GoalBias is the probability of aiming an extension directly at the
	// goal. Defaults to 0.05.
	GoalBias float64

	// Seed drives the planner's PCG stream; equal seeds reproduce runs.
	Seed uint64
}

func (s *Setup) normalize() error {
	if s.Space == nil || len(s.Start) == 0 || len(s.Goal) == 0 || s.Range <= 0 {
		return ErrInvalidSetup
	}
	if s.GoalThreshold <= 0 {
		s.GoalThreshold = s.Range / 10
	}
	if s.GoalBias <= 0 {
		s.GoalBias = 0.05
	}
	return nil
}

// valid applies the checker, treating nil as always-valid.
func (s *Setup) valid(x linalg.Vector) bool {
	return s.Valid == nil || s.Valid(x)
}

// Planner is a configured single-query motion planner. Solve may be called
// once; planners keep their exploration graph for Data afterwards.
type Planner interface {
	// Name returns the registry name the planner was built under.
	Name() string

	// Solve searches until an exact solution is found or ctx expires.
	Solve(ctx context.Context) (*Solution, error)

	// Data returns the exploration graph built during Solve.
	Data() *Data
}

// Constructor builds a planner from a setup.
type Constructor func(Setup) (Planner, error)

var registry = map[string]Constructor{}

// Register adds a planner constructor under the given name. Registration of
// a duplicate name panics; it indicates an init-time programming error.
func Register(name string, c Constructor) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("planner: duplicate registration of %q", name))
	}
	registry[name] = c
}

// New builds the named planner. Returns ErrUnknownPlanner for names that
// were never registered.
func New(name string, setup Setup) (Planner, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlanner, name)
	}
	return c(setup)
}

// Names returns the registered planner names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	Register("rrt", newRRT)
	Register("rrtconnect", newRRTConnect)
	Register("rrtstar", newRRTStar)
	Register("prm", newPRM)
}
