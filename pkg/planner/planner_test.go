package planner

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold/projected"
	"github.com/chartwalk/chartwalk/pkg/problem"
)

func TestNamesRegistered(t *testing.T) {
	want := []string{"prm", "rrt", "rrtconnect", "rrtstar"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewUnknownPlanner(t *testing.T) {
	if _, err := New("bitstar", Setup{}); !errors.Is(err, ErrUnknownPlanner) {
		t.Errorf("New err = %v, want ErrUnknownPlanner", err)
	}
}

func TestNewRejectsEmptySetup(t *testing.T) {
	if _, err := New("rrt", Setup{}); !errors.Is(err, ErrInvalidSetup) {
		t.Errorf("New err = %v, want ErrInvalidSetup", err)
	}
}

// sphereSetup builds a setup over the unobstructed unit sphere.
func sphereSetup(t *testing.T, seed uint64) Setup {
	t.Helper()
	p, _ := problem.Lookup("sphere")
	space, err := projected.New(p.Constraint, projected.DefaultOptions())
	if err != nil {
		t.Fatalf("projected.New: %v", err)
	}
	return Setup{
		Space: space,
		Start: linalg.Vector{0, 0, 1},
		Goal:  linalg.Vector{1, 0, 0},
		Range: 0.5,
		Seed:  seed,
	}
}

func TestSolveExactOnSphere(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			pl, err := New(name, sphereSetup(t, 42))
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			// rrtstar spends whatever budget remains on rewiring, so keep
			// the deadline short.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			sol, err := pl.Solve(ctx)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if sol.Status != StatusExact {
				t.Fatalf("status = %v, want exact", sol.Status)
			}

			if !sol.Path[0].Equal(linalg.Vector{0, 0, 1}, 1e-9) {
				t.Errorf("path starts at %v", sol.Path[0])
			}
			last := sol.Path[len(sol.Path)-1]
			if !last.Equal(linalg.Vector{1, 0, 0}, 1e-9) {
				t.Errorf("path ends at %v", last)
			}
			for i, x := range sol.Path {
				if r := x.Norm(); math.Abs(r-1) > 1e-6 {
					t.Fatalf("waypoint %d off the sphere: radius %v", i, r)
				}
			}

			data := pl.Data()
			if len(data.Vertices) < 2 {
				t.Errorf("exploration graph has %d vertices", len(data.Vertices))
			}
		})
	}
}

func TestSolveDeterministicForSeed(t *testing.T) {
	run := func() *Solution {
		pl, err := New("rrt", sphereSetup(t, 7))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sol, err := pl.Solve(ctx)
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		return sol
	}

	a, b := run(), run()
	if a.Status != b.Status || len(a.Path) != len(b.Path) {
		t.Fatalf("runs differ: %v/%d vs %v/%d", a.Status, len(a.Path), b.Status, len(b.Path))
	}
	for i := range a.Path {
		if !a.Path[i].Equal(b.Path[i], 0) {
			t.Fatalf("waypoint %d differs: %v vs %v", i, a.Path[i], b.Path[i])
		}
	}
}

func TestSolveExpiredBudget(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			pl, err := New(name, sphereSetup(t, 1))
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			sol, err := pl.Solve(ctx)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if sol.Status != StatusNoSolution {
				t.Errorf("status = %v, want no solution", sol.Status)
			}
		})
	}
}

func TestSolveApproximateOnBlockedCircle(t *testing.T) {
	p, _ := problem.Lookup("circle")
	space, err := projected.New(p.Constraint, projected.DefaultOptions())
	if err != nil {
		t.Fatalf("projected.New: %v", err)
	}

	setup := Setup{
		Space: space,
		// Both arcs around the circle are blocked short of the goal.
		Valid: func(x linalg.Vector) bool { return x[1] > -0.75 && x[1] < 0.75 },
		Start: linalg.Vector{1, 0, 0},
		Goal:  linalg.Vector{-1, 0, 0},
		Range: 0.3,
		Seed:  3,
	}

	pl, err := New("rrt", setup)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sol, err := pl.Solve(ctx)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if sol.Status != StatusApproximate {
		t.Fatalf("status = %v, want approximate", sol.Status)
	}
	if sol.ApproxGoalDistance <= 0 {
		t.Errorf("ApproxGoalDistance = %v, want > 0", sol.ApproxGoalDistance)
	}
	for i, x := range sol.Path {
		if !setup.valid(x) {
			t.Errorf("waypoint %d violates the validity checker: %v", i, x)
		}
	}
}

func TestSolveInvalidEndpoints(t *testing.T) {
	setup := sphereSetup(t, 1)
	setup.Valid = func(linalg.Vector) bool { return false }

	pl, err := New("rrtconnect", setup)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := pl.Solve(context.Background()); !errors.Is(err, ErrInvalidStart) {
		t.Errorf("Solve err = %v, want ErrInvalidStart", err)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusExact, "exact"},
		{StatusApproximate, "approximate"},
		{StatusNoSolution, "no solution"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.status, got, tt.want)
		}
	}
	if StatusNoSolution.Solved() {
		t.Error("StatusNoSolution.Solved() = true")
	}
	if !StatusApproximate.Solved() {
		t.Error("StatusApproximate.Solved() = false")
	}
}
