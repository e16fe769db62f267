package pipeline

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/chartwalk/chartwalk/pkg/cache"
	"github.com/chartwalk/chartwalk/pkg/errors"
	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
	"github.com/chartwalk/chartwalk/pkg/manifold/atlas"
	"github.com/chartwalk/chartwalk/pkg/manifold/projected"
	"github.com/chartwalk/chartwalk/pkg/planner"
	"github.com/chartwalk/chartwalk/pkg/problem"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// run results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → setup → plan → dump pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string]string),
	}

	// Stage 1: Load
	prob, fingerprint, err := r.LoadProblem(opts.Problem)
	if err != nil {
		return nil, err
	}
	result.Problem = prob

	// Stage 2: Setup
	setupStart := time.Now()
	space, start, goal, err := r.BuildSpace(prob, opts)
	if err != nil {
		return nil, err
	}
	result.Space = space
	result.Stats.SetupTime = time.Since(setupStart)

	opts.Logger.Debug("space ready",
		"mode", opts.Mode,
		"ambient_dim", prob.Constraint.AmbientDim(),
		"codim", prob.Constraint.CoDim(),
		"duration", result.Stats.SetupTime)

	// Stage 3: Plan
	planStart := time.Now()
	if err := r.plan(ctx, result, space, prob, fingerprint, start, goal, opts); err != nil {
		return nil, err
	}
	result.Stats.PlanTime = time.Since(planStart)

	opts.Logger.Info("planning finished",
		"status", result.Solution.Status,
		"iterations", result.Solution.Iterations,
		"cache_hit", result.CacheHit,
		"duration", result.Stats.PlanTime)

	// Stage 4: Dump
	dumpStart := time.Now()
	if result.Solution.Status.Solved() {
		result.Dense, result.Length = Densify(space, result.Solution.Path)
	}
	if err := r.WriteArtifacts(result, opts); err != nil {
		return nil, err
	}
	result.Stats.DumpTime = time.Since(dumpStart)

	return result, nil
}

// LoadProblem resolves a problem by built-in name or TOML file path. The
// second return is a fingerprint of the problem definition: the name for
// built-ins, a content hash for files, so that editing a file's parameters
// invalidates cached solutions keyed on it.
func (r *Runner) LoadProblem(name string) (*problem.Problem, string, error) {
	if strings.HasSuffix(name, ".toml") {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidProblem, err, "loading problem file %s", name)
		}
		prob, err := problem.Parse(data, name)
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidProblem, err, "loading problem file %s", name)
		}
		return prob, cache.Hash(data), nil
	}
	prob, ok := problem.Lookup(name)
	if !ok {
		return nil, "", errors.New(errors.ErrCodeProblemNotFound,
			"unknown problem %q (available: %s)", name, strings.Join(problem.Names(), ", "))
	}
	return prob, name, nil
}

// BuildSpace constructs the constrained space for the problem and projects
// the endpoints onto the manifold.
func (r *Runner) BuildSpace(prob *problem.Problem, opts Options) (manifold.Space, linalg.Vector, linalg.Vector, error) {
	switch opts.Mode {
	case ModeProjection:
		space, err := projected.New(prob.Constraint, projected.DefaultOptions())
		if err != nil {
			return nil, nil, nil, errors.Wrap(errors.ErrCodeSpaceSetup, err, "building projected space")
		}
		start, err := space.Project(prob.Start)
		if err != nil {
			return nil, nil, nil, errors.Wrap(errors.ErrCodeProjectionFailed, err, "projecting start state")
		}
		goal, err := space.Project(prob.Goal)
		if err != nil {
			return nil, nil, nil, errors.Wrap(errors.ErrCodeProjectionFailed, err, "projecting goal state")
		}
		return space, start, goal, nil

	default: // ModeAtlas
		space, err := atlas.New(prob.Constraint, atlas.DefaultOptions())
		if err != nil {
			return nil, nil, nil, errors.Wrap(errors.ErrCodeSpaceSetup, err, "building atlas space")
		}
		sc, err := space.AnchorChart(prob.Start)
		if err != nil {
			return nil, nil, nil, errors.Wrap(errors.ErrCodeProjectionFailed, err, "anchoring start state")
		}
		gc, err := space.AnchorChart(prob.Goal)
		if err != nil {
			return nil, nil, nil, errors.Wrap(errors.ErrCodeProjectionFailed, err, "anchoring goal state")
		}
		return space, sc.Origin(), gc.Origin(), nil
	}
}

// plan runs the solve stage, consulting the solution cache, and fills the
// result's Solution, Data, CacheHit, and atlas statistics.
func (r *Runner) plan(ctx context.Context, result *Result, space manifold.Space, prob *problem.Problem, fingerprint string, start, goal linalg.Vector, opts Options) error {
	key := cache.SolutionKey(fingerprint, opts.Planner, string(opts.Mode), opts.Seed, opts.TimeLimit.Seconds())

	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if rec, err := decodeRunRecord(raw); err == nil {
				rec.apply(result)
				result.CacheHit = true
				return nil
			}
		}
	}

	setup := planner.Setup{
		Space: space,
		Valid: prob.Valid,
		Start: start,
		Goal:  goal,
		Range: plannerRange(space, opts.Mode),
		Seed:  opts.Seed,
	}
	p, err := planner.New(opts.Planner, setup)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPlanner, err, "constructing planner %q", opts.Planner)
	}

	planCtx, cancel := context.WithTimeout(ctx, opts.TimeLimit)
	defer cancel()

	sol, err := p.Solve(planCtx)
	if err != nil {
		return err
	}
	result.Solution = sol
	result.Data = p.Data()
	if a, ok := space.(*atlas.Space); ok {
		result.ChartCount = a.ChartCount()
		result.FrontierPercent = a.FrontierPercent()
	}

	if !opts.Refresh {
		if raw, err := encodeRunRecord(opts, result); err == nil {
			_ = r.Cache.Set(ctx, key, raw, cache.TTLSolution)
		}
	}

	return nil
}

// plannerRange returns the tree extension cap for a space mode. Atlas mode
// ties it to the chart validity radius so extensions stay within chart reach.
func plannerRange(space manifold.Space, mode Mode) float64 {
	if a, ok := space.(*atlas.Space); ok && mode == ModeAtlas {
		return a.RhoS()
	}
	return DefaultProjectionRange
}

// Densify re-traverses consecutive waypoints on the manifold and accumulates
// arc length, producing a path fine enough to animate.
func Densify(space manifold.Space, path []linalg.Vector) ([]linalg.Vector, float64) {
	if len(path) == 0 {
		return nil, 0
	}
	dense := []linalg.Vector{path[0]}
	length := 0.0
	for i := 1; i < len(path); i++ {
		seg, ok := space.Traverse(path[i-1], path[i])
		if !ok || len(seg) < 2 {
			// Fall back to the straight chord when traversal stalls.
			seg = []linalg.Vector{path[i-1], path[i]}
		}
		for j := 1; j < len(seg); j++ {
			length += seg[j].Dist(seg[j-1])
			dense = append(dense, seg[j])
		}
	}
	return dense, length
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
