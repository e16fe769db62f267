// Package pipeline provides the core planning pipeline for chartwalk.
//
// This package implements the complete load → setup → plan → dump pipeline
// shared by the CLI commands. By centralizing this logic, every entry point
// gets the same space construction, caching, and artifact behavior.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: resolve the problem by name or from a TOML file
//  2. Setup: project the endpoints and build the constrained space
//  3. Plan: run the chosen planner against a time budget, with caching
//  4. Dump: densify the path and write the output artifacts
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Problem:   "sphere",
//	    Planner:   "rrt",
//	    TimeLimit: 5 * time.Second,
//	    Mode:      pipeline.ModeAtlas,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Solution.Status.Solved() {
//	    fmt.Println("length:", result.Length)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chartwalk/chartwalk/pkg/errors"
	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
	"github.com/chartwalk/chartwalk/pkg/planner"
	"github.com/chartwalk/chartwalk/pkg/problem"
)

// Mode selects how the constrained space handles the manifold.
type Mode string

const (
	// ModeAtlas covers the manifold with tangent-plane charts.
	ModeAtlas Mode = "atlas"

	// ModeProjection samples the ambient space and projects onto the
	// manifold with Newton iteration.
	ModeProjection Mode = "projection"
)

// Defaults shared by the CLI and tests.
const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultProjectionRange caps tree extensions in projection mode.
	// Atlas mode derives its range from the chart radius instead.
	DefaultProjectionRange = 0.7

	// DefaultOutDir is where artifacts land unless overridden.
	DefaultOutDir = "."
)

// ValidModes is the set of supported space modes.
var ValidModes = map[Mode]bool{
	ModeAtlas:      true,
	ModeProjection: true,
}

// Options contains all configuration for a planning run.
type Options struct {
	// Problem is a built-in problem name or a path to a problem TOML file.
	Problem string

	// Planner is a registered planner name (rrt, rrtconnect, rrtstar, prm).
	Planner string

	// TimeLimit is the planning budget. Must be positive.
	TimeLimit time.Duration

	// Mode selects atlas or projection space handling.
	Mode Mode

	// Seed drives the planner and sampler RNG streams.
	Seed uint64

	// Verbose additionally dumps the exploration graph, the solution path,
	// and (in atlas mode) the chart mesh for 3-dimensional ambient spaces.
	Verbose bool

	// OutDir is the directory artifacts are written to.
	OutDir string

	// Refresh bypasses the solution cache.
	Refresh bool

	// Graph additionally renders the exploration graph to SVG via Graphviz.
	Graph bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Problem == "" {
		return errors.New(errors.ErrCodeInvalidProblem, "problem is required")
	}
	if err := errors.ValidateName(o.Problem); err != nil {
		return err
	}
	if o.Planner == "" {
		return errors.New(errors.ErrCodeInvalidPlanner, "planner is required")
	}
	if o.TimeLimit <= 0 {
		return errors.New(errors.ErrCodeInvalidTimeLimit, "time limit must be positive, got %v", o.TimeLimit)
	}
	if o.Mode == "" {
		o.Mode = ModeAtlas
	}
	if !ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be atlas or projection)", o.Mode)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Problem is the resolved planning problem.
	Problem *problem.Problem

	// Space is the constrained space the planner searched.
	Space manifold.Space

	// Solution is the planner outcome, including no-solution runs.
	Solution *planner.Solution

	// Data is the exploration graph, restored from the cached record on
	// cache hits.
	Data *planner.Data

	// Dense is the solution path re-traversed on the manifold, suitable
	// for animation. Empty when nothing was solved.
	Dense []linalg.Vector

	// Length is the arc length of the dense path.
	Length float64

	// ChartCount and FrontierPercent describe the atlas after planning.
	// Both are zero in projection mode.
	ChartCount      int
	FrontierPercent float64

	// Artifacts maps artifact names (anim.txt, path.ply, ...) to the paths
	// they were written to.
	Artifacts map[string]string

	// Stats contains timing information.
	Stats Stats

	// CacheHit reports whether the solve stage came from cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SetupTime time.Duration
	PlanTime  time.Duration
	DumpTime  time.Duration
}
