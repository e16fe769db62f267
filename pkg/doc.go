// Package pkg provides the core libraries for chartwalk constrained planning.
//
// # Overview
//
// Chartwalk plans collision-free paths on implicit constraint manifolds:
// surfaces defined by F(x) = 0 inside a bounded ambient space. The pkg
// directory is organized into three main areas:
//
//  1. [manifold] - Constraint model and the two manifold-space representations
//  2. [planner] - Sampling-based planners over an abstract constrained space
//  3. [pipeline] - Orchestration (load → setup → plan → dump), with caching
//
// # Architecture
//
// The typical data flow through chartwalk:
//
//	Problem (built-in or TOML)
//	         ↓
//	    [manifold] package (project endpoints, build atlas/projected space)
//	         ↓
//	    [planner] package (RRT, RRT-Connect, RRT*, PRM)
//	         ↓
//	    [pipeline] package (densify path, cache solution)
//	         ↓
//	    anim.txt / PLY / SVG output
//
// # Quick Start
//
// Solve a built-in problem on an atlas-covered manifold:
//
//	import (
//	    "context"
//	    "time"
//	    "github.com/chartwalk/chartwalk/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Problem:   "sphere",
//	    Planner:   "rrtconnect",
//	    TimeLimit: 5 * time.Second,
//	    Mode:      pipeline.ModeAtlas,
//	})
//
// # Main Packages
//
// ## Core Domain Logic
//
// [manifold] - Constraint interface, Newton projection, tangent bases, and
// the Space abstraction. [manifold/atlas] covers the surface with tangent
// charts; [manifold/projected] projects ambient samples onto it.
//
// [planner] - Planner registry plus four planners sharing one extension
// machinery. All planning is deterministic for a fixed seed.
//
// [problem] - Built-in problems (sphere, circle, torus, klein, chain) and a
// TOML loader for parameterized instances with obstacle lists.
//
// ## Infrastructure
//
// [cache] - File-backed solution cache with SHA-256 keys and TTL expiry.
//
// [dump] - PLY and animation writers for paths, graphs, and chart meshes.
//
// [viz] - Graphviz DOT export and SVG/PNG rendering of exploration graphs.
//
// [linalg] - Minimal dense vector/matrix operations used by the numerics.
//
// [errors] - Structured error codes shared by the CLI and pipeline.
package pkg
