package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chartwalk/chartwalk/pkg/errors"
	"github.com/chartwalk/chartwalk/pkg/pipeline"
	"github.com/chartwalk/chartwalk/pkg/planner"
	"github.com/chartwalk/chartwalk/pkg/problem"
)

// defaultTimeLimit is used when the interactive picker supplies the
// problem and planner and no time limit was given.
const defaultTimeLimit = 5 * time.Second

// solveCommand creates the solve command, the main entry point of the CLI.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		atlasMode bool
		projMode  bool
		seed      uint64
		outDir    string
		refresh   bool
		graphOut  bool
	)

	cmd := &cobra.Command{
		Use:   "solve <problem> <planner> <timelimit>",
		Short: "Plan a path on a constrained manifold",
		Long: `Plan a path on an implicitly constrained manifold.

The problem is a built-in name (see 'chartwalk problems') or a path to a
problem TOML file. The planner is a registered planner name (see
'chartwalk planners'). The time limit is the planning budget in seconds.

The manifold is handled either with an atlas of tangent-plane charts (-a)
or by projecting ambient samples onto the surface (-p).

On success the solution path is re-traversed on the manifold and written to
anim.txt. With --verbose and a 3-dimensional ambient space the solution
path, the exploration graph, and (atlas mode) the chart mesh are dumped as
PLY files alongside it.

Run without arguments to pick the problem and planner interactively.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			if atlasMode && projMode {
				printUsage(cmd, "-a and -p are mutually exclusive")
				return nil
			}
			mode := pipeline.ModeAtlas
			if projMode {
				mode = pipeline.ModeProjection
			}

			opts := pipeline.Options{
				Mode:      mode,
				Seed:      seed,
				Verbose:   verbose,
				OutDir:    outDir,
				Refresh:   refresh,
				Graph:     graphOut,
				TimeLimit: defaultTimeLimit,
				Logger:    loggerFromContext(cmd.Context()),
			}

			switch len(args) {
			case 0:
				probName, planName, ok, err := pickProblemAndPlanner()
				if err != nil {
					return err
				}
				if !ok {
					return nil // cancelled
				}
				opts.Problem = probName
				opts.Planner = planName
			case 3:
				if !atlasMode && !projMode {
					printUsage(cmd, "one of -a (atlas) or -p (projection) is required")
					return nil
				}
				seconds, err := errors.ValidateTimeLimit(args[2])
				if err != nil {
					printUsage(cmd, errors.UserMessage(err))
					return nil
				}
				opts.Problem = args[0]
				opts.Planner = args[1]
				opts.TimeLimit = time.Duration(seconds * float64(time.Second))
			default:
				printUsage(cmd, "expected <problem> <planner> <timelimit>")
				return nil
			}

			return c.runSolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&atlasMode, "atlas", "a", false, "cover the manifold with tangent-plane charts")
	cmd.Flags().BoolVarP(&projMode, "projection", "p", false, "project ambient samples onto the manifold")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "random seed (equal seeds reproduce runs)")
	cmd.Flags().StringVarP(&outDir, "out", "o", pipeline.DefaultOutDir, "directory for output artifacts")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the solution cache")
	cmd.Flags().BoolVar(&graphOut, "graph", false, "also render the exploration graph to SVG via Graphviz")

	return cmd
}

// runSolve executes the planning pipeline and prints the result.
func (c *CLI) runSolve(ctx context.Context, cmd *cobra.Command, opts pipeline.Options) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var sp *Spinner
	var prog *progress
	if opts.Verbose {
		prog = newProgress(c.Logger)
	} else {
		sp = newSpinnerWithContext(ctx, fmt.Sprintf("Planning %s on %s (%s)...", opts.Planner, opts.Problem, opts.Mode))
		sp.Start()
	}

	result, err := runner.Execute(ctx, opts)
	if sp != nil {
		sp.Stop()
	}
	if prog != nil && err == nil {
		prog.done(fmt.Sprintf("Planned %s on %s", opts.Planner, opts.Problem))
	}
	if err != nil {
		if isConstructionError(err) {
			printUsage(cmd, errors.UserMessage(err))
			return nil
		}
		return err
	}

	printSolveResult(result, opts)
	return nil
}

// printSolveResult writes the planning outcome to stdout.
func printSolveResult(result *pipeline.Result, opts pipeline.Options) {
	sol := result.Solution

	if !sol.Status.Solved() {
		fmt.Println("No solution found.")
	} else {
		if sol.Status == planner.StatusApproximate {
			fmt.Println("Solution is approximate.")
		}
		fmt.Printf("Length: %g\n", result.Length)
	}
	fmt.Printf("Took %g seconds.\n", result.Stats.PlanTime.Seconds())

	if result.ChartCount > 0 {
		fmt.Printf("Atlas created %d charts.\n", result.ChartCount)
		if opts.Verbose && result.Problem.Constraint.AmbientDim() == 3 {
			fmt.Printf("%.2f%% open.\n", result.FrontierPercent)
		}
	}
	if sol.Status == planner.StatusApproximate {
		fmt.Printf("Approx goal distance: %g\n", sol.ApproxGoalDistance)
	}

	if opts.Verbose {
		if result.Data != nil {
			printStats(len(result.Data.Vertices), len(result.Data.Edges), result.CacheHit)
		}
		for _, path := range result.Artifacts {
			printFile(path)
		}
	}
}

// isConstructionError reports whether err means the run could not be set up,
// as opposed to failing mid-flight. Construction failures print usage and
// exit cleanly.
func isConstructionError(err error) bool {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidProblem,
		errors.ErrCodeInvalidPlanner,
		errors.ErrCodeInvalidTimeLimit,
		errors.ErrCodeInvalidMode,
		errors.ErrCodeProblemNotFound,
		errors.ErrCodeSpaceSetup,
		errors.ErrCodeProjectionFailed:
		return true
	}
	return false
}

// printUsage explains what went wrong, shows the command usage, and lists
// the available problems and planners.
func printUsage(cmd *cobra.Command, reason string) {
	if reason != "" {
		printWarning("%s", reason)
	}
	_ = cmd.Usage()
	fmt.Println()
	fmt.Println("Problems: " + strings.Join(problem.Names(), ", "))
	fmt.Println("Planners: " + strings.Join(planner.Names(), ", "))
}
