package pipeline

import (
	"os"
	"path/filepath"

	"github.com/chartwalk/chartwalk/pkg/dump"
	"github.com/chartwalk/chartwalk/pkg/errors"
	"github.com/chartwalk/chartwalk/pkg/manifold/atlas"
	"github.com/chartwalk/chartwalk/pkg/viz"
)

// Artifact names. Values in Result.Artifacts are the written file paths.
const (
	ArtifactAnim  = "anim.txt"
	ArtifactPath  = "path.ply"
	ArtifactGraph = "graph.ply"
	ArtifactAtlas = "atlas.ply"
	ArtifactDOT   = "graph.dot"
	ArtifactSVG   = "graph.svg"
)

// WriteArtifacts writes the run's output files into opts.OutDir and records
// their paths in result.Artifacts.
//
// The animation dump is always written when a path exists. The PLY dumps are
// verbose-only and restricted to 3-dimensional ambient spaces, which is the
// only case the viewer can display.
func (r *Runner) WriteArtifacts(result *Result, opts Options) error {
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "creating output directory %s", opts.OutDir)
	}

	solved := result.Solution != nil && result.Solution.Status.Solved()
	dim := result.Problem.Constraint.AmbientDim()

	if solved {
		path := filepath.Join(opts.OutDir, ArtifactAnim)
		if err := dump.WriteAnimFile(result.Dense, path); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", ArtifactAnim)
		}
		result.Artifacts[ArtifactAnim] = path
	}

	if !opts.Verbose {
		return nil
	}

	if solved && dim == 3 {
		path := filepath.Join(opts.OutDir, ArtifactPath)
		if err := dump.WritePathFile(result.Dense, path); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", ArtifactPath)
		}
		result.Artifacts[ArtifactPath] = path
	}

	if result.Data != nil && dim == 3 {
		path := filepath.Join(opts.OutDir, ArtifactGraph)
		if err := dump.WriteGraphFile(result.Data, path); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", ArtifactGraph)
		}
		result.Artifacts[ArtifactGraph] = path
	}

	// On a cache hit the atlas was never grown by the planner, only by path
	// re-traversal, so a mesh dump would contradict the replayed chart
	// statistics. Skip it.
	if a, ok := result.Space.(*atlas.Space); ok && dim == 3 && !result.CacheHit {
		path := filepath.Join(opts.OutDir, ArtifactAtlas)
		if err := dump.WriteMeshFile(a.Polygons(), path); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", ArtifactAtlas)
		}
		result.Artifacts[ArtifactAtlas] = path
	}

	if opts.Graph && result.Data != nil {
		dot := viz.ToDOT(result.Data)
		dotPath := filepath.Join(opts.OutDir, ArtifactDOT)
		if err := os.WriteFile(dotPath, []byte(dot), 0644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", ArtifactDOT)
		}
		result.Artifacts[ArtifactDOT] = dotPath

		svg, err := viz.RenderSVG(dot)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "rendering exploration graph")
		}
		path := filepath.Join(opts.OutDir, ArtifactSVG)
		if err := os.WriteFile(path, svg, 0644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", ArtifactSVG)
		}
		result.Artifacts[ArtifactSVG] = path
	}

	return nil
}
