package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chartwalk/chartwalk/pkg/cache"
	"github.com/chartwalk/chartwalk/pkg/errors"
	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/planner"
)

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "missing problem",
			opts:     Options{Planner: "rrt", TimeLimit: time.Second},
			wantCode: errors.ErrCodeInvalidProblem,
		},
		{
			name:     "missing planner",
			opts:     Options{Problem: "sphere", TimeLimit: time.Second},
			wantCode: errors.ErrCodeInvalidPlanner,
		},
		{
			name:     "zero time limit",
			opts:     Options{Problem: "sphere", Planner: "rrt"},
			wantCode: errors.ErrCodeInvalidTimeLimit,
		},
		{
			name:     "bad mode",
			opts:     Options{Problem: "sphere", Planner: "rrt", TimeLimit: time.Second, Mode: "chart"},
			wantCode: errors.ErrCodeInvalidMode,
		},
		{
			name:     "traversal in problem name",
			opts:     Options{Problem: "../secret.toml", Planner: "rrt", TimeLimit: time.Second},
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Problem: "sphere", Planner: "rrt", TimeLimit: time.Second}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Mode != ModeAtlas {
		t.Errorf("Mode = %v, want %v", opts.Mode, ModeAtlas)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", opts.OutDir, DefaultOutDir)
	}
	if opts.Logger == nil {
		t.Error("expected default logger")
	}
}

func TestLoadProblemUnknown(t *testing.T) {
	r := NewRunner(nil, nil)
	_, _, err := r.LoadProblem("doughnut")
	if err == nil {
		t.Fatal("expected error for unknown problem")
	}
	if !errors.Is(err, errors.ErrCodeProblemNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeProblemNotFound)
	}
}

func TestLoadProblemBuiltins(t *testing.T) {
	r := NewRunner(nil, nil)
	for _, name := range []string{"sphere", "circle", "torus", "klein", "chain"} {
		prob, fingerprint, err := r.LoadProblem(name)
		if err != nil {
			t.Errorf("LoadProblem(%q): %v", name, err)
			continue
		}
		if prob.Name != name {
			t.Errorf("Name = %q, want %q", prob.Name, name)
		}
		if fingerprint != name {
			t.Errorf("fingerprint = %q, want %q", fingerprint, name)
		}
	}
}

func TestLoadProblemFileFingerprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.toml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	r := NewRunner(nil, nil)

	write("family = \"sphere\"\nname = \"unit\"\nradius = 1.0\n")
	_, fp1, err := r.LoadProblem(path)
	if err != nil {
		t.Fatalf("LoadProblem: %v", err)
	}
	_, fp1Again, err := r.LoadProblem(path)
	if err != nil {
		t.Fatalf("LoadProblem (reload): %v", err)
	}
	if fp1 != fp1Again {
		t.Errorf("fingerprint changed across reloads: %q != %q", fp1, fp1Again)
	}

	write("family = \"sphere\"\nname = \"unit\"\nradius = 5.0\n")
	_, fp2, err := r.LoadProblem(path)
	if err != nil {
		t.Fatalf("LoadProblem (edited): %v", err)
	}
	if fp1 == fp2 {
		t.Error("fingerprint unchanged after editing problem parameters")
	}
}

// Editing a problem file's parameters must invalidate cached solutions:
// the old path lives on the old manifold.
func TestExecuteEditedProblemFileSkipsCache(t *testing.T) {
	if testing.Short() {
		t.Skip("planning runs in short mode")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "sphere.toml")
	write := func(radius string) {
		t.Helper()
		body := "family = \"sphere\"\nname = \"resized\"\nradius = " + radius + "\n"
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil)
	defer r.Close()

	opts := Options{
		Problem:   path,
		Planner:   "rrtconnect",
		TimeLimit: 10 * time.Second,
		Mode:      ModeAtlas,
		Seed:      1,
		OutDir:    dir,
	}

	write("1.0")
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	write("2.0")
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (edited file): %v", err)
	}
	if result.CacheHit {
		t.Fatal("replayed a cached solution for an edited problem file")
	}
	if result.Solution.Status.Solved() {
		end := result.Solution.Path[len(result.Solution.Path)-1]
		if got := end.Norm(); got < 1.5 {
			t.Errorf("path endpoint norm = %g, want on the radius-2 sphere", got)
		}
	}
}

func TestRunRecordRoundTrip(t *testing.T) {
	opts := Options{Problem: "sphere", Planner: "rrt", Mode: ModeAtlas, Seed: 7}
	sol := &planner.Solution{
		Status:     planner.StatusExact,
		Path:       []linalg.Vector{{1, 0, 0}, {0, 1, 0}},
		Iterations: 42,
	}
	original := &Result{
		Solution: sol,
		Data: &planner.Data{
			Vertices: []linalg.Vector{{1, 0, 0}, {0, 1, 0}},
			Edges:    [][2]int{{0, 1}},
		},
		ChartCount:      17,
		FrontierPercent: 25,
	}

	raw, err := encodeRunRecord(opts, original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	rec, err := decodeRunRecord(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	restored := &Result{}
	rec.apply(restored)
	gotSol, gotData := restored.Solution, restored.Data

	if restored.ChartCount != 17 || restored.FrontierPercent != 25 {
		t.Errorf("atlas stats = %d, %g; want 17, 25", restored.ChartCount, restored.FrontierPercent)
	}
	if gotSol.Status != sol.Status {
		t.Errorf("Status = %v, want %v", gotSol.Status, sol.Status)
	}
	if gotSol.Iterations != sol.Iterations {
		t.Errorf("Iterations = %d, want %d", gotSol.Iterations, sol.Iterations)
	}
	if len(gotSol.Path) != len(sol.Path) {
		t.Fatalf("path length = %d, want %d", len(gotSol.Path), len(sol.Path))
	}
	for i := range sol.Path {
		if !gotSol.Path[i].Equal(sol.Path[i], 0) {
			t.Errorf("path[%d] = %v, want %v", i, gotSol.Path[i], sol.Path[i])
		}
	}
	if len(gotData.Vertices) != 2 || len(gotData.Edges) != 1 {
		t.Errorf("graph = %d vertices %d edges, want 2 and 1", len(gotData.Vertices), len(gotData.Edges))
	}
}

func TestExecuteSphere(t *testing.T) {
	if testing.Short() {
		t.Skip("planning run in short mode")
	}

	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir + "/cache")
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil)
	defer r.Close()

	opts := Options{
		Problem:   "sphere",
		Planner:   "rrtconnect",
		TimeLimit: 10 * time.Second,
		Mode:      ModeAtlas,
		Seed:      1,
		Verbose:   true,
		OutDir:    dir,
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}
	if result.ChartCount == 0 {
		t.Error("expected atlas charts after planning")
	}
	if result.Solution.Status.Solved() {
		if result.Length <= 0 {
			t.Errorf("Length = %g, want > 0", result.Length)
		}
		path, ok := result.Artifacts[ArtifactAnim]
		if !ok {
			t.Fatal("expected anim artifact")
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("anim file: %v", err)
		}
	}

	if _, ok := result.Artifacts[ArtifactAtlas]; !ok {
		t.Error("expected atlas mesh on a verbose planning run")
	}

	// Second run with the same configuration should hit the cache. The
	// replayed run reports the recorded chart statistics, so it must not
	// dump the mesh of the barely-grown replay atlas alongside them.
	opts.OutDir = t.TempDir()
	again, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !again.CacheHit {
		t.Error("expected cache hit on identical configuration")
	}
	if again.Solution.Status != result.Solution.Status {
		t.Errorf("cached status = %v, want %v", again.Solution.Status, result.Solution.Status)
	}
	if again.ChartCount != result.ChartCount {
		t.Errorf("cached chart count = %d, want %d", again.ChartCount, result.ChartCount)
	}
	if _, ok := again.Artifacts[ArtifactAtlas]; ok {
		t.Error("cached run dumped an atlas mesh")
	}
	if _, err := os.Stat(filepath.Join(opts.OutDir, ArtifactAtlas)); !os.IsNotExist(err) {
		t.Errorf("stat %s: err = %v, want not-exist", ArtifactAtlas, err)
	}
}

func TestDensifyEmptyPath(t *testing.T) {
	dense, length := Densify(nil, nil)
	if dense != nil || length != 0 {
		t.Errorf("Densify(nil) = %v, %g; want nil, 0", dense, length)
	}
}
