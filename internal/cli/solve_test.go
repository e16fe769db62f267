package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/chartwalk/chartwalk/pkg/errors"
)

// execute runs the root command with args and returns the error.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	var buf bytes.Buffer
	c := New(&buf, log.FatalLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(&buf)
	return root.Execute()
}

func TestSolveMalformedArgsExitClean(t *testing.T) {
	// Malformed input prints usage and succeeds; only internal failures
	// should surface as errors.
	tests := []struct {
		name string
		args []string
	}{
		{name: "too few args", args: []string{"solve", "sphere", "rrt"}},
		{name: "missing mode flag", args: []string{"solve", "sphere", "rrt", "5"}},
		{name: "both mode flags", args: []string{"solve", "sphere", "rrt", "5", "-a", "-p"}},
		{name: "zero time limit", args: []string{"solve", "sphere", "rrt", "0", "-a"}},
		{name: "negative time limit", args: []string{"solve", "-a", "--", "sphere", "rrt", "-1"}},
		{name: "non-numeric time limit", args: []string{"solve", "sphere", "rrt", "fast", "-a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err != nil {
				t.Errorf("expected clean exit, got %v", err)
			}
		})
	}
}

func TestSolveUnknownInputsExitClean(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown problem", args: []string{"solve", "cube", "rrt", "1", "-a", "-o", t.TempDir()}},
		{name: "unknown planner", args: []string{"solve", "sphere", "dijkstra", "1", "-a", "-o", t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err != nil {
				t.Errorf("expected clean exit, got %v", err)
			}
		})
	}
}

func TestIsConstructionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown problem",
			err:  errors.New(errors.ErrCodeProblemNotFound, "unknown problem"),
			want: true,
		},
		{
			name: "projection failure",
			err:  errors.New(errors.ErrCodeProjectionFailed, "diverged"),
			want: true,
		},
		{
			name: "internal error",
			err:  errors.New(errors.ErrCodeInternal, "boom"),
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("", "no code"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConstructionError(tt.err); got != tt.want {
				t.Errorf("isConstructionError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if got != dir+"/"+appName {
		t.Errorf("cacheDir = %q, want %q", got, dir+"/"+appName)
	}
}
