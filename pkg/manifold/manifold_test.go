package manifold

import (
	"math"
	"testing"

	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// testSphere is the unit sphere in R^3, defined analytically so tests can
// compare the numeric Jacobian against the exact one.
type testSphere struct{}

func (testSphere) AmbientDim() int { return 3 }
func (testSphere) CoDim() int      { return 1 }

func (testSphere) Eval(x linalg.Vector) linalg.Vector {
	return linalg.Vector{x.Dot(x) - 1}
}

func (testSphere) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.Matrix{Rows: 1, Cols: 3, Data: []float64{2 * x[0], 2 * x[1], 2 * x[2]}}
}

func TestProjectOntoSphere(t *testing.T) {
	tests := []struct {
		name string
		x    linalg.Vector
	}{
		{"outside", linalg.Vector{3, 0, 0}},
		{"inside", linalg.Vector{0.1, 0.1, 0.1}},
		{"off axis", linalg.Vector{1, 2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Project(testSphere{}, tt.x, DefaultProjection)
			if err != nil {
				t.Fatalf("Project: %v", err)
			}
			if r := got.Norm(); math.Abs(r-1) > 1e-7 {
				t.Errorf("projected radius = %v, want 1", r)
			}
		})
	}
}

func TestProjectAlreadyOnManifold(t *testing.T) {
	x := linalg.Vector{0, 0, 1}
	got, err := Project(testSphere{}, x, DefaultProjection)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !got.Equal(x, 1e-9) {
		t.Errorf("Project moved an on-manifold point: %v", got)
	}
}

func TestProjectDiverges(t *testing.T) {
	// The sphere's Jacobian vanishes at the origin, so projection from there
	// has no well-defined direction.
	if _, err := Project(testSphere{}, linalg.Vector{0, 0, 0}, DefaultProjection); err == nil {
		t.Error("Project from the origin should fail")
	}
}

func TestNumericJacobianMatchesAnalytic(t *testing.T) {
	x := linalg.Vector{0.3, -0.8, 0.52}
	want := testSphere{}.Jacobian(x)
	got := NumericJacobian(testSphere{}, x)

	for j := 0; j < 3; j++ {
		if math.Abs(got.At(0, j)-want.At(0, j)) > 1e-5 {
			t.Errorf("d/dx%d = %v, want %v", j, got.At(0, j), want.At(0, j))
		}
	}
}

func TestTangentBasisOrthogonalToGradient(t *testing.T) {
	x := linalg.Vector{0, 0, 1}
	basis, err := TangentBasis(testSphere{}, x)
	if err != nil {
		t.Fatalf("TangentBasis: %v", err)
	}
	if basis.Cols != ManifoldDim(testSphere{}) {
		t.Fatalf("basis has %d columns, want %d", basis.Cols, ManifoldDim(testSphere{}))
	}

	grad := testSphere{}.Jacobian(x).Row(0)
	for c := 0; c < basis.Cols; c++ {
		if d := math.Abs(grad.Dot(basis.Col(c))); d > 1e-9 {
			t.Errorf("tangent column %d not orthogonal to gradient: %v", c, d)
		}
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Low: -10, High: 10}
	if !b.Contains(linalg.Vector{0, 9.99, -10}) {
		t.Error("in-bounds point rejected")
	}
	if b.Contains(linalg.Vector{0, 10.01, 0}) {
		t.Error("out-of-bounds point accepted")
	}
}
