package linalg

import (
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	v := Vector{1, 2, 3}
	w := Vector{4, -1, 0.5}

	if got := v.Dot(w); got != 3.5 {
		t.Errorf("Dot = %v, want 3.5", got)
	}
	if got := v.Add(w); !got.Equal(Vector{5, 1, 3.5}, 1e-12) {
		t.Errorf("Add = %v", got)
	}
	if got := v.Sub(w); !got.Equal(Vector{-3, 3, 2.5}, 1e-12) {
		t.Errorf("Sub = %v", got)
	}
	if got := v.Scale(2); !got.Equal(Vector{2, 4, 6}, 1e-12) {
		t.Errorf("Scale = %v", got)
	}
	if got := (Vector{3, 4}).Norm(); got != 5 {
		t.Errorf("Norm = %v, want 5", got)
	}
}

func TestVectorLerp(t *testing.T) {
	a := Vector{0, 0}
	b := Vector{2, 4}
	if got := a.Lerp(b, 0.5); !got.Equal(Vector{1, 2}, 1e-12) {
		t.Errorf("Lerp = %v, want [1 2]", got)
	}
	if got := a.Lerp(b, 0); !got.Equal(a, 0) {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); !got.Equal(b, 0) {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
}

func TestVectorString(t *testing.T) {
	if got := (Vector{1, -0.5, 3e-9}).String(); got != "1 -0.5 3e-09" {
		t.Errorf("String = %q", got)
	}
}

func TestMatrixMulVec(t *testing.T) {
	m := NewMatrix(2, 3)
	copy(m.Data, []float64{1, 0, 2, 0, 1, -1})
	v := Vector{3, 4, 5}

	if got := m.MulVec(v); !got.Equal(Vector{13, -1}, 1e-12) {
		t.Errorf("MulVec = %v, want [13 -1]", got)
	}
	if got := m.TransMulVec(Vector{2, 3}); !got.Equal(Vector{2, 3, 1}, 1e-12) {
		t.Errorf("TransMulVec = %v, want [2 3 1]", got)
	}
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name string
		m    []float64
		b    Vector
		want Vector
	}{
		{"identity", []float64{1, 0, 0, 1}, Vector{3, 7}, Vector{3, 7}},
		{"needs pivot", []float64{0, 1, 1, 0}, Vector{2, 5}, Vector{5, 2}},
		{"general", []float64{2, 1, 1, 3}, Vector{5, 10}, Vector{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Matrix{Rows: 2, Cols: 2, Data: tt.m}
			got, err := Solve(m, tt.b)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if !got.Equal(tt.want, 1e-10) {
				t.Errorf("Solve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolveSingular(t *testing.T) {
	m := Matrix{Rows: 2, Cols: 2, Data: []float64{1, 2, 2, 4}}
	if _, err := Solve(m, Vector{1, 2}); err != ErrSingular {
		t.Errorf("Solve singular err = %v, want ErrSingular", err)
	}
}

func TestKernelBasis(t *testing.T) {
	// Gradient of the unit sphere constraint at the north pole: rows span the
	// z axis, so the kernel must span the xy plane.
	j := Matrix{Rows: 1, Cols: 3, Data: []float64{0, 0, 2}}

	basis, err := KernelBasis(j)
	if err != nil {
		t.Fatalf("KernelBasis: %v", err)
	}
	if basis.Rows != 3 || basis.Cols != 2 {
		t.Fatalf("basis is %dx%d, want 3x2", basis.Rows, basis.Cols)
	}

	for c := 0; c < basis.Cols; c++ {
		col := basis.Col(c)
		if math.Abs(col.Norm()-1) > 1e-10 {
			t.Errorf("column %d norm = %v, want 1", c, col.Norm())
		}
		if math.Abs(col[2]) > 1e-10 {
			t.Errorf("column %d has z component %v, want 0", c, col[2])
		}
	}
	if got := basis.Col(0).Dot(basis.Col(1)); math.Abs(got) > 1e-10 {
		t.Errorf("columns not orthogonal: dot = %v", got)
	}
}

func TestKernelBasisDegenerate(t *testing.T) {
	// Dependent rows have no full-rank tangent space.
	j := Matrix{Rows: 2, Cols: 3, Data: []float64{1, 0, 0, 2, 0, 0}}
	if _, err := KernelBasis(j); err != ErrDegenerateBasis {
		t.Errorf("KernelBasis err = %v, want ErrDegenerateBasis", err)
	}
}
