package linalg

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrSingular is returned by Solve when the system matrix is singular
	// (or numerically indistinguishable from singular).
	ErrSingular = errors.New("singular matrix")

	// ErrDegenerateBasis is returned by KernelBasis when the input rows are
	// linearly dependent, so no well-defined tangent space exists.
	ErrDegenerateBasis = errors.New("degenerate basis")
)

// Matrix is a dense row-major matrix.
// The zero value is unusable; create instances with NewMatrix.
type Matrix struct {
	Rows, Cols int
	Data       []float64
}

// NewMatrix returns a zero rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

// Set assigns the element at row i, column j.
func (m Matrix) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// Row returns row i as a vector view sharing the matrix storage.
func (m Matrix) Row(i int) Vector { return Vector(m.Data[i*m.Cols : (i+1)*m.Cols]) }

// Col returns column j as a freshly allocated vector.
func (m Matrix) Col(j int) Vector {
	out := make(Vector, m.Rows)
	for i := range out {
		out[i] = m.At(i, j)
	}
	return out
}

// MulVec returns m*v.
// Panics if len(v) != m.Cols.
func (m Matrix) MulVec(v Vector) Vector {
	if len(v) != m.Cols {
		panic(fmt.Sprintf("linalg: mulvec %dx%d by length %d", m.Rows, m.Cols, len(v)))
	}
	out := make(Vector, m.Rows)
	for i := 0; i < m.Rows; i++ {
		out[i] = m.Row(i).Dot(v)
	}
	return out
}

// TransMulVec returns mᵀ*v.
// Panics if len(v) != m.Rows.
func (m Matrix) TransMulVec(v Vector) Vector {
	if len(v) != m.Rows {
		panic(fmt.Sprintf("linalg: transmulvec %dx%d by length %d", m.Rows, m.Cols, len(v)))
	}
	out := make(Vector, m.Cols)
	for i := 0; i < m.Rows; i++ {
		out.AddScaled(v[i], m.Row(i))
	}
	return out
}

// MulTrans returns m*mᵀ, the small Gram matrix used in Newton projection.
func (m Matrix) MulTrans() Matrix {
	out := NewMatrix(m.Rows, m.Rows)
	for i := 0; i < m.Rows; i++ {
		ri := m.Row(i)
		for j := i; j < m.Rows; j++ {
			v := ri.Dot(m.Row(j))
			out.Set(i, j, v)
			out.Set(j, i, v)
		}
	}
	return out
}

// Solve solves the square system m*x = b by Gaussian elimination with
// partial pivoting. m and b are left unmodified.
// Returns ErrSingular when a pivot falls below the numerical floor.
func Solve(m Matrix, b Vector) (Vector, error) {
	n := m.Rows
	if m.Cols != n || len(b) != n {
		panic(fmt.Sprintf("linalg: solve %dx%d with rhs length %d", m.Rows, m.Cols, len(b)))
	}

	a := NewMatrix(n, n)
	copy(a.Data, m.Data)
	x := b.Clone()

	for col := 0; col < n; col++ {
		// Partial pivot.
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a.At(r, col)) > math.Abs(a.At(pivot, col)) {
				pivot = r
			}
		}
		if math.Abs(a.At(pivot, col)) < 1e-13 {
			return nil, ErrSingular
		}
		if pivot != col {
			for j := 0; j < n; j++ {
				tmp := a.At(col, j)
				a.Set(col, j, a.At(pivot, j))
				a.Set(pivot, j, tmp)
			}
			x[col], x[pivot] = x[pivot], x[col]
		}

		for r := col + 1; r < n; r++ {
			f := a.At(r, col) / a.At(col, col)
			if f == 0 {
				continue
			}
			for j := col; j < n; j++ {
				a.Set(r, j, a.At(r, j)-f*a.At(col, j))
			}
			x[r] -= f * x[col]
		}
	}

	// Back substitution.
	for i := n - 1; i >= 0; i-- {
		s := x[i]
		for j := i + 1; j < n; j++ {
			s -= a.At(i, j) * x[j]
		}
		x[i] = s / a.At(i, i)
	}
	return x, nil
}

// KernelBasis returns an orthonormal basis of the kernel of m as the columns
// of an m.Cols x (m.Cols - m.Rows) matrix. The rows of m are expected to be
// linearly independent (a constraint Jacobian of full rank); otherwise
// ErrDegenerateBasis is returned.
//
// The basis is built by orthonormalizing the rows of m and completing them to
// a full basis with standard basis vectors via modified Gram-Schmidt. The
// completion vectors, which are orthogonal to every row of m, span the kernel.
func KernelBasis(m Matrix) (Matrix, error) {
	n := m.Cols
	k := n - m.Rows
	if k <= 0 {
		return Matrix{}, ErrDegenerateBasis
	}

	ortho := make([]Vector, 0, n)
	for i := 0; i < m.Rows; i++ {
		v := orthogonalize(m.Row(i).Clone(), ortho)
		if v == nil {
			return Matrix{}, ErrDegenerateBasis
		}
		ortho = append(ortho, v)
	}

	kernel := make([]Vector, 0, k)
	for e := 0; e < n && len(kernel) < k; e++ {
		cand := NewVector(n)
		cand[e] = 1
		v := orthogonalize(cand, ortho)
		if v == nil {
			continue
		}
		ortho = append(ortho, v)
		kernel = append(kernel, v)
	}
	if len(kernel) != k {
		return Matrix{}, ErrDegenerateBasis
	}

	basis := NewMatrix(n, k)
	for j, v := range kernel {
		for i := 0; i < n; i++ {
			basis.Set(i, j, v[i])
		}
	}
	return basis, nil
}

// orthogonalize removes the components of v along each vector in basis and
// normalizes the remainder. Returns nil when v is (numerically) in the span
// of basis.
func orthogonalize(v Vector, basis []Vector) Vector {
	for _, b := range basis {
		v.AddScaled(-v.Dot(b), b)
	}
	if v.Norm() < 1e-9 {
		return nil
	}
	return v.Normalize()
}
