package manifold

import (
	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// Constraint defines a manifold implicitly as the zero set of a smooth
// function F: R^n -> R^k with k < n. Points x with Eval(x) ≈ 0 lie on the
// manifold; the manifold dimension is AmbientDim() - CoDim().
type Constraint interface {
	// AmbientDim returns n, the dimension of the ambient space.
	AmbientDim() int

	// CoDim returns k, the number of constraint equations.
	CoDim() int

	// Eval returns F(x), a vector of CoDim residuals.
	Eval(x linalg.Vector) linalg.Vector

	// Jacobian returns the CoDim x AmbientDim matrix of partial derivatives
	// of F at x.
	Jacobian(x linalg.Vector) linalg.Matrix
}

// ValidityChecker reports whether a state is collision-free. Checkers see
// ambient coordinates; they are evaluated on states that are already on (or
// numerically near) the manifold.
type ValidityChecker func(x linalg.Vector) bool

// ManifoldDim returns the intrinsic dimension of the manifold defined by c.
func ManifoldDim(c Constraint) int { return c.AmbientDim() - c.CoDim() }

// fdStep is the central-difference step for numeric Jacobians.
const fdStep = 1e-6

// NumericJacobian approximates the Jacobian of c at x by central differences.
// Constraints with analytic derivatives should implement Jacobian directly;
// this helper exists for surfaces like the Klein bottle whose implicit form
// is unpleasant to differentiate by hand.
func NumericJacobian(c Constraint, x linalg.Vector) linalg.Matrix {
	n := c.AmbientDim()
	k := c.CoDim()
	jac := linalg.NewMatrix(k, n)

	xp := x.Clone()
	for j := 0; j < n; j++ {
		orig := xp[j]
		xp[j] = orig + fdStep
		hi := c.Eval(xp)
		xp[j] = orig - fdStep
		lo := c.Eval(xp)
		xp[j] = orig

		for i := 0; i < k; i++ {
			jac.Set(i, j, (hi[i]-lo[i])/(2*fdStep))
		}
	}
	return jac
}

// TangentBasis returns an orthonormal basis of the tangent space of the
// manifold at x, as the columns of an n x (n-k) matrix. The basis is the
// kernel of the constraint Jacobian.
func TangentBasis(c Constraint, x linalg.Vector) (linalg.Matrix, error) {
	return linalg.KernelBasis(c.Jacobian(x))
}
