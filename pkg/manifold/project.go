package manifold

import (
	"errors"

	"github.com/chartwalk/chartwalk/pkg/linalg"
)

var (
	// ErrProjectionDiverged is returned by Project when Newton iteration
	// fails to reach the residual tolerance within the iteration budget.
	ErrProjectionDiverged = errors.New("projection did not converge")
)

// ProjectionParams tunes the Newton projection onto the constraint zero set.
type ProjectionParams struct {
	// Tolerance is the residual norm below which a point counts as
	// on-manifold.
	Tolerance float64

	// MaxIterations caps the Newton steps before giving up.
	MaxIterations int
}

// DefaultProjection matches the tolerances the planning spaces use.
var DefaultProjection = ProjectionParams{
	Tolerance:     1e-8,
	MaxIterations: 50,
}

// Project returns the nearest-by-Newton point to x on the manifold of c.
// Each step solves J Jᵀ y = F(x) and moves x by -Jᵀ y, the minimum-norm
// update that cancels the current residual to first order.
//
// x is not modified. Returns ErrProjectionDiverged when the residual fails to
// reach p.Tolerance, or a linalg error when the Jacobian loses rank.
func Project(c Constraint, x linalg.Vector, p ProjectionParams) (linalg.Vector, error) {
	if p.MaxIterations <= 0 {
		p = DefaultProjection
	}

	cur := x.Clone()
	for iter := 0; iter < p.MaxIterations; iter++ {
		f := c.Eval(cur)
		if f.Norm() <= p.Tolerance {
			return cur, nil
		}

		jac := c.Jacobian(cur)
		y, err := linalg.Solve(jac.MulTrans(), f)
		if err != nil {
			return nil, err
		}
		cur.AddScaled(-1, jac.TransMulVec(y))
	}

	if c.Eval(cur).Norm() <= p.Tolerance {
		return cur, nil
	}
	return nil, ErrProjectionDiverged
}

// OnManifold reports whether x satisfies the constraint within tol.
func OnManifold(c Constraint, x linalg.Vector, tol float64) bool {
	return c.Eval(x).Norm() <= tol
}
