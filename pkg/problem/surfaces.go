package problem

import (
	"math"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
)

// sphereConstraint is the sphere ‖x‖² = r² in R³.
type sphereConstraint struct {
	radius float64
}

func (sphereConstraint) AmbientDim() int { return 3 }
func (sphereConstraint) CoDim() int      { return 1 }

func (c sphereConstraint) Eval(x linalg.Vector) linalg.Vector {
	return linalg.Vector{x.Dot(x) - c.radius*c.radius}
}

func (c sphereConstraint) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.Matrix{Rows: 1, Cols: 3, Data: []float64{2 * x[0], 2 * x[1], 2 * x[2]}}
}

func newSphere() *Problem {
	const r = 1.0
	c := sphereConstraint{radius: r}
	return &Problem{
		Name:        "sphere",
		Description: "point on a sphere, blocked equator band with a single gate",
		Constraint:  c,
		Start:       linalg.Vector{0, 0, r},
		Goal:        linalg.Vector{0, 0, -r},
		// An equatorial band blocks the direct route; only the gate on the
		// -x side lets paths through.
		Valid: func(x linalg.Vector) bool {
			return math.Abs(x[2]) >= 0.1*r || x[0] <= -0.8*r
		},
	}
}

// circleConstraint intersects the sphere ‖x‖² = r² with the plane
// x·n = 0, leaving a 1-manifold in R³.
type circleConstraint struct {
	radius float64
	normal linalg.Vector
}

func (circleConstraint) AmbientDim() int { return 3 }
func (circleConstraint) CoDim() int      { return 2 }

func (c circleConstraint) Eval(x linalg.Vector) linalg.Vector {
	return linalg.Vector{x.Dot(x) - c.radius*c.radius, x.Dot(c.normal)}
}

func (c circleConstraint) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.Matrix{Rows: 2, Cols: 3, Data: []float64{
		2 * x[0], 2 * x[1], 2 * x[2],
		c.normal[0], c.normal[1], c.normal[2],
	}}
}

func newCircle() *Problem {
	c := circleConstraint{radius: 1, normal: linalg.Vector{0, 0, 1}}
	return &Problem{
		Name:        "circle",
		Description: "codimension-2 great circle, one arc blocked",
		Constraint:  c,
		Start:       linalg.Vector{1, 0, 0},
		Goal:        linalg.Vector{-1, 0, 0},
		// Block the +y semicircle's crown so only one way around works.
		Valid: func(x linalg.Vector) bool { return x[1] < 0.75 },
	}
}

// torusConstraint is the torus ((‖x_xy‖ - R)² + z² = r²) in R³.
type torusConstraint struct {
	major, minor float64
}

func (torusConstraint) AmbientDim() int { return 3 }
func (torusConstraint) CoDim() int      { return 1 }

func (c torusConstraint) Eval(x linalg.Vector) linalg.Vector {
	s := math.Hypot(x[0], x[1])
	d := s - c.major
	return linalg.Vector{d*d + x[2]*x[2] - c.minor*c.minor}
}

func (c torusConstraint) Jacobian(x linalg.Vector) linalg.Matrix {
	s := math.Hypot(x[0], x[1])
	if s == 0 {
		// Degenerate axis point; the numeric fallback keeps projection from
		// dividing by zero.
		return manifold.NumericJacobian(c, x)
	}
	f := 2 * (s - c.major) / s
	return linalg.Matrix{Rows: 1, Cols: 3, Data: []float64{f * x[0], f * x[1], 2 * x[2]}}
}

func newTorus() *Problem {
	c := torusConstraint{major: 2, minor: 1}
	return &Problem{
		Name:        "torus",
		Description: "torus surface, top cap blocked on the start side",
		Constraint:  c,
		Start:       linalg.Vector{3, 0, 0},
		Goal:        linalg.Vector{-3, 0, 0},
		Valid: func(x linalg.Vector) bool {
			return x[2] < 0.8 || x[0] < 0
		},
	}
}

// kleinConstraint is the figure-eight-free implicit Klein bottle immersion
//
//	(x²+y²+z²+2y-1)((x²+y²+z²-2y-1)² - 8z²) + 16xz(x²+y²+z²-2y-1) = 0.
//
// The gradient is unpleasant to expand by hand, so the Jacobian is numeric.
type kleinConstraint struct{}

func (kleinConstraint) AmbientDim() int { return 3 }
func (kleinConstraint) CoDim() int      { return 1 }

func (kleinConstraint) Eval(x linalg.Vector) linalg.Vector {
	q := x.Dot(x)
	a := q + 2*x[1] - 1
	b := q - 2*x[1] - 1
	return linalg.Vector{a*(b*b-8*x[2]*x[2]) + 16*x[0]*x[2]*b}
}

func (c kleinConstraint) Jacobian(x linalg.Vector) linalg.Matrix {
	return manifold.NumericJacobian(c, x)
}

func newKlein() *Problem {
	// Both states satisfy the implicit equation exactly: on the z = 0, x = 0
	// slice the surface passes through y² ± 2y - 1 = 0.
	return &Problem{
		Name:        "klein",
		Description: "Klein bottle immersion, numeric Jacobian",
		Constraint:  kleinConstraint{},
		Start:       linalg.Vector{0, math.Sqrt2 - 1, 0},
		Goal:        linalg.Vector{0, math.Sqrt2 + 1, 0},
	}
}
