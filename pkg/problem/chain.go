package problem

import (
	"fmt"

	"github.com/chartwalk/chartwalk/pkg/linalg"
)

// chainConstraint models a kinematic chain of ball joints in R³. The state
// vector concatenates the joint positions p₁..pₙ; each constraint fixes one
// link length: ‖p₁‖ = l and ‖pᵢ₊₁ - pᵢ‖ = l.
type chainConstraint struct {
	links  int
	length float64
}

func (c chainConstraint) AmbientDim() int { return 3 * c.links }
func (c chainConstraint) CoDim() int      { return c.links }

// joint returns joint i (0-based) as a view into the state vector.
func (c chainConstraint) joint(x linalg.Vector, i int) linalg.Vector {
	return x[3*i : 3*i+3]
}

func (c chainConstraint) Eval(x linalg.Vector) linalg.Vector {
	out := linalg.NewVector(c.links)
	l2 := c.length * c.length

	prev := linalg.Vector{0, 0, 0}
	for i := 0; i < c.links; i++ {
		d := c.joint(x, i).Sub(prev)
		out[i] = d.Dot(d) - l2
		prev = c.joint(x, i)
	}
	return out
}

func (c chainConstraint) Jacobian(x linalg.Vector) linalg.Matrix {
	jac := linalg.NewMatrix(c.links, 3*c.links)

	prev := linalg.Vector{0, 0, 0}
	for i := 0; i < c.links; i++ {
		d := c.joint(x, i).Sub(prev)
		for k := 0; k < 3; k++ {
			jac.Set(i, 3*i+k, 2*d[k])
			if i > 0 {
				jac.Set(i, 3*(i-1)+k, -2*d[k])
			}
		}
		prev = c.joint(x, i)
	}
	return jac
}

// chainPose returns the state of a chain extended along the given unit
// direction.
func chainPose(links int, length float64, dir linalg.Vector) linalg.Vector {
	x := linalg.NewVector(3 * links)
	for i := 0; i < links; i++ {
		for k := 0; k < 3; k++ {
			x[3*i+k] = dir[k] * length * float64(i+1)
		}
	}
	return x
}

func newChain() *Problem {
	return newChainSized(4, 1)
}

// newChainSized builds a chain problem with the given link count and length.
// The TOML loader uses it for parameterized instances.
func newChainSized(links int, length float64) *Problem {
	c := chainConstraint{links: links, length: length}

	// Joints must keep clear of a ball around the chain anchor. The first
	// joint orbits at the full link length, so only the later joints are
	// actually restricted.
	clearance := 0.75 * length
	return &Problem{
		Name:        "chain",
		Description: fmt.Sprintf("%d-link ball-joint chain folding around an anchor obstacle", links),
		Constraint:  c,
		Start:       chainPose(links, length, linalg.Vector{1, 0, 0}),
		Goal:        chainPose(links, length, linalg.Vector{-1, 0, 0}),
		Valid: func(x linalg.Vector) bool {
			for i := 0; i < c.links; i++ {
				if c.joint(x, i).Norm() < clearance {
					return false
				}
			}
			return true
		},
	}
}
