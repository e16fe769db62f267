// Package manifold models implicitly constrained configuration spaces.
//
// A Constraint defines a lower-dimensional manifold as the zero set of a
// smooth function F over an ambient real vector space. The package provides
// Newton projection onto the zero set, finite-difference Jacobians for
// constraints without analytic derivatives, and the Space interface shared by
// the atlas and projection manifold representations in the subpackages.
//
// # Representations
//
// Two Space implementations exist:
//   - atlas.Space covers the manifold with local tangent-plane charts and
//     walks between states in chart coordinates.
//   - projected.Space interpolates in the ambient space and re-projects each
//     intermediate state.
//
// Planners in pkg/planner operate on the Space interface and are agnostic to
// the representation.
package manifold
