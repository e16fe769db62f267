// Package linalg provides the small dense linear algebra kernel used by the
// constraint and planning packages.
//
// The package deliberately implements only what manifold-constrained planning
// needs: vector arithmetic, matrix-vector products, Gram-Schmidt
// orthonormalization, tangent-space (kernel) basis construction, and small
// positive-definite solves for Newton projection steps. Dimensions are tiny
// (ambient spaces of 3-12 doubles), so everything is plain slices with no
// blocking or pivoting tricks.
package linalg
