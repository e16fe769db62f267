// Package problem defines the planning problems the CLI can solve.
//
// A Problem bundles a manifold constraint with start and goal states and an
// ambient-space validity checker. Built-in problems (sphere, circle, torus,
// klein, chain) are registered by name; parameterized variants of the same
// families can be loaded from TOML files with Load.
package problem
