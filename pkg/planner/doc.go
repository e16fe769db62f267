// Package planner implements sampling-based planners over manifold spaces.
//
// Planners grow trees or roadmaps of on-manifold states, extending between
// states with the space's Traverse walk and validating every intermediate
// state against the problem's validity checker. Four planners are
// registered: rrt, rrtconnect, rrtstar, and prm. All of them are
// deterministic for a fixed seed and honor context cancellation, which is how
// the CLI enforces the wall-clock budget.
//
// A solve has three outcomes: an exact solution reaching the goal, an
// approximate solution ending at the tree state closest to the goal, or no
// solution when the search never progressed beyond the start.
package planner
