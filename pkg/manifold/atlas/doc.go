// Package atlas implements the chart-based manifold representation.
//
// The manifold is covered incrementally by charts: local tangent-plane
// linearizations anchored at on-manifold points. Each chart is valid inside a
// ball of radius rho in its own coordinates, bounded further by separating
// halfplanes against neighboring charts. Walking between states happens in
// chart coordinates with a fixed step delta; when a step violates the chart's
// epsilon (lift error) or alpha (tangent deviation) bounds, or leaves the rho
// ball, a new chart is spawned at the current point and the walk continues
// there.
//
// For 2-manifolds embedded in R^3 the chart polytopes form a polygonal mesh
// of the explored region, which Space.Polygons exposes for PLY dumps.
package atlas
