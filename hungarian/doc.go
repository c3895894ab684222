// Package hungarian solves the rectangular linear assignment problem
// (minimum-cost bipartite matching) with the Kuhn–Munkres algorithm.
//
// 🚀 What is it?
//
//	Given a p×q cost matrix, pick one column per row, no column twice, so that
//	the summed cost is minimal. In this module the costs are Euclidean
//	distances between two point sets and the optimum is their Earth Mover's
//	Distance.
//
// ✨ Key features:
//   - exact optimum via row/column potentials and shortest augmenting paths
//   - O(p²q) for p ≤ q; p > q handled by solving the transpose
//   - all state in a per-call solver; safe for concurrent use
//   - strict numeric policy: NaN/±Inf costs fail with matrix.ErrNaNInf
//
// ⚙️ Usage:
//
//	a, err := hungarian.Solve(cost)
//	for _, p := range a.Pairs { ... p.Row, p.Col ... }
//	total := a.Cost
//
// Ties between equally cheap matchings are broken deterministically but the
// particular matching is not part of the contract; the cost is.
package hungarian
