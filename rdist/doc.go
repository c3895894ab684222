// Package rdist computes dense pairwise Euclidean distance matrices between
// the rows of two point arrays ("rdist").
//
// 🚀 What is rdist?
//
//	Given A (n×d) and B (m×d), rdist returns the n×m matrix whose entry
//	[i,j] is the Euclidean distance between row i of A and row j of B.
//	It is the cost matrix consumed by the hungarian solver.
//
// ✨ Key features:
//   - one scalar kernel shared by every execution path
//   - serial mode, or parallel row blocks over a bounded pool (sched.Parallel)
//   - strict shape contract: differing column counts fail with matrix.ErrShape
//   - Flat: the same kernel over raw row-major buffers
//
// ⚙️ Usage:
//
//	d, err := rdist.Euclidean(a, b, rdist.WithMode(sched.Parallel))
//
// Performance:
//
//   - Time:   O(n·m·d)
//   - Memory: O(n·m)
package rdist
