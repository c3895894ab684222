// Package emd computes the exact Earth Mover's Distance between point sets.
//
// 🚀 What is EMD here?
//
//	For two arrays A (n×d) and B (m×d) whose rows are points, EMD(A, B) is the
//	cost of the cheapest matching of the rows of the smaller array to distinct
//	rows of the larger one, where matching row i to row j costs their
//	Euclidean distance. It is rdist followed by the hungarian solver; no
//	approximation, no entropic regularization.
//
// ✨ Key features:
//   - Distance / Plan for one pair of arrays
//   - Bulk / BulkContext: one query against every reference of a matrix.Stack,
//     serial or one parallel unit per reference (sched.Parallel)
//   - validation before any work; a failing reference fails the whole batch
//   - Prometheus counters and zap debug summaries for every batch
//
// ⚙️ Usage:
//
//	d, err := emd.Distance(a, b)
//	ds, err := emd.Bulk(query, markers, emd.WithMode(sched.Parallel))
//
// Inside a Bulk unit the distance matrix is always computed serially, so
// exactly one axis (the references) is parallel.
package emd
