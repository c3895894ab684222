// Package pillars ranks fixed-shape numeric feature arrays by exact Earth
// Mover's Distance.
//
// 🚀 What is pillars?
//
//	A small numeric engine that answers "which reference arrays are closest
//	to this one" with an exact optimal-transport distance:
//		• rdist     — pairwise Euclidean distance matrix between two arrays' rows
//		• hungarian — minimum-cost bipartite assignment (Kuhn–Munkres)
//		• emd       — EMD between two arrays, or one against a whole stack
//		• topk      — stable k-smallest selection with an optional tolerance
//		• classify  — top-k markers for one query or a batch of queries
//		• pixelwise — lane-by-lane tolerance matching of value cubes
//
// ✨ Why pillars?
//
//   - Exact – no sampling, no entropic smoothing
//   - Deterministic – same input, same answer, serial or parallel
//   - Bounded concurrency – exactly one parallel axis per call, sized by workers
//   - Strict errors – shape and argument problems surface before any work
//
// Packages:
//
//	matrix/   — Dense (2-D), Stack (3-D), Tensor, error taxonomy, validators
//	sched/    — Serial/Parallel execution and the ordered parallel map
//	config/   — PILLARS_* environment configuration
//	cmd/      — the pillars CLI
//
// EMD in this package is the rank-dispatching entry point: it accepts any
// matrix.Array and routes 2-D/2-D pairs to emd.Distance and 2-D/3-D pairs to
// a parallel emd.Bulk.
//
//	go get github.com/katalvlaran/pillars
package pillars
