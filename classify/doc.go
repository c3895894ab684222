// Package classify ranks a library of reference arrays ("markers") against
// one query or a batch of queries by exact EMD.
//
// Closest answers "which k markers are nearest to this query"; ClosestBulk
// answers it for every query of a stack. Exactly one axis runs in parallel:
// the references for a single query, the queries for a batch. Results are
// reference indices, nearest first, ties by index.
package classify
