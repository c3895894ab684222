// Package topk selects the k best (smallest) scores of a batch.
//
// Select and Rank order scores ascending with ties broken by ascending index,
// so the output is deterministic for any input; NaN scores always sort last.
// WithTolerance narrows the result to the scores within t of the minimum.
//
// Match is the scalar variant used for value matching: for each left value it
// lists the right values within a tolerance, nearest first.
package topk
