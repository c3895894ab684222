// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures for array constructors.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/pillars/matrix"
)

// MustDense builds a *Dense from rows or fails the test (fatal on error).
// Prefer MustDense when subsequent steps assume a non-nil Dense.
func MustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseRows(rows)
	if err != nil {
		t.Fatalf("MustDense: %v", err)
	}

	return m
}

// MustStack builds a *Stack from items or fails the test.
func MustStack(t testing.TB, items ...*matrix.Dense) *matrix.Stack {
	t.Helper()
	s, err := matrix.StackOf(items...)
	if err != nil {
		t.Fatalf("MustStack: %v", err)
	}

	return s
}
