// SPDX-License-Identifier: MIT

// Package matrix provides the array types shared by every pillars kernel.
//
// 🚀 What lives here?
//
//   - Dense  — a row-major (n, d) point array: n points (rows) in d features (columns).
//   - Stack  — a contiguous (r, n, d) batch of uniform point arrays ("markers" or queries).
//   - Tensor — an arbitrary-rank staging container for external readers.
//   - The error taxonomy (ErrShape, ErrInvalidArgument, ErrUnsupportedInput, …).
//   - Validators that every kernel runs before touching data.
//
// ✨ Guarantees:
//   - Safe public surface: At/Set/Item return sentinel errors, never panic.
//   - Numeric policy: NaN/±Inf rejected on ingestion by default (WithNoValidateNaNInf relaxes).
//   - Borrowing: Row and Item hand out views; kernels read them and allocate fresh outputs.
//   - Non-uniform stacks are unrepresentable: StackOf validates every item first.
//
// ⚙️ Usage:
//
//	a, _ := matrix.NewDenseRows([][]float64{{0, 0}, {1, 1}})
//	s, _ := matrix.StackOf(a, a.Clone())
//	item, _ := s.Item(1) // borrowed 2×2 view
//
// Interop: FromGonum / ToGonum bridge to gonum.org/v1/gonum/mat.
package matrix
