// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set shared by every pillars package.
// This file defines ONLY package-level sentinel errors. Kernels return these
// sentinels wrapped with operation context; callers and tests match them via
// errors.Is. No kernel panics on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Packages wrap these with their own operation tag ("rdist.Euclidean: %w"),
// the sentinel identity survives the wrap.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> NaN/Inf -> shape -> argument domain -> rank dispatch.

var (
	// ErrShape is the ShapeError kind: feature-dimension mismatch between
	// compared arrays, non-uniform item shapes within a stack, or a flat buffer
	// whose length does not match the declared shape.
	ErrShape = errors.New("matrix: shape mismatch")

	// ErrInvalidArgument is the InvalidArgument kind: negative k, negative or
	// NaN tolerance, non-positive worker counts where one is required.
	ErrInvalidArgument = errors.New("matrix: invalid argument")

	// ErrUnsupportedInput is the UnsupportedInputError kind: rank combinations
	// that no dispatch path covers (e.g. 4-D operands, 3-D against 3-D).
	ErrUnsupportedInput = errors.New("matrix: unsupported input rank")

	// ErrInvalidDimensions is returned when a requested dimension is negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that an index is outside valid bounds.
	// Public indexers (At/Set/Item) return this, they do not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil array was passed where one is required.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)

// Errorf tags a sentinel with an operation name and optional detail.
// The result still satisfies errors.Is(err, sentinel).
//
//	matrix.Errorf("emd.Bulk", matrix.ErrShape, "query has %d cols, stack has %d", 3, 4)
func Errorf(op string, sentinel error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%s: %w", op, sentinel)
	}

	return fmt.Errorf("%s: %w: %s", op, sentinel, fmt.Sprintf(format, args...))
}

// Kind reports which taxonomy bucket err belongs to ("shape",
// "invalid_argument", "unsupported_input", "nan_inf", "nil", "out_of_range",
// "dimensions") or "other". Used for metric labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrShape):
		return "shape"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrUnsupportedInput):
		return "unsupported_input"
	case errors.Is(err, ErrNaNInf):
		return "nan_inf"
	case errors.Is(err, ErrNilMatrix):
		return "nil"
	case errors.Is(err, ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, ErrInvalidDimensions):
		return "dimensions"
	default:
		return "other"
	}
}
