// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for array construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal) that resolves defaults.
//
// Notes:
//   - The numeric policy is fixed at construction time. Arrays built with
//     validation enabled reject NaN/±Inf both at ingestion (NewDenseFrom,
//     NewStackFrom) and in Set.
//   - Disabling validation is allowed for staging buffers, but the assignment
//     solver still refuses non-finite costs.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
}

// WithValidateNaNInf enables strict finite-value validation (the default).
// Complexity: O(1).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation for the array being built.
// The flag is captured at construction; existing arrays are unaffected.
// Complexity: O(1).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// defaultOptions returns the zero-configuration policy.
func defaultOptions() Options {
	return Options{validateNaNInf: DefaultValidateNaNInf}
}

// gatherOptions resolves opts over defaults in order. Nil entries are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
