// Package fixture - deterministic random arrays for tests, benchmarks and the
// CLI demo mode.
//
// Determinism: the same seed yields identical arrays on every platform.
// Streams derived with Stream are independent of each other, so a query set
// and a marker set generated from one seed never share values.
//
// Concurrency:
//   - *Source wraps a math/rand.Rand and is NOT goroutine-safe. Derive one
//     stream per goroutine.
package fixture

import (
	"math/rand"

	"github.com/katalvlaran/pillars/matrix"
)

// DefaultSeed is used when callers pass seed == 0.
const DefaultSeed int64 = 1

// Source is a seeded generator of feature arrays.
type Source struct {
	rng  *rand.Rand
	seed int64
}

// New returns a Source for seed (0 ⇒ DefaultSeed).
func New(seed int64) *Source {
	if seed == 0 {
		seed = DefaultSeed
	}

	return &Source{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Stream derives an independent Source identified by id. The parent state is
// not consumed, so Stream(id) is a pure function of (seed, id).
func (s *Source) Stream(id uint64) *Source {
	return New(deriveSeed(s.seed, id))
}

// deriveSeed mixes a parent seed and a stream identifier (SplitMix64 finalizer).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		return DefaultSeed
	}

	return int64(x)
}

// Dense returns a rows×cols array with entries uniform in [0, 1).
func (s *Source) Dense(rows, cols int) (*matrix.Dense, error) {
	data := s.uniform(rows, cols)

	return matrix.NewDenseFrom(rows, cols, data)
}

// Stack returns items arrays of shape rows×cols with entries uniform in [0, 1).
func (s *Source) Stack(items, rows, cols int) (*matrix.Stack, error) {
	data := s.uniform(items, rows, cols)

	return matrix.NewStackFrom(items, rows, cols, data)
}

// Perm returns a deterministic permutation of [0, n).
func (s *Source) Perm(n int) []int {
	return s.rng.Perm(n)
}

// Filled returns a rows×cols array with every entry equal to v.
func Filled(rows, cols int, v float64) (*matrix.Dense, error) {
	data := make([]float64, size(rows, cols))
	for i := range data {
		data[i] = v
	}

	return matrix.NewDenseFrom(rows, cols, data)
}

// uniform draws size(dims...) values in [0, 1).
func (s *Source) uniform(dims ...int) []float64 {
	data := make([]float64, size(dims...))
	for i := range data {
		data[i] = s.rng.Float64()
	}

	return data
}

// size is the element count for dims; any negative dimension yields 0 and is
// left for the matrix constructors to reject.
func size(dims ...int) int {
	n := 1
	for _, d := range dims {
		if d < 0 {
			return 0
		}
		n *= d
	}

	return n
}
