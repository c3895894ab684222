package emd_test

import (
	"testing"

	"github.com/katalvlaran/pillars/emd"
	"github.com/katalvlaran/pillars/internal/fixture"
	"github.com/katalvlaran/pillars/sched"
)

// benchmarkBulk runs one query of shape rows×cols against r references.
func benchmarkBulk(b *testing.B, r, rows, cols int, mode sched.Mode) {
	src := fixture.New(1)
	q, err := src.Stream(0).Dense(rows, cols)
	if err != nil {
		b.Fatalf("fixture: %v", err)
	}
	stack, err := src.Stream(1).Stack(r, rows, cols)
	if err != nil {
		b.Fatalf("fixture: %v", err)
	}

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if _, err := emd.Bulk(q, stack, emd.WithMode(mode)); err != nil {
			b.Fatalf("Bulk failed: %v", err)
		}
	}
}

// BenchmarkDistance_17x11 measures a single EMD of two 17×11 arrays.
func BenchmarkDistance_17x11(b *testing.B) {
	src := fixture.New(2)
	x, _ := src.Stream(0).Dense(17, 11)
	y, _ := src.Stream(1).Dense(17, 11)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := emd.Distance(x, y); err != nil {
			b.Fatalf("Distance failed: %v", err)
		}
	}
}

// BenchmarkBulk_Serial100 scores one query against 100 references serially.
func BenchmarkBulk_Serial100(b *testing.B) { benchmarkBulk(b, 100, 17, 11, sched.Serial) }

// BenchmarkBulk_Parallel100 scores one query against 100 references in parallel.
func BenchmarkBulk_Parallel100(b *testing.B) { benchmarkBulk(b, 100, 17, 11, sched.Parallel) }
