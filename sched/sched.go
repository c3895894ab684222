package sched

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Mode selects how a kernel iterates over its independent units.
type Mode int

const (
	// Serial runs every unit on the calling goroutine, in index order.
	Serial Mode = iota
	// Parallel fans units out over a bounded worker pool.
	Parallel
)

func (m Mode) String() string {
	switch m {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "serial"/"parallel" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "serial":
		return Serial, nil
	case "parallel":
		return Parallel, nil
	default:
		return Serial, fmt.Errorf("sched: unknown mode %q", s)
	}
}

// Workers resolves a requested worker count: n <= 0 means one worker per
// available CPU (runtime.GOMAXPROCS(0)).
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return n
}

// Block is the half-open index range [Lo, Hi).
type Block struct {
	Lo, Hi int
}

// Len returns Hi - Lo.
func (b Block) Len() int { return b.Hi - b.Lo }

// Blocks splits [0, n) into at most parts contiguous, non-empty blocks whose
// sizes differ by at most one. The blocks cover [0, n) in order.
//
// Complexity: O(parts).
func Blocks(n, parts int) []Block {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	out := make([]Block, 0, parts)
	size, extra := n/parts, n%parts
	lo := 0
	for p := 0; p < parts; p++ {
		hi := lo + size
		if p < extra {
			hi++
		}
		out = append(out, Block{Lo: lo, Hi: hi})
		lo = hi
	}

	return out
}

// Map runs fn(i) for every i in [0, n).
//
// Units are independent: fn must only write state owned by index i (typically
// out[i] of a pre-allocated slice), so no locking is needed and results land
// in input order regardless of scheduling.
//
// In Serial mode units run in order on the calling goroutine and the first
// failure stops the loop. In Parallel mode units run on at most
// Workers(workers) goroutines via errgroup; every unit that started runs to
// completion, and after the join the lowest-index failure is returned. Both
// modes therefore report the same error for the same input.
//
// ctx is checked before each unit starts, never during one.
func Map(ctx context.Context, mode Mode, workers, n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if mode == Serial || Workers(workers) == 1 || n == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}

		return nil
	}

	errs := make([]error, n)
	g := new(errgroup.Group)
	g.SetLimit(Workers(workers))
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait() // units report through errs

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return ctx.Err()
}

// ForBlocks partitions [0, n) with Blocks(n, Workers(workers)) and calls
// fn(lo, hi) once per block through Map. Serial mode uses a single block.
func ForBlocks(ctx context.Context, mode Mode, workers, n int, fn func(lo, hi int) error) error {
	parts := 1
	if mode == Parallel {
		parts = Workers(workers)
	}
	blocks := Blocks(n, parts)

	return Map(ctx, mode, workers, len(blocks), func(i int) error {
		return fn(blocks[i].Lo, blocks[i].Hi)
	})
}
