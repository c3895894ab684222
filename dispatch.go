package pillars

import (
	"fmt"

	"github.com/katalvlaran/pillars/emd"
	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/sched"
)

// EMD dispatches on the ranks of a and b:
//
//   - 2-D × 2-D ⇒ a one-element slice holding emd.Distance(a, b)
//   - 2-D × 3-D ⇒ emd.Bulk(a, b) over the references of b
//   - 3-D × 2-D ⇒ emd.Bulk(b, a)
//
// Bulk runs in sched.Parallel mode unless opts say otherwise. Tensors are
// converted with AsDense/AsStack first.
//
// Errors:
//   - ErrUnsupportedInput — any other rank combination (including nil).
//   - everything emd.Distance / emd.Bulk return.
func EMD(a, b matrix.Array, opts ...emd.Option) ([]float64, error) {
	ra, rb := matrix.Rank(a), matrix.Rank(b)
	switch {
	case ra == 2 && rb == 2:
		da, err := asDense(a)
		if err != nil {
			return nil, err
		}
		db, err := asDense(b)
		if err != nil {
			return nil, err
		}
		d, err := emd.Distance(da, db)
		if err != nil {
			return nil, err
		}
		return []float64{d}, nil

	case ra == 2 && rb == 3:
		return bulk(a, b, opts)

	case ra == 3 && rb == 2:
		return bulk(b, a, opts)

	default:
		return nil, matrix.Errorf("pillars.EMD", matrix.ErrUnsupportedInput, "ranks %d and %d", ra, rb)
	}
}

func bulk(q, s matrix.Array, opts []emd.Option) ([]float64, error) {
	dq, err := asDense(q)
	if err != nil {
		return nil, err
	}
	st, err := asStack(s)
	if err != nil {
		return nil, err
	}
	all := append([]emd.Option{emd.WithMode(sched.Parallel)}, opts...)

	return emd.Bulk(dq, st, all...)
}

func asDense(a matrix.Array) (*matrix.Dense, error) {
	switch v := a.(type) {
	case *matrix.Dense:
		return v, nil
	case *matrix.Tensor:
		return v.AsDense()
	default:
		return nil, fmt.Errorf("pillars.EMD: %T: %w", a, matrix.ErrUnsupportedInput)
	}
}

func asStack(a matrix.Array) (*matrix.Stack, error) {
	switch v := a.(type) {
	case *matrix.Stack:
		return v, nil
	case *matrix.Tensor:
		return v.AsStack()
	default:
		return nil, fmt.Errorf("pillars.EMD: %T: %w", a, matrix.ErrUnsupportedInput)
	}
}
