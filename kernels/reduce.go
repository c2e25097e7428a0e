// SPDX-License-Identifier: MIT
// Package kernels: axis-wise reductions.
//
// Purpose:
//   - One reduction kernel behind matrix.sum/mean/min/max/prod/std/var,
//     parameterized by op, axis, keepdims and ddof instead of seven nearly
//     identical loops.
//
// Axis convention (matches the numeric library the CLI fronts):
//   - AxisNone reduces every element to one scalar.
//   - Axis 0 collapses rows: one result per column (1×c).
//   - Axis 1 collapses columns: one result per row (1×r, or r×1 under
//     keepdims).
//
// Determinism & Performance:
//   - Fixed i→j traversal; accumulation order is stable.
//   - Time O(r*c); Space O(result).
package kernels

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// AxisNone selects full reduction over every element.
const AxisNone = -1

// ReduceOp selects the reduction applied along an axis.
type ReduceOp int

const (
	OpSum ReduceOp = iota
	OpMean
	OpMin
	OpMax
	OpProd
	OpStd
	OpVar
)

// String names the op for error wrapping and debug traces.
func (op ReduceOp) String() string {
	switch op {
	case OpSum:
		return "Sum"
	case OpMean:
		return "Mean"
	case OpMin:
		return "Min"
	case OpMax:
		return "Max"
	case OpProd:
		return "Prod"
	case OpStd:
		return "Std"
	case OpVar:
		return "Var"
	}

	return "Reduce"
}

// Reduce applies op along axis. The result is a float64 scalar for
// AxisNone (1×1 matrix under keepdims) and a *mat.Dense vector otherwise.
// ddof is honored by OpStd/OpVar only: divisor is n-ddof.
func Reduce(m *mat.Dense, op ReduceOp, axis int, keepdims bool, ddof int) (any, error) {
	if m == nil {
		return nil, kernelErrorf(op.String(), ErrNilMatrix)
	}
	if axis != AxisNone && axis != 0 && axis != 1 {
		return nil, kernelErrorf(op.String(), fmt.Errorf("%w: %d", ErrBadAxis, axis))
	}
	r, c := m.Dims()

	if axis == AxisNone {
		v := reduceSlice(flatten(m), op, ddof)
		if keepdims {
			return mat.NewDense(1, 1, []float64{v}), nil
		}

		return v, nil
	}

	if axis == 0 {
		// One result per column.
		out := make([]float64, c)
		col := make([]float64, r)
		for j := 0; j < c; j++ {
			for i := 0; i < r; i++ {
				col[i] = m.At(i, j)
			}
			out[j] = reduceSlice(col, op, ddof)
		}

		return mat.NewDense(1, c, out), nil
	}

	// Axis 1: one result per row.
	out := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = m.At(i, j)
		}
		out[i] = reduceSlice(row, op, ddof)
	}
	if keepdims {
		return mat.NewDense(r, 1, out), nil
	}

	return mat.NewDense(1, r, out), nil
}

// flatten copies m row-major into one slice.
func flatten(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}

	return out
}

// reduceSlice folds one slice with the requested op. Empty input yields
// the op's identity (0 for sum, 1 for prod, NaN for the rest).
func reduceSlice(xs []float64, op ReduceOp, ddof int) float64 {
	if len(xs) == 0 {
		switch op {
		case OpSum:
			return 0
		case OpProd:
			return 1
		}

		return math.NaN()
	}

	switch op {
	case OpSum:
		s := 0.0
		for _, x := range xs {
			s += x
		}
		return s
	case OpMean:
		return reduceSlice(xs, OpSum, 0) / float64(len(xs))
	case OpMin:
		v := xs[0]
		for _, x := range xs[1:] {
			if x < v {
				v = x
			}
		}
		return v
	case OpMax:
		v := xs[0]
		for _, x := range xs[1:] {
			if x > v {
				v = x
			}
		}
		return v
	case OpProd:
		p := 1.0
		for _, x := range xs {
			p *= x
		}
		return p
	case OpVar, OpStd:
		n := float64(len(xs) - ddof)
		if n <= 0 {
			return math.NaN()
		}
		mean := reduceSlice(xs, OpMean, 0)
		ss := 0.0
		for _, x := range xs {
			d := x - mean
			ss += d * d
		}
		v := ss / n
		if op == OpStd {
			return math.Sqrt(v)
		}
		return v
	}

	return math.NaN()
}
