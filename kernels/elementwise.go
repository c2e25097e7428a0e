// SPDX-License-Identifier: MIT
// Package kernels provides deterministic elementwise and reduction kernels
// over dense matrices, backing the matrix.* arithmetic of the registry.
//
// Purpose:
//   - Keep tight loops centralized so registry wrappers stay thin.
//   - Fixed i→j traversal over the row-major raw buffer; one output
//     allocation per kernel; operands are never mutated.
//
// Determinism & Performance:
//   - Loops walk the raw backing slice with explicit stride handling, so
//     views with stride > cols stay correct.
//   - Time O(r*c), Space O(r*c) for every elementwise kernel.
package kernels

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Operation name constants for unified error wrapping.
const (
	opAdd      = "Add"
	opSub      = "Sub"
	opHadamard = "Hadamard"
	opDivide   = "Divide"
	opScale    = "Scale"
)

// kernelErrorf wraps err with an operation tag, preserving the sentinel
// for errors.Is. Call only with err != nil.
func kernelErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// validateSameShape ensures both operands are present and conformable.
func validateSameShape(a, b *mat.Dense) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, ar, ac, br, bc)
	}

	return nil
}

// binary computes out[i,j] = f(a[i,j], b[i,j]) with one output allocation.
func binary(a, b *mat.Dense, tag string, f func(x, y float64) float64) (*mat.Dense, error) {
	if err := validateSameShape(a, b); err != nil {
		return nil, kernelErrorf(tag, err)
	}
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)

	ra, rb, ro := a.RawMatrix(), b.RawMatrix(), out.RawMatrix()
	for i := 0; i < r; i++ {
		ba, bb, bo := i*ra.Stride, i*rb.Stride, i*ro.Stride // row base offsets
		for j := 0; j < c; j++ {
			ro.Data[bo+j] = f(ra.Data[ba+j], rb.Data[bb+j])
		}
	}

	return out, nil
}

// Add computes a + b elementwise.
func Add(a, b *mat.Dense) (*mat.Dense, error) {
	return binary(a, b, opAdd, func(x, y float64) float64 { return x + y })
}

// Sub computes a - b elementwise.
func Sub(a, b *mat.Dense) (*mat.Dense, error) {
	return binary(a, b, opSub, func(x, y float64) float64 { return x - y })
}

// Hadamard computes the elementwise product a ∘ b.
func Hadamard(a, b *mat.Dense) (*mat.Dense, error) {
	return binary(a, b, opHadamard, func(x, y float64) float64 { return x * y })
}

// Divide computes a / b elementwise. Division by zero follows IEEE-754
// (±Inf, NaN); no masking is applied at this layer.
func Divide(a, b *mat.Dense) (*mat.Dense, error) {
	return binary(a, b, opDivide, func(x, y float64) float64 { return x / y })
}

// Scale computes s * a with a single pass over the raw buffer.
func Scale(s float64, a *mat.Dense) (*mat.Dense, error) {
	if a == nil {
		return nil, kernelErrorf(opScale, ErrNilMatrix)
	}
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)

	ra, ro := a.RawMatrix(), out.RawMatrix()
	for i := 0; i < r; i++ {
		ba, bo := i*ra.Stride, i*ro.Stride
		for j := 0; j < c; j++ {
			ro.Data[bo+j] = s * ra.Data[ba+j]
		}
	}

	return out, nil
}
