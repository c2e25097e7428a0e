// Package kernels_test contains unit tests for elementwise and reduction
// kernels.
package kernels_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/kernels"
)

func d23() *mat.Dense {
	return mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
}

func TestElementwise(t *testing.T) {
	a := d23()
	b := mat.NewDense(2, 3, []float64{6, 5, 4, 3, 2, 1})

	sum, err := kernels.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, 7.0, sum.At(0, 0))
	require.Equal(t, 7.0, sum.At(1, 2))

	diff, err := kernels.Sub(a, b)
	require.NoError(t, err)
	require.Equal(t, -5.0, diff.At(0, 0))
	require.Equal(t, 5.0, diff.At(1, 2))

	had, err := kernels.Hadamard(a, b)
	require.NoError(t, err)
	require.Equal(t, 6.0, had.At(0, 0))
	require.Equal(t, 10.0, had.At(1, 1))

	quot, err := kernels.Divide(a, b)
	require.NoError(t, err)
	require.InDelta(t, 0.4, quot.At(0, 1), 1e-12)

	scaled, err := kernels.Scale(2, a)
	require.NoError(t, err)
	require.Equal(t, 12.0, scaled.At(1, 2))

	// Operands stay untouched.
	require.Equal(t, 1.0, a.At(0, 0))
}

func TestElementwise_ShapeMismatch(t *testing.T) {
	a := d23()
	b := mat.NewDense(3, 2, nil)

	_, err := kernels.Add(a, b)
	require.ErrorIs(t, err, kernels.ErrDimensionMismatch)

	_, err = kernels.Hadamard(nil, b)
	require.ErrorIs(t, err, kernels.ErrNilMatrix)
}

func TestDivide_ByZeroIsIEEE(t *testing.T) {
	a := mat.NewDense(1, 2, []float64{1, 0})
	b := mat.NewDense(1, 2, []float64{0, 0})

	q, err := kernels.Divide(a, b)
	require.NoError(t, err)
	require.True(t, math.IsInf(q.At(0, 0), 1))
	require.True(t, math.IsNaN(q.At(0, 1)))
}

func TestReduce_Full(t *testing.T) {
	got, err := kernels.Reduce(d23(), kernels.OpSum, kernels.AxisNone, false, 0)
	require.NoError(t, err)
	require.Equal(t, 21.0, got)

	got, err = kernels.Reduce(d23(), kernels.OpMean, kernels.AxisNone, false, 0)
	require.NoError(t, err)
	require.Equal(t, 3.5, got)

	got, err = kernels.Reduce(d23(), kernels.OpSum, kernels.AxisNone, true, 0)
	require.NoError(t, err)
	m := got.(*mat.Dense)
	r, c := m.Dims()
	require.Equal(t, 1, r)
	require.Equal(t, 1, c)
	require.Equal(t, 21.0, m.At(0, 0))
}

func TestReduce_Axes(t *testing.T) {
	// Axis 0 collapses rows: per-column sums.
	got, err := kernels.Reduce(d23(), kernels.OpSum, 0, false, 0)
	require.NoError(t, err)
	m := got.(*mat.Dense)
	require.Equal(t, 5.0, m.At(0, 0))
	require.Equal(t, 7.0, m.At(0, 1))
	require.Equal(t, 9.0, m.At(0, 2))

	// Axis 1 collapses columns: per-row sums as one output row.
	got, err = kernels.Reduce(d23(), kernels.OpSum, 1, false, 0)
	require.NoError(t, err)
	m = got.(*mat.Dense)
	r, c := m.Dims()
	require.Equal(t, 1, r)
	require.Equal(t, 2, c)
	require.Equal(t, 6.0, m.At(0, 0))
	require.Equal(t, 15.0, m.At(0, 1))

	// keepdims preserves the collapsed axis as size one.
	got, err = kernels.Reduce(d23(), kernels.OpSum, 1, true, 0)
	require.NoError(t, err)
	m = got.(*mat.Dense)
	r, c = m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 1, c)
}

func TestReduce_StdVarDdof(t *testing.T) {
	m := mat.NewDense(1, 4, []float64{2, 4, 4, 8})

	got, err := kernels.Reduce(m, kernels.OpVar, kernels.AxisNone, false, 0)
	require.NoError(t, err)
	require.InDelta(t, 4.75, got.(float64), 1e-12) // population variance

	got, err = kernels.Reduce(m, kernels.OpVar, kernels.AxisNone, false, 1)
	require.NoError(t, err)
	require.InDelta(t, 19.0/3.0, got.(float64), 1e-12) // sample variance

	got, err = kernels.Reduce(m, kernels.OpStd, kernels.AxisNone, false, 0)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(4.75), got.(float64), 1e-12)
}

func TestReduce_BadAxis(t *testing.T) {
	_, err := kernels.Reduce(d23(), kernels.OpSum, 2, false, 0)
	require.ErrorIs(t, err, kernels.ErrBadAxis)
}
