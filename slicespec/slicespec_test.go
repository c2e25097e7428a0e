// Package slicespec_test contains unit tests for slice parsing and application.
package slicespec_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/slicespec"
)

// grid returns a 4x4 matrix with value 10*i+j at (i,j), handy for
// verifying exactly which cells a selection picked.
func grid() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m.Set(i, j, float64(10*i+j))
		}
	}

	return m
}

func TestApply_RowRanges(t *testing.T) {
	for _, tc := range []struct {
		spec string
		rows []int // expected row indices of the 4x4 grid, all columns kept
	}{
		{"0:2", []int{0, 1}},
		{"1:", []int{1, 2, 3}},
		{":3", []int{0, 1, 2}},
		{":", []int{0, 1, 2, 3}},
		{"-2:", []int{2, 3}},
		{":-1", []int{0, 1, 2}},
		{"0:4:2", []int{0, 2}},
		{"::-1", []int{3, 2, 1, 0}},
		{"2", []int{2}},
		{"-1", []int{3}},
	} {
		t.Run(tc.spec, func(t *testing.T) {
			got, err := slicespec.Apply(tc.spec, grid())
			require.NoError(t, err)

			r, c := got.Dims()
			require.Equal(t, len(tc.rows), r)
			require.Equal(t, 4, c)
			for i, ri := range tc.rows {
				for j := 0; j < 4; j++ {
					require.Equal(t, float64(10*ri+j), got.At(i, j),
						"spec %q row %d col %d", tc.spec, i, j)
				}
			}
		})
	}
}

func TestApply_RowAndColumn(t *testing.T) {
	// Rows 1..2, columns 0 and 2.
	got, err := slicespec.Apply("1:3,0:3:2", grid())
	require.NoError(t, err)

	r, c := got.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	require.Equal(t, 10.0, got.At(0, 0))
	require.Equal(t, 12.0, got.At(0, 1))
	require.Equal(t, 20.0, got.At(1, 0))
	require.Equal(t, 22.0, got.At(1, 1))
}

// End-exclusive a:b selection must match standard slice semantics,
// including negative "from the end" bounds.
func TestApply_HalfOpenProperty(t *testing.T) {
	for a := -4; a <= 4; a++ {
		for b := -4; b <= 4; b++ {
			spec := fmt.Sprintf("%d:%d,:", a, b)
			got, err := slicespec.Apply(spec, grid())

			// Reference: normalize like a standard slice and collect.
			lo, hi := a, b
			if lo < 0 {
				lo += 4
			}
			if hi < 0 {
				hi += 4
			}
			if lo < 0 {
				lo = 0
			}
			if hi > 4 {
				hi = 4
			}
			want := hi - lo
			if want <= 0 {
				require.ErrorIs(t, err, slicespec.ErrInvalidSlice, "spec %q", spec)
				continue
			}
			require.NoError(t, err, "spec %q", spec)
			r, _ := got.Dims()
			require.Equal(t, want, r, "spec %q", spec)
			require.Equal(t, float64(10*lo), got.At(0, 0), "spec %q", spec)
		}
	}
}

func TestApply_Invalid(t *testing.T) {
	for _, spec := range []string{
		"",         // empty
		"a:b",      // non-numeric bounds
		"0:2:0",    // zero step
		"1:2,3:4,5", // three axes
		"9",        // bare index out of range
		"2:2",      // empty selection
	} {
		t.Run(spec, func(t *testing.T) {
			_, err := slicespec.Apply(spec, grid())
			require.Error(t, err)
			require.True(t, errors.Is(err, slicespec.ErrInvalidSlice))
		})
	}
}

func TestParse_ColumnOnlyDefaults(t *testing.T) {
	s, err := slicespec.Parse("0:1")
	require.NoError(t, err)
	require.False(t, s.HasCol)

	s, err = slicespec.Parse("0:1,:")
	require.NoError(t, err)
	require.True(t, s.HasCol)
}
