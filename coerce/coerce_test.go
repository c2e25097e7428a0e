// Package coerce_test contains unit tests for the token coercer library.
package coerce_test

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/coerce"
)

func TestBoolStr(t *testing.T) {
	cc := coerce.NewContext()
	for _, tc := range []struct {
		tok  string
		want bool
	}{
		{"Yes", true},
		{"no", false},
		{"TRUE", true},
		{"off", false},
		{"1", true},
		{"0", false},
		{"2.5", true},
		{"-1", true},
		{"0.0", false},
		{"banana", true}, // generic truthiness: non-empty word
		{"", false},      // empty token carries no affirmative signal
		{"  ", false},
	} {
		t.Run(fmt.Sprintf("%q", tc.tok), func(t *testing.T) {
			got, err := coerce.BoolStr(cc, tc.tok)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestWeakComplex(t *testing.T) {
	cc := coerce.NewContext()

	got, err := coerce.WeakComplex(cc, "2.5")
	require.NoError(t, err)
	require.Equal(t, complex(2.5, 0), got)

	got, err = coerce.WeakComplex(cc, "1+2j")
	require.NoError(t, err)
	require.Equal(t, complex(1, 2), got)

	got, err = coerce.WeakComplex(cc, "1-3i")
	require.NoError(t, err)
	require.Equal(t, complex(1, -3), got)

	// The sentinel stage: never an error, always complex NaN.
	got, err = coerce.WeakComplex(cc, "not-a-number")
	require.NoError(t, err)
	require.True(t, coerce.IsComplexNaN(got.(complex128)))
}

func TestIntListAndTuple(t *testing.T) {
	cc := coerce.NewContext()

	got, err := coerce.IntList(cc, "0,2,1")
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 1}, got)

	_, err = coerce.IntList(cc, "0,x,1")
	require.ErrorIs(t, err, coerce.ErrInvalidInt)
	require.ErrorIs(t, err, coerce.ErrCoercion)

	got, err = coerce.TupleList(cc, "1,2;0,3")
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 2}, {0, 3}}, got)
}

func TestOrderStages(t *testing.T) {
	cc := coerce.NewContext()

	got, err := coerce.Order(cc, "inf")
	require.NoError(t, err)
	require.True(t, math.IsInf(got.(float64), 1))

	got, err = coerce.Order(cc, "-inf")
	require.NoError(t, err)
	require.True(t, math.IsInf(got.(float64), -1))

	got, err = coerce.Order(cc, "2")
	require.NoError(t, err)
	require.Equal(t, 2, got)

	got, err = coerce.Order(cc, "fro")
	require.NoError(t, err)
	require.Equal(t, "fro", got)
}

func TestMatrix_InlineLiteral(t *testing.T) {
	cc := coerce.NewContext()

	got, err := coerce.Matrix(cc, "1,2,3;4,5,6")
	require.NoError(t, err)

	m := got.(*mat.Dense)
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 6.0, m.At(1, 2))
}

func TestMatrix_LenientMissingFields(t *testing.T) {
	cc := coerce.NewContext()

	got, err := coerce.Matrix(cc, "1,,3;4,5")
	require.NoError(t, err)

	m := got.(*mat.Dense)
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.True(t, math.IsNaN(m.At(0, 1)))
	require.True(t, math.IsNaN(m.At(1, 2))) // padded short row
	require.Equal(t, 5.0, m.At(1, 1))
}

func TestMatrix_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n3,4\n"), 0o600))

	cc := coerce.NewContext()
	got, err := coerce.Matrix(cc, path)
	require.NoError(t, err)

	m := got.(*mat.Dense)
	require.Equal(t, 4.0, m.At(1, 1))
}

func TestMatrix_FromWhitespaceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n3 4\n"), 0o600))

	cc := coerce.NewContext()
	got, err := coerce.Matrix(cc, path)
	require.NoError(t, err)

	m := got.(*mat.Dense)
	require.Equal(t, 3.0, m.At(1, 0))
}

func TestMatrix_FromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "7,8;9,10")
	}))
	defer srv.Close()

	cc := coerce.NewContext(coerce.WithHTTPClient(srv.Client()))
	got, err := coerce.Matrix(cc, srv.URL)
	require.NoError(t, err)

	m := got.(*mat.Dense)
	require.Equal(t, 10.0, m.At(1, 1))
}

func TestMatrix_AllStagesFail(t *testing.T) {
	cc := coerce.NewContext()

	_, err := coerce.Matrix(cc, "definitely/not/a_matrix!")
	require.ErrorIs(t, err, coerce.ErrInvalidMatrix)
	require.ErrorIs(t, err, coerce.ErrCoercion)
	require.Contains(t, err.Error(), "definitely/not/a_matrix!")
}

func TestMatrix_DefaultSliceApplied(t *testing.T) {
	cc := coerce.NewContext(coerce.WithSlice("0:1,:"))

	got, err := coerce.Matrix(cc, "1,2;3,4")
	require.NoError(t, err)

	m := got.(*mat.Dense)
	r, c := m.Dims()
	require.Equal(t, 1, r)
	require.Equal(t, 2, c)
	require.Equal(t, 2.0, m.At(0, 1))
}

func TestArrayOrInt(t *testing.T) {
	cc := coerce.NewContext()

	got, err := coerce.ArrayOrInt(cc, "5")
	require.NoError(t, err)
	require.Equal(t, 5, got)

	got, err = coerce.ArrayOrInt(cc, "1,2;3,4")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4}, got)
}

func TestMatrixList(t *testing.T) {
	cc := coerce.NewContext()

	got, err := coerce.MatrixList(cc, []string{"1,2", "3,4"})
	require.NoError(t, err)

	ms := got.([]*mat.Dense)
	require.Len(t, ms, 2)
	require.Equal(t, 4.0, ms[1].At(0, 1))

	_, err = coerce.MatrixList(cc, []string{"1,2", "nope!"})
	require.ErrorIs(t, err, coerce.ErrInvalidMatrix)
}
