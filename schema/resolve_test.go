// Package schema_test contains unit tests for call schemas and the
// argument resolver.
package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/coerce"
	"github.com/katalvlaran/matcli/schema"
)

// twoMat is a fixed two-positional schema used across arity tests.
func twoMat() *schema.CallSchema {
	return &schema.CallSchema{
		Name: "test.two",
		Pos: []schema.Param{
			{Name: "a", Coerce: coerce.Matrix},
			{Name: "b", Coerce: coerce.Matrix},
		},
		Kw:        map[string]coerce.Func{"tol": coerce.Float},
		Universal: []string{"axis", "keepdims"},
	}
}

func resolve(t *testing.T, cs *schema.CallSchema, tokens []string, pipe schema.LineSource) (*schema.Resolved, error) {
	t.Helper()
	return schema.Resolve(cs, tokens, pipe, coerce.NewContext(), zap.NewNop())
}

func TestResolve_ExactArity(t *testing.T) {
	got, err := resolve(t, twoMat(), []string{"1,2", "3,4"}, nil)
	require.NoError(t, err)
	require.Len(t, got.Pos, 2)
	require.Empty(t, got.Kw)
}

func TestResolve_TooManyPositional(t *testing.T) {
	_, err := resolve(t, twoMat(), []string{"1", "2", "3"}, nil)
	require.ErrorIs(t, err, schema.ErrTooManyPositional)
}

func TestResolve_MissingArgument(t *testing.T) {
	_, err := resolve(t, twoMat(), []string{"1,2"}, nil)
	require.ErrorIs(t, err, schema.ErrMissingArgument)
	require.Contains(t, err.Error(), `"b"`) // names the next unfilled parameter
}

func TestResolve_Keywords(t *testing.T) {
	got, err := resolve(t, twoMat(), []string{"1", "2", "tol=0.5", "axis=1", "keepdims=yes"}, nil)
	require.NoError(t, err)
	require.Equal(t, 0.5, got.Kw["tol"])
	require.Equal(t, 1, got.Kw["axis"])
	require.Equal(t, true, got.Kw["keepdims"])
}

func TestResolve_UnknownKeyword(t *testing.T) {
	// "ddof" is universal but not in this schema's accepted set, and the
	// value side being well-typed must not rescue it.
	_, err := resolve(t, twoMat(), []string{"1", "2", "ddof=1"}, nil)
	require.ErrorIs(t, err, schema.ErrUnknownArgument)

	_, err = resolve(t, twoMat(), []string{"1", "2", "bogus=3"}, nil)
	require.ErrorIs(t, err, schema.ErrUnknownArgument)
}

func TestResolve_KeywordValueSplitAtFirstEquals(t *testing.T) {
	cs := &schema.CallSchema{
		Name: "test.kw",
		Kw:   map[string]coerce.Func{"label": coerce.Str},
	}
	got, err := resolve(t, cs, []string{"label=a=b"}, nil)
	require.NoError(t, err)
	require.Equal(t, "a=b", got.Kw["label"])
}

func TestResolve_Variadic(t *testing.T) {
	cs := &schema.CallSchema{
		Name:     "test.stack",
		Variadic: &schema.Variadic{Name: "matrices", Coerce: coerce.MatrixList},
	}
	got, err := resolve(t, cs, []string{"1,2", "3,4", "5,6"}, nil)
	require.NoError(t, err)
	require.Len(t, got.Pos, 1)
	require.Len(t, got.Pos[0].([]*mat.Dense), 3)
}

func TestResolve_PipeFillsPositionals(t *testing.T) {
	lines := []string{"1,2;3,4"}
	i := 0
	pipe := func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		l := lines[i]
		i++
		return l, true
	}

	got, err := resolve(t, twoMat(), []string{"5,6"}, pipe)
	require.NoError(t, err)
	require.Len(t, got.Pos, 2)

	a := got.Pos[0].(*mat.Dense)
	require.Equal(t, 4.0, a.At(1, 1)) // pipe line became the first argument
	b := got.Pos[1].(*mat.Dense)
	require.Equal(t, 6.0, b.At(0, 1))
}

func TestResolve_PipeBestEffortNeverRaises(t *testing.T) {
	cs := &schema.CallSchema{
		Name: "test.int",
		Pos: []schema.Param{
			{Name: "n", Coerce: coerce.Int},
		},
	}
	pipe := func() (string, bool) { return "not-an-int", true }

	// The bad line is dropped silently; the explicit token fills the slot.
	got, err := resolve(t, cs, []string{"7"}, pipe)
	require.NoError(t, err)
	require.Equal(t, 7, got.Pos[0])
}

func TestResolve_OptionalTrailing(t *testing.T) {
	cs := &schema.CallSchema{
		Name: "test.opt",
		Pos: []schema.Param{
			{Name: "m", Coerce: coerce.Matrix},
			{Name: "ord", Coerce: coerce.Order},
		},
		Optional: 1,
	}

	got, err := resolve(t, cs, []string{"1,2;3,4"}, nil)
	require.NoError(t, err)
	require.Len(t, got.Pos, 1)

	got, err = resolve(t, cs, []string{"1,2;3,4", "fro"}, nil)
	require.NoError(t, err)
	require.Len(t, got.Pos, 2)
	require.Equal(t, "fro", got.Pos[1])
}

func TestValidate(t *testing.T) {
	good := twoMat()
	require.NoError(t, good.Validate())

	bad := twoMat()
	bad.Kw["axis"] = coerce.Int // ambiguous: local and universal
	require.ErrorIs(t, bad.Validate(), schema.ErrBadSchema)

	bad = twoMat()
	bad.Universal = append(bad.Universal, "no_such_kw")
	require.ErrorIs(t, bad.Validate(), schema.ErrBadSchema)

	bad = twoMat()
	bad.Variadic = &schema.Variadic{Name: "rest", Coerce: coerce.MatrixList}
	require.ErrorIs(t, bad.Validate(), schema.ErrBadSchema)
}
