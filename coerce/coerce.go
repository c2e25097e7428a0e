// SPDX-License-Identifier: MIT
// Package coerce turns textual command tokens into typed values.
//
// Each coercer is a pure function (Context, token) → typed value with a
// defined failure policy. Multi-stage coercers attempt their stages in a
// fixed order and commit to the first success; coercers documented as
// polymorphic-over-their-stage (Order, ArrayOrInt) legitimately produce
// different types for different well-formed inputs.
//
// Failure policy summary:
//   - Int/Float/IntList/TupleList/IntTuple fail with ErrInvalidInt or
//     ErrInvalidNumber on malformed fields.
//   - BoolStr and WeakComplex never fail: both end in a total fallback
//     stage (generic truthiness, complex NaN).
//   - Matrix fails with ErrInvalidMatrix only after every stage of its
//     fallback chain has been tried.
package coerce

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Func converts a single token into a typed value, or fails with an error
// matching ErrCoercion.
type Func func(cc *Context, tok string) (any, error)

// VariadicFunc converts the whole remaining token list into one typed
// value; used for variable-arity positional parameters.
type VariadicFunc func(cc *Context, toks []string) (any, error)

// Int parses a plain integer token.
func Int(_ *Context, tok string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(tok))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInt, tok)
	}

	return n, nil
}

// Float parses a plain floating-point token.
func Float(_ *Context, tok string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, tok)
	}

	return f, nil
}

// Str accepts any token verbatim.
func Str(_ *Context, tok string) (any, error) {
	return tok, nil
}

// IntList splits the token on the field delimiter and parses every field
// as an integer, e.g. "0,2,1" → []int{0, 2, 1}.
func IntList(cc *Context, tok string) (any, error) {
	fields := strings.Split(tok, fieldSep)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := Int(cc, f)
		if err != nil {
			return nil, err
		}
		out[i] = v.(int)
	}

	return out, nil
}

// IntTuple parses like IntList but the result is an ordered tuple: used
// where axis or index order matters (shapes, axis permutations).
// The representation is the same []int; the distinction is contractual.
func IntTuple(cc *Context, tok string) (any, error) {
	return IntList(cc, tok)
}

// BoolList splits the token on the field delimiter and maps every field
// through the loose boolean parser. It never fails: BoolStr is total.
func BoolList(cc *Context, tok string) (any, error) {
	fields := strings.Split(tok, fieldSep)
	out := make([]bool, len(fields))
	for i, f := range fields {
		v, _ := BoolStr(cc, f)
		out[i] = v.(bool)
	}

	return out, nil
}

// TupleList parses a list of integer tuples: tuples are separated by the
// row delimiter and members by the field delimiter, e.g. "1,2;0,3" →
// [][]int{{1,2},{0,3}}. Mirrors the inline matrix literal grammar.
func TupleList(cc *Context, tok string) (any, error) {
	groups := strings.Split(tok, rowSep)
	out := make([][]int, len(groups))
	for i, g := range groups {
		v, err := IntList(cc, g)
		if err != nil {
			return nil, err
		}
		out[i] = v.([]int)
	}

	return out, nil
}

// StrList splits the token on the field delimiter, mapping each field
// through identity.
func StrList(_ *Context, tok string) (any, error) {
	return strings.Split(tok, fieldSep), nil
}

// Order parses a norm-order argument. Polymorphic-over-its-stage:
// the literal infinity tokens become float64 ±Inf, an integer token
// becomes int, and anything else is kept as the raw string (norm orders
// such as "fro" are words). Never fails.
func Order(_ *Context, tok string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "inf", "+inf", "infinity":
		return math.Inf(1), nil
	case "-inf", "-infinity":
		return math.Inf(-1), nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(tok)); err == nil {
		return n, nil
	}

	return tok, nil
}

// BoolStr is the permissive boolean parser. Stages, in order:
// numeric truthiness (any number ≠ 0 is true), then the fixed
// case-insensitive literal words, then generic truthiness of the string
// (non-empty is true). The empty token therefore resolves to false.
// Never fails.
func BoolStr(_ *Context, tok string) (any, error) {
	s := strings.TrimSpace(tok)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0, nil
	}
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "on":
		return true, nil
	case "false", "f", "no", "n", "off":
		return false, nil
	}

	return len(s) > 0, nil
}

// WeakComplex parses a numeric token that may be real or complex. Stages:
// float, then complex (both "1+2i" and the j-suffixed "1+2j" spellings),
// then the sentinel complex NaN. Callers must special-case the sentinel;
// WeakComplex itself never fails.
func WeakComplex(_ *Context, tok string) (any, error) {
	s := strings.TrimSpace(tok)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return complex(f, 0), nil
	}
	if c, err := strconv.ParseComplex(strings.ReplaceAll(s, "j", "i"), 128); err == nil {
		return c, nil
	}

	return cmplx.NaN(), nil
}

// IsComplexNaN reports whether v is the WeakComplex sentinel.
func IsComplexNaN(v complex128) bool {
	return math.IsNaN(real(v)) && math.IsNaN(imag(v))
}

// ArrayOrInt parses an argument that may be a count or an explicit
// vector (choice populations, histogram bin edges, repeat counts).
// Polymorphic-over-its-stage: an integer token becomes int, anything else
// is parsed as a matrix and flattened row-major into []float64.
func ArrayOrInt(cc *Context, tok string) (any, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(tok)); err == nil {
		return n, nil
	}

	m, err := Matrix(cc, tok)
	if err != nil {
		return nil, err
	}
	d := m.(*mat.Dense)
	r, c := d.Dims()
	flat := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			flat = append(flat, d.At(i, j))
		}
	}

	return flat, nil
}
