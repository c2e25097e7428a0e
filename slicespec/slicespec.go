// SPDX-License-Identifier: MIT
// Package slicespec parses row/column slice specifications and applies them
// to dense matrices.
//
// A specification has the form ROWSLICE[,COLSLICE] where each side uses the
// familiar start:stop:step syntax: ":" selects everything, bounds are
// end-exclusive, negative indices count from the end, and the step may be
// negative. When no column slice is given all columns are kept.
//
// Purpose:
//   - Keep sub-selection independent of which function consumes the matrix.
//   - Centralize the index arithmetic so coercion code never open-codes it.
//
// Determinism & Performance:
//   - Parsing is a single pass over the spec string; O(len(spec)).
//   - Applying a spec allocates exactly one output matrix; O(r*c).
package slicespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidSlice is returned for malformed specifications and for
// selections that reduce a matrix to zero rows or columns.
// Callers match it via errors.Is; context is added with %w wrapping.
var ErrInvalidSlice = errors.New("slicespec: invalid slice")

// All is the specification selecting every row and column.
const All = ":"

const (
	rangeSep = ":" // start:stop:step separator
	axisSep  = "," // row spec from column spec
)

// Range is one parsed start:stop:step segment. A nil bound means
// "unspecified" and resolves against the axis length on application,
// mirroring standard slice semantics.
type Range struct {
	Start *int
	Stop  *int
	Step  *int

	// index is set when the segment was a bare integer (no ":"), which
	// selects the single row/column at that position.
	index *int
}

// Spec is a fully parsed ROWSLICE[,COLSLICE] specification.
type Spec struct {
	Row    Range
	Col    Range
	HasCol bool
}

// Parse converts a textual specification into a Spec.
// Stage 1 (Split): separate the row part from the optional column part.
// Stage 2 (Parse): parse each side as a bare index or a ranged segment.
// Stage 3 (Finalize): return the Spec or ErrInvalidSlice naming the input.
// Complexity: O(len(spec)).
func Parse(spec string) (Spec, error) {
	var out Spec
	if spec == "" {
		return out, fmt.Errorf("%w: empty specification", ErrInvalidSlice)
	}

	parts := strings.Split(spec, axisSep)
	if len(parts) > 2 {
		return out, fmt.Errorf("%w: %q has more than two axes", ErrInvalidSlice, spec)
	}

	row, err := parseRange(parts[0])
	if err != nil {
		return out, err
	}
	out.Row = row

	if len(parts) == 2 {
		col, cErr := parseRange(parts[1])
		if cErr != nil {
			return out, cErr
		}
		out.Col = col
		out.HasCol = true
	}

	return out, nil
}

// parseRange parses one start:stop:step segment.
// A segment without ":" is a bare index selecting a single position.
func parseRange(seg string) (Range, error) {
	var r Range
	if !strings.Contains(seg, rangeSep) {
		n, err := strconv.Atoi(strings.TrimSpace(seg))
		if err != nil {
			return r, fmt.Errorf("%w: %q is not an index or range", ErrInvalidSlice, seg)
		}
		r.index = &n

		return r, nil
	}

	fields := strings.Split(seg, rangeSep)
	if len(fields) > 3 {
		return r, fmt.Errorf("%w: %q has more than three bounds", ErrInvalidSlice, seg)
	}

	dst := []**int{&r.Start, &r.Stop, &r.Step}
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue // unspecified bound stays nil
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return r, fmt.Errorf("%w: bound %q is not an integer", ErrInvalidSlice, f)
		}
		*dst[i] = &n
	}

	return r, nil
}

// indices resolves the range against an axis of length n, producing the
// concrete index sequence. Semantics match the standard slice model:
// defaults depend on step sign, negative bounds count from the end, and
// out-of-range bounds clamp rather than fail.
// Complexity: O(selected).
func (r Range) indices(n int) ([]int, error) {
	// Bare index: one position, negative counts from the end.
	if r.index != nil {
		i := *r.index
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: index %d out of range for length %d", ErrInvalidSlice, *r.index, n)
		}

		return []int{i}, nil
	}

	step := 1
	if r.Step != nil {
		step = *r.Step
	}
	if step == 0 {
		return nil, fmt.Errorf("%w: step must be nonzero", ErrInvalidSlice)
	}

	// Defaults depend on direction.
	var start, stop int
	if step > 0 {
		start, stop = 0, n
	} else {
		start, stop = n-1, -1
	}
	if r.Start != nil {
		start = clampBound(*r.Start, n, step)
	}
	if r.Stop != nil {
		stop = clampBound(*r.Stop, n, step)
	}

	var idx []int
	if step > 0 {
		for i := start; i < stop; i += step {
			idx = append(idx, i)
		}
	} else {
		for i := start; i > stop; i += step {
			idx = append(idx, i)
		}
	}

	return idx, nil
}

// clampBound normalizes a possibly negative bound against length n and
// clamps it to the valid window for the given step direction.
func clampBound(b, n, step int) int {
	if b < 0 {
		b += n
	}
	lo, hi := 0, n
	if step < 0 {
		lo, hi = -1, n-1
	}
	if b < lo {
		return lo
	}
	if b > hi {
		return hi
	}

	return b
}

// Apply selects the sub-matrix described by spec from m.
// Stage 1 (Parse): Parse the specification.
// Stage 2 (Resolve): resolve row indices and, if given, column indices.
// Stage 3 (Gather): copy the selected cells into a fresh Dense.
// An empty selection is rejected with ErrInvalidSlice: downstream numeric
// calls cannot operate on a 0-sized matrix.
// Complexity: O(rows*cols of the selection).
func Apply(spec string, m *mat.Dense) (*mat.Dense, error) {
	s, err := Parse(spec)
	if err != nil {
		return nil, err
	}

	return s.Apply(m)
}

// Apply selects the sub-matrix described by the already-parsed Spec.
func (s Spec) Apply(m *mat.Dense) (*mat.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrInvalidSlice)
	}
	r, c := m.Dims()

	rows, err := s.Row.indices(r)
	if err != nil {
		return nil, err
	}

	cols := make([]int, c)
	for j := range cols {
		cols[j] = j
	}
	if s.HasCol {
		cols, err = s.Col.indices(c)
		if err != nil {
			return nil, err
		}
	}

	if len(rows) == 0 || len(cols) == 0 {
		return nil, fmt.Errorf("%w: selection is empty", ErrInvalidSlice)
	}

	out := mat.NewDense(len(rows), len(cols), nil)
	for i, ri := range rows {
		for j, cj := range cols {
			out.Set(i, j, m.At(ri, cj))
		}
	}

	return out, nil
}
