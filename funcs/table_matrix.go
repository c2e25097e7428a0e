// SPDX-License-Identifier: MIT
// Package funcs: the matrix.* namespace.
// Elementwise arithmetic and reductions run on the kernels package;
// construction, structural ops and matrix products use the backend
// directly. Each Entry is one data record: schema, convention, callable.
package funcs

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/coerce"
	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/kernels"
	"github.com/katalvlaran/matcli/schema"
)

func matrixTable() []*dispatch.Entry {
	entries := []*dispatch.Entry{
		{
			Name:   "matrix.add",
			Schema: &schema.CallSchema{Name: "matrix.add", Pos: posM("a", "b")},
			Syntax: "matrix.add A B",
			Doc:    "Elementwise sum of two equally shaped matrices.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return kernels.Add(denseArg(pos, 0), denseArg(pos, 1))
			},
		},
		{
			Name:   "matrix.sub",
			Schema: &schema.CallSchema{Name: "matrix.sub", Pos: posM("a", "b")},
			Syntax: "matrix.sub A B",
			Doc:    "Elementwise difference of two equally shaped matrices.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return kernels.Sub(denseArg(pos, 0), denseArg(pos, 1))
			},
		},
		{
			Name:   "matrix.multiply",
			Schema: &schema.CallSchema{Name: "matrix.multiply", Pos: posM("a", "b")},
			Syntax: "matrix.multiply A B",
			Doc:    "Hadamard (elementwise) product of two equally shaped matrices.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return kernels.Hadamard(denseArg(pos, 0), denseArg(pos, 1))
			},
		},
		{
			Name:   "matrix.divide",
			Schema: &schema.CallSchema{Name: "matrix.divide", Pos: posM("a", "b")},
			Syntax: "matrix.divide A B",
			Doc:    "Elementwise quotient; division by zero follows IEEE-754.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return kernels.Divide(denseArg(pos, 0), denseArg(pos, 1))
			},
		},
		{
			Name:   "matrix.dot",
			Schema: &schema.CallSchema{Name: "matrix.dot", Pos: posM("a", "b")},
			Syntax: "matrix.dot A B",
			Doc:    "Matrix product A·B.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				var out mat.Dense
				out.Mul(denseArg(pos, 0), denseArg(pos, 1))
				return &out, nil
			},
		},
		{
			Name: "matrix.scale",
			Schema: &schema.CallSchema{
				Name: "matrix.scale",
				Pos:  []schema.Param{pp("m", coerce.Matrix), pp("factor", coerce.Float)},
			},
			Syntax: "matrix.scale M FACTOR",
			Doc:    "Multiply every element by a scalar factor.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return kernels.Scale(floatArg(pos, 1), denseArg(pos, 0))
			},
		},
		{
			Name: "matrix.transpose",
			Schema: &schema.CallSchema{
				Name: "matrix.transpose",
				Pos:  posM("m"),
				Kw:   map[string]coerce.Func{"axes": coerce.IntList},
			},
			Syntax: "matrix.transpose M [axes=0,1]",
			Doc:    "Transpose M; axes=0,1 keeps the original orientation.",
			Fn:     matrixTranspose,
		},
		{
			Name: "matrix.reshape",
			Schema: &schema.CallSchema{
				Name: "matrix.reshape",
				Pos:  []schema.Param{pp("m", coerce.Matrix), pp("shape", coerce.IntTuple)},
			},
			Syntax: "matrix.reshape M ROWS,COLS",
			Doc:    "Reinterpret M row-major under a new shape with the same element count.",
			Fn:     matrixReshape,
		},
		{
			Name:   "matrix.flatten",
			Schema: &schema.CallSchema{Name: "matrix.flatten", Pos: posM("m")},
			Syntax: "matrix.flatten M",
			Doc:    "All elements of M as a single row, row-major.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return flattenDense(denseArg(pos, 0)), nil
			},
		},
		{
			Name:   "matrix.trace",
			Schema: &schema.CallSchema{Name: "matrix.trace", Pos: posM("m")},
			Syntax: "matrix.trace M",
			Doc:    "Sum of the main diagonal of a square matrix.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return mat.Trace(denseArg(pos, 0)), nil
			},
		},
		{
			Name:   "matrix.diag",
			Schema: &schema.CallSchema{Name: "matrix.diag", Pos: posM("m")},
			Syntax: "matrix.diag M",
			Doc:    "Diagonal of a matrix, or the diagonal matrix built from a vector.",
			Fn:     matrixDiag,
		},
		{
			Name: "matrix.eye",
			Schema: &schema.CallSchema{
				Name:      "matrix.eye",
				Pos:       []schema.Param{pp("n", coerce.Int)},
				Kw:        map[string]coerce.Func{"m": coerce.Int, "k": coerce.Int},
				Universal: []string{"dtype"},
			},
			Syntax: "matrix.eye N [m=COLS] [k=OFFSET]",
			Doc:    "N×m matrix with ones on the k-th diagonal.",
			Fn:     matrixEye,
		},
		{
			Name: "matrix.identity",
			Schema: &schema.CallSchema{
				Name:      "matrix.identity",
				Pos:       []schema.Param{pp("n", coerce.Int)},
				Universal: []string{"dtype"},
			},
			Syntax: "matrix.identity N",
			Doc:    "N×N identity matrix.",
			Fn: func(pos []any, kw map[string]any) (any, error) {
				n := intArg(pos, 0)
				if n <= 0 {
					return nil, fmt.Errorf("identity size must be > 0, got %d", n)
				}
				out := mat.NewDense(n, n, nil)
				for i := 0; i < n; i++ {
					out.Set(i, i, 1)
				}
				return applyDType(out, kw), nil
			},
		},
		{
			Name: "matrix.zeros",
			Schema: &schema.CallSchema{
				Name:      "matrix.zeros",
				Pos:       []schema.Param{pp("shape", coerce.IntTuple)},
				Universal: []string{"dtype"},
			},
			Syntax: "matrix.zeros ROWS,COLS",
			Doc:    "Matrix of zeros with the given shape.",
			Fn: func(pos []any, kw map[string]any) (any, error) {
				r, c, err := shapeArg(pos, 0)
				if err != nil {
					return nil, err
				}
				return applyDType(mat.NewDense(r, c, nil), kw), nil
			},
		},
		{
			Name: "matrix.ones",
			Schema: &schema.CallSchema{
				Name:      "matrix.ones",
				Pos:       []schema.Param{pp("shape", coerce.IntTuple)},
				Universal: []string{"dtype"},
			},
			Syntax: "matrix.ones ROWS,COLS",
			Doc:    "Matrix of ones with the given shape.",
			Fn: func(pos []any, kw map[string]any) (any, error) {
				r, c, err := shapeArg(pos, 0)
				if err != nil {
					return nil, err
				}
				out := mat.NewDense(r, c, nil)
				fillDense(out, 1)
				return applyDType(out, kw), nil
			},
		},
		{
			Name: "matrix.full",
			Schema: &schema.CallSchema{
				Name:      "matrix.full",
				Pos:       []schema.Param{pp("shape", coerce.IntTuple), pp("value", coerce.WeakComplex)},
				Universal: []string{"dtype"},
			},
			Syntax: "matrix.full ROWS,COLS VALUE",
			Doc:    "Matrix filled with one value; complex fill yields a complex matrix.",
			Fn:     matrixFull,
		},
		{
			Name: "matrix.power",
			Schema: &schema.CallSchema{
				Name: "matrix.power",
				Pos:  []schema.Param{pp("m", coerce.Matrix), pp("n", coerce.Int)},
			},
			Syntax: "matrix.power M N",
			Doc:    "Elementwise N-th power of M.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				m, n := denseArg(pos, 0), intArg(pos, 1)
				r, c := m.Dims()
				out := mat.NewDense(r, c, nil)
				for i := 0; i < r; i++ {
					for j := 0; j < c; j++ {
						out.Set(i, j, math.Pow(m.At(i, j), float64(n)))
					}
				}
				return out, nil
			},
		},
		{
			Name: "matrix.repeat",
			Schema: &schema.CallSchema{
				Name:      "matrix.repeat",
				Pos:       []schema.Param{pp("m", coerce.Matrix), pp("repeats", coerce.ArrayOrInt)},
				Universal: []string{"axis"},
			},
			Syntax: "matrix.repeat M REPEATS [axis=0|1]",
			Doc:    "Repeat elements (flattened) or whole rows/columns along an axis.",
			Fn:     matrixRepeat,
		},
		{
			Name: "matrix.sort",
			Schema: &schema.CallSchema{
				Name:      "matrix.sort",
				Pos:       posM("m"),
				Universal: []string{"axis"},
			},
			Syntax: "matrix.sort M [axis=0|1]",
			Doc:    "Sort rows (default) or columns ascending, in place.",
			Fn:     matrixSort,
		},
		{
			Name: "matrix.compress",
			Schema: &schema.CallSchema{
				Name:      "matrix.compress",
				Pos:       []schema.Param{pp("mask", coerce.BoolList), pp("m", coerce.Matrix)},
				Universal: []string{"axis"},
			},
			Syntax: "matrix.compress MASK M [axis=0|1]",
			Doc:    "Select flattened elements, rows or columns where MASK is true.",
			Fn:     matrixCompress,
		},
		{
			Name: "matrix.pad",
			Schema: &schema.CallSchema{
				Name: "matrix.pad",
				Pos:  []schema.Param{pp("m", coerce.Matrix), pp("widths", coerce.TupleList)},
				Kw:   map[string]coerce.Func{"value": coerce.Float},
			},
			Syntax: "matrix.pad M TOP,BOTTOM;LEFT,RIGHT [value=V]",
			Doc:    "Surround M with constant padding; one tuple pads both axes alike.",
			Fn:     matrixPad,
		},
	}

	for _, stack := range []struct {
		name, doc string
		vertical  bool
	}{
		{"matrix.vstack", "Stack matrices vertically (equal column counts).", true},
		{"matrix.hstack", "Stack matrices horizontally (equal row counts).", false},
		{"matrix.concat", "Alias of matrix.vstack.", true},
	} {
		stack := stack
		entries = append(entries, &dispatch.Entry{
			Name: stack.name,
			Schema: &schema.CallSchema{
				Name:     stack.name,
				Variadic: &schema.Variadic{Name: "matrices", Coerce: coerce.MatrixList},
			},
			Kind:   dispatch.KindDirect,
			Syntax: stack.name + " M [M ...]",
			Doc:    stack.doc,
			Fn: func(pos []any, _ map[string]any) (any, error) {
				ms, err := matrixList(pos)
				if err != nil {
					return nil, err
				}
				return stackDense(ms, stack.vertical)
			},
		})
	}

	for _, red := range []struct {
		name, doc string
		op        kernels.ReduceOp
		ddof      bool
	}{
		{"matrix.sum", "Sum of elements, optionally along an axis.", kernels.OpSum, false},
		{"matrix.mean", "Arithmetic mean of elements, optionally along an axis.", kernels.OpMean, false},
		{"matrix.min", "Smallest element, optionally along an axis.", kernels.OpMin, false},
		{"matrix.max", "Largest element, optionally along an axis.", kernels.OpMax, false},
		{"matrix.prod", "Product of elements, optionally along an axis.", kernels.OpProd, false},
		{"matrix.std", "Standard deviation; divisor is n-ddof.", kernels.OpStd, true},
		{"matrix.var", "Variance; divisor is n-ddof.", kernels.OpVar, true},
	} {
		red := red
		universal := []string{"axis", "keepdims"}
		syntax := red.name + " M [axis=0|1] [keepdims=BOOL]"
		if red.ddof {
			universal = append(universal, "ddof")
			syntax += " [ddof=N]"
		}
		entries = append(entries, &dispatch.Entry{
			Name:   red.name,
			Schema: &schema.CallSchema{Name: red.name, Pos: posM("m"), Universal: universal},
			Syntax: syntax,
			Doc:    red.doc,
			Fn: func(pos []any, kw map[string]any) (any, error) {
				return kernels.Reduce(denseArg(pos, 0), red.op, axisOf(kw),
					kwBool(kw, "keepdims", false), kwInt(kw, "ddof", 0))
			},
		})
	}

	return entries
}

// shapeArg reads an inttuple positional as a ROWS,COLS shape.
func shapeArg(pos []any, i int) (r, c int, err error) {
	t := pos[i].([]int)
	switch len(t) {
	case 1:
		r, c = 1, t[0]
	case 2:
		r, c = t[0], t[1]
	default:
		return 0, 0, fmt.Errorf("shape wants ROWS,COLS, got %d values", len(t))
	}
	if r <= 0 || c <= 0 {
		return 0, 0, fmt.Errorf("shape dimensions must be > 0, got %dx%d", r, c)
	}

	return r, c, nil
}

func fillDense(m *mat.Dense, v float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, v)
		}
	}
}

func matrixTranspose(pos []any, kw map[string]any) (any, error) {
	m := denseArg(pos, 0)
	if axes, ok := kw["axes"]; ok {
		a := axes.([]int)
		switch {
		case len(a) == 2 && a[0] == 0 && a[1] == 1:
			return m, nil // identity permutation
		case len(a) == 2 && a[0] == 1 && a[1] == 0:
			// fall through to the transpose below
		default:
			return nil, fmt.Errorf("axes must be a permutation of 0,1, got %v", a)
		}
	}

	return mat.DenseCopyOf(m.T()), nil
}

func matrixReshape(pos []any, _ map[string]any) (any, error) {
	m := denseArg(pos, 0)
	r, c, err := shapeArg(pos, 1)
	if err != nil {
		return nil, err
	}
	mr, mc := m.Dims()
	if mr*mc != r*c {
		return nil, fmt.Errorf("cannot reshape %dx%d into %dx%d", mr, mc, r, c)
	}

	return mat.NewDense(r, c, flattenDense(m)), nil
}

func matrixDiag(pos []any, _ map[string]any) (any, error) {
	m := denseArg(pos, 0)
	r, c := m.Dims()

	// Vector input builds the diagonal matrix.
	if r == 1 || c == 1 {
		v := flattenDense(m)
		out := mat.NewDense(len(v), len(v), nil)
		for i, x := range v {
			out.Set(i, i, x)
		}
		return out, nil
	}

	// Matrix input extracts the main diagonal.
	n := r
	if c < n {
		n = c
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = m.At(i, i)
	}

	return out, nil
}

func matrixEye(pos []any, kw map[string]any) (any, error) {
	n := intArg(pos, 0)
	if n <= 0 {
		return nil, fmt.Errorf("eye size must be > 0, got %d", n)
	}
	cols := kwInt(kw, "m", n)
	if cols <= 0 {
		return nil, fmt.Errorf("eye column count must be > 0, got %d", cols)
	}
	k := kwInt(kw, "k", 0)

	out := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		j := i + k
		if j >= 0 && j < cols {
			out.Set(i, j, 1)
		}
	}

	return applyDType(out, kw), nil
}

func matrixFull(pos []any, kw map[string]any) (any, error) {
	r, c, err := shapeArg(pos, 0)
	if err != nil {
		return nil, err
	}
	v := pos[1].(complex128)
	if coerce.IsComplexNaN(v) {
		return nil, fmt.Errorf("full wants a numeric fill value")
	}

	if imag(v) == 0 {
		out := mat.NewDense(r, c, nil)
		fillDense(out, real(v))
		return applyDType(out, kw), nil
	}

	data := make([]complex128, r*c)
	for i := range data {
		data[i] = v
	}

	return mat.NewCDense(r, c, data), nil
}

func matrixRepeat(pos []any, kw map[string]any) (any, error) {
	m := denseArg(pos, 0)
	r, c := m.Dims()
	flat := flattenDense(m)
	axis := axisOf(kw)

	switch reps := pos[1].(type) {
	case int:
		if reps <= 0 {
			return nil, fmt.Errorf("repeats must be > 0, got %d", reps)
		}
		switch axis {
		case kernels.AxisNone:
			out := make([]float64, 0, len(flat)*reps)
			for _, v := range flat {
				for k := 0; k < reps; k++ {
					out = append(out, v)
				}
			}
			return out, nil
		case 0:
			out := mat.NewDense(r*reps, c, nil)
			for i := 0; i < r; i++ {
				for k := 0; k < reps; k++ {
					for j := 0; j < c; j++ {
						out.Set(i*reps+k, j, m.At(i, j))
					}
				}
			}
			return out, nil
		case 1:
			out := mat.NewDense(r, c*reps, nil)
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					for k := 0; k < reps; k++ {
						out.Set(i, j*reps+k, m.At(i, j))
					}
				}
			}
			return out, nil
		}
		return nil, fmt.Errorf("axis must be 0 or 1, got %d", axis)

	case []float64:
		// Per-element counts over the flattened matrix.
		if len(reps) != len(flat) {
			return nil, fmt.Errorf("repeat counts: want %d values, got %d", len(flat), len(reps))
		}
		var out []float64
		for i, v := range flat {
			n := int(reps[i])
			if n < 0 {
				return nil, fmt.Errorf("repeat count must be >= 0, got %d", n)
			}
			for k := 0; k < n; k++ {
				out = append(out, v)
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("unexpected repeats argument %T", pos[1])
}

func matrixSort(pos []any, kw map[string]any) (any, error) {
	m := denseArg(pos, 0)
	r, c := m.Dims()
	axis := axisOf(kw)
	if axis == kernels.AxisNone {
		axis = 1 // rows by default
	}

	switch axis {
	case 1:
		buf := make([]float64, c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				buf[j] = m.At(i, j)
			}
			sort.Float64s(buf)
			for j := 0; j < c; j++ {
				m.Set(i, j, buf[j])
			}
		}
	case 0:
		buf := make([]float64, r)
		for j := 0; j < c; j++ {
			for i := 0; i < r; i++ {
				buf[i] = m.At(i, j)
			}
			sort.Float64s(buf)
			for i := 0; i < r; i++ {
				m.Set(i, j, buf[i])
			}
		}
	default:
		return nil, fmt.Errorf("axis must be 0 or 1, got %d", axis)
	}

	// In-place mutation: no return value, the dispatcher renders the
	// mutated argument.
	return nil, nil
}

func matrixCompress(pos []any, kw map[string]any) (any, error) {
	mask := pos[0].([]bool)
	m := denseArg(pos, 1)
	r, c := m.Dims()

	switch axisOf(kw) {
	case kernels.AxisNone:
		flat := flattenDense(m)
		var out []float64
		for i, keep := range mask {
			if i >= len(flat) {
				break
			}
			if keep {
				out = append(out, flat[i])
			}
		}
		return out, nil
	case 0:
		var rows []int
		for i, keep := range mask {
			if i >= r {
				break
			}
			if keep {
				rows = append(rows, i)
			}
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("mask selects no rows")
		}
		out := mat.NewDense(len(rows), c, nil)
		for oi, i := range rows {
			for j := 0; j < c; j++ {
				out.Set(oi, j, m.At(i, j))
			}
		}
		return out, nil
	case 1:
		var cols []int
		for j, keep := range mask {
			if j >= c {
				break
			}
			if keep {
				cols = append(cols, j)
			}
		}
		if len(cols) == 0 {
			return nil, fmt.Errorf("mask selects no columns")
		}
		out := mat.NewDense(r, len(cols), nil)
		for i := 0; i < r; i++ {
			for oj, j := range cols {
				out.Set(i, oj, m.At(i, j))
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("axis must be 0 or 1")
}

func matrixPad(pos []any, kw map[string]any) (any, error) {
	m := denseArg(pos, 0)
	widths := pos[1].([][]int)
	fill := kwFloat(kw, "value", 0)

	var top, bottom, left, right int
	switch len(widths) {
	case 1:
		if len(widths[0]) != 2 {
			return nil, fmt.Errorf("pad widths want BEFORE,AFTER pairs, got %v", widths[0])
		}
		top, bottom = widths[0][0], widths[0][1]
		left, right = widths[0][0], widths[0][1]
	case 2:
		for _, w := range widths {
			if len(w) != 2 {
				return nil, fmt.Errorf("pad widths want BEFORE,AFTER pairs, got %v", w)
			}
		}
		top, bottom = widths[0][0], widths[0][1]
		left, right = widths[1][0], widths[1][1]
	default:
		return nil, fmt.Errorf("pad wants one or two width pairs, got %d", len(widths))
	}
	if top < 0 || bottom < 0 || left < 0 || right < 0 {
		return nil, fmt.Errorf("pad widths must be >= 0")
	}

	r, c := m.Dims()
	out := mat.NewDense(r+top+bottom, c+left+right, nil)
	if fill != 0 {
		fillDense(out, fill)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i+top, j+left, m.At(i, j))
		}
	}

	return out, nil
}

// stackDense concatenates matrices vertically or horizontally.
func stackDense(ms []*mat.Dense, vertical bool) (*mat.Dense, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("need at least one matrix to stack")
	}

	r0, c0 := ms[0].Dims()
	totalR, totalC := r0, c0
	for _, m := range ms[1:] {
		r, c := m.Dims()
		if vertical {
			if c != c0 {
				return nil, fmt.Errorf("vstack: column counts differ (%d vs %d)", c0, c)
			}
			totalR += r
		} else {
			if r != r0 {
				return nil, fmt.Errorf("hstack: row counts differ (%d vs %d)", r0, r)
			}
			totalC += c
		}
	}
	if vertical {
		totalC = c0
	} else {
		totalR = r0
	}

	out := mat.NewDense(totalR, totalC, nil)
	offR, offC := 0, 0
	for _, m := range ms {
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				out.Set(offR+i, offC+j, m.At(i, j))
			}
		}
		if vertical {
			offR += r
		} else {
			offC += c
		}
	}

	return out, nil
}
