// SPDX-License-Identifier: MIT
// Package funcs: the stats.* namespace.
// Descriptive statistics over flattened matrices or matrix rows, built on
// gonum/stat and gonum/floats.
package funcs

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/matcli/coerce"
	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/kernels"
	"github.com/katalvlaran/matcli/render"
	"github.com/katalvlaran/matcli/schema"
)

func statsTable() []*dispatch.Entry {
	return []*dispatch.Entry{
		{
			Name: "stats.median",
			Schema: &schema.CallSchema{
				Name:      "stats.median",
				Pos:       posM("m"),
				Universal: []string{"axis"},
			},
			Syntax: "stats.median M [axis=0|1]",
			Doc:    "Median of all elements, or per column/row along an axis.",
			Fn:     statsMedian,
		},
		{
			Name: "stats.percentile",
			Schema: &schema.CallSchema{
				Name:      "stats.percentile",
				Pos:       []schema.Param{pp("m", coerce.Matrix), pp("q", coerce.Float)},
				Universal: []string{"axis"},
			},
			Syntax: "stats.percentile M Q [axis=0|1]",
			Doc:    "Q-th percentile (0..100) with linear interpolation.",
			Fn:     statsPercentile,
		},
		{
			Name:   "stats.corrcoef",
			Schema: &schema.CallSchema{Name: "stats.corrcoef", Pos: posM("m")},
			Syntax: "stats.corrcoef M",
			Doc:    "Pearson correlation matrix between the rows of M.",
			Fn: func(pos []any, _ map[string]any) (any, error) {
				return rowPairwise(denseArg(pos, 0), func(x, y []float64) float64 {
					return stat.Correlation(x, y, nil)
				})
			},
		},
		{
			Name: "stats.cov",
			Schema: &schema.CallSchema{
				Name:      "stats.cov",
				Pos:       posM("m"),
				Universal: []string{"ddof"},
			},
			Syntax: "stats.cov M [ddof=N]",
			Doc:    "Covariance matrix between the rows of M; divisor is n-ddof (default ddof=1).",
			Fn:     statsCov,
		},
		{
			Name: "stats.histogram",
			Schema: &schema.CallSchema{
				Name: "stats.histogram",
				Pos:  posM("m"),
				Kw:   map[string]coerce.Func{"bins": coerce.Int},
			},
			Syntax: "stats.histogram M [bins=N]",
			Doc:    "Histogram of the flattened matrix: counts, then the bin edges.",
			Fn:     statsHistogram,
		},
	}
}

// rowPairwise builds the symmetric matrix of f over all row pairs.
func rowPairwise(m *mat.Dense, f func(x, y []float64) float64) (*mat.Dense, error) {
	r, c := m.Dims()
	if r < 1 || c < 2 {
		return nil, fmt.Errorf("need at least two observations per row, got %dx%d", r, c)
	}

	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			rows[i][j] = m.At(i, j)
		}
	}

	out := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			v := f(rows[i], rows[j])
			out.Set(i, j, v)
			out.Set(j, i, v)
		}
	}

	return out, nil
}

// sortedCopy returns xs sorted ascending without touching the input.
func sortedCopy(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	sort.Float64s(out)

	return out
}

// quantileAt is the linear-interpolation percentile over sorted data.
func quantileAt(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

// perAxis maps f over columns (axis 0) or rows (axis 1).
func perAxis(m *mat.Dense, axis int, f func(xs []float64) float64) (any, error) {
	r, c := m.Dims()
	switch axis {
	case kernels.AxisNone:
		return f(flattenDense(m)), nil
	case 0:
		out := make([]float64, c)
		col := make([]float64, r)
		for j := 0; j < c; j++ {
			for i := 0; i < r; i++ {
				col[i] = m.At(i, j)
			}
			out[j] = f(col)
		}
		return out, nil
	case 1:
		out := make([]float64, r)
		row := make([]float64, c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				row[j] = m.At(i, j)
			}
			out[i] = f(row)
		}
		return out, nil
	}

	return nil, fmt.Errorf("axis must be 0 or 1, got %d", axis)
}

func statsMedian(pos []any, kw map[string]any) (any, error) {
	return perAxis(denseArg(pos, 0), axisOf(kw), func(xs []float64) float64 {
		return quantileAt(sortedCopy(xs), 50)
	})
}

func statsPercentile(pos []any, kw map[string]any) (any, error) {
	q := floatArg(pos, 1)
	if q < 0 || q > 100 {
		return nil, fmt.Errorf("percentile wants 0 <= q <= 100, got %v", q)
	}

	return perAxis(denseArg(pos, 0), axisOf(kw), func(xs []float64) float64 {
		return quantileAt(sortedCopy(xs), q)
	})
}

func statsCov(pos []any, kw map[string]any) (any, error) {
	m := denseArg(pos, 0)
	_, c := m.Dims()
	ddof := kwInt(kw, "ddof", 1)
	if c-ddof <= 0 {
		return nil, fmt.Errorf("covariance needs more than %d observations per row", ddof)
	}

	// gonum's covariance divides by n-1; rescale for other ddof values.
	scale := float64(c-1) / float64(c-ddof)

	return rowPairwise(m, func(x, y []float64) float64 {
		return stat.Covariance(x, y, nil) * scale
	})
}

func statsHistogram(pos []any, kw map[string]any) (any, error) {
	xs := sortedCopy(flattenDense(denseArg(pos, 0)))
	bins := kwInt(kw, "bins", 10)
	if bins <= 0 {
		return nil, fmt.Errorf("bins must be > 0, got %d", bins)
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("histogram wants a non-empty matrix")
	}

	lo, hi := xs[0], xs[len(xs)-1]
	if lo == hi {
		// Degenerate range: widen so every sample lands in one bin span.
		lo -= 0.5
		hi += 0.5
	}
	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)
	// Nudge the top edge so the maximum sample is counted in the last bin.
	edges[bins] = math.Nextafter(edges[bins], math.Inf(1))

	counts := stat.Histogram(nil, edges, xs, nil)
	edges[bins] = hi

	return render.Tuple{counts, edges}, nil
}
