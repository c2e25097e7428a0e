// SPDX-License-Identifier: MIT
// Package funcs holds the function schema table: the static registry
// binding every supported dotted name to its call schema and a concrete
// callable over the numeric backend.
//
// Design:
//   - The table is data, not logic: each table_*.go file contributes one
//     namespace of Entry records; this file only assembles and validates.
//   - The registry is assembled once and is immutable thereafter.
//   - Wrappers stay thin: argument plumbing lives in the helpers below,
//     numeric work lives in gonum and the kernels package.
package funcs

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/coerce"
	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/kernels"
	"github.com/katalvlaran/matcli/schema"
)

var (
	registryOnce sync.Once
	registry     dispatch.Registry
)

// Registry returns the immutable function table, assembling it on first
// use. An invalid table declaration is a programmer error and panics at
// startup rather than surfacing per-invocation.
func Registry() dispatch.Registry {
	registryOnce.Do(func() {
		registry = make(dispatch.Registry)
		for _, group := range [][]*dispatch.Entry{
			matrixTable(),
			linalgTable(),
			polyTable(),
			randomTable(),
			statsTable(),
			fftTable(),
		} {
			for _, e := range group {
				if _, dup := registry[e.Name]; dup {
					panic(fmt.Sprintf("funcs: duplicate registry name %q", e.Name))
				}
				registry[e.Name] = e
			}
		}
		if err := registry.Validate(); err != nil {
			panic(err)
		}
	})

	return registry
}

// ---------- schema declaration helpers (table files only) ----------

// posM declares positional matrix parameters with the given names.
func posM(names ...string) []schema.Param {
	out := make([]schema.Param, len(names))
	for i, n := range names {
		out[i] = schema.Param{Name: n, Coerce: coerce.Matrix}
	}

	return out
}

// pp declares one positional parameter.
func pp(name string, fn coerce.Func) schema.Param {
	return schema.Param{Name: name, Coerce: fn}
}

// ---------- argument accessors (wrapper bodies only) ----------
//
// The resolver guarantees the asserted types match the schema, so the
// accessors assert directly; a mismatch is a table bug and surfaces as a
// captured invocation failure.

func denseArg(pos []any, i int) *mat.Dense {
	return pos[i].(*mat.Dense)
}

func intArg(pos []any, i int) int {
	return pos[i].(int)
}

func floatArg(pos []any, i int) float64 {
	return pos[i].(float64)
}

// matrixList unwraps the direct calling convention down to the coerced
// matrix list: under KindDirect the callable receives the whole
// positional list as its single argument, and the variadic resolver has
// already aggregated the tokens into one []*mat.Dense inside it.
func matrixList(pos []any) ([]*mat.Dense, error) {
	if len(pos) != 1 {
		return nil, fmt.Errorf("expected one aggregated argument, got %d", len(pos))
	}
	switch v := pos[0].(type) {
	case []any:
		return matrixList(v)
	case []*mat.Dense:
		return v, nil
	}

	return nil, fmt.Errorf("unexpected aggregate %T", pos[0])
}

func kwInt(kw map[string]any, key string, def int) int {
	if v, ok := kw[key]; ok {
		return v.(int)
	}

	return def
}

func kwFloat(kw map[string]any, key string, def float64) float64 {
	if v, ok := kw[key]; ok {
		return v.(float64)
	}

	return def
}

func kwBool(kw map[string]any, key string, def bool) bool {
	if v, ok := kw[key]; ok {
		return v.(bool)
	}

	return def
}

// axisOf reads the universal axis keyword; absent means full reduction.
func axisOf(kw map[string]any) int {
	return kwInt(kw, "axis", kernels.AxisNone)
}

// applyDType honors the universal dtype keyword on freshly created
// matrices: "int" rounds every element half-away-from-zero before the
// value reaches the renderer. "float" (and absence) is the identity.
func applyDType(m *mat.Dense, kw map[string]any) *mat.Dense {
	if v, ok := kw["dtype"]; !ok || v.(string) != "int" {
		return m
	}
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, math.Round(m.At(i, j)))
		}
	}

	return m
}

// flattenDense copies m row-major into one slice.
func flattenDense(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}

	return out
}
