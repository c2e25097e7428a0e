// SPDX-License-Identifier: MIT
// Package funcs: the random.* namespace.
// Every generator accepts the universal seed keyword; a fixed seed makes
// the invocation reproducible, absence draws a fresh source per call.
package funcs

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/coerce"
	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/schema"
)

func randomTable() []*dispatch.Entry {
	return []*dispatch.Entry{
		{
			Name: "random.rand",
			Schema: &schema.CallSchema{
				Name:      "random.rand",
				Pos:       []schema.Param{pp("shape", coerce.IntTuple)},
				Universal: []string{"seed"},
			},
			Syntax: "random.rand ROWS,COLS [seed=N]",
			Doc:    "Matrix of uniform samples from [0,1).",
			Fn: func(pos []any, kw map[string]any) (any, error) {
				r, c, err := shapeArg(pos, 0)
				if err != nil {
					return nil, err
				}
				rng := rngOf(kw)
				out := mat.NewDense(r, c, nil)
				fillWith(out, rng.Float64)
				return out, nil
			},
		},
		{
			Name: "random.randn",
			Schema: &schema.CallSchema{
				Name:      "random.randn",
				Pos:       []schema.Param{pp("shape", coerce.IntTuple)},
				Universal: []string{"seed"},
			},
			Syntax: "random.randn ROWS,COLS [seed=N]",
			Doc:    "Matrix of standard normal samples.",
			Fn: func(pos []any, kw map[string]any) (any, error) {
				r, c, err := shapeArg(pos, 0)
				if err != nil {
					return nil, err
				}
				rng := rngOf(kw)
				out := mat.NewDense(r, c, nil)
				fillWith(out, rng.NormFloat64)
				return out, nil
			},
		},
		{
			Name: "random.randint",
			Schema: &schema.CallSchema{
				Name: "random.randint",
				Pos: []schema.Param{
					pp("low", coerce.Int),
					pp("high", coerce.Int),
					pp("shape", coerce.IntTuple),
				},
				Universal: []string{"seed"},
			},
			Syntax: "random.randint LOW HIGH ROWS,COLS [seed=N]",
			Doc:    "Matrix of integers drawn uniformly from [LOW, HIGH).",
			Fn:     randomRandint,
		},
		{
			Name: "random.choice",
			Schema: &schema.CallSchema{
				Name:      "random.choice",
				Pos:       []schema.Param{pp("m", coerce.Matrix)},
				Kw:        map[string]coerce.Func{"size": coerce.Int, "replace": coerce.BoolStr},
				Universal: []string{"seed"},
			},
			Syntax: "random.choice M [size=N] [replace=BOOL] [seed=N]",
			Doc:    "Sample elements from the flattened matrix, with replacement by default.",
			Fn:     randomChoice,
		},
		{
			Name: "random.shuffle",
			Schema: &schema.CallSchema{
				Name:      "random.shuffle",
				Pos:       posM("m"),
				Universal: []string{"seed"},
			},
			Syntax: "random.shuffle M [seed=N]",
			Doc:    "Shuffle the rows of M in place.",
			Fn:     randomShuffle,
		},
	}
}

// rngOf builds the per-call source; the universal seed keyword pins it.
func rngOf(kw map[string]any) *rand.Rand {
	if v, ok := kw["seed"]; ok {
		return rand.New(rand.NewSource(int64(v.(int))))
	}

	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func fillWith(m *mat.Dense, next func() float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, next())
		}
	}
}

func randomRandint(pos []any, kw map[string]any) (any, error) {
	low, high := intArg(pos, 0), intArg(pos, 1)
	if high <= low {
		return nil, fmt.Errorf("randint wants LOW < HIGH, got [%d, %d)", low, high)
	}
	r, c, err := shapeArg(pos, 2)
	if err != nil {
		return nil, err
	}

	rng := rngOf(kw)
	out := mat.NewDense(r, c, nil)
	span := high - low
	fillWith(out, func() float64 { return float64(low + rng.Intn(span)) })

	return out, nil
}

func randomChoice(pos []any, kw map[string]any) (any, error) {
	flat := flattenDense(denseArg(pos, 0))
	if len(flat) == 0 {
		return nil, fmt.Errorf("choice wants a non-empty matrix")
	}
	size := kwInt(kw, "size", 1)
	if size <= 0 {
		return nil, fmt.Errorf("choice size must be > 0, got %d", size)
	}
	replace := kwBool(kw, "replace", true)
	rng := rngOf(kw)

	if replace {
		out := make([]float64, size)
		for i := range out {
			out[i] = flat[rng.Intn(len(flat))]
		}
		return out, nil
	}

	if size > len(flat) {
		return nil, fmt.Errorf("cannot take %d samples from %d elements without replacement",
			size, len(flat))
	}
	perm := rng.Perm(len(flat))
	out := make([]float64, size)
	for i := 0; i < size; i++ {
		out[i] = flat[perm[i]]
	}

	return out, nil
}

func randomShuffle(pos []any, kw map[string]any) (any, error) {
	m := denseArg(pos, 0)
	r, c := m.Dims()
	rng := rngOf(kw)

	buf := make([]float64, c)
	rng.Shuffle(r, func(i, j int) {
		for k := 0; k < c; k++ {
			buf[k] = m.At(i, k)
			m.Set(i, k, m.At(j, k))
			m.Set(j, k, buf[k])
		}
	})

	// In-place: the dispatcher renders the shuffled argument.
	return nil, nil
}
