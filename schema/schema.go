// SPDX-License-Identifier: MIT
// Package schema describes dispatchable functions and resolves raw command
// tokens against those descriptions.
//
// A CallSchema is a static, data-only record: the ordered positional
// parameter coercers (or one variadic coercer for variable-arity
// functions), the function's own keyword mapping, and the subset of the
// shared universal keyword vocabulary it additionally accepts. The
// vocabulary itself lives here once and is referenced by name-set, never
// duplicated per schema.
//
// Invariant (checked by Validate at table load): a keyword name resolves
// either in the function's own mapping or in its universal set, never
// ambiguously in both.
package schema

import (
	"fmt"

	"github.com/katalvlaran/matcli/coerce"
)

// Param is one declared positional parameter.
type Param struct {
	Name   string
	Coerce coerce.Func
}

// Variadic declares a variable-arity positional segment: the coercer
// receives every remaining token at once. At most one variadic segment is
// supported per schema; a schema declaring both Pos and Variadic is
// rejected by Validate.
type Variadic struct {
	Name   string
	Coerce coerce.VariadicFunc
}

// CallSchema identifies one dispatchable function by its dotted name and
// describes how its tokens become typed arguments.
type CallSchema struct {
	Name      string                 // dotted function name, e.g. "linalg.eig"
	Pos       []Param                // ordered positional parameters
	Optional  int                    // trailing Pos entries that may stay unfilled
	Variadic  *Variadic              // variable-arity segment, exclusive with Pos
	Kw        map[string]coerce.Func // function's own keyword mapping
	Universal []string               // accepted names from the universal vocabulary
}

// UniversalKw is the shared keyword vocabulary: a fixed mapping from
// keyword name to its coercer, shared by every schema that opts in.
var UniversalKw = map[string]coerce.Func{
	"axis":     coerce.Int,
	"keepdims": coerce.BoolStr,
	"ddof":     coerce.Int,
	"dtype":    dtypeCoercer,
	"seed":     coerce.Int,
}

// dtypeCoercer accepts the two supported element types.
func dtypeCoercer(_ *coerce.Context, tok string) (any, error) {
	switch tok {
	case "float", "int":
		return tok, nil
	}

	return nil, fmt.Errorf("%w: dtype %q (want float or int)", coerce.ErrCoercion, tok)
}

// Required returns how many positional parameters must be filled.
func (cs *CallSchema) Required() int {
	return len(cs.Pos) - cs.Optional
}

// lookupKw resolves a keyword name, first in the schema's own mapping,
// then in the universal vocabulary intersected with the accepted set.
func (cs *CallSchema) lookupKw(key string) (coerce.Func, bool) {
	if fn, ok := cs.Kw[key]; ok {
		return fn, true
	}
	for _, name := range cs.Universal {
		if name == key {
			return UniversalKw[name], true
		}
	}

	return nil, false
}

// Validate checks the structural invariants of a schema declaration.
// Stage 1: a variadic schema declares no fixed positional parameters.
// Stage 2: every accepted universal name exists in the vocabulary.
// Stage 3: no keyword name is ambiguously declared both per-function and
// universally.
// Complexity: O(kw + universal).
func (cs *CallSchema) Validate() error {
	if cs.Name == "" {
		return fmt.Errorf("%w: empty name", ErrBadSchema)
	}
	if cs.Variadic != nil && len(cs.Pos) > 0 {
		return fmt.Errorf("%w: %s declares both fixed and variadic positionals", ErrBadSchema, cs.Name)
	}
	if cs.Optional < 0 || cs.Optional > len(cs.Pos) {
		return fmt.Errorf("%w: %s optional count %d out of range", ErrBadSchema, cs.Name, cs.Optional)
	}
	for _, name := range cs.Universal {
		if _, ok := UniversalKw[name]; !ok {
			return fmt.Errorf("%w: %s references unknown universal keyword %q", ErrBadSchema, cs.Name, name)
		}
		if _, ok := cs.Kw[name]; ok {
			return fmt.Errorf("%w: %s declares keyword %q both locally and universally", ErrBadSchema, cs.Name, name)
		}
	}

	return nil
}
