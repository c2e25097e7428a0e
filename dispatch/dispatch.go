// SPDX-License-Identifier: MIT
// Package dispatch resolves validated dotted function names against a
// static registry of typed callables and invokes them.
//
// The registry replaces open-ended reflection into the numeric library:
// every supported dotted name maps to one Entry holding its call schema,
// calling convention and a concrete Go callable. A name absent from the
// registry is rejected at lookup time.
//
// Calling conventions:
//   - KindStandard passes the resolved positional list and keyword map
//     through to the callable as-is.
//   - KindDirect passes the positional list as a single argument (the
//     callable receives one element holding the whole list); used by
//     variable-arity functions such as the stackers.
//
// Failure capture: any error returned by the callable, and any panic it
// raises (the numeric backend panics on shape violations), is converted
// to ErrInvocation carrying the original message.
package dispatch

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/matcli/schema"
)

var (
	// ErrFunctionNotFound is returned when a dotted name does not resolve
	// in the registry.
	ErrFunctionNotFound = errors.New("dispatch: function not found")

	// ErrInvocation is returned when the resolved callable itself failed,
	// wrapping the original message.
	ErrInvocation = errors.New("dispatch: invocation failed")
)

// Kind selects the calling convention for an Entry.
type Kind int

const (
	// KindStandard calls with positional and keyword arguments as resolved.
	KindStandard Kind = iota

	// KindDirect calls with one argument: the whole positional list.
	KindDirect
)

// Callable is a registered numeric-library function. Implementations
// type-assert their arguments; the resolver guarantees the asserted types
// match the entry's schema.
type Callable func(pos []any, kw map[string]any) (any, error)

// Entry binds one dotted name to its schema, convention, callable and
// user-facing documentation.
type Entry struct {
	Name   string
	Schema *schema.CallSchema
	Kind   Kind
	Fn     Callable
	Syntax string // one-line calling syntax for help output
	Doc    string // short description for help output
}

// Registry is the immutable name → Entry mapping, loaded once at process
// start.
type Registry map[string]*Entry

// Lookup resolves a dotted name. The boolean follows the comma-ok idiom;
// use Resolve for the error-carrying form.
func (r Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r[name]

	return e, ok
}

// Resolve resolves a dotted name or fails with ErrFunctionNotFound.
func (r Registry) Resolve(name string) (*Entry, error) {
	e, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, name)
	}

	return e, nil
}

// Names returns every registered dotted name in lexical order, for help
// and documentation generation.
func (r Registry) Names() []string {
	out := make([]string, 0, len(r))
	for name := range r {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Validate checks every entry's schema invariants. Called once when the
// table is assembled; a failure is a programmer error in the table.
func (r Registry) Validate() error {
	for name, e := range r {
		if e.Fn == nil {
			return fmt.Errorf("%w: %s has no callable", schema.ErrBadSchema, name)
		}
		if e.Schema == nil {
			return fmt.Errorf("%w: %s has no schema", schema.ErrBadSchema, name)
		}
		if err := e.Schema.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Invoke calls the entry's callable under the entry's convention and
// captures the outcome.
// Stage 1 (Convention): choose and trace the call shape.
// Stage 2 (Invoke): run the callable with panic capture.
// Stage 3 (Finalize): apply the void-return rule — a callable that
// returns nothing after receiving at least one positional argument is
// treated as an in-place mutation, and the (now-mutated) first positional
// argument becomes the result.
func Invoke(e *Entry, args *schema.Resolved, log *zap.Logger) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			// The numeric backend panics on shape violations; fold the
			// panic into the invocation failure taxonomy.
			result = nil
			err = fmt.Errorf("%w: %s: %v", ErrInvocation, e.Name, rec)
		}
	}()

	pos, kw := args.Pos, args.Kw
	switch {
	case e.Kind == KindDirect:
		log.Debug("invoke direct", zap.String("fn", e.Name), zap.Int("pos", len(pos)))
	case len(pos) > 0 && len(kw) > 0:
		log.Debug("invoke positional+keyword", zap.String("fn", e.Name))
	case len(pos) > 0:
		log.Debug("invoke positional", zap.String("fn", e.Name))
	case len(kw) > 0:
		log.Debug("invoke keyword", zap.String("fn", e.Name))
	default:
		log.Debug("invoke empty", zap.String("fn", e.Name))
	}

	if e.Kind == KindDirect {
		result, err = e.Fn([]any{pos}, kw)
	} else {
		result, err = e.Fn(pos, kw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvocation, e.Name, err)
	}

	if result == nil && len(pos) > 0 {
		log.Debug("void return, rendering mutated first argument", zap.String("fn", e.Name))
		result = pos[0]
	}

	return result, nil
}
