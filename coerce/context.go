// SPDX-License-Identifier: MIT
// Package coerce: shared coercion context (functional options).
// This file defines the Context carried into every coercer together with its
// WithX constructors and documented defaults. The context replaces ambient
// process state: the default slice, the HTTP client used for URL-shaped
// matrix tokens, and the trace logger are all injected explicitly.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: zero-value-free; NewContext always yields a
//     usable Context.
//   - Reusability: fields are unexported; public APIs consume ...Option.
package coerce

import (
	"net/http"

	"go.uber.org/zap"
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultSlice keeps every row and column of a parsed matrix.
	DefaultSlice = ":"

	// fieldSep separates fields inside one row of an inline matrix literal
	// and inside every delimited list token (intlist, boollist, strlist...).
	fieldSep = ","

	// rowSep separates rows of an inline matrix literal. It deliberately
	// matches the flatten-mode output row delimiter so rendered output can
	// be fed back in as input.
	rowSep = ";"
)

// Context carries the cross-cutting inputs coercers need. Construct with
// NewContext; the zero value is not usable.
type Context struct {
	slice  string       // slice applied to every parsed matrix
	client *http.Client // fetches URL-shaped matrix tokens
	log    *zap.Logger  // trace-level coercion decisions
}

// Option mutates a Context during construction.
type Option func(*Context)

// WithSlice sets the default slice specification applied to matrix
// arguments after parsing. The spec is validated lazily on first use;
// callers wanting early validation parse it with slicespec.Parse first.
func WithSlice(spec string) Option {
	return func(c *Context) {
		if spec != "" {
			c.slice = spec
		}
	}
}

// WithHTTPClient overrides the client used to fetch URL matrix tokens.
// Passing nil keeps the default.
func WithHTTPClient(cl *http.Client) Option {
	return func(c *Context) {
		if cl != nil {
			c.client = cl
		}
	}
}

// WithLogger installs a trace logger. Passing nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// NewContext builds a Context from defaults plus the given options.
func NewContext(opts ...Option) *Context {
	c := &Context{
		slice:  DefaultSlice,
		client: http.DefaultClient,
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}

	return c
}
