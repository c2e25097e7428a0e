// SPDX-License-Identifier: MIT
// Package schema: sentinel error set.
// Arity/shape mismatches between supplied tokens and a call schema. All
// resolver failures match one of these via errors.Is; coercion failures
// pass through from the coerce package unchanged.
package schema

import "errors"

var (
	// ErrUnknownArgument is returned for a keyword token whose key is in
	// neither the schema's own keyword mapping nor its accepted universal
	// set, regardless of whether the value side is well-typed.
	ErrUnknownArgument = errors.New("schema: unknown keyword argument")

	// ErrTooManyPositional is returned when more positional tokens arrive
	// than the schema declares parameters.
	ErrTooManyPositional = errors.New("schema: too many positional arguments")

	// ErrMissingArgument is returned when, after all tokens are consumed,
	// a required positional parameter is still unfilled. The wrapped
	// message names the next unfilled parameter.
	ErrMissingArgument = errors.New("schema: missing required argument")

	// ErrBadSchema marks an invalid schema declaration (ambiguous keyword,
	// unknown universal reference). It is a programmer error surfaced by
	// table validation at load time, never by steady-state resolution.
	ErrBadSchema = errors.New("schema: invalid call schema")
)
