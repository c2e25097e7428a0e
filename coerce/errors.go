// SPDX-License-Identifier: MIT
// Package coerce: sentinel error set.
// This file defines ONLY the package-level sentinel errors used across the
// coercer library. Every failure a coercer can produce matches ErrCoercion
// via errors.Is; the narrower sentinels below additionally identify the
// token family that failed. Wrap with fmt.Errorf("ctx: %w", ErrX) where
// extra context is essential.
package coerce

import (
	"errors"
	"fmt"
)

// ErrCoercion is the root of the coercion failure family: a token cannot be
// converted to the type a parameter requires. All narrower sentinels in this
// package wrap it, so errors.Is(err, ErrCoercion) matches any of them.
var ErrCoercion = errors.New("coerce: cannot convert token")

var (
	// ErrInvalidMatrix is returned when a token survives none of the matrix
	// fallback stages (inline literal, lenient literal, file path, URL).
	ErrInvalidMatrix = fmt.Errorf("%w: invalid matrix", ErrCoercion)

	// ErrInvalidInt is returned when an integer field does not parse.
	ErrInvalidInt = fmt.Errorf("%w: invalid integer", ErrCoercion)

	// ErrInvalidNumber is returned when a plain floating-point field does
	// not parse.
	ErrInvalidNumber = fmt.Errorf("%w: invalid number", ErrCoercion)
)
