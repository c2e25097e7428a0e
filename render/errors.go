// SPDX-License-Identifier: MIT
// Package render: sentinel error set.
package render

import "errors"

// ErrNotTransposable is returned when transpose-before-render is
// requested on a result that exposes no row/column structure to swap.
var ErrNotTransposable = errors.New("render: result is not transposable")
