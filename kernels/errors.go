// SPDX-License-Identifier: MIT
// Package kernels: sentinel error set.
// Kernels return these plain sentinels; facades wrap them with an
// operation tag via kernelErrorf so callers still match with errors.Is.
package kernels

import "errors"

var (
	// ErrNilMatrix indicates that a nil operand was passed to a kernel.
	ErrNilMatrix = errors.New("kernels: nil matrix")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g.
	// elementwise ops on different shapes.
	ErrDimensionMismatch = errors.New("kernels: dimension mismatch")

	// ErrBadAxis indicates a reduction axis outside {0, 1}.
	ErrBadAxis = errors.New("kernels: axis out of range")
)
