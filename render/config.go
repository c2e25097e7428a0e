// SPDX-License-Identifier: MIT
// Package render: output configuration.
// This file defines the process-wide render configuration together with
// its documented defaults. The value is constructed once from parsed
// flags (and the optional config file), then treated as read-only by the
// renderer — no ambient mutable global.
package render

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultFieldSep joins fields within one rendered row.
	DefaultFieldSep = ","

	// DefaultRowSep separates rendered rows.
	DefaultRowSep = "\n"

	// FlattenRowSep replaces DefaultRowSep in flatten mode so a whole
	// matrix fits on a single line.
	FlattenRowSep = ";"

	// DefaultRealFmt formats real values.
	DefaultRealFmt = "%g"

	// DefaultComplexFmt formats complex values as real±imagj.
	DefaultComplexFmt = "%g%+gj"

	// DefaultPolyVar is the polynomial variable used when polynomial mode
	// is enabled without an explicit name.
	DefaultPolyVar = "x"
)

// Config is the render configuration: initialized to defaults at process
// start, mutated only during flag parsing, frozen for the single
// resolve→dispatch→render cycle.
type Config struct {
	// Diagnostics.
	Warn  bool // warning output enabled
	Quiet bool // suppress error text (exit code still reports failure)
	Debug bool // trace internal values
	Raise bool // propagate failures instead of converting to an exit code

	// Output shape.
	FieldSep   string   // joins fields within a row
	RowSep     string   // separates rows; ";" in flatten mode
	RealFmt    string   // format string for real values
	ComplexFmt string   // format string for complex values
	Transpose  bool     // transpose-before-render
	Cols       []string // optional column labels, first logical line
	Rows       []string // optional row labels, one per data row
	Corner     string   // corner label, emitted only with Cols and Rows
	PolyVar    string   // polynomial variable; empty disables polynomial mode

	// Coercion default.
	Slice string // default row/column slice applied to matrix arguments
}

// NewConfig returns a Config holding the documented defaults.
func NewConfig() *Config {
	return &Config{
		FieldSep:   DefaultFieldSep,
		RowSep:     DefaultRowSep,
		RealFmt:    DefaultRealFmt,
		ComplexFmt: DefaultComplexFmt,
	}
}
