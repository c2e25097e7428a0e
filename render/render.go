// SPDX-License-Identifier: MIT
// Package render converts heterogeneous invocation results back to
// delimited text.
//
// Purpose:
//   - One renderer for every result shape the dispatcher can produce:
//     nothing, tuple, sequence-of-rows (real or complex), scalar, text,
//     or an opaque matrix-like object.
//   - Honor the frozen render configuration: field/row delimiters,
//     numeric formats, transpose-before-render, row/column decorations,
//     and the optional polynomial mode.
//
// Rendering rules (fixed):
//   - nil produces no output.
//   - A Tuple renders each element in turn; no separator is injected by
//     this layer beyond what each element's own rendering produces.
//   - Rows print fields joined by the field delimiter and rows joined by
//     the row delimiter (";" in flatten mode), with reals through the
//     real format, complexes through the complex format, booleans as 0/1.
//   - A scalar string prints verbatim.
//   - Opaque matrix-likes are converted to rows and recursed; a transpose
//     request on a result with no row/column structure fails with
//     ErrNotTransposable.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Tuple is an ordered multi-result value (decompositions return these).
type Tuple []any

// floatRows is the row/column view an opaque real matrix must expose.
type floatRows interface {
	Dims() (r, c int)
	At(i, j int) float64
}

// complexRows is the row/column view an opaque complex matrix must expose.
type complexRows interface {
	Dims() (r, c int)
	At(i, j int) complex128
}

// Renderer prints invocation results to one output stream under a frozen
// configuration.
type Renderer struct {
	w   io.Writer
	cfg *Config
	log *zap.Logger
}

// New builds a Renderer. A nil logger is replaced with a no-op one.
func New(w io.Writer, cfg *Config, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Renderer{w: w, cfg: cfg, log: log}
}

// Render prints v according to the configured rules.
func (r *Renderer) Render(v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case Tuple:
		r.log.Debug("render tuple", zap.Int("elements", len(t)))
		for _, el := range t {
			if err := r.Render(el); err != nil {
				return err
			}
		}
		return nil
	case string:
		_, err := fmt.Fprintln(r.w, t)
		return err
	case float64:
		return r.line(r.formatFloat(t))
	case complex128:
		return r.line(r.formatComplex(t))
	case bool:
		return r.line(formatBool(t))
	case int:
		return r.line(strconv.Itoa(t))
	case []float64:
		return r.renderFloatRows([][]float64{t})
	case []int:
		return r.renderIntRow(t)
	case []bool:
		return r.renderBoolRow(t)
	case []complex128:
		return r.renderComplexRows([][]complex128{t})
	case [][]float64:
		return r.renderFloatRows(t)
	case [][]complex128:
		return r.renderComplexRows(t)
	case floatRows:
		return r.renderFloatRows(r.extractFloat(t))
	case complexRows:
		return r.renderComplexRows(r.extractComplex(t))
	default:
		if r.cfg.Transpose {
			return fmt.Errorf("%w: %T", ErrNotTransposable, v)
		}
		_, err := fmt.Fprintln(r.w, v) // default text form
		return err
	}
}

// line writes one single-field row.
func (r *Renderer) line(s string) error {
	_, err := fmt.Fprint(r.w, s+"\n")

	return err
}

// extractFloat converts an opaque real matrix into nested rows, applying
// the transpose flag by index swap.
func (r *Renderer) extractFloat(m floatRows) [][]float64 {
	rows, cols := m.Dims()
	at := m.At
	if r.cfg.Transpose {
		rows, cols = cols, rows
		at = func(i, j int) float64 { return m.At(j, i) }
	}

	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = at(i, j)
		}
	}

	return out
}

// extractComplex mirrors extractFloat for complex matrices.
func (r *Renderer) extractComplex(m complexRows) [][]complex128 {
	rows, cols := m.Dims()
	at := m.At
	if r.cfg.Transpose {
		rows, cols = cols, rows
		at = func(i, j int) complex128 { return m.At(j, i) }
	}

	out := make([][]complex128, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]complex128, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = at(i, j)
		}
	}

	return out
}

func (r *Renderer) renderFloatRows(rows [][]float64) error {
	if r.cfg.PolyVar != "" {
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = r.polyLine(toComplexRow(row))
		}
		return r.writeLines(lines)
	}

	fields := make([][]string, len(rows))
	for i, row := range rows {
		fields[i] = make([]string, len(row))
		for j, v := range row {
			fields[i][j] = r.formatFloat(v)
		}
	}

	return r.writeRows(fields)
}

func (r *Renderer) renderComplexRows(rows [][]complex128) error {
	if r.cfg.PolyVar != "" {
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = r.polyLine(row)
		}
		return r.writeLines(lines)
	}

	fields := make([][]string, len(rows))
	for i, row := range rows {
		fields[i] = make([]string, len(row))
		for j, v := range row {
			fields[i][j] = r.formatComplex(v)
		}
	}

	return r.writeRows(fields)
}

func (r *Renderer) renderIntRow(row []int) error {
	fields := make([]string, len(row))
	for j, v := range row {
		fields[j] = strconv.Itoa(v)
	}

	return r.writeRows([][]string{fields})
}

func (r *Renderer) renderBoolRow(row []bool) error {
	fields := make([]string, len(row))
	for j, v := range row {
		fields[j] = formatBool(v)
	}

	return r.writeRows([][]string{fields})
}

// writeRows joins formatted fields under the configured delimiters and
// decorations.
// Header interaction: the corner label is only emitted when both column
// and row labels are configured; with only column labels a leading empty
// field keeps the columns aligned.
func (r *Renderer) writeRows(rows [][]string) error {
	var lines []string

	if len(r.cfg.Cols) > 0 {
		head := make([]string, 0, len(r.cfg.Cols)+1)
		if len(r.cfg.Rows) > 0 && r.cfg.Corner != "" {
			head = append(head, r.cfg.Corner)
		} else {
			head = append(head, "")
		}
		head = append(head, r.cfg.Cols...)
		lines = append(lines, strings.Join(head, r.cfg.FieldSep))
	}

	for i, row := range rows {
		if len(r.cfg.Rows) > 0 {
			label := ""
			if i < len(r.cfg.Rows) {
				label = r.cfg.Rows[i]
			}
			row = append([]string{label}, row...)
		}
		lines = append(lines, strings.Join(row, r.cfg.FieldSep))
	}

	return r.writeLines(lines)
}

// writeLines joins logical lines with the row delimiter; output always
// ends with exactly one newline.
func (r *Renderer) writeLines(lines []string) error {
	_, err := fmt.Fprint(r.w, strings.Join(lines, r.cfg.RowSep)+"\n")

	return err
}

// polyLine renders one coefficient row as c0 + c1*x + c2*x^2 + ... with
// normalized signs: a non-negative coefficient after the first term is
// preceded by "+", a complex coefficient with nonzero imaginary part is
// parenthesized, degree 0 has no variable suffix, degree 1 the bare
// variable, degree ≥ 2 appends ^degree.
func (r *Renderer) polyLine(coeffs []complex128) string {
	var b strings.Builder
	for deg, c := range coeffs {
		b.WriteString(r.formatCoeff(c, deg > 0))
		switch {
		case deg == 1:
			b.WriteString(r.cfg.PolyVar)
		case deg >= 2:
			b.WriteString(r.cfg.PolyVar + "^" + strconv.Itoa(deg))
		}
	}

	return b.String()
}

// formatCoeff formats one polynomial coefficient with sign normalization.
func (r *Renderer) formatCoeff(c complex128, signed bool) string {
	if imag(c) != 0 {
		s := "(" + r.formatComplex(c) + ")"
		if signed {
			s = "+" + s
		}
		return s
	}

	s := r.formatFloat(real(c))
	if signed && real(c) >= 0 {
		s = "+" + s
	}

	return s
}

func (r *Renderer) formatFloat(v float64) string {
	return fmt.Sprintf(r.cfg.RealFmt, v)
}

func (r *Renderer) formatComplex(v complex128) string {
	return fmt.Sprintf(r.cfg.ComplexFmt, real(v), imag(v))
}

func formatBool(v bool) string {
	if v {
		return "1"
	}

	return "0"
}

func toComplexRow(row []float64) []complex128 {
	out := make([]complex128, len(row))
	for i, v := range row {
		out[i] = complex(v, 0)
	}

	return out
}
