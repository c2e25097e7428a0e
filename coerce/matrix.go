// SPDX-License-Identifier: MIT
// Package coerce: the matrix coercer and its fallback chain.
//
// Purpose:
//   - Turn one token into a dense matrix by attempting, in fixed order:
//     (a) strict inline literal, (b) lenient literal tolerant of missing
//     fields, (c) local delimited file, (d) URL fetch.
//   - Commit to the first stage that succeeds; fail with ErrInvalidMatrix
//     naming the token only after every stage was tried.
//
// The chain is expressed as an explicit ordered list of fallible attempts
// (tagged-result pattern) rather than broad error suppression, so each
// stage's failure stays inspectable under --debug.
package coerce

import (
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matcli/slicespec"
)

// maxRemoteBody caps how much of a URL response the coercer will read.
const maxRemoteBody = 16 << 20 // 16 MiB

// matrixStage is one attempt in the fallback chain.
type matrixStage struct {
	name string
	try  func(cc *Context, tok string) (*mat.Dense, error)
}

// matrixChain lists the stages in their mandated order.
var matrixChain = []matrixStage{
	{"literal", tryLiteral},
	{"lenient", tryLenient},
	{"file", tryFile},
	{"url", tryURL},
}

// Matrix coerces a token into a *mat.Dense via the fallback chain, then
// applies the context's slice specification before returning.
// Stage order: literal → lenient → file → URL; first success wins.
// Complexity: O(cells) for literal stages; file and URL stages add I/O.
func Matrix(cc *Context, tok string) (any, error) {
	for _, st := range matrixChain {
		m, err := st.try(cc, tok)
		if err != nil {
			cc.log.Debug("matrix stage failed",
				zap.String("stage", st.name), zap.Error(err))
			continue
		}
		cc.log.Debug("matrix stage succeeded",
			zap.String("stage", st.name), zap.String("token", truncate(tok)))

		return applySlice(cc, m)
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidMatrix, truncate(tok))
}

// MatrixList is the variadic coercer used by stacking functions: every
// remaining token is coerced as one matrix.
func MatrixList(cc *Context, toks []string) (any, error) {
	out := make([]*mat.Dense, len(toks))
	for i, tok := range toks {
		m, err := Matrix(cc, tok)
		if err != nil {
			return nil, err
		}
		out[i] = m.(*mat.Dense)
	}

	return out, nil
}

// applySlice applies the context's default slice unless it keeps everything.
func applySlice(cc *Context, m *mat.Dense) (*mat.Dense, error) {
	if cc.slice == "" || cc.slice == slicespec.All {
		return m, nil
	}

	return slicespec.Apply(cc.slice, m)
}

// tryLiteral parses a strict inline literal: rows separated by the row
// delimiter, fields by the field delimiter, every field a finite number,
// all rows the same width.
func tryLiteral(_ *Context, tok string) (*mat.Dense, error) {
	return parseRows(strings.Split(tok, rowSep), false)
}

// tryLenient parses field-by-field, substituting NaN for empty fields and
// padding short rows with NaN. Non-empty fields must still be numeric.
func tryLenient(_ *Context, tok string) (*mat.Dense, error) {
	return parseRows(strings.Split(tok, rowSep), true)
}

// tryFile treats the token as a filesystem path to a delimited table:
// one row per non-empty line, fields split on the field delimiter or,
// when a line carries none, on whitespace.
func tryFile(_ *Context, tok string) (*mat.Dense, error) {
	info, err := os.Stat(tok)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("not a readable file: %q", tok)
	}
	data, err := os.ReadFile(tok)
	if err != nil {
		return nil, err
	}

	return parseRows(tableLines(string(data)), true)
}

// tryURL treats the token as an http(s) URL, fetches it, and parses the
// body as a delimited table. The fetch blocks until it completes or
// fails; failures simply fall through the chain.
func tryURL(cc *Context, tok string) (*mat.Dense, error) {
	u, err := url.Parse(tok)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("not a matrix URL: %q", truncate(tok))
	}
	resp, err := cc.client.Get(tok)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetch %q: status %d", truncate(tok), resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return nil, err
	}

	return parseRows(tableLines(string(body)), true)
}

// tableLines splits file/URL content into row strings, normalizing
// whitespace-delimited tables onto the field delimiter.
func tableLines(s string) []string {
	var rows []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, fieldSep) {
			line = strings.Join(strings.Fields(line), fieldSep)
		}
		rows = append(rows, line)
	}

	return rows
}

// parseRows builds a Dense from row strings.
// Strict mode: every field must parse and all rows must be equally wide.
// Lenient mode: empty fields become NaN and short rows are NaN-padded.
func parseRows(rows []string, lenient bool) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}

	parsed := make([][]float64, len(rows))
	width := 0
	for i, row := range rows {
		fields := strings.Split(row, fieldSep)
		vals := make([]float64, len(fields))
		for j, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				if !lenient {
					return nil, fmt.Errorf("empty field in row %d", i)
				}
				vals[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d field %d: %q is not numeric", i, j, f)
			}
			vals[j] = v
		}
		parsed[i] = vals
		if len(vals) > width {
			if !lenient && i > 0 && width != len(vals) {
				return nil, fmt.Errorf("ragged rows: %d vs %d fields", width, len(vals))
			}
			width = len(vals)
		} else if len(vals) < width && !lenient {
			return nil, fmt.Errorf("ragged rows: %d vs %d fields", width, len(vals))
		}
	}

	out := mat.NewDense(len(parsed), width, nil)
	for i, vals := range parsed {
		for j := 0; j < width; j++ {
			if j < len(vals) {
				out.Set(i, j, vals[j])
			} else {
				out.Set(i, j, math.NaN()) // lenient padding
			}
		}
	}

	return out, nil
}

// truncate keeps error messages readable when the token is a whole table.
func truncate(tok string) string {
	const limit = 64
	if len(tok) <= limit {
		return tok
	}

	return tok[:limit] + "..."
}
