// SPDX-License-Identifier: MIT
// Package schema: the argument resolver.
//
// Purpose:
//   - Turn the raw tokens following a function name (plus, optionally,
//     lines read from a piped input stream) into a positional argument
//     list and a keyword argument mapping, per the function's CallSchema.
//
// Resolution order (fixed):
//  1. Piped lines fill positional slots first, one line per declared
//     parameter, best-effort: consumption stops silently at the first
//     line whose coercion fails. Piped input never raises.
//  2. A variadic schema coerces all remaining tokens as one list and
//     returns early.
//  3. Remaining tokens are walked in order: a token without "=" is the
//     next positional argument; a token with "=" is split at the first
//     "=" and resolved as a keyword (own mapping first, then accepted
//     universal vocabulary).
//  4. Arity is enforced last: too many positionals, unknown keywords and
//     unfilled required parameters each map to a dedicated sentinel.
package schema

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/matcli/coerce"
)

// kwSep splits a keyword token into key and value at its first occurrence.
const kwSep = "="

// LineSource yields successive lines of piped input; ok is false when the
// stream is exhausted. A nil LineSource means input is interactive.
type LineSource func() (line string, ok bool)

// Resolved is the outcome of argument resolution: the typed positional
// list and keyword mapping handed to the dispatcher.
type Resolved struct {
	Pos []any
	Kw  map[string]any
}

// Resolve converts tokens (and piped lines) into typed arguments per cs.
// Failure modes: coercion errors pass through from the coerce package;
// arity and keyword shape violations yield this package's sentinels.
// Complexity: O(tokens) coercer invocations.
func Resolve(cs *CallSchema, tokens []string, pipe LineSource, cc *coerce.Context, log *zap.Logger) (*Resolved, error) {
	out := &Resolved{Kw: make(map[string]any)}

	// Stage 1: best-effort consumption of piped input into positionals.
	if pipe != nil && cs.Variadic == nil {
		for len(out.Pos) < len(cs.Pos) {
			line, ok := pipe()
			if !ok {
				break
			}
			p := cs.Pos[len(out.Pos)]
			v, err := p.Coerce(cc, line)
			if err != nil {
				// Piped consumption never raises; the line is dropped and
				// the remaining slots fall to explicit tokens.
				log.Debug("pipe line rejected",
					zap.String("param", p.Name), zap.Error(err))
				break
			}
			log.Debug("pipe line consumed", zap.String("param", p.Name))
			out.Pos = append(out.Pos, v)
		}
	}

	// Stage 2: variadic schemas take the whole remaining token list.
	if cs.Variadic != nil {
		v, err := cs.Variadic.Coerce(cc, tokens)
		if err != nil {
			return nil, err
		}
		out.Pos = append(out.Pos, v)
		log.Debug("variadic resolved",
			zap.String("param", cs.Variadic.Name), zap.Int("tokens", len(tokens)))

		return out, nil
	}

	// Stage 3: walk explicit tokens in order.
	for _, tok := range tokens {
		key, val, isKw := splitKw(tok)
		if !isKw {
			if len(out.Pos) >= len(cs.Pos) {
				return nil, fmt.Errorf("%w: %s takes at most %d, got %q extra",
					ErrTooManyPositional, cs.Name, len(cs.Pos), tok)
			}
			p := cs.Pos[len(out.Pos)]
			v, err := p.Coerce(cc, tok)
			if err != nil {
				return nil, fmt.Errorf("argument %s: %w", p.Name, err)
			}
			log.Debug("positional resolved",
				zap.String("param", p.Name), zap.String("type", fmt.Sprintf("%T", v)))
			out.Pos = append(out.Pos, v)
			continue
		}

		fn, ok := cs.lookupKw(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s does not accept %q", ErrUnknownArgument, cs.Name, key)
		}
		v, err := fn(cc, val)
		if err != nil {
			return nil, fmt.Errorf("keyword %s: %w", key, err)
		}
		log.Debug("keyword resolved",
			zap.String("key", key), zap.String("type", fmt.Sprintf("%T", v)))
		out.Kw[key] = v
	}

	// Stage 4: every required positional slot must be filled.
	if len(out.Pos) < cs.Required() {
		next := cs.Pos[len(out.Pos)]
		return nil, fmt.Errorf("%w: %s requires %q", ErrMissingArgument, cs.Name, next.Name)
	}

	return out, nil
}

// splitKw reports whether tok is a keyword token and splits it at the
// first separator. A leading "=" does not make a keyword: the key must be
// non-empty.
func splitKw(tok string) (key, val string, ok bool) {
	i := strings.Index(tok, kwSep)
	if i <= 0 {
		return "", "", false
	}

	return tok[:i], tok[i+1:], true
}
