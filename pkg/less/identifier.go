// lessc-go, a LESS to CSS compiler in Go
// Copyright (C) 2023 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package less

import (
	"regexp"
	"strings"
)

// identifier is the head of a block: a selector list or an at-rule with
// its prelude. Resolved selectors store combinators as ?>?, ?+? and ?~?.
type identifier struct {
	position
	tt       tokens
	at       string
	prelude  []term
	keyframe bool

	parsed bool
	alts   []string
	text   string
}

func (id *identifier) isAtRule() bool {
	return id.at != ""
}

func (id *identifier) isMedia() bool {
	return id.at == "@media"
}

// isGroup reports whether the block wraps other rules.
func (id *identifier) isGroup() bool {
	return id.isMedia() || strings.HasSuffix(id.at, "keyframes")
}

func (id *identifier) copy() *identifier {
	return &identifier{
		position: id.position,
		tt:       id.tt,
		at:       id.at,
		prelude:  id.prelude,
		keyframe: id.keyframe,
	}
}

func (id *identifier) parse(s *Scope) error {
	return id.resolve(s, true)
}

// parseGlobal resolves the identifier without its parent selector.
func (id *identifier) parseGlobal(s *Scope) error {
	return id.resolve(s, false)
}

func (id *identifier) resolve(s *Scope, root bool) error {
	if id.isAtRule() {
		return id.resolveAtRule(s)
	}
	alts, err := splitSelector(s, id.tt)
	if err != nil {
		return err
	}
	if root && !id.keyframe && s != nil {
		if p := s.parentSelector(); p != nil && p.parsed {
			alts = rootSelector(p.alts, alts)
		}
	}
	id.alts = alts
	id.parsed = true
	return nil
}

func (id *identifier) resolveAtRule(s *Scope) error {
	text, err := evalString(s, id.prelude, true)
	if err != nil {
		return err
	}
	if id.isMedia() {
		text = normalizeQuery(text)
		if p := s.parentMedia(); p != nil && p != id && p.parsed {
			text = mergeQueries(p.text, text)
		}
	}
	id.text = text
	id.parsed = true
	return nil
}

// raw is the lookup key of the identifier.
func (id *identifier) raw() string {
	if id.isAtRule() {
		if id.text == "" {
			return id.at
		}
		return id.at + " " + id.text
	}
	return strings.Join(id.alts, ",")
}

func (id *identifier) String() string {
	if !id.parsed {
		return strings.TrimSpace(id.tt.String())
	}
	return id.fmt(fills{ws: " ", nl: " "})
}

func (id *identifier) fmt(f fills) string {
	if id.isAtRule() {
		text := id.text
		if f.ws == "" {
			text = strings.ReplaceAll(text, ": ", ":")
			text = strings.ReplaceAll(text, ", ", ",")
		}
		if text == "" {
			return id.at
		}
		return id.at + " " + text
	}
	out := make([]string, len(id.alts))
	for i, a := range id.alts {
		out[i] = expandCombinators(a, f.ws)
	}
	return strings.Join(out, ","+f.nl)
}

var combinators = strings.NewReplacer("?>?", ">", "?+?", "+", "?~?", "~")

func expandCombinators(s, ws string) string {
	if ws == "" {
		return combinators.Replace(s)
	}
	return strings.NewReplacer(
		"?>?", ws+">"+ws, "?+?", ws+"+"+ws, "?~?", ws+"~"+ws,
	).Replace(s)
}

func isCombinator(p string) bool {
	return len(p) == 3 && p[0] == '?' && p[2] == '?'
}

// splitSelector turns the selector tokens into one string per comma
// separated alternative, substituting interpolated variables.
func splitSelector(s *Scope, tt tokens) ([]string, error) {
	var alts []string
	var parts []string
	for i := 0; i < len(tt); i++ {
		t := tt[i]
		switch t.kind {
		case tokenComma:
			alts = append(alts, joinSelector(parts))
			parts = parts[:0]
		case tokenSpace:
			parts = append(parts, " ")
		case tokenGt, tokenPlus, tokenTilde:
			parts = append(parts, "?"+t.v+"?")
		case lessVariable:
			v, err := interpolate(s, t.v)
			if err != nil {
				return nil, err
			}
			parts = append(parts, v)
		case tokenParenOpen, tokenEscapeOpen:
			j := i
			if t.kind == tokenParenOpen {
				if j+1 >= len(tt) || tt[j+1].kind != tokenEscapeOpen {
					parts = append(parts, t.v)
					continue
				}
				j++
			}
			end := j + 1
			for end < len(tt) && tt[end].kind != tokenEscapeClose {
				end++
			}
			v, err := interpolateTokens(s, tt[j+1:min(end, len(tt))])
			if err != nil {
				return nil, err
			}
			// The escaped text may carry its own alternatives.
			chunks := strings.Split(v, ",")
			for k, c := range chunks {
				if k > 0 {
					alts = append(alts, joinSelector(parts))
					parts = parts[:0]
				}
				parts = append(parts, c)
			}
			i = end
			if t.kind == tokenParenOpen && i+1 < len(tt) &&
				tt[i+1].kind == tokenParenClose {
				i++
			}
		default:
			parts = append(parts, t.v)
		}
	}
	return append(alts, joinSelector(parts)), nil
}

var selectorSpace = regexp.MustCompile(`\s+`)

func joinSelector(parts []string) string {
	b := strings.Builder{}
	for i, p := range parts {
		if p == " " {
			if i == 0 || i == len(parts)-1 ||
				isCombinator(parts[i-1]) || isCombinator(parts[i+1]) ||
				parts[i-1] == " " {
				continue
			}
		}
		b.WriteString(p)
	}
	return selectorSpace.ReplaceAllString(strings.TrimSpace(b.String()), " ")
}

func interpolate(s *Scope, name string) (string, error) {
	if s == nil || !strings.HasPrefix(name, "@{") {
		return name, nil
	}
	pp, err := varRef{name: name}.eval(s, true)
	if err != nil {
		return "", err
	}
	return joinPieces(pp), nil
}

func interpolateTokens(s *Scope, tt tokens) (string, error) {
	b := strings.Builder{}
	for _, t := range tt {
		if t.kind == lessVariable {
			v, err := interpolate(s, t.v)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			continue
		}
		b.WriteString(t.v)
	}
	return b.String(), nil
}

// rootSelector combines the child alternatives with the parent ones. Each
// & takes every parent alternative in turn.
func rootSelector(parents, alts []string) []string {
	out := make([]string, 0, len(parents)*len(alts))
	for _, a := range alts {
		n := strings.Count(a, "&")
		if n == 0 {
			for _, p := range parents {
				if strings.HasPrefix(a, "?") {
					out = append(out, p+a)
				} else {
					out = append(out, p+" "+a)
				}
			}
			continue
		}
		for _, combo := range permutations(parents, n) {
			r := a
			for _, p := range combo {
				r = strings.Replace(r, "&", p, 1)
			}
			out = append(out, r)
		}
	}
	return out
}

func permutations(parts []string, n int) [][]string {
	out := [][]string{nil}
	for i := 0; i < n; i++ {
		next := make([][]string, 0, len(out)*len(parts))
		for _, prefix := range out {
			for _, p := range parts {
				c := make([]string, len(prefix), len(prefix)+1)
				copy(c, prefix)
				next = append(next, append(c, p))
			}
		}
		out = next
	}
	return out
}

var (
	querySpace = regexp.MustCompile(`\s+`)
	queryColon = regexp.MustCompile(`\s*:\s*`)
	queryComma = regexp.MustCompile(`\s*,\s*`)
	queryParen = strings.NewReplacer("( ", "(", " )", ")")
)

func normalizeQuery(s string) string {
	s = querySpace.ReplaceAllString(strings.TrimSpace(s), " ")
	s = queryParen.Replace(s)
	s = queryColon.ReplaceAllString(s, ": ")
	return queryComma.ReplaceAllString(s, ", ")
}

// mergeQueries nests inner into outer, pairing every alternative.
func mergeQueries(outer, inner string) string {
	if outer == "" {
		return inner
	}
	if inner == "" {
		return outer
	}
	var out []string
	for _, o := range strings.Split(outer, ", ") {
		for _, i := range strings.Split(inner, ", ") {
			out = append(out, o+" and "+i)
		}
	}
	return strings.Join(out, ", ")
}
