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
	"strings"
)

// term is a value level node. Evaluation yields output pieces: separators
// like " " and "," are pieces of their own.
type term interface {
	eval(s *Scope, literal bool) ([]string, error)
}

type lit string

func (l lit) eval(*Scope, bool) ([]string, error) {
	return []string{string(l)}, nil
}

const (
	litSpace lit = " "
	litComma lit = ","
)

type varRef struct {
	name string
}

func (r varRef) eval(s *Scope, _ bool) ([]string, error) {
	v, err := s.swap(r.name)
	if err != nil {
		return nil, err
	}
	pp, err := s.evalVariable(v)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(r.name, "@{") {
		return []string{destring(joinPieces(pp))}, nil
	}
	return pp, nil
}

type negation struct {
	t term
}

func (n *negation) eval(s *Scope, literal bool) ([]string, error) {
	pp, err := n.t.eval(s, literal)
	if err != nil {
		return nil, err
	}
	v := strings.TrimSpace(joinPieces(pp))
	if f, u, err2 := analyzeNumber(v); err2 == nil && u != unitColor {
		return []string{withUnit(-f, u)}, nil
	}
	if strings.HasPrefix(v, "-") {
		return []string{v[1:]}, nil
	}
	return []string{"-" + v}, nil
}

// quoted is a string with interpolated variables. Escaped strings drop
// their quotes.
type quoted struct {
	quote string
	parts []term
}

func (q *quoted) eval(s *Scope, _ bool) ([]string, error) {
	b := strings.Builder{}
	b.WriteString(q.quote)
	for _, p := range q.parts {
		pp, err := p.eval(s, true)
		if err != nil {
			return nil, err
		}
		b.WriteString(joinPieces(pp))
	}
	b.WriteString(q.quote)
	return []string{b.String()}, nil
}

// paren is a parenthesized list that is not a single expression.
type paren struct {
	inner []term
}

func (p *paren) eval(s *Scope, literal bool) ([]string, error) {
	pp, err := evalTerms(s, p.inner, literal)
	if err != nil {
		return nil, err
	}
	return []string{"(" + strings.TrimSpace(joinPieces(pp)) + ")"}, nil
}

func evalTerms(s *Scope, tt []term, literal bool) ([]string, error) {
	out := make([]string, 0, len(tt))
	for _, t := range tt {
		pp, err := t.eval(s, literal)
		if err != nil {
			return nil, err
		}
		out = appendPieces(out, pp...)
	}
	return out, nil
}

func evalString(s *Scope, tt []term, literal bool) (string, error) {
	pp, err := evalTerms(s, tt, literal)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(joinPieces(pp)), nil
}

// appendPieces collapses runs of whitespace pieces.
func appendPieces(out []string, pp ...string) []string {
	for _, p := range pp {
		if p == "" {
			continue
		}
		if p == " " && (len(out) == 0 || out[len(out)-1] == " ") {
			continue
		}
		out = append(out, p)
	}
	return out
}

func joinPieces(pp []string) string {
	switch len(pp) {
	case 0:
		return ""
	case 1:
		return pp[0]
	default:
		return strings.Join(pp, "")
	}
}

func trimPieces(pp []string) []string {
	for len(pp) > 0 && pp[0] == " " {
		pp = pp[1:]
	}
	for len(pp) > 0 && pp[len(pp)-1] == " " {
		pp = pp[:len(pp)-1]
	}
	return pp
}
