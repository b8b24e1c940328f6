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

type property struct {
	position
	name      []term
	value     []term
	important bool

	parsed bool
	prop   string
	style  []string
}

// literalMath lists the properties keeping their arithmetic as written.
var literalMath = map[string]bool{
	"font": true,
}

func (p *property) parse(s *Scope) ([]node, error) {
	if p.parsed {
		return []node{p}, nil
	}
	name, err := evalString(s, p.name, true)
	if err != nil {
		return nil, err
	}
	pp, err := evalTerms(s, p.value, literalMath[name])
	if err != nil {
		return nil, err
	}
	p.prop = name
	p.style = trimPieces(pp)
	p.parsed = true
	return []node{p}, nil
}

func (p *property) copy() node {
	return &property{
		position:  p.position,
		name:      p.name,
		value:     p.value,
		important: p.important,
	}
}

var urlSpacing = regexp.MustCompile(`(url\([^)]*\))([^\s,;])`)

func (p *property) fmt(f fills) string {
	style := joinPieces(p.style)
	if f.nl != "" {
		style = spaceCommas(style, f.ws)
	}
	style = urlSpacing.ReplaceAllString(style, "$1 $2")
	b := strings.Builder{}
	b.WriteString(f.tab)
	b.WriteString(p.prop)
	b.WriteString(":")
	b.WriteString(f.ws)
	b.WriteString(strings.TrimSpace(style))
	if p.important {
		b.WriteString(" !important")
	}
	b.WriteString(";")
	b.WriteString(f.nl)
	return b.String()
}

// spaceCommas puts ws behind every comma outside of strings.
func spaceCommas(s, ws string) string {
	if ws == "" || !strings.Contains(s, ",") {
		return s
	}
	b := strings.Builder{}
	b.Grow(len(s) + 8)
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		b.WriteByte(c)
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			if i+1 < len(s) && s[i+1] != ' ' {
				b.WriteString(ws)
			}
		}
	}
	return b.String()
}
