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
	"path"
	"strings"
)

const maxImportDepth = 8

// parseImport inlines .less imports. Anything else stays a CSS @import.
func (p *parser) parseImport() ([]node, error) {
	t := p.tt[p.i]
	end := p.seek(tokenSemicolon, tokenBraceClose)
	if end == -1 {
		end = len(p.tt)
	}
	rest := trimSpace(p.tt[p.i+1 : end])
	target, ok := lessImportTarget(rest)
	if !ok {
		value, err := p.parseValue(rest)
		if err != nil {
			return nil, err
		}
		p.skipTo(end)
		return []node{&statement{
			position: position{file: p.file, line: t.line},
			name:     "@import",
			value:    value,
		}}, nil
	}
	p.skipTo(end)
	if p.depth+1 > maxImportDepth {
		return nil, &ImportDepthError{File: p.file}
	}
	if err := p.c.ctx.Err(); err != nil {
		return nil, err
	}
	if path.Ext(target) == "" {
		target += ".less"
	}
	name := path.Join(path.Dir(p.file), target)
	blob, err := p.c.read(name)
	if err != nil {
		p.report(&missingImportError{name: target}, t)
		return nil, nil
	}
	p.c.imports = append(p.c.imports, name)
	return p.c.parse(string(blob), name, p.depth+1)
}

// lessImportTarget extracts the file name of an import that is compiled
// in place.
func lessImportTarget(tt tokens) (string, bool) {
	if len(tt) == 0 {
		return "", false
	}
	var target string
	switch tt[0].kind {
	case cssString:
		target = destring(tt[0].v)
	case tokenStringOpen:
		b := strings.Builder{}
		for _, t := range tt[1:] {
			if t.kind == tokenStringClose {
				break
			}
			b.WriteString(t.v)
		}
		target = b.String()
	default:
		return "", false
	}
	switch path.Ext(target) {
	case ".less", "":
		return target, true
	default:
		return "", false
	}
}
