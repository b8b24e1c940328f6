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

// statement is an at-rule without a block, like @charset or a plain CSS
// @import.
type statement struct {
	position
	name  string
	value []term

	parsed bool
	text   string
}

func (st *statement) parse(s *Scope) ([]node, error) {
	if st.parsed {
		return []node{st}, nil
	}
	v, err := evalString(s, st.value, true)
	if err != nil {
		return nil, err
	}
	st.text = v
	st.parsed = true
	return []node{st}, nil
}

func (st *statement) copy() node {
	return &statement{position: st.position, name: st.name, value: st.value}
}

func (st *statement) fmt(f fills) string {
	b := strings.Builder{}
	b.WriteString(st.name)
	if st.text != "" {
		b.WriteString(" ")
		b.WriteString(spaceCommas(st.text, f.ws))
	}
	b.WriteString(";")
	b.WriteString(f.nl)
	return b.String()
}
