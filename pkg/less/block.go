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

type block struct {
	position
	name  *identifier
	inner []node
	key   string

	parsed bool
	props  []node
	nested []*block
	wrap   *identifier
}

func (b *block) parse(s *Scope) ([]node, error) {
	if b.parsed {
		return []node{b}, nil
	}
	if !b.name.parsed {
		if err := b.name.parse(s); err != nil {
			return nil, err
		}
	}
	if b.name.isMedia() {
		b.wrap = s.parentSelector()
	}
	if err := b.parseInner(s); err != nil {
		return nil, err
	}
	b.parsed = true
	return []node{b}, nil
}

func (b *block) parseInner(s *Scope) error {
	s.push()
	defer s.pop()
	s.setCurrent(b.name)
	out, err := parseInner(s, b.inner)
	if err != nil {
		return err
	}
	b.props = b.props[:0]
	b.nested = b.nested[:0]
	for _, n := range out {
		switch c := n.(type) {
		case *block:
			b.nested = append(b.nested, c)
		case *variable:
		default:
			b.props = append(b.props, c)
		}
	}
	return nil
}

func (b *block) copy() node {
	return &block{
		position: b.position,
		name:     b.name.copy(),
		inner:    b.copyInner(),
		key:      b.key,
	}
}

func (b *block) copyInner() []node {
	return copyNodes(b.inner)
}
