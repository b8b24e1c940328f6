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
	"github.com/das7pad/lessc-go/pkg/errors"
)

type position struct {
	file string
	line int
}

func (p position) pos() position {
	return p
}

// node is a statement level node. parse resolves it against the scope and
// returns the nodes it expands into.
type node interface {
	pos() position
	parse(s *Scope) ([]node, error)
	copy() node
}

func copyNodes(nn []node) []node {
	if nn == nil {
		return nil
	}
	out := make([]node, len(nn))
	for i, n := range nn {
		out[i] = n.copy()
	}
	return out
}

// rename resolves the names of copied blocks in the naming context of s.
func rename(nn []node, s *Scope) error {
	for _, n := range nn {
		b, ok := n.(*block)
		if !ok {
			continue
		}
		if err := b.name.parse(s); err != nil {
			return err
		}
		if err := renameInner(b, s); err != nil {
			return err
		}
	}
	return nil
}

func renameInner(b *block, s *Scope) error {
	s.push()
	defer s.pop()
	s.setCurrent(b.name)
	return rename(b.inner, s)
}

// parseInner resolves the children of a block. Variables are bound before
// anything else. Errors stay local to the failing child unless fatal.
func parseInner(s *Scope, nn []node) ([]node, error) {
	for _, n := range nn {
		if v, ok := n.(*variable); ok {
			s.addVariable(v)
		}
	}
	out := make([]node, 0, len(nn))
	for _, n := range nn {
		r, err := n.parse(s)
		if err != nil {
			if errors.IsFatalError(err) {
				return nil, err
			}
			s.diagnose(n, err)
			continue
		}
		out = append(out, r...)
	}
	return out, nil
}
