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

type mixinParam struct {
	name    string
	pattern string
	def     []term
	rest    bool
}

type mixin struct {
	position
	name    *identifier
	key     string
	params  []mixinParam
	guard   *guard
	body    []node
	closure map[string]*variable
}

type mixinArg struct {
	name  string
	value []string
}

// call expands the mixin for the given arguments. ok is false when the
// arguments or the guard do not match.
func (m *mixin) call(s *Scope, args []mixinArg) ([]node, bool, error) {
	out, exported, ok, err := m.expand(s, args)
	if err != nil || !ok {
		return nil, ok, err
	}
	for _, v := range exported {
		if s.variables(v.name) == nil {
			s.addVariable(v)
		}
	}
	return out, true, nil
}

func (m *mixin) expand(s *Scope, args []mixinArg) ([]node, []*variable, bool, error) {
	s.push()
	defer s.pop()
	for _, v := range m.closure {
		s.addVariable(v)
	}
	if !m.bind(s, args) {
		return nil, nil, false, nil
	}
	if ok, err := m.guard.eval(s); err != nil || !ok {
		return nil, nil, false, nil
	}
	body := copyNodes(m.body)
	if err := rename(body, s); err != nil {
		return nil, nil, false, err
	}
	out, err := parseInner(s, body)
	if err != nil {
		return nil, nil, false, err
	}
	var exported []*variable
	for _, n := range body {
		v, ok := n.(*variable)
		if !ok {
			continue
		}
		pp, err2 := s.evalVariable(v)
		if err2 != nil {
			continue
		}
		exported = append(exported, &variable{
			position: v.position,
			name:     v.name,
			value:    litTerms(pp),
		})
	}
	return out, exported, true, nil
}

func (m *mixin) bind(s *Scope, args []mixinArg) bool {
	var positional []mixinArg
	named := make(map[string]mixinArg)
	for _, a := range args {
		if a.name != "" {
			named[a.name] = a
		} else {
			positional = append(positional, a)
		}
	}
	var bound []string
	i := 0
	for _, p := range m.params {
		switch {
		case p.rest:
			var rest []string
			for ; i < len(positional); i++ {
				rest = appendPieces(rest, positional[i].value...)
				rest = appendPieces(rest, " ")
			}
			rest = trimPieces(rest)
			if p.name != "" {
				s.addVariable(&variable{
					position: m.position, name: p.name, value: litTerms(rest),
				})
			}
			bound = appendPieces(bound, rest...)
		case p.name == "":
			if i >= len(positional) ||
				joinPieces(positional[i].value) != p.pattern {
				return false
			}
			bound = appendPieces(bound, p.pattern)
			i++
		default:
			var v *variable
			if a, ok := named[p.name]; ok {
				v = &variable{name: p.name, value: litTerms(a.value)}
			} else if i < len(positional) {
				v = &variable{name: p.name, value: litTerms(positional[i].value)}
				i++
			} else if p.def != nil {
				v = &variable{name: p.name, value: p.def}
			} else {
				return false
			}
			v.position = m.position
			s.addVariable(v)
			if pp, err := s.evalVariable(v); err == nil {
				bound = appendPieces(bound, pp...)
			}
		}
		bound = appendPieces(bound, " ")
	}
	if len(args) > 0 {
		bound = nil
		for _, a := range args {
			bound = appendPieces(bound, a.value...)
			bound = appendPieces(bound, " ")
		}
	}
	s.addVariable(&variable{
		position: m.position,
		name:     "@arguments",
		value:    litTerms(trimPieces(bound)),
	})
	return true
}

func litTerms(pp []string) []term {
	out := make([]term, len(pp))
	for i, p := range pp {
		out[i] = lit(p)
	}
	return out
}
