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

type frame struct {
	variables map[string]*variable
	blocks    []*block
	current   *identifier
}

// Scope holds the lexical frames of a compilation plus the flat table of
// mixin definitions.
type Scope struct {
	frames   []*frame
	mixins   map[string][]*mixin
	deferred *identifier
	depth    int
	active   map[*variable]bool
	report   func(d Diagnostic)
}

func NewScope() *Scope {
	s := &Scope{
		mixins: make(map[string][]*mixin),
		active: make(map[*variable]bool),
	}
	s.push()
	return s
}

func (s *Scope) push() {
	s.frames = append(s.frames, &frame{
		variables: make(map[string]*variable),
	})
}

func (s *Scope) pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *Scope) top() *frame {
	return s.frames[len(s.frames)-1]
}

func (s *Scope) global() *frame {
	return s.frames[0]
}

func (s *Scope) current() *identifier {
	return s.top().current
}

func (s *Scope) setCurrent(id *identifier) {
	s.top().current = id
}

// scopeName lists the names of the enclosing blocks, outermost first.
func (s *Scope) scopeName() []*identifier {
	var out []*identifier
	for _, f := range s.frames {
		if f.current != nil {
			out = append(out, f.current)
		}
	}
	return out
}

// parentSelector returns the innermost enclosing selector, skipping
// at-rules and keyframe selectors.
func (s *Scope) parentSelector() *identifier {
	for i := len(s.frames) - 1; i >= 0; i-- {
		id := s.frames[i].current
		if id != nil && !id.isAtRule() && !id.keyframe {
			return id
		}
	}
	return nil
}

func (s *Scope) parentMedia() *identifier {
	for i := len(s.frames) - 1; i >= 0; i-- {
		id := s.frames[i].current
		if id != nil && id.isMedia() {
			return id
		}
	}
	return nil
}

func lookupKey(k string) string {
	return strings.ReplaceAll(k, "?>?", " ")
}

func (s *Scope) addBlock(b *block) {
	f := s.top()
	f.blocks = append(f.blocks, b)
}

func (s *Scope) addMixin(m *mixin) {
	k := lookupKey(m.key)
	s.mixins[k] = append(s.mixins[k], m)
}

func (s *Scope) addVariable(v *variable) {
	s.top().variables[v.name] = v
}

func (s *Scope) variables(name string) *variable {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].variables[name]; ok {
			return v
		}
	}
	return nil
}

// localVariables flattens the frames above the global one, inner
// definitions win.
func (s *Scope) localVariables() map[string]*variable {
	out := make(map[string]*variable)
	for _, f := range s.frames[1:] {
		for name, v := range f.variables {
			out[name] = v
		}
	}
	return out
}

func (s *Scope) lookupMixins(key string) []*mixin {
	return s.mixins[lookupKey(key)]
}

// blocks finds a block by its key, descending into nested blocks when the
// key starts with the key of an outer block.
func (s *Scope) blocks(key string) *block {
	key = lookupKey(key)
	for i := len(s.frames) - 1; i >= 0; i-- {
		for _, b := range s.frames[i].blocks {
			if found := searchBlock(b, key); found != nil {
				return found
			}
		}
	}
	return nil
}

func searchBlock(b *block, key string) *block {
	k := lookupKey(b.key)
	if k == key {
		return b
	}
	if !strings.HasPrefix(key, k) {
		return nil
	}
	for _, n := range b.inner {
		if c, ok := n.(*block); ok {
			if found := searchBlock(c, key); found != nil {
				return found
			}
		}
	}
	return nil
}

// Update merges the globals of other into s.
func (s *Scope) Update(other *Scope) {
	g := s.global()
	o := other.global()
	for name, v := range o.variables {
		g.variables[name] = v
	}
	g.blocks = append(g.blocks, o.blocks...)
	for k, mm := range other.mixins {
		s.mixins[k] = append(s.mixins[k], mm...)
	}
}

// swap resolves @name, @@name and @{name} to the variable they refer to.
func (s *Scope) swap(name string) (*variable, error) {
	switch {
	case strings.HasPrefix(name, "@{"):
		n := "@" + strings.TrimSuffix(name[2:], "}")
		v := s.variables(n)
		if v == nil {
			return nil, &unknownVariableError{name: n, escaped: true}
		}
		return v, nil
	case strings.HasPrefix(name, "@@"):
		inner := s.variables(name[1:])
		if inner == nil {
			return nil, &unknownVariableError{name: name[1:]}
		}
		pp, err := s.evalVariable(inner)
		if err != nil {
			return nil, err
		}
		n := "@" + destring(joinPieces(pp))
		v := s.variables(n)
		if v == nil {
			return nil, &unknownVariableError{name: n}
		}
		return v, nil
	default:
		v := s.variables(name)
		if v == nil {
			return nil, &unknownVariableError{name: name}
		}
		return v, nil
	}
}

func (s *Scope) evalVariable(v *variable) ([]string, error) {
	if s.active[v] {
		return nil, &recursiveVariableError{name: v.name}
	}
	s.active[v] = true
	defer delete(s.active, v)
	return evalTerms(s, v.value, false)
}

func (s *Scope) diagnose(n node, err error) {
	if s.report == nil {
		return
	}
	p := n.pos()
	s.report(diagnose(p.file, p.line, err))
}
