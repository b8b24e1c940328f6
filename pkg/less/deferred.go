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

const (
	maxCallDepth = 64
	maxRetries   = 64
)

type callArg struct {
	name  string
	value []term
}

// deferred is a mixin call or a block reference. It is resolved in the
// post-parse pass, when all mixins of the document are known.
type deferred struct {
	position
	name      *identifier
	args      []callArg
	important bool

	parsed bool
	result []node
}

func (d *deferred) copy() node {
	return &deferred{
		position:  d.position,
		name:      d.name.copy(),
		args:      d.args,
		important: d.important,
	}
}

func (d *deferred) parse(s *Scope) ([]node, error) {
	if d.parsed {
		return d.result, nil
	}
	if s.depth >= maxCallDepth {
		return nil, &NameError{Name: d.name.String()}
	}
	s.depth++
	defer func() { s.depth-- }()

	args, err := d.evalArgs(s)
	if err != nil {
		return nil, err
	}
	local := d.name.copy()
	if err = local.parse(s); err != nil {
		return nil, err
	}
	global := d.name.copy()
	if err = global.parseGlobal(s); err != nil {
		return nil, err
	}

	mixins := s.lookupMixins(local.raw())
	if mixins == nil {
		mixins = s.lookupMixins(global.raw())
	}
	if mixins == nil {
		mixins = retry(s, global.raw())
	}
	for _, m := range mixins {
		out, ok, err2 := d.expand(s, m, global, args)
		if err2 != nil {
			return nil, err2
		}
		if ok {
			return d.done(out), nil
		}
	}

	b := s.blocks(local.raw())
	if b == nil {
		b = s.blocks(global.raw())
	}
	if b != nil {
		inner := b.copyInner()
		if err = rename(inner, s); err != nil {
			return nil, err
		}
		out, err2 := parseInner(s, inner)
		if err2 != nil {
			return nil, err2
		}
		return d.done(out), nil
	}
	return nil, &noMatchError{name: d.name.String()}
}

func (d *deferred) expand(s *Scope, m *mixin, target *identifier, args []mixinArg) ([]node, bool, error) {
	prev := s.deferred
	s.deferred = target
	defer func() { s.deferred = prev }()
	return m.call(s, args)
}

// retry looks the mixin up in the namespaces of the last mixin call,
// innermost first.
func retry(s *Scope, key string) []*mixin {
	if s.deferred == nil || len(s.deferred.alts) == 0 {
		return nil
	}
	last := s.deferred.alts[len(s.deferred.alts)-1]
	segments := strings.Fields(lookupKey(last))
	for i, tries := len(segments), 0; i > 0 && tries < maxRetries; i, tries = i-1, tries+1 {
		prefix := strings.Join(segments[:i], " ")
		if mm := s.lookupMixins(prefix + " " + key); mm != nil {
			return mm
		}
	}
	return nil
}

func (d *deferred) evalArgs(s *Scope) ([]mixinArg, error) {
	args := make([]mixinArg, 0, len(d.args))
	for _, a := range d.args {
		pp, err := evalTerms(s, a.value, false)
		if err != nil {
			return nil, err
		}
		args = append(args, mixinArg{name: a.name, value: trimPieces(pp)})
	}
	return args, nil
}

func (d *deferred) done(out []node) []node {
	if d.important {
		for _, n := range out {
			if p, ok := n.(*property); ok {
				p.important = true
			}
		}
	}
	d.parsed = true
	d.result = out
	return out
}
