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

type fills struct {
	nl  string
	tab string
	ws  string
	eb  string
}

func newFills(o Options) fills {
	switch {
	case o.XMinify:
		return fills{}
	case o.Minify:
		return fills{eb: "\n"}
	}
	tab := "\t"
	if !o.Tabs {
		n := o.Spaces
		if n <= 0 {
			n = 2
		}
		tab = strings.Repeat(" ", n)
	}
	return fills{nl: "\n", tab: tab, ws: " ", eb: "\n"}
}

// format renders the resolved top-level nodes.
func format(nn []node, f fills) string {
	w := strings.Builder{}
	for _, n := range nn {
		switch c := n.(type) {
		case *block:
			c.render(&w, f, nil)
		case *statement:
			w.WriteString(c.fmt(f))
		}
	}
	return strings.TrimSpace(w.String())
}

func writeRule(w *strings.Builder, name string, props []node, f fills) {
	if len(props) == 0 {
		return
	}
	w.WriteString(name)
	w.WriteString(f.ws)
	w.WriteString("{")
	w.WriteString(f.nl)
	writeProps(w, props, f)
	w.WriteString("}")
	w.WriteString(f.eb)
}

func writeProps(w *strings.Builder, props []node, f fills) {
	for _, n := range props {
		switch c := n.(type) {
		case *property:
			w.WriteString(c.fmt(f))
		case *statement:
			w.WriteString(f.tab)
			w.WriteString(c.fmt(f))
		}
	}
}

// render writes the rule of b followed by its nested rules. Media queries
// found below a media query are collected in lift instead.
func (b *block) render(w *strings.Builder, f fills, lift *[]*block) {
	switch {
	case b.name.isMedia():
		if lift != nil {
			*lift = append(*lift, b)
			return
		}
		b.renderMedia(w, f)
	case b.name.isGroup():
		inner := strings.Builder{}
		g := groupFills(f)
		writeProps(&inner, b.props, g)
		for _, c := range b.nested {
			c.render(&inner, g, lift)
		}
		writeGroup(w, b.name.fmt(f), inner.String(), f)
	default:
		writeRule(w, b.name.fmt(f), b.props, f)
		for _, c := range b.nested {
			c.render(w, f, lift)
		}
	}
}

// renderMedia writes a media query with the properties wrapped in the
// selector it was nested in. Nested media queries follow the group.
func (b *block) renderMedia(w *strings.Builder, f fills) {
	var lifted []*block
	inner := strings.Builder{}
	g := groupFills(f)
	if b.wrap != nil {
		writeRule(&inner, b.wrap.fmt(g), b.props, g)
	} else {
		writeProps(&inner, b.props, g)
	}
	for _, c := range b.nested {
		c.render(&inner, g, &lifted)
	}
	writeGroup(w, b.name.fmt(f), inner.String(), f)
	for _, m := range lifted {
		m.renderMedia(w, f)
	}
}

// groupFills ends the rules inside of a group with a plain newline.
func groupFills(f fills) fills {
	f.eb = f.nl
	return f
}

func writeGroup(w *strings.Builder, name, inner string, f fills) {
	if strings.TrimSpace(inner) == "" {
		return
	}
	if f.nl != "" {
		inner = strings.TrimRight(
			f.tab+strings.ReplaceAll(inner, f.nl, f.nl+f.tab), f.tab,
		)
	}
	w.WriteString(name)
	w.WriteString(f.ws)
	w.WriteString("{")
	w.WriteString(f.nl)
	w.WriteString(inner)
	w.WriteString("}")
	w.WriteString(f.eb)
}
