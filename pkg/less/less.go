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
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/das7pad/lessc-go/pkg/errors"
)

type ReadFunc func(name string) ([]byte, error)

type Options struct {
	// Minify drops all optional whitespace, rules end with a newline.
	Minify bool
	// XMinify is Minify without the newlines between rules.
	XMinify bool
	Tabs    bool
	Spaces  int

	// FailFast collects diagnostics and fails the compilation at the end
	// when any was registered. Otherwise, they are written to Diagnostics.
	FailFast    bool
	Diagnostics io.Writer
	Color       bool

	// Scope provides globals from previous compilations.
	Scope   *Scope
	Verbose bool
}

type Result struct {
	CSS         string
	Imports     []string
	Diagnostics []Diagnostic
	Scope       *Scope
}

type compilation struct {
	ctx     context.Context
	read    ReadFunc
	scope   *Scope
	rep     *reporter
	imports []string
}

func newRegister(o Options) register {
	if o.FailFast {
		return &collectRegister{}
	}
	return &printRegister{w: o.Diagnostics, color: o.Color}
}

// Compile compiles the LESS file f. Imports are loaded with read.
func Compile(ctx context.Context, read ReadFunc, f string, o Options) (*Result, error) {
	blob, err := read(f)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Msg: f}
		}
		return nil, errors.Tag(err, "read "+f)
	}
	return compile(ctx, read, string(blob), f, o)
}

// CompileString compiles src, imports are read from disk relative to f.
func CompileString(ctx context.Context, src, f string, o Options) (*Result, error) {
	return compile(ctx, os.ReadFile, src, f, o)
}

func compile(ctx context.Context, read ReadFunc, src, f string, o Options) (*Result, error) {
	start := time.Now()
	s := o.Scope
	if s == nil {
		s = NewScope()
	}
	c := &compilation{
		ctx:     ctx,
		read:    read,
		scope:   s,
		rep:     &reporter{reg: newRegister(o)},
		imports: []string{f},
	}
	s.report = c.rep.report
	defer func() { s.report = nil }()

	nodes, err := c.parse(src, f, 0)
	if err != nil {
		return nil, err
	}
	resolved, err := c.resolve(nodes)
	if err != nil {
		return nil, err
	}
	res := &Result{
		CSS:         format(resolved, newFills(o)),
		Imports:     c.imports,
		Diagnostics: c.rep.diagnostics,
		Scope:       s,
	}
	if o.Verbose {
		log.Printf(
			"compiled %s: %d imports, %d diagnostics in %s",
			f, len(c.imports)-1, len(res.Diagnostics), time.Since(start),
		)
	}
	if err = c.rep.reg.close(); err != nil {
		// Diagnostics fail the compilation, hold back the css.
		res.CSS = ""
		return res, err
	}
	return res, nil
}

func (c *compilation) parse(src, f string, depth int) ([]node, error) {
	p := parser{
		c:     c,
		file:  f,
		depth: depth,
		lx:    newLexer(src, f),
		scope: c.scope,
	}
	return p.parseUnits(false)
}

// resolve runs the post-parse pass over the top-level nodes.
func (c *compilation) resolve(nodes []node) ([]node, error) {
	out := make([]node, 0, len(nodes))
	for _, n := range nodes {
		if err := c.ctx.Err(); err != nil {
			return nil, err
		}
		r, err := n.parse(c.scope)
		if err != nil {
			if errors.IsFatalError(err) {
				return nil, err
			}
			c.scope.diagnose(n, err)
			continue
		}
		out = append(out, r...)
	}
	return out, nil
}

// Tokenize returns one line per token, for debugging the lexer.
func Tokenize(src, f string) ([]string, error) {
	tt, err := lex(src, f)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(tt))
	for i, t := range tt {
		out[i] = fmt.Sprintf("%d\t%-20s %q", t.line, t.kind, t.v)
	}
	return out, nil
}

// ScopeMap writes the global variables, blocks and mixins of s.
func ScopeMap(w io.Writer, s *Scope) error {
	g := s.global()
	names := make([]string, 0, len(g.variables))
	for name := range g.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := evalString(s, g.variables[name].value, true)
		if err != nil {
			v = "<" + err.Error() + ">"
		}
		if _, err = fmt.Fprintf(w, "%s: %s;\n", name, v); err != nil {
			return err
		}
	}
	for _, b := range g.blocks {
		if _, err := fmt.Fprintf(w, "block %s\n", b.key); err != nil {
			return err
		}
	}
	keys := make([]string, 0, len(s.mixins))
	for k := range s.mixins {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, err := fmt.Fprintf(w, "mixin %s (%d)\n", k, len(s.mixins[k]))
		if err != nil {
			return err
		}
	}
	return nil
}
