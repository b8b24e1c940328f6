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
	"io"
	"strings"
)

// parser pulls tokens from lx as far as the current statement needs them.
type parser struct {
	c     *compilation
	file  string
	depth int
	lx    *lexer
	err   error
	tt    tokens
	i     int
	scope *Scope
}

// more reports whether the token at j exists, lexing up to it on demand.
func (p *parser) more(j int) bool {
	for len(p.tt) <= j {
		if p.lx == nil || p.err != nil {
			return false
		}
		t, err := p.lx.next()
		if err == io.EOF {
			p.lx = nil
			return false
		}
		if err != nil {
			p.err = err
			return false
		}
		p.tt = append(p.tt, t)
	}
	return true
}

func (p *parser) kindAt(j int) (tokenKind, bool) {
	if !p.more(j) {
		return 0, false
	}
	return p.tt[j].kind, true
}

func (p *parser) syntaxError(t token) error {
	return &syntaxError{file: p.file, line: t.line, got: t}
}

func (p *parser) report(err error, t token) {
	p.c.rep.report(diagnose(p.file, t.line, err))
}

// seek returns the index of the first token of one of the kinds outside
// of parentheses, starting at the current token, or -1.
func (p *parser) seek(kinds ...tokenKind) int {
	return seekWith(p.kindAt, p.i, kinds)
}

func seek(tt tokens, from int, kinds ...tokenKind) int {
	return seekWith(func(j int) (tokenKind, bool) {
		if j >= len(tt) {
			return 0, false
		}
		return tt[j].kind, true
	}, from, kinds)
}

func seekWith(at func(j int) (tokenKind, bool), from int, kinds []tokenKind) int {
	depth := 0
	for j := from; ; j++ {
		k, ok := at(j)
		if !ok {
			return -1
		}
		if depth == 0 {
			for _, want := range kinds {
				if k == want {
					return j
				}
			}
		}
		switch k {
		case tokenParenOpen, tokenFormatOpen:
			depth++
		case tokenParenClose:
			if depth > 0 {
				depth--
			}
		}
	}
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(tt tokens, open int) int {
	depth := 0
	for j := open; j < len(tt); j++ {
		switch tt[j].kind {
		case tokenParenOpen, tokenFormatOpen:
			depth++
		case tokenParenClose:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func splitTokens(tt tokens, sep tokenKind) []tokens {
	var out []tokens
	for {
		j := seek(tt, 0, sep)
		if j == -1 {
			return append(out, tt)
		}
		out = append(out, tt[:j])
		tt = tt[j+1:]
	}
}

func skipSpace(tt tokens, j int) int {
	for j < len(tt) && tt[j].isSpace() {
		j++
	}
	return j
}

// parseUnits parses statements up to the closing brace of the current
// block, or the end of input on the top level.
func (p *parser) parseUnits(nested bool) ([]node, error) {
	var out []node
	for p.more(p.i) {
		t := p.tt[p.i]
		switch t.kind {
		case tokenSemicolon, tokenSpace:
			p.i++
			continue
		case tokenBraceClose:
			if nested {
				return out, nil
			}
			p.report(p.syntaxError(t), t)
			p.i++
			continue
		}
		if !nested {
			if err := p.c.ctx.Err(); err != nil {
				return nil, err
			}
		}
		nn, err := p.parseUnit()
		if p.err != nil {
			return nil, p.err
		}
		if err != nil {
			if _, ok := err.(*syntaxError); !ok {
				return nil, err
			}
			p.report(err, t)
			p.recover(nested)
			continue
		}
		out = append(out, nn...)
	}
	if p.err != nil {
		return nil, p.err
	}
	return out, nil
}

// recover skips the statement that failed to parse. Nested, it stops in
// front of the brace closing the current block. On the top level it stops
// behind the brace closing the first block it entered.
func (p *parser) recover(nested bool) {
	depth := 0
	for ; p.more(p.i); p.i++ {
		switch p.tt[p.i].kind {
		case tokenBraceOpen:
			depth++
		case tokenBraceClose:
			if depth == 0 {
				if !nested {
					p.i++
				}
				return
			}
			depth--
			if depth == 0 && !nested {
				p.i++
				return
			}
		}
	}
}

func (p *parser) parseUnit() ([]node, error) {
	t := p.tt[p.i]
	switch t.kind {
	case cssCharset, cssNamespace:
		return p.parseStatement()
	case cssImport:
		return p.parseImport()
	case lessVariable, lessArguments:
		j := p.i + 1
		for p.more(j) && p.tt[j].isSpace() {
			j++
		}
		if k, ok := p.kindAt(j); ok && k == tokenColon {
			return p.parseVariable(j)
		}
	}
	end := p.seek(tokenBraceOpen, tokenSemicolon, tokenBraceClose)
	if end == -1 {
		return nil, p.syntaxError(t)
	}
	if p.tt[end].kind == tokenBraceOpen {
		head := trimSpace(p.tt[p.i:end])
		if isMixinHead(head) {
			return p.parseMixin(head, end)
		}
		return p.parseBlock(head, end)
	}
	return p.parseDeclaration(end)
}

func (p *parser) parseStatement() ([]node, error) {
	t := p.tt[p.i]
	end := p.seek(tokenSemicolon, tokenBraceClose)
	if end == -1 {
		end = len(p.tt)
	}
	value, err := p.parseValue(trimSpace(p.tt[p.i+1 : end]))
	if err != nil {
		return nil, err
	}
	p.skipTo(end)
	return []node{&statement{
		position: position{file: p.file, line: t.line},
		name:     strings.ToLower(t.v),
		value:    value,
	}}, nil
}

// skipTo moves behind the semicolon at end, a closing brace is left for
// the block.
func (p *parser) skipTo(end int) {
	p.i = end
	if end < len(p.tt) && p.tt[end].kind == tokenSemicolon {
		p.i++
	}
}

func (p *parser) parseVariable(colon int) ([]node, error) {
	t := p.tt[p.i]
	p.i = colon + 1
	end := p.seek(tokenSemicolon, tokenBraceClose)
	if end == -1 {
		end = len(p.tt)
	}
	valueTT := trimSpace(p.tt[colon+1 : end])
	if n := len(valueTT); n > 0 && valueTT[n-1].kind == cssImportant {
		valueTT = trimSpace(valueTT[:n-1])
	}
	value, err := p.parseValue(valueTT)
	if err != nil {
		return nil, err
	}
	p.skipTo(end)
	v := &variable{
		position: position{file: p.file, line: t.line},
		name:     t.v,
		value:    value,
	}
	p.scope.addVariable(v)
	return []node{v}, nil
}

func isMixinHead(head tokens) bool {
	if len(head) < 2 || (head[0].kind != cssClass && head[0].kind != cssID) {
		return false
	}
	for _, t := range head[1:] {
		switch t.kind {
		case tokenParenOpen:
			return true
		case cssClass, cssID, tokenSpace:
		default:
			return false
		}
	}
	return false
}

func (p *parser) newIdentifier(head tokens) (*identifier, error) {
	t := head[0]
	id := &identifier{
		position: position{file: p.file, line: t.line},
		tt:       head,
	}
	switch {
	case t.isAtRule(), t.kind == lessVariable && !strings.HasPrefix(t.v, "@{"):
		id.at = strings.ToLower(t.v)
		prelude, err := p.parseValue(trimSpace(head[1:]))
		if err != nil {
			return nil, err
		}
		id.prelude = prelude
	case t.kind == cssKeyframeSelector,
		t.kind == cssNumber && strings.HasSuffix(t.v, "%"):
		id.keyframe = true
	}
	return id, nil
}

// resolveKey computes the name of id as known while parsing. Variables
// defined further down are not known yet, the raw text is used then.
func (p *parser) resolveKey(id *identifier, root bool) *identifier {
	k := id.copy()
	if err := k.resolve(p.scope, root); err != nil {
		if k.isAtRule() {
			k.text = strings.TrimSpace(id.tt[1:].String())
		} else {
			k.alts = []string{strings.TrimSpace(id.tt.String())}
		}
		k.parsed = true
	}
	return k
}

// nested parses the body of a block in a fresh frame.
func (p *parser) nested(current *identifier) ([]node, error) {
	p.scope.push()
	defer p.scope.pop()
	p.scope.setCurrent(current)
	inner, err := p.parseUnits(true)
	if err != nil {
		return nil, err
	}
	if k, ok := p.kindAt(p.i); ok && k == tokenBraceClose {
		p.i++
	}
	return inner, nil
}

func (p *parser) parseBlock(head tokens, end int) ([]node, error) {
	if len(head) == 0 {
		return nil, p.syntaxError(p.tt[end])
	}
	id, err := p.newIdentifier(head)
	if err != nil {
		return nil, err
	}
	k := p.resolveKey(id, true)
	p.i = end + 1
	inner, err := p.nested(k)
	if err != nil {
		return nil, err
	}
	b := &block{
		position: id.position,
		name:     id,
		inner:    inner,
		key:      k.raw(),
	}
	p.scope.addBlock(b)
	return []node{b}, nil
}

func (p *parser) parseMixin(head tokens, end int) ([]node, error) {
	open := index(head, tokenParenOpen)
	closing := matchParen(head, open)
	if closing == -1 {
		return nil, p.syntaxError(head[open])
	}
	params, err := p.parseParams(trimSpace(head[open+1 : closing]))
	if err != nil {
		return nil, err
	}
	var g *guard
	if rest := trimSpace(head[closing+1:]); len(rest) > 0 {
		if rest[0].kind != lessWhen {
			return nil, p.syntaxError(rest[0])
		}
		if g, err = p.parseGuard(trimSpace(rest[1:])); err != nil {
			return nil, err
		}
	}
	id, err := p.newIdentifier(trimSpace(head[:open]))
	if err != nil {
		return nil, err
	}
	k := p.resolveKey(id, true)
	m := &mixin{
		position: id.position,
		name:     id,
		key:      k.raw(),
		params:   params,
		guard:    g,
		closure:  p.scope.localVariables(),
	}
	p.i = end + 1
	body, err := p.nested(k)
	if err != nil {
		return nil, err
	}
	m.body = body
	p.scope.addMixin(m)
	return nil, nil
}

func separator(tt tokens) tokenKind {
	if seek(tt, 0, tokenSemicolon) != -1 {
		return tokenSemicolon
	}
	return tokenComma
}

func isEllipsis(tt tokens) bool {
	n := len(tt)
	return n >= 3 && tt[n-1].v == "." && tt[n-2].v == "." && tt[n-3].v == "."
}

func (p *parser) parseParams(tt tokens) ([]mixinParam, error) {
	if len(tt) == 0 {
		return nil, nil
	}
	var params []mixinParam
	for _, part := range splitTokens(tt, separator(tt)) {
		part = trimSpace(part)
		if len(part) == 0 {
			continue
		}
		rest := isEllipsis(part)
		if rest {
			part = trimSpace(part[:len(part)-3])
		}
		switch {
		case len(part) == 0:
			params = append(params, mixinParam{rest: true})
		case part[0].kind == lessVariable || part[0].kind == lessArguments:
			mp := mixinParam{name: part[0].v, rest: rest}
			after := trimSpace(part[1:])
			if len(after) > 0 {
				if after[0].kind != tokenColon {
					return nil, p.syntaxError(after[0])
				}
				def, err := p.parseValue(trimSpace(after[1:]))
				if err != nil {
					return nil, err
				}
				mp.def = def
			}
			params = append(params, mp)
		default:
			params = append(params, mixinParam{
				pattern: strings.TrimSpace(part.String()),
			})
		}
	}
	return params, nil
}

func (p *parser) parseGuard(tt tokens) (*guard, error) {
	g := &guard{or: seek(tt, 0, tokenComma) != -1}
	for {
		tt = trimSpace(tt)
		if len(tt) == 0 {
			break
		}
		switch tt[0].kind {
		case tokenComma, lessAnd, tokenAnd:
			tt = tt[1:]
			continue
		}
		not := false
		if tt[0].kind == lessNot || tt[0].kind == tokenNot {
			not = true
			tt = trimSpace(tt[1:])
		}
		if len(tt) == 0 || tt[0].kind != tokenParenOpen {
			if len(tt) == 0 {
				return nil, p.syntaxError(token{kind: lessWhen, v: "when"})
			}
			return nil, p.syntaxError(tt[0])
		}
		closing := matchParen(tt, 0)
		if closing == -1 {
			return nil, p.syntaxError(tt[0])
		}
		c, err := p.parseCondition(trimSpace(tt[1:closing]))
		if err != nil {
			return nil, err
		}
		c.not = not
		g.conditions = append(g.conditions, c)
		tt = tt[closing+1:]
	}
	return g, nil
}

var comparators = map[string]comparator{
	"=":  compEq,
	"!=": compNEq,
	"<":  compLt,
	">":  compGt,
	"<=": compLte,
	"=<": compLte,
	">=": compGte,
	"=>": compGte,
}

func isComparison(t token) bool {
	switch t.kind {
	case tokenEq, tokenLt, tokenGt, tokenExclamation:
		return true
	default:
		return false
	}
}

func (p *parser) parseCondition(tt tokens) (condition, error) {
	depth := 0
	for j := 0; j < len(tt); j++ {
		switch tt[j].kind {
		case tokenParenOpen, tokenFormatOpen:
			depth++
			continue
		case tokenParenClose:
			depth--
			continue
		}
		if depth != 0 || !isComparison(tt[j]) {
			continue
		}
		k := j + 1
		op := tt[j].v
		if k < len(tt) && isComparison(tt[k]) {
			op += tt[k].v
			k++
		}
		c, ok := comparators[op]
		if !ok {
			return condition{}, p.syntaxError(tt[j])
		}
		a, err := p.parseValue(trimSpace(tt[:j]))
		if err != nil {
			return condition{}, err
		}
		b, err := p.parseValue(trimSpace(tt[k:]))
		if err != nil {
			return condition{}, err
		}
		return condition{a: a, c: c, b: b}, nil
	}
	a, err := p.parseValue(tt)
	if err != nil {
		return condition{}, err
	}
	return condition{a: a}, nil
}

func (p *parser) parseDeclaration(end int) ([]node, error) {
	tt := trimSpace(p.tt[p.i:end])
	p.skipTo(end)
	if len(tt) == 0 {
		return nil, nil
	}
	switch tt[0].kind {
	case cssClass, cssID:
		return p.parseCall(tt)
	}
	colon := seek(tt, 0, tokenColon)
	if colon <= 0 {
		return nil, p.syntaxError(tt[0])
	}
	return p.parseProperty(trimSpace(tt[:colon]), trimSpace(tt[colon+1:]))
}

func (p *parser) parseProperty(nameTT, valueTT tokens) ([]node, error) {
	name := make([]term, 0, len(nameTT))
	for _, t := range nameTT {
		if t.kind == lessVariable {
			name = append(name, varRef{name: t.v})
		} else {
			name = append(name, lit(t.v))
		}
	}
	important := false
	if n := len(valueTT); n > 0 && valueTT[n-1].kind == cssImportant {
		important = true
		valueTT = trimSpace(valueTT[:n-1])
	}
	value, err := p.parseValue(valueTT)
	if err != nil {
		return nil, err
	}
	return []node{&property{
		position:  position{file: p.file, line: nameTT[0].line},
		name:      name,
		value:     value,
		important: important,
	}}, nil
}

// parseCall handles mixin calls and block references. A reference to a
// block that is already known is copied in place.
func (p *parser) parseCall(tt tokens) ([]node, error) {
	important := false
	if n := len(tt); tt[n-1].kind == cssImportant {
		important = true
		tt = trimSpace(tt[:n-1])
	}
	nameTT := tt
	var argsTT tokens
	open := seek(tt, 0, tokenParenOpen)
	if open != -1 {
		closing := matchParen(tt, open)
		if closing == -1 {
			return nil, p.syntaxError(tt[open])
		}
		if rest := trimSpace(tt[closing+1:]); len(rest) > 0 {
			return nil, p.syntaxError(rest[0])
		}
		nameTT = trimSpace(tt[:open])
		argsTT = trimSpace(tt[open+1 : closing])
	}
	id, err := p.newIdentifier(nameTT)
	if err != nil {
		return nil, err
	}
	if open == -1 && !important {
		for _, root := range []bool{true, false} {
			k := p.resolveKey(id, root)
			if b := p.scope.blocks(k.raw()); b != nil {
				return b.copyInner(), nil
			}
		}
	}
	args, err := p.parseArgs(argsTT)
	if err != nil {
		return nil, err
	}
	return []node{&deferred{
		position:  id.position,
		name:      id,
		args:      args,
		important: important,
	}}, nil
}

func (p *parser) parseArgs(tt tokens) ([]callArg, error) {
	if len(tt) == 0 {
		return nil, nil
	}
	var args []callArg
	for _, part := range splitTokens(tt, separator(tt)) {
		part = trimSpace(part)
		if len(part) == 0 {
			continue
		}
		a := callArg{}
		if part[0].kind == lessVariable {
			j := skipSpace(part, 1)
			if j < len(part) && part[j].kind == tokenColon {
				a.name = part[0].v
				part = trimSpace(part[j+1:])
			}
		}
		value, err := p.parseValue(part)
		if err != nil {
			return nil, err
		}
		a.value = value
		args = append(args, a)
	}
	return args, nil
}

// valueParser parses a property value, applying the usual precedence of
// the arithmetic operators.
type valueParser struct {
	p  *parser
	tt tokens
	i  int
}

func (p *parser) parseValue(tt tokens) ([]term, error) {
	vp := valueParser{p: p, tt: tt}
	return vp.list()
}

func (vp *valueParser) list() ([]term, error) {
	out := make([]term, 0, len(vp.tt))
	for vp.i < len(vp.tt) {
		switch vp.tt[vp.i].kind {
		case tokenSpace:
			out = append(out, litSpace)
			vp.i++
		case tokenComma:
			out = append(out, litComma)
			vp.i++
		default:
			x, err := vp.sum()
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
	}
	return out, nil
}

func (vp *valueParser) skipSpace() bool {
	j := skipSpace(vp.tt, vp.i)
	skipped := j != vp.i
	vp.i = j
	return skipped
}

func (vp *valueParser) spaceAt(j int) bool {
	return j >= len(vp.tt) || vp.tt[j].isSpace()
}

func isOperand(x term) bool {
	switch v := x.(type) {
	case lit:
		return isNumber(string(v))
	case varRef, *expression, *negation:
		return true
	default:
		return false
	}
}

func (vp *valueParser) sum() (term, error) {
	left, err := vp.product()
	if err != nil {
		return nil, err
	}
	for {
		j := vp.i
		spaceBefore := vp.skipSpace()
		if vp.i >= len(vp.tt) {
			vp.i = j
			return left, nil
		}
		t := vp.tt[vp.i]
		switch {
		case t.kind == tokenPlus || t.kind == tokenMinus:
			if t.kind == tokenMinus && spaceBefore && !vp.spaceAt(vp.i+1) {
				// A negative operand: 1px -2px
				vp.i = j
				return left, nil
			}
			vp.i++
			spaceAfter := vp.skipSpace()
			if vp.i >= len(vp.tt) {
				vp.i = j
				return left, nil
			}
			right, err2 := vp.product()
			if err2 != nil {
				return nil, err2
			}
			left = &expression{
				a:      left,
				op:     t.v,
				b:      right,
				spaced: spaceBefore || spaceAfter,
			}
		case !spaceBefore && t.kind == cssNumber &&
			strings.HasPrefix(t.v, "-") && isOperand(left):
			// 10px-2px lexes as two numbers.
			vp.i++
			left = &expression{a: left, op: "-", b: lit(t.v[1:])}
		default:
			vp.i = j
			return left, nil
		}
	}
}

func (vp *valueParser) product() (term, error) {
	left, err := vp.unary()
	if err != nil {
		return nil, err
	}
	for {
		j := vp.i
		spaceBefore := vp.skipSpace()
		if vp.i >= len(vp.tt) {
			vp.i = j
			return left, nil
		}
		t := vp.tt[vp.i]
		if t.kind != tokenStar && t.kind != tokenSlash {
			vp.i = j
			return left, nil
		}
		vp.i++
		spaceAfter := vp.skipSpace()
		if vp.i >= len(vp.tt) {
			vp.i = j
			return left, nil
		}
		right, err2 := vp.unary()
		if err2 != nil {
			return nil, err2
		}
		left = &expression{
			a:      left,
			op:     t.v,
			b:      right,
			spaced: spaceBefore || spaceAfter,
		}
	}
}

func (vp *valueParser) unary() (term, error) {
	t := vp.tt[vp.i]
	if t.kind == tokenMinus && !vp.spaceAt(vp.i+1) {
		vp.i++
		x, err := vp.unary()
		if err != nil {
			return nil, err
		}
		return &negation{t: x}, nil
	}
	return vp.primary()
}

func (vp *valueParser) primary() (term, error) {
	t := vp.tt[vp.i]
	vp.i++
	switch t.kind {
	case lessVariable, lessArguments:
		return varRef{name: t.v}, nil
	case tokenFormatOpen:
		return vp.call("%", vp.i-1)
	case tokenParenOpen:
		return vp.paren(vp.i - 1)
	case tokenEscapeOpen:
		parts, err := vp.quoted(t, tokenEscapeClose)
		if err != nil {
			return nil, err
		}
		return &quoted{parts: parts}, nil
	case tokenStringOpen:
		parts, err := vp.quoted(t, tokenStringClose)
		if err != nil {
			return nil, err
		}
		return &quoted{quote: t.v, parts: parts}, nil
	}
	if vp.i < len(vp.tt) && vp.tt[vp.i].kind == tokenParenOpen &&
		(t.isWord() || t.kind == cssClass) {
		vp.i++
		return vp.call(t.v, vp.i-1)
	}
	return lit(t.v), nil
}

func (vp *valueParser) call(name string, open int) (term, error) {
	closing := matchParen(vp.tt, open)
	if closing == -1 {
		return nil, vp.p.syntaxError(vp.tt[open])
	}
	inner := trimSpace(vp.tt[open+1 : closing])
	vp.i = closing + 1
	c := &call{name: name}
	if len(inner) == 0 {
		return c, nil
	}
	for _, part := range splitTokens(inner, tokenComma) {
		arg, err := vp.p.parseValue(trimSpace(part))
		if err != nil {
			return nil, err
		}
		c.args = append(c.args, arg)
	}
	return c, nil
}

func (vp *valueParser) paren(open int) (term, error) {
	closing := matchParen(vp.tt, open)
	if closing == -1 {
		return nil, vp.p.syntaxError(vp.tt[open])
	}
	inner, err := vp.p.parseValue(trimSpace(vp.tt[open+1 : closing]))
	if err != nil {
		return nil, err
	}
	vp.i = closing + 1
	if len(inner) == 1 && isOperand(inner[0]) {
		return inner[0], nil
	}
	return &paren{inner: inner}, nil
}

func (vp *valueParser) quoted(open token, closer tokenKind) ([]term, error) {
	var parts []term
	for ; vp.i < len(vp.tt); vp.i++ {
		t := vp.tt[vp.i]
		switch t.kind {
		case closer:
			vp.i++
			return parts, nil
		case lessVariable:
			parts = append(parts, varRef{name: t.v})
		default:
			parts = append(parts, lit(t.v))
		}
	}
	return nil, vp.p.syntaxError(open)
}
