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
	"regexp"
	"strings"
	"unicode/utf8"
)

type lexAction func(l *lexer, t *token) bool

type lexRule struct {
	re     *regexp.Regexp
	kind   tokenKind
	action lexAction
}

func rule(pattern string, k tokenKind, action lexAction) lexRule {
	return lexRule{
		re:     regexp.MustCompile(`(?i)^(?:` + pattern + `)`),
		kind:   k,
		action: action,
	}
}

const (
	identStart = `(?:[_a-z]|[^\x00-\x7f]|\\[0-9a-f]{1,6}|\\[^\s0-9a-f])`
	identChar  = `(?:[_a-z0-9\-]|[^\x00-\x7f]|\\[0-9a-f]{1,6}|\\[^\s0-9a-f])`
	spaceChars = `[ \t\f\v\r\n]+`

	filterPattern = `\[[^\]]*\]` +
		`|(?:not|lang|nth-[a-z\-]+)\([^()]*(?:\([^()]*\)[^()]*)*\)`
	numberPattern = `-?(?:\d*\.\d+|\d+)` +
		`(?:s|%|in|ex|[ecm]m|p[txc]|deg|g?rad|ms?|k?hz|dpi|dpcm|dppx` +
		`|rem|vmin|vmax|vh|vw|ch|fr)?`
	uriPattern = `data:[^)]+` +
		`|(?:(?:[a-z]+://)?` +
		`(?:(?:/?[.a-z:]+[\w.:]*[\\/][\\/]?)+` +
		`|(?:[a-z][\w.\-]+(?:\.[a-z0-9]+))(?:#[a-z]+)?))+`
)

var literalKinds = map[byte]tokenKind{
	'<': tokenLt,
	'>': tokenGt,
	'=': tokenEq,
	'%': tokenPercent,
	'!': tokenExclamation,
	'/': tokenSlash,
	'*': tokenStar,
	'-': tokenMinus,
	'+': tokenPlus,
	'&': tokenAmp,
}

// significantSpace lists the token kinds that keep a following whitespace.
var significantSpace [numTokenKinds]bool

var lexRules [numLexStates][]lexRule

func init() {
	for k := tokenKind(0); k < numTokenKinds; k++ {
		switch k {
		case tokenSpace, tokenBraceOpen, tokenBraceClose, tokenColon,
			tokenComma, tokenSemicolon, tokenParenOpen, tokenFormatOpen,
			tokenEscapeOpen, tokenStringOpen, tokenExclamation:
		default:
			significantSpace[k] = true
		}
	}

	initial := []lexRule{
		rule(filterPattern, cssFilter, nil),
		rule(`(?:progid:|DX\.)[^;(]*`, cssMsFilter, nil),
		rule(`\{`, tokenBraceOpen, resetPropertyDecl),
		rule(`\}`, tokenBraceClose, nil),
		rule(`:`, tokenColon, nil),
		rule(`,`, tokenComma, resetPropertyDecl),
		rule(numberPattern, cssNumber, nil),
		rule(`[\-.#]?`+identStart+identChar+`*|\.`, cssIdent, classifyIdent),
		rule(`@@?[\w-]+|@\{[^@}]+\}`, lessVariable, classifyVariable),
		rule(`#[0-9](?:[0-9a-f]{5}|[0-9a-f]{2})`, cssColor, nil),
		rule(`/\*[\s\S]*?\*/`, tokenSpace, drop),
		rule(`//[^\n]*`, tokenSpace, drop),
		rule(`!\s*important`, cssImportant, replaceWith("!important")),
		rule(spaceChars, tokenSpace, replaceWith(" ")),
		rule(`\(`, tokenParenOpen, push(stateParn)),
		rule(`%\(`, tokenFormatOpen, push(stateParn)),
		rule(`\)`, tokenParenClose, nil),
		rule(`;`, tokenSemicolon, resetPropertyDecl),
		rule(`~"|~'`, tokenEscapeOpen, pushQuoted(
			stateEscapeQuotes, stateEscapeApostrophe,
		)),
		rule(`~`, tokenTilde, nil),
		rule(`"[^"@]*"|'[^'@]*'`, cssString, nil),
		rule(`"|'`, tokenStringOpen, pushQuoted(
			stateStringQuotes, stateStringApostrophe,
		)),
	}
	own := [numLexStates][]lexRule{
		stateParn: {
			rule(`//[^)\s]*`, cssURI, nil),
			rule(uriPattern, cssURI, nil),
			rule(identStart+identChar+`*`, cssIdent, nil),
			rule(`\)`, tokenParenClose, pop(1)),
		},
		stateEscapeQuotes:     quotedRules(`"`, tokenEscapeClose),
		stateEscapeApostrophe: quotedRules(`'`, tokenEscapeClose),
		stateStringQuotes:     quotedRules(`"`, tokenStringClose),
		stateStringApostrophe: quotedRules(`'`, tokenStringClose),
		stateSelector: {
			rule(`@\{[^@}]+\}`, lessVariable, nil),
			rule(filterPattern, cssFilter, nil),
			rule(`[_a-z0-9\-]+`, cssClass, nil),
			rule(spaceChars, tokenSpace, func(l *lexer, t *token) bool {
				l.pop()
				t.v = " "
				return true
			}),
			rule(`\{`, tokenBraceOpen, func(l *lexer, t *token) bool {
				l.pop()
				return resetPropertyDecl(l, t)
			}),
			rule(`:`, tokenColon, pop(1)),
			rule(`;`, tokenSemicolon, func(l *lexer, t *token) bool {
				l.pop()
				return resetPropertyDecl(l, t)
			}),
			rule(`\}`, tokenBraceClose, pop(1)),
		},
		stateMediaQuery: {
			rule(`not\b`, tokenNot, nil),
			rule(`only\b`, tokenOnly, nil),
			rule(`and\b`, tokenAnd, nil),
			rule(`\(`, tokenParenOpen, nil),
			rule(`(?:`+alternation(mediaTypes)+`)\b`, cssMediaType, nil),
			rule(`(?:`+alternation(mediaFeatures)+`)\b`, cssMediaFeature, nil),
			rule(`\{`, tokenBraceOpen, pop(1)),
			// Only reachable from @import: close the import state too.
			rule(`;`, tokenSemicolon, pop(2)),
		},
		stateImport: {
			rule(`(?:`+alternation(mediaTypes)+`)\b`, cssMediaType, push(stateMediaQuery)),
			rule(`;`, tokenSemicolon, pop(1)),
		},
	}
	for s := lexState(0); s < numLexStates; s++ {
		lexRules[s] = append(own[s], initial...)
	}
}

func quotedRules(q string, closer tokenKind) []lexRule {
	return []lexRule{
		rule(`@\{[^@`+q+`}]+\}`, lessVariable, nil),
		rule(`[^`+q+`@]+`, cssString, nil),
		rule(q, closer, pop(1)),
		rule(`@`, cssString, nil),
	}
}

func drop(*lexer, *token) bool {
	return false
}

func replaceWith(v string) lexAction {
	return func(_ *lexer, t *token) bool {
		t.v = v
		return true
	}
}

func push(s lexState) lexAction {
	return func(l *lexer, _ *token) bool {
		l.push(s)
		return true
	}
}

func pop(n int) lexAction {
	return func(l *lexer, _ *token) bool {
		for i := 0; i < n; i++ {
			l.pop()
		}
		return true
	}
}

func pushQuoted(quotes, apostrophe lexState) lexAction {
	return func(l *lexer, t *token) bool {
		if strings.HasSuffix(t.v, `"`) {
			l.push(quotes)
		} else {
			l.push(apostrophe)
		}
		return true
	}
}

func resetPropertyDecl(l *lexer, _ *token) bool {
	l.inPropertyDecl = false
	return true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return len(s) > 0
}

func classifyIdent(l *lexer, t *token) bool {
	v := strings.TrimSpace(t.v)
	t.v = v
	switch {
	case v[0] == '.':
		t.kind = cssClass
		if l.state() == stateInitial {
			l.push(stateSelector)
		}
	case v[0] == '#':
		t.kind = cssID
		if (len(v) == 4 || len(v) == 7) && isHex(v[1:]) {
			t.kind = cssColor
		}
	case v == "when":
		t.kind = lessWhen
	case v == "and":
		t.kind = lessAnd
	case v == "not":
		t.kind = lessNot
	case v == "from" || v == "to":
		t.kind = cssKeyframeSelector
	case cssProperties[v]:
		t.kind = cssProperty
		l.inPropertyDecl = true
	case isDomElement(v) && !l.inPropertyDecl:
		// Keeps rect() and friends out of selectors.
		t.kind = cssDom
	case v[0] == '-':
		t.kind = cssVendorProperty
		l.inPropertyDecl = true
	}
	return true
}

func classifyVariable(l *lexer, t *token) bool {
	k, ok := reservedTokens[strings.ToLower(t.v)]
	if !ok {
		return true
	}
	t.kind = k
	switch k {
	case cssMedia:
		l.push(stateMediaQuery)
	case cssImport:
		l.push(stateImport)
	}
	return true
}

type lexer struct {
	src            string
	file           string
	pos            int
	line           int
	stack          []lexState
	inPropertyDecl bool
	last           tokenKind
	started        bool
	pending        *token
}

func newLexer(src, file string) *lexer {
	return &lexer{
		src:  strings.TrimPrefix(src, "\ufeff"),
		file: file,
		line: 1,
	}
}

func (l *lexer) state() lexState {
	if len(l.stack) == 0 {
		return stateInitial
	}
	return l.stack[len(l.stack)-1]
}

func (l *lexer) push(s lexState) {
	l.stack = append(l.stack, s)
}

func (l *lexer) pop() {
	if len(l.stack) > 0 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

func (l *lexer) scan() (token, error) {
	for l.pos < len(l.src) {
		t, ok, err := l.match()
		if err != nil {
			return token{}, err
		}
		if ok {
			return t, nil
		}
	}
	return token{}, io.EOF
}

func (l *lexer) match() (token, bool, error) {
	s := l.state()
	rest := l.src[l.pos:]
	for _, r := range lexRules[s] {
		m := r.re.FindStringIndex(rest)
		if m == nil || m[1] == 0 {
			continue
		}
		t := token{kind: r.kind, line: l.line, state: s, v: rest[:m[1]]}
		l.pos += m[1]
		l.line += strings.Count(t.v, "\n")
		if r.action != nil && !r.action(l, &t) {
			return t, false, nil
		}
		return t, true, nil
	}
	if k, ok := literalKinds[rest[0]]; ok {
		l.pos++
		return token{kind: k, line: l.line, state: s, v: rest[:1]}, true, nil
	}
	c, _ := utf8.DecodeRuneInString(rest)
	return token{}, false, &LexError{File: l.file, Line: l.line, Char: c}
}

// next returns the next token for the parser. Insignificant whitespace is
// dropped and a semicolon is inserted in front of a closing brace that
// follows a declaration.
func (l *lexer) next() (token, error) {
	if l.pending != nil {
		t := *l.pending
		l.pending = nil
		l.last = t.kind
		return t, nil
	}
	for {
		t, err := l.scan()
		if err != nil {
			return t, err
		}
		if t.kind == tokenSpace && (!l.started || !significantSpace[l.last]) {
			continue
		}
		if t.kind == tokenBraceClose && l.started &&
			l.last != tokenBraceOpen && l.last != tokenBraceClose &&
			l.last != tokenSemicolon && !l.state().isEscape() {
			l.pending = &t
			l.last = tokenSemicolon
			l.inPropertyDecl = false
			return token{
				kind:  tokenSemicolon,
				line:  t.line,
				state: t.state,
				v:     ";",
			}, nil
		}
		l.started = true
		l.last = t.kind
		return t, nil
	}
}

func lex(src, file string) (tokens, error) {
	l := newLexer(src, file)
	var tt tokens
	for {
		t, err := l.next()
		if err == io.EOF {
			return tt, nil
		}
		if err != nil {
			return nil, err
		}
		tt = append(tt, t)
	}
}
