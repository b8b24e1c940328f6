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
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=tokenKind

type tokenKind int16

const (
	tokenSpace tokenKind = iota
	tokenBraceOpen
	tokenBraceClose
	tokenColon
	tokenComma
	tokenSemicolon
	tokenParenOpen
	tokenParenClose
	tokenFormatOpen
	tokenTilde
	tokenEscapeOpen
	tokenEscapeClose
	tokenStringOpen
	tokenStringClose

	tokenLt
	tokenGt
	tokenEq
	tokenPercent
	tokenExclamation
	tokenSlash
	tokenStar
	tokenMinus
	tokenPlus
	tokenAmp

	tokenAnd
	tokenNot
	tokenOnly

	cssIdent
	cssDom
	cssClass
	cssID
	cssProperty
	cssVendorProperty
	cssString
	cssColor
	cssFilter
	cssNumber
	cssImportant
	cssURI
	cssMsFilter
	cssKeyframeSelector
	cssMediaType
	cssMediaFeature

	cssMedia
	cssPage
	cssImport
	cssCharset
	cssFontFace
	cssNamespace
	cssKeyframes
	cssViewport

	lessVariable
	lessArguments
	lessWhen
	lessAnd
	lessNot

	numTokenKinds
)

type lexState uint8

const (
	stateInitial lexState = iota
	stateParn
	stateEscapeQuotes
	stateEscapeApostrophe
	stateStringQuotes
	stateStringApostrophe
	stateSelector
	stateMediaQuery
	stateImport

	numLexStates
)

var lexStateNames = [numLexStates]string{
	"INITIAL",
	"parn",
	"escapequotes",
	"escapeapostrophe",
	"istringquotes",
	"istringapostrophe",
	"iselector",
	"mediaquery",
	"import",
}

func (s lexState) String() string {
	if s >= numLexStates {
		return fmt.Sprintf("lexState(%d)", s)
	}
	return lexStateNames[s]
}

func (s lexState) isEscape() bool {
	return s == stateEscapeQuotes || s == stateEscapeApostrophe
}

type token struct {
	kind  tokenKind
	line  int
	state lexState
	v     string
}

func (t token) String() string {
	return fmt.Sprintf("%s@%d@%s: %q", t.kind, t.line, t.state, t.v)
}

func (t token) isSpace() bool {
	return t.kind == tokenSpace
}

// isWord reports whether the token is an identifier like value, independent
// of how the lexer classified it.
func (t token) isWord() bool {
	switch t.kind {
	case cssIdent, cssDom, cssProperty, cssVendorProperty,
		cssKeyframeSelector, cssMediaType, cssMediaFeature,
		lessWhen, lessAnd, lessNot, tokenAnd, tokenNot, tokenOnly:
		return true
	default:
		return false
	}
}

func (t token) isAtRule() bool {
	return t.kind >= cssMedia && t.kind <= cssViewport
}

type tokens []token

func (tt tokens) String() string {
	if len(tt) == 0 {
		return ""
	}
	if len(tt) == 1 {
		return tt[0].v
	}
	n := 0
	for _, t := range tt {
		n += len(t.v)
	}
	b := strings.Builder{}
	b.Grow(n)
	for _, t := range tt {
		b.WriteString(t.v)
	}
	return b.String()
}

func (tt tokens) WriteString(b *strings.Builder) {
	for _, t := range tt {
		b.WriteString(t.v)
	}
}

func (tt tokens) Eq(other tokens) bool {
	if len(tt) != len(other) {
		return false
	}
	for i, t := range tt {
		if t != other[i] {
			return false
		}
	}
	return true
}

func trimSpace(s tokens) tokens {
	for len(s) > 0 && s[0].isSpace() {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1].isSpace() {
		s = s[:len(s)-1]
	}
	return s
}

func index(s tokens, k tokenKind) int {
	for i, t := range s {
		if t.kind == k {
			return i
		}
	}
	return -1
}
