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

// LexError reports a character no lexer rule accepts.
type LexError struct {
	File string
	Line int
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Illegal character '%c' line %d", e.Char, e.Line)
}

func (e *LexError) IsFatal() {}

func (e *LexError) IsUserFacing() {}

type ImportDepthError struct {
	File string
}

func (e *ImportDepthError) Error() string {
	return fmt.Sprintf(
		"Recursive import level too deep > %d (circular import ?)",
		maxImportDepth,
	)
}

func (e *ImportDepthError) IsFatal() {}

func (e *ImportDepthError) IsUserFacing() {}

// CompilationError is raised in fail-fast mode when any diagnostic was
// registered.
type CompilationError struct {
	Diagnostics []Diagnostic
}

func (e *CompilationError) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

func (e *CompilationError) IsUserFacing() {}

// NameError is raised for mixin expansion running in circles.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("NameError `%s`", e.Name)
}

type unknownVariableError struct {
	name    string
	escaped bool
}

func (e *unknownVariableError) Error() string {
	if e.escaped {
		return "Unknown escaped variable " + e.name
	}
	return "Unknown variable " + e.name
}

type recursiveVariableError struct {
	name string
}

func (e *recursiveVariableError) Error() string {
	return "Recursive variable definition for " + e.name
}

// noMatchError reports a mixin call that expands to nothing.
type noMatchError struct {
	name string
}

func (e *noMatchError) Error() string {
	return fmt.Sprintf("Mixin call `%s` matched no mixin or block", e.name)
}

type missingImportError struct {
	name string
}

func (e *missingImportError) Error() string {
	return fmt.Sprintf("Cannot import '%s', file not found", e.name)
}

type syntaxError struct {
	file string
	line int
	got  token
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf(
		"%s line: %d, Syntax Error, token: `%s`, `%s`",
		e.file, e.line, e.got.kind, e.got.v,
	)
}
