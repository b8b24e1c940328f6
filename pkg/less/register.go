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
	"io"
)

const (
	LevelError   = 'E'
	LevelWarning = 'W'
)

type Diagnostic struct {
	Level   byte
	File    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return string(d.Level) + ": " + d.Message
}

func diagnose(file string, line int, err error) Diagnostic {
	d := Diagnostic{Level: LevelError, File: file, Line: line}
	switch e := err.(type) {
	case *syntaxError:
		d.Message = e.Error()
	case *noMatchError, *missingImportError:
		d.Level = LevelWarning
		d.Message = fmt.Sprintf("line: %d: %s", line, e)
	default:
		d.Message = fmt.Sprintf("line: %d: %s", line, err)
	}
	return d
}

type register interface {
	register(d Diagnostic)
	close() error
}

// collectRegister defers all diagnostics to the end of the compilation.
type collectRegister struct {
	diagnostics []Diagnostic
}

func (r *collectRegister) register(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *collectRegister) close() error {
	if len(r.diagnostics) == 0 {
		return nil
	}
	return &CompilationError{Diagnostics: r.diagnostics}
}

type printRegister struct {
	w     io.Writer
	color bool
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func (r *printRegister) register(d Diagnostic) {
	if r.w == nil {
		return
	}
	_ = PrintDiagnostics(r.w, []Diagnostic{d}, r.color)
}

func (r *printRegister) close() error {
	return nil
}

// reporter records every diagnostic of a compilation and forwards it to
// the register.
type reporter struct {
	reg         register
	diagnostics []Diagnostic
}

func (r *reporter) report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
	r.reg.register(d)
}

// PrintDiagnostics writes one line per diagnostic, colored by level.
func PrintDiagnostics(w io.Writer, dd []Diagnostic, color bool) error {
	for _, d := range dd {
		msg := d.String()
		if color {
			c := ansiRed
			if d.Level == LevelWarning {
				c = ansiYellow
			}
			msg = c + msg + ansiReset
		}
		if _, err := io.WriteString(w, msg+"\n"); err != nil {
			return err
		}
	}
	return nil
}
