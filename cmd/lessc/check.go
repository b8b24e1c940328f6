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

package main

import (
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/das7pad/lessc-go/pkg/errors"
)

type checkError struct {
	file string
}

func (e *checkError) Error() string {
	return "output differs from " + e.file
}

// diffCSS renders the changes from want to got, or "" when they match.
func diffCSS(want, got string, color bool) string {
	want = strings.TrimSpace(want)
	got = strings.TrimSpace(got)
	if want == got {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if color {
		return dmp.DiffPrettyText(diffs)
	}
	return dmp.PatchToText(dmp.PatchMake(want, diffs))
}

func (r *runner) checkAgainst(f, css string) error {
	blob, err := os.ReadFile(f)
	if err != nil {
		return errors.Tag(err, "read "+f)
	}
	d := diffCSS(string(blob), css, r.lo.Color)
	if d == "" {
		return nil
	}
	r.mu.Lock()
	_, err = io.WriteString(r.stdout, d+"\n")
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return &checkError{file: f}
}
