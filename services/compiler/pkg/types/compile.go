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

package types

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/less"
)

type CompileOptions struct {
	Minify   bool `json:"minify"`
	XMinify  bool `json:"xminify"`
	Tabs     bool `json:"tabs"`
	Spaces   int  `json:"spaces"`
	FailFast bool `json:"fail_fast"`
}

func (o CompileOptions) Validate() error {
	if o.Spaces < 0 || o.Spaces > 16 {
		return &errors.ValidationError{Msg: "spaces must be within 0-16"}
	}
	return nil
}

func (o CompileOptions) Less() less.Options {
	return less.Options{
		Minify:   o.Minify,
		XMinify:  o.XMinify,
		Tabs:     o.Tabs,
		Spaces:   o.Spaces,
		FailFast: o.FailFast,
	}
}

// FromQuery overrides the options present in q.
func (o *CompileOptions) FromQuery(q url.Values) error {
	flags := []struct {
		key    string
		target *bool
	}{
		{"minify", &o.Minify},
		{"xminify", &o.XMinify},
		{"tabs", &o.Tabs},
		{"fail_fast", &o.FailFast},
	}
	for _, f := range flags {
		if !q.Has(f.key) {
			continue
		}
		v, err := parseBool(q.Get(f.key))
		if err != nil {
			return &errors.ValidationError{Msg: "malformed " + f.key}
		}
		*f.target = v
	}
	if q.Has("spaces") {
		n, err := strconv.Atoi(q.Get("spaces"))
		if err != nil {
			return &errors.ValidationError{Msg: "malformed spaces"}
		}
		o.Spaces = n
	}
	return o.Validate()
}

// parseBool accepts a bare query flag as true.
func parseBool(s string) (bool, error) {
	if s == "" {
		return true, nil
	}
	return strconv.ParseBool(s)
}

type SourcePath string

func (p SourcePath) Validate() error {
	if p == "" {
		return &errors.ValidationError{Msg: "missing path"}
	}
	s := string(p)
	if path.IsAbs(s) || strings.ContainsRune(s, '\\') {
		return &errors.ValidationError{Msg: "path must be relative"}
	}
	if c := path.Clean(s); c != s || c == ".." || strings.HasPrefix(c, "../") {
		return &errors.ValidationError{Msg: "path must be clean"}
	}
	if path.Ext(s) != ".less" {
		return &errors.ValidationError{Msg: "path must end in .less"}
	}
	return nil
}

type CompileRequest struct {
	// File names the source for diagnostics and relative imports.
	File    SourcePath     `json:"file"`
	Source  string         `json:"source"`
	Options CompileOptions `json:"options"`
}

func (r *CompileRequest) Validate() error {
	if r.File == "" {
		r.File = "input.less"
	}
	if err := r.File.Validate(); err != nil {
		return err
	}
	return r.Options.Validate()
}

type Diagnostic struct {
	Level   string `json:"level"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type CompileResponse struct {
	CSS         string       `json:"css"`
	Imports     []string     `json:"imports"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func (r *CompileResponse) FromResult(res *less.Result) {
	r.CSS = res.CSS
	r.Imports = res.Imports
	r.Diagnostics = make([]Diagnostic, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		r.Diagnostics[i] = Diagnostic{
			Level:   string(d.Level),
			File:    d.File,
			Line:    d.Line,
			Message: d.Message,
		}
	}
}
