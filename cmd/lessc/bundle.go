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
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/esbuildLess"
	"github.com/das7pad/lessc-go/pkg/less"
)

// bundle compiles f through esbuild, inlining plain css imports. Warnings
// are printed unless quiet is set.
func (r *runner) bundle(f string, quiet bool) (string, error) {
	res := api.Build(api.BuildOptions{
		EntryPoints:      []string{f},
		Bundle:           true,
		Write:            false,
		LogLevel:         api.LogLevelSilent,
		MinifyWhitespace: r.lo.Minify || r.lo.XMinify,
		Plugins: []api.Plugin{
			esbuildLess.Plugin(esbuildLess.Options{
				Less:  r.lo,
				Scope: r.scope,
			}),
		},
	})
	if !quiet && len(res.Warnings) > 0 {
		dd := make([]less.Diagnostic, len(res.Warnings))
		for i, m := range res.Warnings {
			dd[i] = less.Diagnostic{Level: less.LevelWarning, Message: m.Text}
			if m.Location != nil {
				dd[i].File = m.Location.File
				dd[i].Line = m.Location.Line
			}
		}
		if r.lo.FailFast {
			return "", &less.CompilationError{Diagnostics: dd}
		}
		if r.lo.Diagnostics != nil {
			err := less.PrintDiagnostics(r.lo.Diagnostics, dd, r.lo.Color)
			if err != nil {
				return "", errors.Tag(err, "print diagnostics")
			}
		}
	}
	if len(res.Errors) > 0 {
		errs := make([]error, len(res.Errors))
		for i, m := range res.Errors {
			errs[i] = errors.New(formatMessage(m))
		}
		return "", errors.Tag(errors.Merge(errs...), "bundle "+f)
	}
	if len(res.OutputFiles) != 1 {
		return "", &errors.InvalidStateError{
			Msg: fmt.Sprintf("expected one bundle, got %d", len(res.OutputFiles)),
		}
	}
	return strings.TrimSpace(string(res.OutputFiles[0].Contents)), nil
}

func formatMessage(m api.Message) string {
	if m.Location == nil {
		return m.Text
	}
	return fmt.Sprintf("%s:%d: %s", m.Location.File, m.Location.Line, m.Text)
}
