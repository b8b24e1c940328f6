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

package esbuildLess

import (
	"context"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/less"
	"github.com/das7pad/lessc-go/pkg/lessCache"
)

type Options struct {
	Less less.Options

	// Cache is optional.
	Cache lessCache.Cache
	// Read defaults to os.ReadFile.
	Read less.ReadFunc
	// Scope seeds each load with globals. esbuild loads files in
	// parallel, every call must return a fresh Scope.
	Scope func() *less.Scope
}

// Plugin returns an esbuild plugin that loads .less files as CSS.
func Plugin(o Options) api.Plugin {
	if o.Read == nil {
		o.Read = os.ReadFile
	}
	// esbuild collects the diagnostics.
	o.Less.FailFast = false
	o.Less.Diagnostics = nil
	o.Less.Scope = nil
	return api.Plugin{
		Name: "lessLoader",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{
				Filter: "\\.less$",
			}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				return render(context.Background(), o, args.Path)
			})
		},
	}
}

func compile(ctx context.Context, o Options, p string) (*less.Result, error) {
	lo := o.Less
	if o.Scope != nil {
		lo.Scope = o.Scope()
	}
	if o.Cache != nil {
		res, _, err := o.Cache.Compile(ctx, o.Read, p, lo)
		return res, err
	}
	return less.Compile(ctx, o.Read, p, lo)
}

func render(ctx context.Context, o Options, p string) (api.OnLoadResult, error) {
	res, err := compile(ctx, o, p)
	if err != nil {
		r := api.OnLoadResult{}
		if e, ok := errors.GetCause(err).(*less.LexError); ok {
			r.Errors = append(r.Errors, api.Message{
				Text:     e.Error(),
				Location: &api.Location{File: e.File, Line: e.Line},
			})
			return r, nil
		}
		return r, errors.Tag(err, p)
	}
	css := res.CSS
	r := api.OnLoadResult{
		Contents:   &css,
		ResolveDir: filepath.Dir(p),
		Loader:     api.LoaderCSS,
		WatchFiles: res.Imports,
	}
	for _, d := range res.Diagnostics {
		m := api.Message{
			Text:     d.Message,
			Location: &api.Location{File: d.File, Line: d.Line},
		}
		if d.Level == less.LevelWarning {
			r.Warnings = append(r.Warnings, m)
		} else {
			r.Errors = append(r.Errors, m)
		}
	}
	return r, nil
}
