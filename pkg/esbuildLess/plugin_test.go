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
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/lessc-go/pkg/less"
	"github.com/das7pad/lessc-go/pkg/lessCache"
)

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, s := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestPlugin(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.less": "@import \"vars\";\n@import \"gone\";\n.a { color: @c; }",
		"vars.less": "@c: red;",
	})
	c, err := lessCache.New(4)
	if err != nil {
		t.Fatal(err)
	}
	for _, withCache := range []bool{false, true} {
		o := Options{}
		if withCache {
			o.Cache = c
		}
		res := api.Build(api.BuildOptions{
			EntryPoints: []string{filepath.Join(dir, "main.less")},
			Bundle:      true,
			Write:       false,
			Outdir:      filepath.Join(dir, "out"),
			Plugins:     []api.Plugin{Plugin(o)},
			LogLevel:    api.LogLevelSilent,
		})
		if len(res.Errors) != 0 {
			t.Fatalf("Build() errors = %v", res.Errors)
		}
		if len(res.OutputFiles) != 1 {
			t.Fatalf("Build() output = %d files", len(res.OutputFiles))
		}
		got := string(res.OutputFiles[0].Contents)
		if !strings.Contains(got, "color: red") {
			t.Errorf("Build() got = %q", got)
		}
		if len(res.Warnings) != 1 ||
			!strings.Contains(res.Warnings[0].Text, "gone.less") {
			t.Errorf("Build() warnings = %v", res.Warnings)
		}
	}
}

func Test_render(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.less":  "@import \"vars\";\n.a { color: @c; }",
		"vars.less":  "@c: red;",
		"bad.less":   ".a { color: red; } \x01",
		"plain.less": ".p { color: @c; }",
	})
	t.Run("watch imports", func(t *testing.T) {
		p := filepath.Join(dir, "main.less")
		got, err := render(t.Context(), Options{Read: os.ReadFile}, p)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{p, filepath.Join(dir, "vars.less")}
		if !reflect.DeepEqual(got.WatchFiles, want) {
			t.Errorf("render() WatchFiles = %v, want %v", got.WatchFiles, want)
		}
		if got.Loader != api.LoaderCSS || got.ResolveDir != dir {
			t.Errorf("render() got = %+v", got)
		}
	})
	t.Run("lex error", func(t *testing.T) {
		got, err := render(t.Context(), Options{Read: os.ReadFile}, filepath.Join(dir, "bad.less"))
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Errors) != 1 || got.Errors[0].Location.Line != 1 {
			t.Errorf("render() errors = %v", got.Errors)
		}
	})
	t.Run("scope per load", func(t *testing.T) {
		seed, err := less.CompileString(t.Context(), "@c: blue;", "seed.less", less.Options{})
		if err != nil {
			t.Fatal(err)
		}
		calls := 0
		o := Options{
			Read: os.ReadFile,
			Scope: func() *less.Scope {
				calls++
				s := less.NewScope()
				s.Update(seed.Scope)
				return s
			},
		}
		for i := 0; i < 2; i++ {
			got, err2 := render(t.Context(), o, filepath.Join(dir, "plain.less"))
			if err2 != nil {
				t.Fatal(err2)
			}
			if want := ".p {\n  color: blue;\n}"; *got.Contents != want {
				t.Errorf("render() got = %q, want %q", *got.Contents, want)
			}
		}
		if calls != 2 {
			t.Errorf("Scope() calls = %d, want 2", calls)
		}
	})
	t.Run("missing", func(t *testing.T) {
		_, err := render(t.Context(), Options{Read: os.ReadFile}, filepath.Join(dir, "nope.less"))
		if err == nil {
			t.Errorf("render() error = nil, want error")
		}
	})
}
