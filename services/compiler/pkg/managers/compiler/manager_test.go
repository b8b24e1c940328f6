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

package compiler

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/services/compiler/pkg/types"
)

func newTestManager(t *testing.T, files map[string]string) (Manager, string) {
	t.Helper()
	root := t.TempDir()
	for name, s := range files {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	m, err := New(&types.Options{
		Root:          root,
		CacheSize:     4,
		MaxSourceSize: 1024,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m, root
}

func TestNew(t *testing.T) {
	if _, err := New(&types.Options{}); !errors.IsValidationError(err) {
		t.Errorf("New() error = %v, want validation error", err)
	}
}

func TestManager_Compile(t *testing.T) {
	m, _ := newTestManager(t, map[string]string{
		"vars.less":     "@c: red;",
		"sub/mix.less":  ".m() { top: 0; }",
		"../outer.less": "@c: blue;",
	})
	tests := []struct {
		name    string
		request types.CompileRequest
		want    types.CompileResponse
		wantErr func(err error) bool
	}{
		{
			name: "inline",
			request: types.CompileRequest{
				Source:  "@import \"vars\";\n.a { color: @c; }",
				Options: types.CompileOptions{Spaces: 2},
			},
			want: types.CompileResponse{
				CSS:         ".a {\n  color: red;\n}",
				Imports:     []string{"input.less", "vars.less"},
				Diagnostics: []types.Diagnostic{},
			},
		},
		{
			name: "relative to file",
			request: types.CompileRequest{
				File:    "sub/page.less",
				Source:  "@import \"mix\";\n.a { .m(); }",
				Options: types.CompileOptions{Minify: true},
			},
			want: types.CompileResponse{
				CSS:         ".a{top:0;}",
				Imports:     []string{"sub/page.less", "sub/mix.less"},
				Diagnostics: []types.Diagnostic{},
			},
		},
		{
			name: "escape root",
			request: types.CompileRequest{
				Source:  "@import \"../outer\";\n.a { top: 0; }",
				Options: types.CompileOptions{Minify: true},
			},
			want: types.CompileResponse{
				CSS:     ".a{top:0;}",
				Imports: []string{"input.less"},
				Diagnostics: []types.Diagnostic{{
					Level:   "W",
					File:    "input.less",
					Line:    1,
					Message: "line: 1: Cannot import '../outer.less', file not found",
				}},
			},
		},
		{
			name: "fail fast",
			request: types.CompileRequest{
				Source:  "@import \"nope\";",
				Options: types.CompileOptions{FailFast: true},
			},
			wantErr: errors.IsUnprocessableEntityError,
		},
		{
			name: "lex error",
			request: types.CompileRequest{
				Source: ".a { top: 0; }\x01",
			},
			wantErr: errors.IsUnprocessableEntityError,
		},
		{
			name: "bad file",
			request: types.CompileRequest{
				File:   "../x.less",
				Source: ".a {}",
			},
			wantErr: errors.IsValidationError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types.CompileResponse{}
			err := m.Compile(context.Background(), &tt.request, &got)
			if tt.wantErr != nil {
				if !tt.wantErr(err) {
					t.Errorf("Compile() error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compile() got = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestManager_GetCSS(t *testing.T) {
	m, root := newTestManager(t, map[string]string{
		"main.less": "@import \"vars\";\n.a { color: @c; }",
		"vars.less": "@c: red;",
	})
	o := types.CompileOptions{XMinify: true}
	ctx := context.Background()

	css, hit, err := m.GetCSS(ctx, "main.less", o)
	if err != nil || hit || css != ".a{color:red;}" {
		t.Fatalf("GetCSS() = %q, %v, %v", css, hit, err)
	}
	css, hit, err = m.GetCSS(ctx, "main.less", o)
	if err != nil || !hit || css != ".a{color:red;}" {
		t.Fatalf("GetCSS() cached = %q, %v, %v", css, hit, err)
	}
	err = os.WriteFile(filepath.Join(root, "vars.less"), []byte("@c: blue;"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	css, hit, err = m.GetCSS(ctx, "main.less", o)
	if err != nil || hit || css != ".a{color:blue;}" {
		t.Fatalf("GetCSS() changed = %q, %v, %v", css, hit, err)
	}
	m.Purge()
	if _, hit, _ = m.GetCSS(ctx, "main.less", o); hit {
		t.Error("GetCSS() hit after Purge")
	}
	if _, _, err = m.GetCSS(ctx, "nope.less", o); !errors.IsNotFoundError(err) {
		t.Errorf("GetCSS() missing = %v", err)
	}
	if _, _, err = m.GetCSS(ctx, "../main.less", o); !errors.IsValidationError(err) {
		t.Errorf("GetCSS() escape = %v", err)
	}
}
