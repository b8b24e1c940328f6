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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, s := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	blob, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	return string(blob)
}

func Test_parseFlags(t *testing.T) {
	t.Setenv("LESSC_SPACES", "")
	t.Setenv("LESSC_JOBS", "3")
	t.Setenv("LESSC_MIN_ENDING", "")
	tests := []struct {
		name    string
		args    []string
		want    *cliOptions
		wantErr bool
	}{
		{
			name: "target",
			args: []string{"in.less"},
			want: &cliOptions{spaces: 2, jobs: 3, target: "in.less"},
		},
		{
			name: "target and output",
			args: []string{"-x", "-r", "src", "dst"},
			want: &cliOptions{
				minify:  true,
				recurse: true,
				spaces:  2,
				jobs:    3,
				target:  "src",
				output:  "dst",
			},
		},
		{
			name: "includes",
			args: []string{"-I", "a.less, b.less,", "-s", "4", "in.less"},
			want: &cliOptions{
				includes: []string{"a.less", "b.less"},
				spaces:   4,
				jobs:     3,
				target:   "in.less",
			},
		},
		{
			name:    "missing target",
			args:    []string{"-x"},
			wantErr: true,
		},
		{
			name:    "too many args",
			args:    []string{"a", "b", "c"},
			wantErr: true,
		},
		{
			name:    "negative spaces",
			args:    []string{"-s", "-1", "in.less"},
			wantErr: true,
		},
		{
			name:    "no jobs",
			args:    []string{"-j", "0", "in.less"},
			wantErr: true,
		},
		{
			name:    "check without css",
			args:    []string{"-check", "out.css", "-N", "in.less"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-nope", "in.less"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, &bytes.Buffer{})
			if (err != nil) != tt.wantErr {
				t.Errorf("parseFlags() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFlags() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func Test_cssName(t *testing.T) {
	tests := []struct {
		name      string
		minEnding bool
		in        string
		want      string
	}{
		{"plain", false, "a.less", "a.css"},
		{"nested", false, "sub/b.less", "sub/b.css"},
		{"min", true, "a.less", "a.min.css"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &cliOptions{minEnding: tt.minEnding}
			if got := o.cssName(tt.in); got != tt.want {
				t.Errorf("cssName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_stale(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.less")
	dst := filepath.Join(dir, "a.css")
	writeFiles(t, dir, map[string]string{"a.less": ""})

	if ok, err := stale(src, dst); err != nil || !ok {
		t.Fatalf("stale() missing dst = %v, %v", ok, err)
	}
	writeFiles(t, dir, map[string]string{"a.css": ""})
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(src, past, past); err != nil {
		t.Fatal(err)
	}
	if ok, err := stale(src, dst); err != nil || ok {
		t.Fatalf("stale() fresh dst = %v, %v", ok, err)
	}
	if err := os.Chtimes(dst, past.Add(-time.Hour), past.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	if ok, err := stale(src, dst); err != nil || !ok {
		t.Fatalf("stale() old dst = %v, %v", ok, err)
	}
}

func Test_diffCSS(t *testing.T) {
	if d := diffCSS(".a {}\n", ".a {}", false); d != "" {
		t.Errorf("diffCSS() equal = %q", d)
	}
	d := diffCSS(".a {\n  color: red;\n}", ".a {\n  color: blue;\n}", false)
	if !strings.Contains(d, "@@") || !strings.Contains(d, "blue") {
		t.Errorf("diffCSS() = %q", d)
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(context.Background(), args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func Test_run(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"in.less":      ".a { color: @c; }",
		"vars.less":    "@c: red;",
		"broken.less":  ".a { color: red; }\n@import \"gone.less\";",
		"expected.css": ".a {\n  color: red;\n}\n",
		"unexpect.css": ".a {\n  color: blue;\n}\n",
		"plain.less":   ".b { top: 1px; }",
	})
	p := func(name string) string {
		return filepath.Join(dir, name)
	}
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "stdout",
			args:       []string{p("plain.less")},
			wantStdout: ".b {\n  top: 1px;\n}\n",
		},
		{
			name:       "includes",
			args:       []string{"-I", p("vars.less"), p("in.less")},
			wantStdout: ".a {\n  color: red;\n}\n",
		},
		{
			name:       "minify",
			args:       []string{"-X", "-I", p("vars.less"), p("in.less")},
			wantStdout: ".a{color:red;}\n",
		},
		{
			name:       "scope map",
			args:       []string{"-S", "-N", p("vars.less")},
			wantStdout: "@c: red;\n",
		},
		{
			name:       "check ok",
			args:       []string{"-I", p("vars.less"), "-check", p("expected.css"), p("in.less")},
			wantStdout: "",
		},
		{
			name:       "check mismatch",
			args:       []string{"-I", p("vars.less"), "-check", p("unexpect.css"), p("in.less")},
			wantCode:   1,
			wantStderr: "ERR: output differs from " + p("unexpect.css") + "\n",
		},
		{
			name:       "warning",
			args:       []string{p("broken.less")},
			wantStdout: ".a {\n  color: red;\n}\n",
			wantStderr: "W: line: 2: Cannot import 'gone.less', file not found\n",
		},
		{
			name:       "fail fast",
			args:       []string{"-g", p("broken.less")},
			wantCode:   1,
			wantStderr: "ERR: W: line: 2: Cannot import 'gone.less', file not found\n",
		},
		{
			name:       "missing target",
			args:       []string{p("nope.less")},
			wantCode:   1,
			wantStderr: "ERR: stat target: stat " + p("nope.less") + ": no such file or directory\n",
		},
		{
			name:     "usage",
			args:     []string{},
			wantCode: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("run() code = %d, want %d, stderr %q", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && stdout != tt.wantStdout {
				t.Errorf("run() stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && stderr != tt.wantStderr {
				t.Errorf("run() stderr = %q, want %q", stderr, tt.wantStderr)
			}
		})
	}
}

func Test_runLexOnly(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"only.less": ".c {}"})
	code, stdout, stderr := runCLI(t, "-L", filepath.Join(dir, "only.less"))
	if code != 0 {
		t.Fatalf("run() code = %d, stderr %q", code, stderr)
	}
	if !strings.HasPrefix(stdout, "1\t") {
		t.Errorf("run() stdout = %q", stdout)
	}
}

func Test_runDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	writeFiles(t, src, map[string]string{
		"a.less":     ".a { top: 1px; }",
		"sub/b.less": ".b { top: 2px; }",
		"skip.css":   ".x {}",
	})

	t.Run("flat", func(t *testing.T) {
		code, _, stderr := runCLI(t, "-o", out, src)
		if code != 0 {
			t.Fatalf("run() code = %d, stderr %q", code, stderr)
		}
		if got := readFile(t, filepath.Join(out, "a.css")); got != ".a {\n  top: 1px;\n}\n" {
			t.Errorf("a.css = %q", got)
		}
		if _, err := os.Stat(filepath.Join(out, "sub", "b.css")); !os.IsNotExist(err) {
			t.Errorf("sub/b.css should not exist, err = %v", err)
		}
	})
	t.Run("up to date", func(t *testing.T) {
		writeFiles(t, out, map[string]string{"a.css": "marker"})
		code, _, stderr := runCLI(t, "-o", out, src)
		if code != 0 {
			t.Fatalf("run() code = %d, stderr %q", code, stderr)
		}
		if got := readFile(t, filepath.Join(out, "a.css")); got != "marker" {
			t.Errorf("a.css = %q, want marker", got)
		}
	})
	t.Run("force", func(t *testing.T) {
		code, _, stderr := runCLI(t, "-f", "-o", out, src)
		if code != 0 {
			t.Fatalf("run() code = %d, stderr %q", code, stderr)
		}
		if got := readFile(t, filepath.Join(out, "a.css")); got == "marker" {
			t.Errorf("a.css was not recompiled")
		}
	})
	t.Run("recurse with min ending", func(t *testing.T) {
		code, _, stderr := runCLI(t, "-r", "-m", "-x", src, out)
		if code != 0 {
			t.Fatalf("run() code = %d, stderr %q", code, stderr)
		}
		for _, name := range []string{"a.min.css", "sub/b.min.css"} {
			if _, err := os.Stat(filepath.Join(out, name)); err != nil {
				t.Errorf("%s: %v", name, err)
			}
		}
	})
	t.Run("dry run", func(t *testing.T) {
		dry := filepath.Join(dir, "dry")
		code, stdout, stderr := runCLI(t, "-D", "-o", dry, src)
		if code != 0 {
			t.Fatalf("run() code = %d, stderr %q", code, stderr)
		}
		want := "would write " + filepath.Join(dry, "a.css") + "\n"
		if stdout != want {
			t.Errorf("run() stdout = %q, want %q", stdout, want)
		}
		if _, err := os.Stat(dry); !os.IsNotExist(err) {
			t.Errorf("dry run created %s", dry)
		}
	})
	t.Run("no create dirs", func(t *testing.T) {
		code, _, _ := runCLI(t, "-C", "-o", filepath.Join(dir, "missing"), src)
		if code != 1 {
			t.Errorf("run() code = %d, want 1", code)
		}
	})
}

func Test_runBundle(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"in.less":  "@import \"base.css\";\n.a { color: red; }",
		"base.css": ".base { top: 0; }",
	})
	code, stdout, stderr := runCLI(t, "-bundle", filepath.Join(dir, "in.less"))
	if code != 0 {
		t.Fatalf("run() code = %d, stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, ".base") || !strings.Contains(stdout, "color: red") {
		t.Errorf("run() stdout = %q", stdout)
	}
}

func Test_runBundleIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"in.less":   "@import \"nope.less\";\n.a { color: @c; }",
		"vars.less": "@c: red;",
	})
	code, stdout, stderr := runCLI(
		t, "-I", filepath.Join(dir, "vars.less"),
		"-bundle", filepath.Join(dir, "in.less"),
	)
	if code != 0 {
		t.Fatalf("run() code = %d, stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "color: red") {
		t.Errorf("run() stdout = %q", stdout)
	}
	if n := strings.Count(stderr, "nope.less"); n != 1 {
		t.Errorf("run() stderr = %q, want one warning", stderr)
	}

	code, stdout, stderr = runCLI(
		t, "-g", "-I", filepath.Join(dir, "vars.less"),
		"-bundle", filepath.Join(dir, "in.less"),
	)
	if code != 1 || stdout != "" {
		t.Errorf("run() fail fast code = %d, stdout %q", code, stdout)
	}
	if !strings.HasPrefix(stderr, "ERR: W: ") ||
		strings.Count(stderr, "nope.less") != 1 {
		t.Errorf("run() fail fast stderr = %q", stderr)
	}
}
