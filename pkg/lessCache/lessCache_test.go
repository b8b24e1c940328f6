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

package lessCache

import (
	"bytes"
	"context"
	"io/fs"
	"sync"
	"testing"
	"time"

	"github.com/das7pad/lessc-go/pkg/less"
)

type fakeFS struct {
	mu    sync.Mutex
	files map[string]string
	reads int
}

func (f *fakeFS) ReadFile(name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	s, ok := f.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (f *fakeFS) set(name, s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = s
}

func TestNew(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Errorf("New() error = nil, want error")
	}
}

func TestCache_Compile(t *testing.T) {
	f := &fakeFS{files: map[string]string{
		"in.less":   "@import \"vars\";\n.a { color: @c; }",
		"vars.less": "@c: red;",
	}}
	c, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tests := []struct {
		name    string
		prepare func()
		o       less.Options
		want    string
		wantHit bool
	}{
		{
			name: "miss",
			want: ".a {\n  color: red;\n}",
		},
		{
			name:    "hit",
			want:    ".a {\n  color: red;\n}",
			wantHit: true,
		},
		{
			name: "other options",
			o:    less.Options{Minify: true},
			want: ".a{color:red;}",
		},
		{
			name: "import changed",
			prepare: func() {
				f.set("vars.less", "@c: blue;")
			},
			want: ".a {\n  color: blue;\n}",
		},
		{
			name:    "hit after change",
			want:    ".a {\n  color: blue;\n}",
			wantHit: true,
		},
		{
			name: "shared scope",
			o:    less.Options{Scope: less.NewScope()},
			want: ".a {\n  color: blue;\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepare != nil {
				tt.prepare()
			}
			got, hit, err2 := c.Compile(ctx, f.ReadFile, "in.less", tt.o)
			if err2 != nil {
				t.Fatalf("Compile() error = %v", err2)
			}
			if got.CSS != tt.want {
				t.Errorf("Compile() got = %q, want %q", got.CSS, tt.want)
			}
			if hit != tt.wantHit {
				t.Errorf("Compile() hit = %v, want %v", hit, tt.wantHit)
			}
		})
	}
	if n := c.Len(); n != 2 {
		t.Errorf("Len() got = %d, want 2", n)
	}
	c.Purge()
	if n := c.Len(); n != 0 {
		t.Errorf("Len() after Purge() got = %d, want 0", n)
	}
}

func TestCache_CompileMissingImport(t *testing.T) {
	f := &fakeFS{files: map[string]string{
		"in.less": "@import \"late\";\n.a { color: red; }",
	}}
	c, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	buf := bytes.Buffer{}
	o := less.Options{Diagnostics: &buf}

	if _, _, err = c.Compile(ctx, f.ReadFile, "in.less", o); err != nil {
		t.Fatal(err)
	}
	_, hit, err := c.Compile(ctx, f.ReadFile, "in.less", o)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Errorf("Compile() hit = false, want true")
	}
	want := "W: line: 1: Cannot import 'late.less', file not found\n"
	if buf.String() != want+want {
		t.Errorf("Compile() printed = %q, want the warning twice", buf.String())
	}

	f.set("late.less", ".late { top: 0; }")
	got, hit, err := c.Compile(ctx, f.ReadFile, "in.less", o)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Errorf("Compile() hit = true, want false")
	}
	if want := ".late {\n  top: 0;\n}\n.a {\n  color: red;\n}"; got.CSS != want {
		t.Errorf("Compile() got = %q, want %q", got.CSS, want)
	}
}

func TestCache_CompileError(t *testing.T) {
	f := &fakeFS{files: map[string]string{}}
	c, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err = c.Compile(context.Background(), f.ReadFile, "in.less", less.Options{}); err == nil {
		t.Errorf("Compile() error = nil, want error")
	}
	if n := c.Len(); n != 0 {
		t.Errorf("Len() got = %d, want 0", n)
	}
}

func TestCache_CompileSharedSurvivesCancel(t *testing.T) {
	f := &fakeFS{files: map[string]string{
		"in.less": ".a { color: red; }",
	}}
	c, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	read := func(name string) ([]byte, error) {
		once.Do(func() {
			close(started)
			<-release
		})
		return f.ReadFile(name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, _, err2 := c.Compile(ctx, read, "in.less", less.Options{})
		leaderErr <- err2
	}()
	<-started

	type result struct {
		res *less.Result
		err error
	}
	follower := make(chan result, 1)
	go func() {
		res, _, err2 := c.Compile(context.Background(), read, "in.less", less.Options{})
		follower <- result{res: res, err: err2}
	}()
	// Give the follower time to join the running compile.
	time.Sleep(10 * time.Millisecond)
	cancel()
	if err = <-leaderErr; err != context.Canceled {
		t.Errorf("Compile() leader error = %v, want %v", err, context.Canceled)
	}
	close(release)

	r := <-follower
	if r.err != nil {
		t.Fatalf("Compile() follower error = %v", r.err)
	}
	if want := ".a {\n  color: red;\n}"; r.res.CSS != want {
		t.Errorf("Compile() follower got = %q, want %q", r.res.CSS, want)
	}
	if n := c.Len(); n != 1 {
		t.Errorf("Len() got = %d, want 1", n)
	}
}

func TestCache_CompileReplaysToEachCaller(t *testing.T) {
	f := &fakeFS{files: map[string]string{
		"in.less": "@import \"gone\";\n.a { color: red; }",
	}}
	c, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	want := "W: line: 1: Cannot import 'gone.less', file not found\n"
	for i := 0; i < 2; i++ {
		buf := bytes.Buffer{}
		_, _, err = c.Compile(context.Background(), f.ReadFile, "in.less", less.Options{
			Diagnostics: &buf,
		})
		if err != nil {
			t.Fatal(err)
		}
		if buf.String() != want {
			t.Errorf("Compile() #%d printed = %q, want %q", i, buf.String(), want)
		}
	}
}
