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
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
	"golang.org/x/sync/errgroup"

	"github.com/das7pad/lessc-go/pkg/copyFile"
	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/less"
)

type runner struct {
	o      *cliOptions
	lo     less.Options
	stdout io.Writer
	// mu serializes writes to stdout.
	mu       sync.Mutex
	includes *less.Scope
}

func newRunner(o *cliOptions, stdout, stderr io.Writer, color bool) *runner {
	return &runner{
		o:      o,
		lo:     o.lessOptions(stderr, color),
		stdout: stdout,
	}
}

// loadIncludes compiles the -I files once and merges their globals.
func (r *runner) loadIncludes(ctx context.Context) error {
	if len(r.o.includes) == 0 {
		return nil
	}
	s := less.NewScope()
	for _, f := range r.o.includes {
		lo := r.lo
		lo.Scope = nil
		res, err := less.Compile(ctx, os.ReadFile, f, lo)
		if err != nil {
			return errors.Tag(err, "include "+f)
		}
		s.Update(res.Scope)
	}
	r.includes = s
	return nil
}

func (r *runner) scope() *less.Scope {
	if r.includes == nil {
		return nil
	}
	s := less.NewScope()
	s.Update(r.includes)
	return s
}

func (r *runner) run(ctx context.Context) error {
	if r.o.lexOnly {
		return r.lex(r.o.target)
	}
	if err := r.loadIncludes(ctx); err != nil {
		return err
	}
	info, err := os.Stat(r.o.target)
	if err != nil {
		return errors.Tag(err, "stat target")
	}
	if info.IsDir() {
		return r.compileDir(ctx)
	}
	return r.compileFile(ctx, r.o.target, r.o.output)
}

func (r *runner) lex(f string) error {
	blob, err := os.ReadFile(f)
	if err != nil {
		return errors.Tag(err, "read "+f)
	}
	lines, err := less.Tokenize(string(blob), f)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.stdout, strings.Join(lines, "\n")+"\n")
	return err
}

func (r *runner) compile(ctx context.Context, f string) (*less.Result, error) {
	lo := r.lo
	lo.Scope = r.scope()
	return less.Compile(ctx, os.ReadFile, f, lo)
}

func (r *runner) compileFile(ctx context.Context, f, dst string) error {
	var css string
	if r.o.bundle && !r.o.scopeMap && !r.o.noCSS {
		var err error
		if css, err = r.bundle(f, false); err != nil {
			return err
		}
	} else {
		res, err := r.compile(ctx, f)
		if err != nil {
			return err
		}
		if r.o.scopeMap {
			r.mu.Lock()
			err = less.ScopeMap(r.stdout, res.Scope)
			r.mu.Unlock()
			if err != nil {
				return err
			}
		}
		if r.o.noCSS {
			return nil
		}
		css = res.CSS
		if r.o.bundle {
			// The scope map compile reported the diagnostics already.
			if css, err = r.bundle(f, true); err != nil {
				return err
			}
		}
	}
	if r.o.check != "" {
		return r.checkAgainst(r.o.check, css)
	}
	if dst == "" {
		r.mu.Lock()
		defer r.mu.Unlock()
		_, err := io.WriteString(r.stdout, css+"\n")
		return err
	}
	return r.write(dst, css)
}

func (r *runner) write(dst, css string) error {
	if r.o.dryRun {
		r.mu.Lock()
		defer r.mu.Unlock()
		_, err := fmt.Fprintf(r.stdout, "would write %s\n", dst)
		return err
	}
	if dir := filepath.Dir(dst); !r.o.dontCreateDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Tag(err, "create "+dir)
		}
	}
	t0 := time.Now()
	err := copyFile.Atomic(dst, strings.NewReader(css+"\n"), 0o644)
	if err != nil {
		return errors.Tag(err, "write "+dst)
	}
	if r.o.verbose {
		log.Printf(
			"wrote %s (%s) in %s",
			dst, units.HumanSize(float64(len(css)+1)), time.Since(t0),
		)
	}
	return nil
}

// outDir is the output directory of directory mode.
func (r *runner) outDir() string {
	if r.o.outDir != "" {
		return r.o.outDir
	}
	if r.o.output != "" {
		return r.o.output
	}
	return r.o.target
}

// stale reports whether dst is missing or older than src.
func stale(src, dst string) (bool, error) {
	di, err := os.Stat(dst)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.Tag(err, "stat "+dst)
	}
	si, err := os.Stat(src)
	if err != nil {
		return false, errors.Tag(err, "stat "+src)
	}
	return si.ModTime().After(di.ModTime()), nil
}

type job struct {
	src string
	dst string
}

func (r *runner) collect() ([]job, error) {
	root := r.o.target
	out := r.outDir()
	var jobs []job
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && !r.o.recurse {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) != ".less" {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(out, r.o.cssName(rel))
		if !r.o.force {
			ok, err2 := stale(p, dst)
			if err2 != nil {
				return err2
			}
			if !ok {
				return nil
			}
		}
		jobs = append(jobs, job{src: p, dst: dst})
		return nil
	})
	if err != nil {
		return nil, errors.Tag(err, "walk "+root)
	}
	return jobs, nil
}

func (r *runner) compileDir(ctx context.Context) error {
	if out := r.outDir(); r.o.dontCreateDirs {
		if _, err := os.Stat(out); err != nil {
			return errors.Tag(err, "output directory")
		}
	}
	jobs, err := r.collect()
	if err != nil {
		return err
	}
	t0 := time.Now()
	eg, pCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.o.jobs)
	for _, j := range jobs {
		eg.Go(func() error {
			if err2 := r.compileFile(pCtx, j.src, j.dst); err2 != nil {
				return errors.Tag(err2, j.src)
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return err
	}
	if r.o.verbose {
		log.Printf("compiled %d files in %s", len(jobs), time.Since(t0))
	}
	return nil
}
