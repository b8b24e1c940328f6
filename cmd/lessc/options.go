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
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/less"
	"github.com/das7pad/lessc-go/pkg/options/env"
)

type cliOptions struct {
	includes       []string
	verbose        bool
	dontCreateDirs bool
	minify         bool
	xminify        bool
	tabs           bool
	spaces         int
	outDir         string
	recurse        bool
	force          bool
	minEnding      bool
	dryRun         bool
	debug          bool
	scopeMap       bool
	lexOnly        bool
	noCSS          bool
	jobs           int
	check          string
	bundle         bool

	target string
	output string
}

func parseFlags(args []string, stderr io.Writer) (*cliOptions, error) {
	o := &cliOptions{}
	fs := flag.NewFlagSet("lessc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(
			stderr, "usage: lessc [flags] target [output]",
		)
		fs.PrintDefaults()
	}
	var includes string
	fs.StringVar(&includes, "I", "", "comma separated list of files to include ahead of each target")
	fs.BoolVar(&o.verbose, "V", false, "verbose mode")
	fs.BoolVar(&o.dontCreateDirs, "C", false, "do not create missing output directories")
	fs.BoolVar(&o.minify, "x", false, "minify output")
	fs.BoolVar(&o.xminify, "X", false, "minify output, no end of block newlines")
	fs.BoolVar(&o.tabs, "t", false, "indent with tabs")
	fs.IntVar(&o.spaces, "s", env.GetInt("LESSC_SPACES", 2), "number of spaces per indent level")
	fs.StringVar(&o.outDir, "o", "", "output directory for directory targets")
	fs.BoolVar(&o.recurse, "r", false, "recurse into sub directories")
	fs.BoolVar(&o.force, "f", false, "compile even when the css is up to date")
	fs.BoolVar(&o.minEnding, "m", env.GetBool("LESSC_MIN_ENDING"), "add .min into the output file name")
	fs.BoolVar(&o.dryRun, "D", false, "dry run, do not write any files")
	fs.BoolVar(&o.debug, "g", false, "treat any diagnostic as failure")
	fs.BoolVar(&o.scopeMap, "S", false, "print the scope map")
	fs.BoolVar(&o.lexOnly, "L", false, "print the tokens and stop")
	fs.BoolVar(&o.noCSS, "N", false, "parse only, do not emit css")
	fs.IntVar(&o.jobs, "j", env.GetInt("LESSC_JOBS", runtime.NumCPU()), "number of parallel compiles in directory mode")
	fs.StringVar(&o.check, "check", "", "compare the output against this css file")
	fs.BoolVar(&o.bundle, "bundle", false, "run the esbuild css bundler over the output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 1:
		o.target = fs.Arg(0)
	case 2:
		o.target = fs.Arg(0)
		o.output = fs.Arg(1)
	default:
		fs.Usage()
		return nil, &errors.ValidationError{Msg: "expected target and optional output"}
	}
	if includes != "" {
		for _, s := range strings.Split(includes, ",") {
			if s = strings.TrimSpace(s); s != "" {
				o.includes = append(o.includes, s)
			}
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *cliOptions) Validate() error {
	if o.spaces < 0 {
		return &errors.ValidationError{Msg: "-s must not be negative"}
	}
	if o.jobs < 1 {
		return &errors.ValidationError{Msg: "-j must be positive"}
	}
	if o.check != "" && o.noCSS {
		return &errors.ValidationError{Msg: "-check needs css, drop -N"}
	}
	return nil
}

func (o *cliOptions) lessOptions(stderr io.Writer, color bool) less.Options {
	return less.Options{
		Minify:      o.minify,
		XMinify:     o.xminify,
		Tabs:        o.tabs,
		Spaces:      o.spaces,
		FailFast:    o.debug,
		Diagnostics: stderr,
		Color:       color,
		Verbose:     o.verbose,
	}
}

// cssName maps a less file name to its css file name.
func (o *cliOptions) cssName(name string) string {
	name = strings.TrimSuffix(name, ".less")
	if o.minEnding {
		return name + ".min.css"
	}
	return name + ".css"
}
