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
	"os"
	"os/signal"
	"syscall"

	"github.com/moby/term"

	"github.com/das7pad/lessc-go/pkg/errors"
)

func main() {
	ctx, done := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer done()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.IsValidationError(err) {
			// flag reports its own parse errors.
			_, _ = fmt.Fprintf(stderr, "ERR: %s\n", err.Error())
		}
		return 2
	}
	color := false
	if f, ok := stderr.(*os.File); ok {
		color = term.IsTerminal(f.Fd())
	}
	r := newRunner(o, stdout, stderr, color)
	if err = r.run(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "ERR: %s\n", err.Error())
		return 1
	}
	return 0
}
