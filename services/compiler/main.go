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
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/httpUtils"
	"github.com/das7pad/lessc-go/services/compiler/pkg/managers/compiler"
	"github.com/das7pad/lessc-go/services/compiler/pkg/router"
)

func main() {
	triggerExitCtx, triggerExit := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer triggerExit()

	o := getOptions()
	cm, err := compiler.New(&o.options)
	if err != nil {
		panic(errors.Tag(err, "compiler setup"))
	}

	server := &http.Server{
		Handler: router.New(cm, &o.options),
	}
	eg, ctx := errgroup.WithContext(triggerExitCtx)
	httpUtils.ListenAndServeEach(eg.Go, server, o.addresses)
	eg.Go(func() error {
		<-ctx.Done()
		ctx2, done := context.WithTimeout(
			context.Background(), o.shutdownTimeout,
		)
		defer done()
		// Shutdown waits for in-flight compiles.
		return server.Shutdown(ctx2)
	})
	log.Printf("compiler listening on %v", o.addresses)
	if err = eg.Wait(); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}
