// lessc-go, a LESS to CSS compiler in Go
// Copyright (C) 2024 Jakob Ackermann <das7pad@outlook.com>
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

package httpUtils

import (
	"context"
	"net"
	"os"
	"strings"
)

type Server interface {
	Serve(listener net.Listener) error
	Shutdown(ctx context.Context) error
}

// Listen opens a unix socket for absolute paths, a tcp listener otherwise.
func Listen(addr string) (net.Listener, error) {
	if strings.HasPrefix(addr, "/") {
		if err := os.Remove(addr); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		return net.Listen("unix", addr)
	}
	return net.Listen("tcp", addr)
}

func ListenAndServe(server Server, addr string) error {
	l, err := Listen(addr)
	if err != nil {
		return err
	}
	return server.Serve(l)
}

func ListenAndServeEach(do func(func() error), server Server, each []string) {
	for _, addr := range each {
		if addr == "" {
			continue
		}
		do(func() error {
			return ListenAndServe(server, addr)
		})
	}
}
