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
	"time"

	"github.com/das7pad/lessc-go/pkg/options/env"
	"github.com/das7pad/lessc-go/pkg/options/listenAddress"
	"github.com/das7pad/lessc-go/services/compiler/pkg/types"
)

type compilerOptions struct {
	addresses       []string
	shutdownTimeout time.Duration
	options         types.Options
}

func getOptions() *compilerOptions {
	o := &compilerOptions{}
	o.options.FillFromEnv("COMPILER_OPTIONS")
	o.addresses = listenAddress.Parse("LESSC_", 3100)
	o.shutdownTimeout = env.GetDuration(
		"LESSC_SHUTDOWN_TIMEOUT_S", 15*time.Second,
	)
	return o
}
