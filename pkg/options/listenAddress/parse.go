// lessc-go, a LESS to CSS compiler in Go
// Copyright (C) 2021-2024 Jakob Ackermann <das7pad@outlook.com>
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

package listenAddress

import (
	"fmt"
	"strings"

	"github.com/das7pad/lessc-go/pkg/options/env"
)

// Parse collects the addresses from <prefix>LISTEN_ADDRESS, a comma
// separated list of hosts, host:port pairs or unix socket paths, and from
// <prefix>SOCKET. Bare hosts listen on <prefix>PORT.
func Parse(prefix string, port int) []string {
	return parse(
		env.GetString(prefix+"LISTEN_ADDRESS", "localhost"),
		env.GetInt(prefix+"PORT", port),
		env.GetString(prefix+"SOCKET", ""),
	)
}

func parse(raw string, port int, socket string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, addr := range append(strings.Split(raw, ","), socket) {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if !strings.HasPrefix(addr, "/") && !strings.ContainsRune(addr, ':') {
			addr = fmt.Sprintf("%s:%d", addr, port)
		}
		if seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}
