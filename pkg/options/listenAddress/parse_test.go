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

package listenAddress

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		address string
		port    string
		socket  string
		want    []string
	}{
		{"default", "", "", "", []string{"localhost:3100"}},
		{"port override", "", "4000", "", []string{"localhost:4000"}},
		{"host", "0.0.0.0", "", "", []string{"0.0.0.0:3100"}},
		{"explicit port", "127.0.0.1:80", "", "", []string{"127.0.0.1:80"}},
		{"unix socket", "/run/lessc.sock", "", "", []string{"/run/lessc.sock"}},
		{"many", "a, /b.sock", "", "", []string{"a:3100", "/b.sock"}},
		{"empty entries", "a,,", "", "", []string{"a:3100"}},
		{"socket", "", "", "/run/lessc.sock", []string{"localhost:3100", "/run/lessc.sock"}},
		{"socket twice", "/run/lessc.sock", "", "/run/lessc.sock", []string{"/run/lessc.sock"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LESSC_LISTEN_ADDRESS", tt.address)
			t.Setenv("LESSC_PORT", tt.port)
			t.Setenv("LESSC_SOCKET", tt.socket)
			if got := Parse("LESSC_", 3100); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}
