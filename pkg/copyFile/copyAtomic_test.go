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

package copyFile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.css")
	if err := os.WriteFile(dest, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Atomic(dest, strings.NewReader(".a{}"), 0o644); err != nil {
		t.Fatalf("Atomic() error = %v", err)
	}
	blob, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != ".a{}" {
		t.Errorf("content = %q", blob)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v", info.Mode())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("left temporary files behind: %v", entries)
	}
}

func TestAtomicMissingDir(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "out.css")
	if err := Atomic(dest, strings.NewReader(""), 0o644); err == nil {
		t.Error("Atomic() error = nil, want mktemp error")
	}
}
