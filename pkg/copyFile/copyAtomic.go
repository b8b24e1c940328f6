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
	"io"
	"os"
	"path/filepath"

	"github.com/das7pad/lessc-go/pkg/errors"
)

// Atomic writes the content of reader into dest via a temporary file in
// the same directory. Readers of dest see either the old or new content.
func Atomic(dest string, reader io.Reader, mode os.FileMode) (err error) {
	writer, err := os.CreateTemp(filepath.Dir(dest), ".atomicWrite-*")
	if err != nil {
		return errors.Tag(err, "mktemp")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(writer.Name())
		}
	}()
	if _, err = io.Copy(writer, reader); err != nil {
		_ = writer.Close()
		return errors.Tag(err, "copy")
	}
	if err = writer.Chmod(mode); err != nil {
		_ = writer.Close()
		return errors.Tag(err, "chmod dest")
	}
	if err = writer.Close(); err != nil {
		return errors.Tag(err, "close dest")
	}
	if err = os.Rename(writer.Name(), dest); err != nil {
		return errors.Tag(err, "rename")
	}
	return nil
}
