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

package httpUtils

import (
	"io"
	"net/http"

	"github.com/das7pad/lessc-go/pkg/errors"
)

func validateContentLength(r *http.Request, limit int64) error {
	if cl := r.ContentLength; cl == -1 {
		return &errors.UnprocessableEntityError{
			Msg: "missing Content-Length header",
		}
	} else if cl > limit {
		return &errors.BodyTooLargeError{}
	}
	return nil
}

// ReadBody reads the request body of at most limit bytes.
func ReadBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if err := validateContentLength(r, limit); err != nil {
		return nil, err
	}
	blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		if _, ok := err.(*http.MaxBytesError); ok {
			return nil, &errors.BodyTooLargeError{}
		}
		return nil, errors.Tag(err, "read body")
	}
	return blob, nil
}
