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
	"net/http"

	"github.com/gorilla/mux"
)

type RouterOptions struct {
	StatusMessage string
}

func NewRouter(options *RouterOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery)

	status := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(options.StatusMessage))
	}
	router.
		NewRoute().
		Methods(http.MethodGet, http.MethodHead).
		Path("/status").
		HandlerFunc(status)

	router.Use(StartTotalTimer)
	return router
}
