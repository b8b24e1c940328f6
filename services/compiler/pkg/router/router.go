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

package router

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/httpUtils"
	"github.com/das7pad/lessc-go/services/compiler/pkg/managers/compiler"
	"github.com/das7pad/lessc-go/services/compiler/pkg/types"
)

func New(cm compiler.Manager, o *types.Options) *mux.Router {
	router := httpUtils.NewRouter(&httpUtils.RouterOptions{
		StatusMessage: "compiler is alive (go)\n",
	})
	Add(router, cm, o)
	return router
}

func Add(r *mux.Router, cm compiler.Manager, o *types.Options) {
	(&httpController{
		cm:            cm,
		defaults:      o.Defaults,
		maxSourceSize: o.MaxSourceSize,
	}).addRoutes(r)
}

type httpController struct {
	cm            compiler.Manager
	defaults      types.CompileOptions
	maxSourceSize int64
}

func (h *httpController) addRoutes(r *mux.Router) {
	r.
		NewRoute().
		Methods(http.MethodPost).
		Path("/compile").
		HandlerFunc(h.compile)
	r.
		NewRoute().
		Methods(http.MethodGet, http.MethodHead).
		Path("/css/{path:.+\\.less}").
		HandlerFunc(h.getCSS)
	r.
		NewRoute().
		Methods(http.MethodDelete).
		Path("/cache").
		HandlerFunc(h.purge)
}

func (h *httpController) parseRequest(w http.ResponseWriter, r *http.Request) (*types.CompileRequest, error) {
	done := httpUtils.TimeStage(w, "read")
	blob, err := httpUtils.ReadBody(w, r, h.maxSourceSize)
	done()
	if err != nil {
		return nil, err
	}
	request := &types.CompileRequest{Options: h.defaults}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err = json.Unmarshal(blob, request); err != nil {
			return nil, &errors.ValidationError{Msg: "malformed json body"}
		}
	} else {
		request.Source = string(blob)
		request.File = types.SourcePath(r.URL.Query().Get("file"))
	}
	if err = request.Options.FromQuery(r.URL.Query()); err != nil {
		return nil, err
	}
	return request, nil
}

func (h *httpController) compile(w http.ResponseWriter, r *http.Request) {
	request, err := h.parseRequest(w, r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	response := &types.CompileResponse{}
	done := httpUtils.TimeStage(w, "compile")
	err = h.cm.Compile(r.Context(), request, response)
	done()
	httpUtils.Respond(w, r, http.StatusOK, response, err)
}

func (h *httpController) getCSS(w http.ResponseWriter, r *http.Request) {
	o := h.defaults
	if err := o.FromQuery(r.URL.Query()); err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	p := types.SourcePath(mux.Vars(r)["path"])
	done := httpUtils.TimeStage(w, "compile")
	css, hit, err := h.cm.GetCSS(r.Context(), p, o)
	done()
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Header().Set("Cache-Control", "no-cache")
	httpUtils.RespondPlain(
		w, r, http.StatusOK, "text/css; charset=utf-8", css,
	)
}

func (h *httpController) purge(w http.ResponseWriter, r *http.Request) {
	h.cm.Purge()
	httpUtils.Respond(w, r, http.StatusNoContent, nil, nil)
}
