// lessc-go, a LESS to CSS compiler in Go
// Copyright (C) 2021-2022 Jakob Ackermann <das7pad@outlook.com>
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
	"net/http"
	"strconv"
	"time"
)

type timerKey struct{}

// StartTotalTimer records the start of the request for EndTotalTimer.
func StartTotalTimer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), timerKey{}, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TimeStage(w http.ResponseWriter, label string) func() {
	t0 := time.Now()
	return func() {
		endTimer(w, label, t0)
	}
}

func EndTotalTimer(w http.ResponseWriter, r *http.Request) {
	t0, ok := r.Context().Value(timerKey{}).(time.Time)
	if !ok {
		return
	}
	endTimer(w, "total", t0)
}

func endTimer(w http.ResponseWriter, label string, t0 time.Time) {
	diff := time.Since(t0)
	ms := int64(diff / time.Millisecond)
	micro := int64(diff % time.Millisecond / time.Microsecond)
	w.Header().Add(
		"Server-Timing",
		// Inline printing of "%s;dur=%d.%03d" % (label, ms, micro)
		label+";dur="+
			strconv.FormatInt(ms, 10)+"."+
			strconv.FormatInt(micro%1000/100, 10)+
			strconv.FormatInt(micro%100/10, 10)+
			strconv.FormatInt(micro%10/1, 10),
	)
}
