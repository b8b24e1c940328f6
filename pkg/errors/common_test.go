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

package errors

import (
	"testing"
)

func TestTag(t *testing.T) {
	cause := &NotFoundError{Msg: "a.less"}
	err := Tag(Tag(cause, "inner"), "outer")
	if got := err.Error(); got != "outer: inner: not found: a.less" {
		t.Errorf("Error() = %q", got)
	}
	if GetCause(err) != cause {
		t.Errorf("GetCause() = %v, want %v", GetCause(err), cause)
	}
	if !IsNotFoundError(err) {
		t.Error("IsNotFoundError() = false")
	}
	var target *NotFoundError
	if !As(err, &target) || target != cause {
		t.Error("As() did not unwrap the tags")
	}
}

func TestMerge(t *testing.T) {
	a := New("a")
	b := New("b")
	tests := []struct {
		name    string
		errs    []error
		want    string
		wantNil bool
	}{
		{name: "empty", wantNil: true},
		{name: "nil entries", errs: []error{nil, nil}, wantNil: true},
		{name: "single", errs: []error{nil, a}, want: "a"},
		{name: "many", errs: []error{a, b}, want: "merged: a + b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Merge(tt.errs...)
			if (err == nil) != tt.wantNil {
				t.Fatalf("Merge() = %v, want nil %v", err, tt.wantNil)
			}
			if err != nil && err.Error() != tt.want {
				t.Errorf("Merge() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestGetPublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "user facing",
			err:  Tag(&ValidationError{Msg: "bad spaces"}, "options"),
			want: "options: bad spaces",
		},
		{
			name: "internal",
			err:  New("disk on fire"),
			want: "fallback",
		},
		{
			name: "body too large",
			err:  &BodyTooLargeError{},
			want: "body too large",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetPublicMessage(tt.err, "fallback"); got != tt.want {
				t.Errorf("GetPublicMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsFatalError(t *testing.T) {
	if !IsFatalError(Tag(&InvalidStateError{Msg: "x"}, "tag")) {
		t.Error("IsFatalError() = false for InvalidStateError")
	}
	if IsFatalError(&ValidationError{}) {
		t.Error("IsFatalError() = true for ValidationError")
	}
}
