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

package types

import (
	"net/url"
	"reflect"
	"testing"
)

func TestSourcePath_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       SourcePath
		wantErr bool
	}{
		{"plain", "main.less", false},
		{"nested", "a/b/main.less", false},
		{"empty", "", true},
		{"absolute", "/etc/main.less", true},
		{"parent", "../main.less", true},
		{"inner parent", "a/../../main.less", true},
		{"unclean", "a//main.less", true},
		{"backslash", "a\\main.less", true},
		{"css", "main.css", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompileOptions_FromQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    CompileOptions
		wantErr bool
	}{
		{
			name:  "defaults",
			query: "",
			want:  CompileOptions{Spaces: 2},
		},
		{
			name:  "bare flag",
			query: "minify",
			want:  CompileOptions{Minify: true, Spaces: 2},
		},
		{
			name:  "explicit",
			query: "tabs=true&fail_fast=1&spaces=4",
			want:  CompileOptions{Tabs: true, FailFast: true, Spaces: 4},
		},
		{
			name:    "malformed flag",
			query:   "xminify=maybe",
			wantErr: true,
		},
		{
			name:    "malformed spaces",
			query:   "spaces=two",
			wantErr: true,
		},
		{
			name:    "too many spaces",
			query:   "spaces=100",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			o := CompileOptions{Spaces: 2}
			err = o.FromQuery(q)
			if (err != nil) != tt.wantErr {
				t.Errorf("FromQuery() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(o, tt.want) {
				t.Errorf("FromQuery() got = %+v, want %+v", o, tt.want)
			}
		})
	}
}

func TestOptions_FillFromEnv(t *testing.T) {
	t.Setenv("TEST_OPTIONS", `{"root":"/srv","defaults":{"minify":true,"spaces":4}}`)
	t.Setenv("LESSC_ROOT", "")
	t.Setenv("LESSC_CACHE_SIZE", "7")
	t.Setenv("LESSC_MAX_SOURCE_SIZE", "2KiB")
	o := Options{}
	o.FillFromEnv("TEST_OPTIONS")
	want := Options{
		Root:          "/srv",
		CacheSize:     7,
		MaxSourceSize: 2048,
		Defaults:      CompileOptions{Minify: true, Spaces: 4},
	}
	if !reflect.DeepEqual(o, want) {
		t.Errorf("FillFromEnv() got = %+v, want %+v", o, want)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	o.Root = ""
	if err := o.Validate(); err == nil {
		t.Error("Validate() accepted missing root")
	}
}
