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

package less

import (
	"reflect"
	"testing"
)

func Test_rootSelector(t *testing.T) {
	type args struct {
		parents []string
		alts    []string
	}
	tests := []struct {
		name string
		args args
		want []string
	}{
		{
			name: "descendant",
			args: args{parents: []string{".a"}, alts: []string{".b"}},
			want: []string{".a .b"},
		},
		{
			name: "child combinator",
			args: args{parents: []string{".a"}, alts: []string{"?>?.b"}},
			want: []string{".a?>?.b"},
		},
		{
			name: "ampersand",
			args: args{parents: []string{".a"}, alts: []string{"&:hover", "&.active"}},
			want: []string{".a:hover", ".a.active"},
		},
		{
			name: "alternatives",
			args: args{parents: []string{".a", ".b"}, alts: []string{".c", ".d"}},
			want: []string{".a .c", ".b .c", ".a .d", ".b .d"},
		},
		{
			name: "repeated ampersand",
			args: args{parents: []string{".a", ".b"}, alts: []string{"& + &"}},
			want: []string{".a + .a", ".a + .b", ".b + .a", ".b + .b"},
		},
		{
			name: "trailing ampersand",
			args: args{parents: []string{".a"}, alts: []string{".no-js &"}},
			want: []string{".no-js .a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rootSelector(tt.args.parents, tt.args.alts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rootSelector() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_permutations(t *testing.T) {
	got := permutations([]string{"x", "y"}, 2)
	want := [][]string{{"x", "x"}, {"x", "y"}, {"y", "x"}, {"y", "y"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("permutations() got = %v, want %v", got, want)
	}
	if got = permutations([]string{"x"}, 0); len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("permutations() got = %v, want [[]]", got)
	}
}

func Test_joinSelector(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "plain", parts: []string{".a", " ", ".b"}, want: ".a .b"},
		{name: "edges", parts: []string{" ", ".a", " "}, want: ".a"},
		{name: "combinator", parts: []string{".a", " ", "?>?", " ", ".b"}, want: ".a?>?.b"},
		{name: "runs", parts: []string{".a", " ", " ", ".b"}, want: ".a .b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinSelector(tt.parts); got != tt.want {
				t.Errorf("joinSelector() got = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_expandCombinators(t *testing.T) {
	if got := expandCombinators(".a?>?.b?+?.c", " "); got != ".a > .b + .c" {
		t.Errorf("expandCombinators() got = %q", got)
	}
	if got := expandCombinators(".a?~?.b", ""); got != ".a~.b" {
		t.Errorf("expandCombinators() got = %q", got)
	}
}

func Test_normalizeQuery(t *testing.T) {
	got := normalizeQuery("screen  and ( max-width :100px ) ,print")
	want := "screen and (max-width: 100px), print"
	if got != want {
		t.Errorf("normalizeQuery() got = %q, want %q", got, want)
	}
}

func Test_mergeQueries(t *testing.T) {
	tests := []struct {
		name  string
		outer string
		inner string
		want  string
	}{
		{name: "no outer", inner: "print", want: "print"},
		{name: "no inner", outer: "print", want: "print"},
		{name: "and", outer: "screen", inner: "(min-width: 10px)", want: "screen and (min-width: 10px)"},
		{
			name:  "alternatives",
			outer: "screen, print",
			inner: "(color)",
			want:  "screen and (color), print and (color)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mergeQueries(tt.outer, tt.inner); got != tt.want {
				t.Errorf("mergeQueries() got = %q, want %q", got, tt.want)
			}
		})
	}
}
