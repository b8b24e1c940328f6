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
	"testing"
)

func Test_operate(t *testing.T) {
	type args struct {
		a  string
		op string
		b  string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{name: "add", args: args{"10px", "+", "5"}, want: "15px"},
		{name: "second unit", args: args{"3", "*", "2em"}, want: "6em"},
		{name: "first unit wins", args: args{"1em", "+", "2px"}, want: "3em"},
		{name: "zero", args: args{"1.5em", "-", "1.5em"}, want: "0"},
		{name: "divide", args: args{"10", "/", "4"}, want: "2.5"},
		{name: "zero numerator", args: args{"0", "/", "2"}, want: "0/2"},
		{name: "division by zero", args: args{"1", "/", "0"}, wantErr: true},
		{name: "words", args: args{"a", "+", "b"}, want: "a + b"},
		{name: "colors", args: args{"#111", "+", "#222"}, want: "#333333"},
		{name: "color and number", args: args{"#333333", "*", "2"}, want: "#666666"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := operate(tt.args.a, tt.args.op, tt.args.b)
			if (err != nil) != tt.wantErr {
				t.Errorf("operate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("operate() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_operateRoundTrip(t *testing.T) {
	for _, a := range []string{"1px", "12.5em", "-3", "100%"} {
		for _, b := range []string{"2", "0.25", "-7"} {
			sum, err := operate(a, "+", b)
			if err != nil {
				t.Fatal(err)
			}
			back, err := operate(sum, "-", b)
			if err != nil {
				t.Fatal(err)
			}
			if back != a {
				t.Errorf("%s + %s - %s got = %s", a, b, b, back)
			}
		}
	}
}

func Test_compareValues(t *testing.T) {
	tests := []struct {
		a    string
		c    comparator
		b    string
		want bool
	}{
		{"1", compGt, "0", true},
		{"10px", compLt, "2em", false},
		{"2", compLte, "2", true},
		{"2", compGte, "3", false},
		{"foo", compEq, "foo", true},
		{"foo", compEq, `"foo"`, true},
		{"foo", compNEq, "bar", true},
		{"foo", compGt, "0", false},
		{"foo", compLte, "0", false},
		{"#fff", compEq, "#fff", true},
	}
	for _, tt := range tests {
		if got := compareValues(tt.a, tt.c, tt.b); got != tt.want {
			t.Errorf("compareValues(%s, %d, %s) got = %v, want %v", tt.a, tt.c, tt.b, got, tt.want)
		}
	}
}

func Test_guard_eval(t *testing.T) {
	cond := func(a string, c comparator, b string) condition {
		return condition{a: []term{lit(a)}, c: c, b: []term{lit(b)}}
	}
	tests := []struct {
		name  string
		guard *guard
		want  bool
	}{
		{name: "nil", guard: nil, want: true},
		{
			name: "and",
			guard: &guard{conditions: []condition{
				cond("1", compGt, "0"), cond("2", compLt, "1"),
			}},
			want: false,
		},
		{
			name: "or",
			guard: &guard{or: true, conditions: []condition{
				cond("1", compGt, "0"), cond("2", compLt, "1"),
			}},
			want: true,
		},
		{
			name: "or none passing",
			guard: &guard{or: true, conditions: []condition{
				cond("1", compLt, "0"), cond("2", compLt, "1"),
			}},
			want: true,
		},
		{
			name: "not",
			guard: &guard{conditions: []condition{
				{a: []term{lit("1")}, c: compGt, b: []term{lit("0")}, not: true},
			}},
			want: false,
		},
		{
			name: "single true",
			guard: &guard{conditions: []condition{
				{a: []term{lit("true")}},
			}},
			want: true,
		},
		{
			name: "single other",
			guard: &guard{conditions: []condition{
				{a: []term{lit("1")}},
			}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.guard.eval(NewScope())
			if err != nil {
				t.Fatalf("eval() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("eval() got = %v, want %v", got, tt.want)
			}
		})
	}
}
