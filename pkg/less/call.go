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
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/das7pad/lessc-go/pkg/errors"
)

// call is a function call in a value. Unknown functions are emitted as
// they are written.
type call struct {
	name string
	args [][]term
}

type builtin func(args []string) (string, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"e":          escapeArg,
		"~":          escapeArg,
		"%":          formatArgs,
		"isnumber":   is(isNumber),
		"iscolor":    is(isColorValue),
		"isurl":      is(isURL),
		"isstring":   is(isString),
		"iskeyword":  is(isKeyword),
		"increment":  numeric(func(v float64) float64 { return v + 1 }),
		"decrement":  numeric(func(v float64) float64 { return v - 1 }),
		"add":        addArgs,
		"round":      numeric(func(v float64) float64 { return awayFromZeroRound(v, 0) }),
		"ceil":       numeric(math.Ceil),
		"floor":      numeric(math.Floor),
		"percentage": percentage,
	}
}

func (c *call) eval(s *Scope, literal bool) ([]string, error) {
	keepMath := literal || c.name == "calc"
	args := make([]string, 0, len(c.args))
	for _, a := range c.args {
		v, err := evalString(s, a, keepMath)
		if err != nil {
			return nil, err
		}
		if v == "" {
			continue
		}
		args = append(args, v)
	}
	if fn, ok := builtins[c.name]; ok {
		if v, err := fn(args); err == nil {
			return []string{v}, nil
		}
	} else if fn2, ok2 := colorFunctions[strings.ToLower(c.name)]; ok2 {
		if v, err := fn2(args); err == nil {
			return []string{v}, nil
		}
	}
	return []string{c.name + "(" + strings.Join(args, ",") + ")"}, nil
}

var errArgs = &errors.ValidationError{Msg: "unexpected arguments"}

func single(args []string) (string, error) {
	if len(args) != 1 {
		return "", errArgs
	}
	return args[0], nil
}

func escapeArg(args []string) (string, error) {
	v, err := single(args)
	if err != nil {
		return "", err
	}
	return destring(v), nil
}

var formatVerb = regexp.MustCompile(`%[sdaA]`)

// formatArgs substitutes the verbs of the first argument one by one.
func formatArgs(args []string) (string, error) {
	if len(args) == 0 {
		return "", errArgs
	}
	f := args[0]
	q := ""
	if len(f) > 1 && (f[0] == '"' || f[0] == '\'') {
		q = f[:1]
	}
	f = destring(f)
	rest := args[1:]
	out := formatVerb.ReplaceAllStringFunc(f, func(verb string) string {
		if len(rest) == 0 {
			return verb
		}
		v := rest[0]
		rest = rest[1:]
		switch verb {
		case "%s":
			return destring(v)
		case "%A":
			return url.PathEscape(destring(v))
		default:
			return v
		}
	})
	return q + out + q, nil
}

func is(fn func(string) bool) builtin {
	return func(args []string) (string, error) {
		v, err := single(args)
		if err != nil {
			return "", err
		}
		if fn(v) {
			return "true", nil
		}
		return "false", nil
	}
}

func isColorValue(s string) bool {
	if isColor(s) {
		return true
	}
	_, ok := colorNames[strings.ToLower(s)]
	return ok
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "url(") && strings.HasSuffix(s, ")")
}

func isString(s string) bool {
	return len(s) > 1 && (s[0] == '"' || s[0] == '\'') &&
		s[len(s)-1] == s[0]
}

var keywordPattern = regexp.MustCompile(`^[a-zA-Z_][\w-]*$`)

func isKeyword(s string) bool {
	return keywordPattern.MatchString(s) && !isColorValue(s)
}

func numeric(fn func(float64) float64) builtin {
	return func(args []string) (string, error) {
		s, err := single(args)
		if err != nil {
			return "", err
		}
		v, u, err := analyzeNumber(s)
		if err != nil || u == unitColor {
			return "", errArgs
		}
		return withUnit(fn(v), u), nil
	}
}

func addArgs(args []string) (string, error) {
	if len(args) != 2 {
		return "", errArgs
	}
	return operate(args[0], "+", args[1])
}

func percentage(args []string) (string, error) {
	s, err := single(args)
	if err != nil {
		return "", err
	}
	v, u, err := analyzeNumber(s)
	if err != nil || u == unitColor {
		return "", errArgs
	}
	return withUnit(v*100, "%"), nil
}
