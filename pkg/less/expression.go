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
	"strings"

	"github.com/das7pad/lessc-go/pkg/errors"
)

type expression struct {
	a      term
	op     string
	b      term
	spaced bool
}

func (e *expression) eval(s *Scope, literal bool) ([]string, error) {
	pa, err := e.a.eval(s, literal)
	if err != nil {
		return nil, err
	}
	pb, err := e.b.eval(s, literal)
	if err != nil {
		return nil, err
	}
	a := strings.TrimSpace(joinPieces(pa))
	b := strings.TrimSpace(joinPieces(pb))
	if literal {
		if e.spaced {
			return []string{a + " " + e.op + " " + b}, nil
		}
		return []string{a + e.op + b}, nil
	}
	v, err := operate(a, e.op, b)
	if err != nil {
		return nil, err
	}
	return []string{v}, nil
}

// operate evaluates a binary operation. Operands that are neither numbers
// nor colors are passed through as text.
func operate(a, op, b string) (string, error) {
	va, ua, errA := analyzeNumber(a)
	vb, ub, errB := analyzeNumber(b)
	if errA != nil || errB != nil {
		return a + " " + op + " " + b, nil
	}
	if ua == unitColor || ub == unitColor {
		return colorOperate(a, op, b)
	}
	var v float64
	switch op {
	case "+":
		v = va + vb
	case "-":
		v = va - vb
	case "*":
		v = va * vb
	case "/":
		if va == 0 {
			return a + "/" + b, nil
		}
		if vb == 0 {
			return "", &errors.ValidationError{Msg: "division by zero"}
		}
		v = va / vb
	default:
		return "", &errors.ValidationError{Msg: "unknown operation " + op}
	}
	unit := ua
	if unit == "" {
		unit = ub
	}
	return withUnit(v, unit), nil
}

type comparator uint8

const (
	compEq comparator = iota
	compNEq
	compLt
	compGt
	compLte
	compGte
)

func compare[T float64 | string](a T, c comparator, b T) bool {
	switch c {
	case compEq:
		if a != b {
			return false
		}
	case compNEq:
		if a == b {
			return false
		}
	case compLt:
		if a >= b {
			return false
		}
	case compGt:
		if a <= b {
			return false
		}
	case compLte:
		if a > b {
			return false
		}
	case compGte:
		if a < b {
			return false
		}
	}
	return true
}

// compareValues compares numerically when both sides are numbers, units
// are ignored. Anything else only supports equality checks.
func compareValues(a string, c comparator, b string) bool {
	va, ua, errA := analyzeNumber(a)
	vb, ub, errB := analyzeNumber(b)
	if errA == nil && errB == nil && ua != unitColor && ub != unitColor {
		return compare(va, c, vb)
	}
	if c != compEq && c != compNEq {
		return false
	}
	return compare(destring(a), c, destring(b))
}

type condition struct {
	a   []term
	c   comparator
	b   []term
	not bool
}

func (c *condition) eval(s *Scope) (bool, error) {
	a, err := evalString(s, c.a, false)
	if err != nil {
		return false, err
	}
	var ok bool
	if c.b == nil {
		ok = a == "true"
	} else {
		b, err2 := evalString(s, c.b, false)
		if err2 != nil {
			return false, err2
		}
		ok = compareValues(a, c.c, b)
	}
	return ok != c.not, nil
}

// guard combines its conditions with AND, unless a comma separated any of
// them. A comma guard stops at the first passing condition and passes even
// when none did; only evaluation errors fail it.
type guard struct {
	conditions []condition
	or         bool
}

func (g *guard) eval(s *Scope) (bool, error) {
	if g == nil {
		return true, nil
	}
	for i := range g.conditions {
		ok, err := g.conditions[i].eval(s)
		if err != nil {
			return false, err
		}
		if g.or && ok {
			return true, nil
		}
		if !g.or && !ok {
			return false, nil
		}
	}
	return true, nil
}
