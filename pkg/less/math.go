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
	"regexp"
	"strconv"
	"strings"

	"github.com/das7pad/lessc-go/pkg/errors"
)

var numberWithUnit = regexp.MustCompile(`^(-?[\d.]+)([a-zA-Z%]*)$`)

const unitColor = "color"

// analyzeNumber splits s into its numeric value and unit. Colors report
// the unit "color".
func analyzeNumber(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	if isColor(s) {
		return 0, unitColor, nil
	}
	m := numberWithUnit.FindStringSubmatch(s)
	if m == nil {
		return 0, "", &errors.ValidationError{Msg: "not a number: " + s}
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", &errors.ValidationError{Msg: "not a number: " + s}
	}
	return v, m[2], nil
}

func isNumber(s string) bool {
	_, u, err := analyzeNumber(s)
	return err == nil && u != unitColor
}

func isColor(s string) bool {
	if len(s) == 0 || s[0] != '#' {
		return false
	}
	switch len(s) {
	case 4, 5, 7, 9:
		return isHex(s[1:])
	default:
		return false
	}
}

func isWhole(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) < 1e15
}

// formatNumber renders whole numbers without a fraction. Values with a unit
// are rounded to 12 significant digits.
func formatNumber(v float64, unit string) string {
	if isWhole(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	if unit != "" {
		v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func withUnit(v float64, unit string) string {
	if v == 0 {
		return "0"
	}
	return formatNumber(v, unit) + unit
}

// awayFromZeroRound rounds half-way values away from zero.
func awayFromZeroRound(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Copysign(math.Floor(math.Abs(v)*p+0.5), v) / p
}

// convergentRound rounds half-way values to the nearest even number.
func convergentRound(v float64, digits int) float64 {
	if v < 0 {
		return -convergentRound(-v, digits)
	}
	i := math.Floor(v)
	if math.Abs(v-(i+0.5)) < 1e-7 {
		if math.Mod(i, 2) < 1e-7 {
			return i
		}
		return i + 1
	}
	return awayFromZeroRound(v, digits)
}

func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func destring(s string) string {
	return strings.Trim(s, `"'`)
}

func percentOrFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return v / 100, err
	}
	return strconv.ParseFloat(s, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
}
