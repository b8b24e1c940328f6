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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/das7pad/lessc-go/pkg/errors"
)

var errIllegalColor = &errors.ValidationError{Msg: "illegal color values"}

type colorFunc func(args []string) (string, error)

var colorFunctions map[string]colorFunc

func init() {
	colorFunctions = map[string]colorFunc{
		"rgb":        colorRGB,
		"rgba":       colorRGBA,
		"argb":       colorARGB,
		"hsl":        colorHSL,
		"hsla":       colorHSLA,
		"hue":        colorHue,
		"saturation": colorSaturation,
		"lightness":  colorLightness,
		"lighten":    hslOperation(1, 1),
		"darken":     hslOperation(1, -1),
		"saturate":   hslOperation(2, 1),
		"desaturate": hslOperation(2, -1),
		"greyscale":  colorGreyscale,
		"grayscale":  colorGreyscale,
		"spin":       colorSpin,
		"mix":        colorMix,
	}
}

// formatColor lower-cases a hex color and expands the short forms.
func formatColor(s string) (string, error) {
	if !isColor(s) {
		return "", &errors.ValidationError{Msg: "cannot format non-color"}
	}
	s = strings.ToLower(s[1:])
	if len(s) == 3 || len(s) == 4 {
		b := make([]byte, 0, 2*len(s))
		for i := 0; i < len(s); i++ {
			b = append(b, s[i], s[i])
		}
		s = string(b)
	}
	return "#" + s, nil
}

func parseRGB(s string) ([3]float64, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return [3]float64{}, errIllegalColor
	}
	if named, ok := colorNames[strings.ToLower(s)]; ok {
		s = named
	}
	if s[0] != '#' {
		// Plain numbers apply to every channel.
		v, u, err := analyzeNumber(s)
		if err != nil || u == unitColor {
			return [3]float64{}, errIllegalColor
		}
		return [3]float64{v, v, v}, nil
	}
	h, err := formatColor(strings.TrimRight(s, ";"))
	if err != nil {
		return [3]float64{}, errIllegalColor
	}
	var c [3]float64
	for i := range c {
		v, err2 := strconv.ParseUint(h[1+2*i:3+2*i], 16, 8)
		if err2 != nil {
			return c, errIllegalColor
		}
		c[i] = float64(v)
	}
	return c, nil
}

func clampChannel(v float64) float64 {
	if v > 0xff {
		return 0xff
	}
	if v < 0 {
		return 0
	}
	return v
}

func rgbToHex(channels ...float64) string {
	b := strings.Builder{}
	b.WriteByte('#')
	for _, v := range channels {
		b.WriteString(fmt.Sprintf("%02x", int(clampChannel(v))))
	}
	return b.String()
}

func rgbToRawHex(channels ...float64) []string {
	out := make([]string, len(channels))
	for i, v := range channels {
		out[i] = strconv.FormatInt(int64(clampChannel(v)), 16)
	}
	return out
}

func rgbToHLS(r, g, b float64) (float64, float64, float64) {
	maxC := max(r, g, b)
	minC := min(r, g, b)
	l := (minC + maxC) / 2
	if minC == maxC {
		return 0, l, 0
	}
	var s float64
	if l <= 0.5 {
		s = (maxC - minC) / (maxC + minC)
	} else {
		s = (maxC - minC) / (2 - maxC - minC)
	}
	rc := (maxC - r) / (maxC - minC)
	gc := (maxC - g) / (maxC - minC)
	bc := (maxC - b) / (maxC - minC)
	var h float64
	switch maxC {
	case r:
		h = bc - gc
	case g:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	return floorMod(h/6, 1), l, s
}

func hlsToRGB(h, l, s float64) (float64, float64, float64) {
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return hueToChannel(m1, m2, h+1.0/3), hueToChannel(m1, m2, h),
		hueToChannel(m1, m2, h-1.0/3)
}

func hueToChannel(m1, m2, h float64) float64 {
	h = floorMod(h, 1)
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 0.5:
		return m2
	case h < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}

func colorToHLS(s string) (float64, float64, float64, error) {
	c, err := parseRGB(s)
	if err != nil {
		return 0, 0, 0, err
	}
	h, l, sat := rgbToHLS(c[0]/255, c[1]/255, c[2]/255)
	return h, l, sat, nil
}

func roundedHex(round func(float64, int) float64, r, g, b float64) string {
	return rgbToHex(round(r*255, 0), round(g*255, 0), round(b*255, 0))
}

// colorOperate applies an arithmetic operator channel by channel.
func colorOperate(a, op, b string) (string, error) {
	c1, err := parseRGB(a)
	if err != nil {
		return "", err
	}
	c2, err := parseRGB(b)
	if err != nil {
		return "", err
	}
	var out [3]float64
	for i := range out {
		switch op {
		case "+":
			out[i] = c1[i] + c2[i]
		case "-":
			out[i] = c1[i] - c2[i]
		case "*":
			out[i] = c1[i] * c2[i]
		case "/":
			if c2[i] == 0 {
				return "", &errors.ValidationError{Msg: "division by zero"}
			}
			out[i] = c1[i] / c2[i]
		default:
			return "", &errors.ValidationError{Msg: "unknown operation " + op}
		}
	}
	return rgbToHex(out[:]...), nil
}

func parseChannels(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	ok := true
	for i, a := range args {
		v, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			ok = false
			break
		}
		out[i] = float64(v)
	}
	if ok {
		return out, nil
	}
	for i, a := range args {
		a = strings.TrimSpace(a)
		if !strings.HasSuffix(a, "%") {
			return nil, errIllegalColor
		}
		v, err := strconv.Atoi(strings.TrimSuffix(a, "%"))
		if err != nil || v < 0 || v > 100 {
			return nil, errIllegalColor
		}
		out[i] = float64(v) * 255 / 100
	}
	return out, nil
}

func colorRGB(args []string) (string, error) {
	if len(args) == 4 {
		args = args[:3]
	}
	if len(args) != 3 {
		return "", errIllegalColor
	}
	c, err := parseChannels(args)
	if err != nil {
		return "", err
	}
	return rgbToHex(c...), nil
}

func colorRGBA(args []string) (string, error) {
	if len(args) != 4 {
		return "", errIllegalColor
	}
	alpha, err := percentOrFloat(args[3])
	if err != nil {
		return "", errIllegalColor
	}
	c, err := parseChannels(args[:3])
	if err != nil {
		return "", err
	}
	switch {
	case alpha == 0:
		raw := append(rgbToRawHex(c...), "0")
		return "rgba(" + strings.Join(raw, ",") + ")", nil
	case alpha >= 1:
		return rgbToHex(c...), nil
	default:
		// Translucent colors stay as they are.
		return "", errIllegalColor
	}
}

var rgbaPattern = regexp.MustCompile(`^rgba\((.*)\)$`)

// colorARGB renders #AARRGGBB as used by Internet Explorer filters.
func colorARGB(args []string) (string, error) {
	var channels []string
	if len(args) == 1 {
		if m := rgbaPattern.FindStringSubmatch(strings.TrimSpace(args[0])); m != nil {
			channels = strings.Split(strings.Join(strings.Fields(m[1]), ""), ",")
		} else {
			c, err := parseRGB(args[0])
			if err != nil {
				return "", err
			}
			return rgbToHex(255, c[0], c[1], c[2]), nil
		}
	} else {
		channels = args
	}
	switch len(channels) {
	case 3:
		c, err := parseChannels(channels)
		if err != nil {
			return "", err
		}
		return rgbToHex(append([]float64{255}, c...)...), nil
	case 4:
		alpha, err := strconv.ParseFloat(strings.TrimSpace(channels[3]), 64)
		if err != nil {
			return "", errIllegalColor
		}
		switch {
		case alpha > 1:
			alpha = 255
		case alpha >= 0:
			alpha *= 256
		default:
			alpha = 0
		}
		c, err := parseChannels(channels[:3])
		if err != nil {
			return "", err
		}
		return rgbToHex(append([]float64{float64(int(alpha))}, c...)...), nil
	default:
		return "", errIllegalColor
	}
}

func parseHSL(args []string) (float64, float64, float64, error) {
	h, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, 0, 0, errIllegalColor
	}
	s, err := percentOrFloat(args[1])
	if err != nil {
		return 0, 0, 0, errIllegalColor
	}
	l, err := percentOrFloat(args[2])
	if err != nil {
		return 0, 0, 0, errIllegalColor
	}
	r, g, b := hlsToRGB(float64(h)/360, l, s)
	return convergentRound(r*255, 0), convergentRound(g*255, 0),
		convergentRound(b*255, 0), nil
}

func colorHSL(args []string) (string, error) {
	switch len(args) {
	case 4:
		return colorHSLA(args)
	case 3:
		r, g, b, err := parseHSL(args)
		if err != nil {
			return "", err
		}
		return rgbToHex(r, g, b), nil
	default:
		return "", errIllegalColor
	}
}

func colorHSLA(args []string) (string, error) {
	if len(args) != 4 {
		return "", errIllegalColor
	}
	r, g, b, err := parseHSL(args)
	if err != nil {
		return "", err
	}
	a, err := percentOrFloat(args[3])
	if err != nil {
		return "", errIllegalColor
	}
	return fmt.Sprintf(
		"rgba(%s,%s,%s,%s)",
		formatNumber(r, ""), formatNumber(g, ""), formatNumber(b, ""),
		formatNumber(a, ""),
	), nil
}

func firstColorArg(args []string) (float64, float64, float64, error) {
	if len(args) == 0 {
		return 0, 0, 0, errIllegalColor
	}
	return colorToHLS(args[0])
}

func colorHue(args []string) (string, error) {
	h, _, _, err := firstColorArg(args)
	if err != nil {
		return "", err
	}
	return formatNumber(convergentRound(h*360, 3), ""), nil
}

func colorSaturation(args []string) (string, error) {
	_, _, s, err := firstColorArg(args)
	if err != nil {
		return "", err
	}
	return formatNumber(s*100, ""), nil
}

func colorLightness(args []string) (string, error) {
	_, l, _, err := firstColorArg(args)
	if err != nil {
		return "", err
	}
	return formatNumber(l*100, ""), nil
}

// hslOperation adjusts the lightness (idx 1) or saturation (idx 2) of a
// color by a percentage.
func hslOperation(idx int, sign float64) colorFunc {
	return func(args []string) (string, error) {
		if len(args) < 2 {
			return "", errIllegalColor
		}
		diff, err := parseFloat(args[1])
		if err != nil {
			return "", errIllegalColor
		}
		return adjustHLS(args[0], idx, sign*diff)
	}
}

func adjustHLS(color string, idx int, diff float64) (string, error) {
	h, l, s, err := colorToHLS(color)
	if err != nil {
		return "", err
	}
	hls := [3]float64{h, l, s}
	hls[idx] = min(1, max(0, hls[idx]+diff/100))
	r, g, b := hlsToRGB(hls[0], hls[1], hls[2])
	return roundedHex(awayFromZeroRound, r, g, b), nil
}

func colorGreyscale(args []string) (string, error) {
	if len(args) == 0 {
		return "", errIllegalColor
	}
	return adjustHLS(args[0], 2, -100)
}

func colorSpin(args []string) (string, error) {
	if len(args) < 2 {
		return "", errIllegalColor
	}
	degree, err := parseFloat(args[1])
	if err != nil {
		return "", errIllegalColor
	}
	h, l, s, err := colorToHLS(args[0])
	if err != nil {
		return "", err
	}
	h = floorMod(h*360+degree, 360)
	r, g, b := hlsToRGB(h/360, l, s)
	return roundedHex(convergentRound, r, g, b), nil
}

// colorMix computes the weighted average of two colors, see
// http://sass-lang.com for the formula.
func colorMix(args []string) (string, error) {
	if len(args) < 2 {
		return "", errIllegalColor
	}
	weight := 50.0
	if len(args) > 2 {
		w, err := parseFloat(args[2])
		if err != nil {
			return "", errIllegalColor
		}
		weight = w
	}
	c1, err := parseRGB(args[0])
	if err != nil {
		return "", err
	}
	c2, err := parseRGB(args[1])
	if err != nil {
		return "", err
	}
	w := weight/100*2 - 1
	alpha := 0.0
	var w1 float64
	if w*alpha == -1 {
		w1 = w
	} else {
		w1 = (w + alpha) / (1 + w*alpha)
	}
	w1 = (w1 + 1) / 2
	w2 := 1 - w1
	return rgbToHex(
		c1[0]*w1+c2[0]*w2,
		c1[1]*w1+c2[1]*w2,
		c1[2]*w1+c2[2]*w2,
	), nil
}
