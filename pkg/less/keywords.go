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
	"sort"
	"strings"
)

func setOf(s string) map[string]bool {
	m := make(map[string]bool)
	for _, f := range strings.Fields(s) {
		m[f] = true
	}
	return m
}

var cssProperties = setOf(`
azimuth background background-attachment background-clip background-color
background-image background-origin background-position background-position-x
background-position-y background-repeat background-size background-blend-mode
border border-bottom border-bottom-color border-bottom-left-radius
border-bottom-right-radius border-bottom-style border-bottom-width
border-collapse border-color border-image border-image-outset
border-image-repeat border-image-slice border-image-source border-image-width
border-left border-left-color border-left-style border-left-width border-radius
border-right border-right-color border-right-style border-right-width
border-spacing border-style border-top border-top-color border-top-left-radius
border-top-right-radius border-top-style border-top-width border-width bottom
box-decoration-break box-shadow box-sizing caption-side clear clip clip-path
color column-count column-fill column-gap column-rule column-rule-color
column-rule-style column-rule-width column-span column-width columns content
counter-increment counter-reset cue cue-after cue-before cursor direction
display elevation empty-cells filter flex flex-basis flex-direction flex-flow
flex-grow flex-shrink flex-wrap float font font-family font-feature-settings
font-kerning font-size font-size-adjust font-stretch font-style font-variant
font-weight gap grid grid-area grid-auto-columns grid-auto-flow grid-auto-rows
grid-column grid-column-end grid-column-gap grid-column-start grid-gap grid-row
grid-row-end grid-row-gap grid-row-start grid-template grid-template-areas
grid-template-columns grid-template-rows hanging-punctuation height hyphens
image-rendering justify-content justify-items justify-self left letter-spacing
line-break line-height list-style list-style-image list-style-position
list-style-type margin margin-bottom margin-left margin-right margin-top
marker-offset marks max-height max-width min-height min-width mix-blend-mode
nav-down nav-index nav-left nav-right nav-up object-fit object-position opacity
order orphans outline outline-color outline-offset outline-style outline-width
overflow overflow-style overflow-wrap overflow-x overflow-y padding
padding-bottom padding-left padding-right padding-top page page-break-after
page-break-before page-break-inside pause pause-after pause-before perspective
perspective-origin pitch pitch-range play-during pointer-events position quotes
resize richness right row-gap speak speak-header speak-numeral speak-punctuation
speech-rate src stress tab-size table-layout text-align text-align-last
text-decoration text-decoration-color text-decoration-line text-decoration-style
text-indent text-justify text-overflow text-rendering text-shadow
text-transform text-underline-position top transform transform-origin
transform-style transition transition-delay transition-duration
transition-property transition-timing-function unicode-bidi unicode-range
user-select vertical-align visibility voice-family volume white-space widows
width will-change word-break word-spacing word-wrap writing-mode z-index zoom
align-content align-items align-self animation animation-delay
animation-direction animation-duration animation-fill-mode
animation-iteration-count animation-name animation-play-state
animation-timing-function backface-visibility behavior fill stroke stroke-width
`)

// Element names, compared case-insensitive.
var domElements = setOf(`
a abbr acronym address applet area article aside audio b base basefont bdi bdo
big blockquote body br button canvas caption center cite code col colgroup
command datalist dd del details dfn dialog dir div dl dt em embed fieldset
figcaption figure footer form frame frameset h1 h2 h3 h4 h5 h6 head header
hgroup hr html i iframe img input ins kbd keygen label legend li link main map
mark menu meta meter nav noframes noscript object ol optgroup option output p
param picture pre progress q rp rt ruby s samp script section select small
source span strike strong style sub summary sup table tbody td template
textarea tfoot th thead time title tr track tt u ul var video wbr
svg g path rect circle ellipse line polyline polygon text tspan defs use
symbol image
`)

var reservedTokens = map[string]tokenKind{
	"@media":             cssMedia,
	"@page":              cssPage,
	"@import":            cssImport,
	"@charset":           cssCharset,
	"@font-face":         cssFontFace,
	"@namespace":         cssNamespace,
	"@keyframes":         cssKeyframes,
	"@-moz-keyframes":    cssKeyframes,
	"@-webkit-keyframes": cssKeyframes,
	"@-ms-keyframes":     cssKeyframes,
	"@-o-keyframes":      cssKeyframes,
	"@viewport":          cssViewport,
	"@-ms-viewport":      cssViewport,
	"@arguments":         lessArguments,
}

var mediaTypes = []string{
	"all", "aural", "braille", "embossed", "handheld", "print",
	"projection", "screen", "tty", "tv",
}

var mediaFeatures = []string{
	"width", "min-width", "max-width",
	"height", "min-height", "max-height",
	"device-width", "min-device-width", "max-device-width",
	"device-height", "min-device-height", "max-device-height",
	"orientation",
	"aspect-ratio", "min-aspect-ratio", "max-aspect-ratio",
	"device-aspect-ratio", "min-device-aspect-ratio",
	"max-device-aspect-ratio",
	"color", "min-color", "max-color",
	"color-index", "min-color-index", "max-color-index",
	"monochrome", "min-monochrome", "max-monochrome",
	"resolution", "min-resolution", "max-resolution",
	"scan", "grid",
	"-webkit-device-pixel-ratio", "-webkit-min-device-pixel-ratio",
	"-webkit-max-device-pixel-ratio", "min--moz-device-pixel-ratio",
	"-o-min-device-pixel-ratio", "min-device-pixel-ratio",
	"max-device-pixel-ratio", "device-pixel-ratio",
}

// alternation builds a regexp alternation that tries longer words first.
func alternation(words []string) string {
	s := append([]string(nil), words...)
	sort.SliceStable(s, func(i, j int) bool {
		return len(s[i]) > len(s[j])
	})
	return strings.Join(s, "|")
}

func isDomElement(v string) bool {
	return domElements[v] || domElements[strings.ToLower(v)]
}
