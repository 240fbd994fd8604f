// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profplot

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sdrelton/perfprof/profile"
)

// A lineSpec is a parsed MATLAB-style line specification such as "r-",
// "k:" or "bo--": an optional color letter, an optional line style and
// an optional marker, in any order.
type lineSpec struct {
	color   color.Color
	dashes  []vg.Length
	glyph   draw.GlyphDrawer
	hasLine bool
}

var specColors = map[byte]color.Color{
	'b': color.RGBA{B: 255, A: 255},
	'g': color.RGBA{G: 127, A: 255},
	'r': color.RGBA{R: 255, A: 255},
	'c': color.RGBA{G: 191, B: 191, A: 255},
	'm': color.RGBA{R: 191, B: 191, A: 255},
	'y': color.RGBA{R: 191, G: 191, A: 255},
	'k': color.RGBA{A: 255},
	'w': color.RGBA{R: 255, G: 255, B: 255, A: 255},
}

// specGlyphs maps marker characters to the closest available glyph.
var specGlyphs = map[byte]draw.GlyphDrawer{
	'o': draw.CircleGlyph{},
	'.': draw.CircleGlyph{},
	's': draw.BoxGlyph{},
	'd': draw.RingGlyph{},
	'^': draw.PyramidGlyph{},
	'v': draw.TriangleGlyph{},
	'x': draw.CrossGlyph{},
	'*': draw.CrossGlyph{},
	'+': draw.PlusGlyph{},
}

var specDashes = map[string][]vg.Length{
	"-":  nil,
	"--": {vg.Points(6), vg.Points(2)},
	":":  {vg.Points(1), vg.Points(2)},
	"-.": {vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)},
}

// parseLineSpec parses a MATLAB-style line specification. A spec with
// a marker but no line style draws markers only; a spec with neither
// draws a solid line, matching the conventions the specs come from.
func parseLineSpec(s string) (lineSpec, error) {
	spec := lineSpec{color: specColors['b']}
	rest := s
	for len(rest) > 0 {
		switch {
		case strings.HasPrefix(rest, "--"):
			spec.dashes, spec.hasLine = specDashes["--"], true
			rest = rest[2:]
		case strings.HasPrefix(rest, "-."):
			spec.dashes, spec.hasLine = specDashes["-."], true
			rest = rest[2:]
		case rest[0] == '-':
			spec.dashes, spec.hasLine = specDashes["-"], true
			rest = rest[1:]
		case rest[0] == ':':
			spec.dashes, spec.hasLine = specDashes[":"], true
			rest = rest[1:]
		default:
			if c, ok := specColors[rest[0]]; ok {
				spec.color = c
			} else if g, ok := specGlyphs[rest[0]]; ok {
				spec.glyph = g
			} else {
				return lineSpec{}, &profile.ConfigError{
					Option: "linespecs",
					Msg:    fmt.Sprintf("unrecognized line specification %q", s),
				}
			}
			rest = rest[1:]
		}
	}
	if !spec.hasLine && spec.glyph == nil {
		spec.hasLine = true
	}
	return spec, nil
}
