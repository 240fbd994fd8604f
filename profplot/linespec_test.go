// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profplot

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sdrelton/perfprof/profile"
)

func TestParseLineSpec(t *testing.T) {
	tests := []struct {
		spec     string
		color    byte
		dashes   string // key into specDashes, "" for solid
		marker   byte   // 0 for none
		wantLine bool
	}{
		{"r-", 'r', "-", 0, true},
		{"k:", 'k', ":", 0, true},
		{"b--", 'b', "--", 0, true},
		{"g-.", 'g', "-.", 0, true},
		{"m", 'm', "", 0, true},     // bare color: solid line
		{"co", 'c', "", 'o', false}, // marker only, no line
		{"ko-", 'k', "-", 'o', true},
		{"-.y", 'y', "-.", 0, true}, // order does not matter
		{"s", 'b', "", 's', false},  // bare marker: default color
	}
	for _, test := range tests {
		t.Run(test.spec, func(t *testing.T) {
			got, err := parseLineSpec(test.spec)
			if err != nil {
				t.Fatal(err)
			}
			if got.color != specColors[test.color] {
				t.Errorf("color=%v, want %v", got.color, specColors[test.color])
			}
			var dashes = specDashes[test.dashes]
			if test.dashes == "" {
				dashes = nil
			}
			if !reflect.DeepEqual(got.dashes, dashes) {
				t.Errorf("dashes=%v, want %v", got.dashes, dashes)
			}
			if test.marker == 0 {
				if got.glyph != nil {
					t.Errorf("glyph=%v, want none", got.glyph)
				}
			} else if got.glyph != specGlyphs[test.marker] {
				t.Errorf("glyph=%v, want %v", got.glyph, specGlyphs[test.marker])
			}
			if got.hasLine != test.wantLine {
				t.Errorf("hasLine=%v, want %v", got.hasLine, test.wantLine)
			}
		})
	}
}

func TestParseLineSpecErrors(t *testing.T) {
	for _, spec := range []string{"z", "r~", "1-", "r- "} {
		_, err := parseLineSpec(spec)
		var cerr *profile.ConfigError
		if !errors.As(err, &cerr) {
			t.Errorf("%q: got %v, want *profile.ConfigError", spec, err)
		}
	}
}
