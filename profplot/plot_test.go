// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profplot

import (
	"errors"
	"reflect"
	"testing"

	"gonum.org/v1/plot"

	"github.com/sdrelton/perfprof/profile"
)

var testData = [][]float64{{1, 2}, {2, 1}}

func TestPlotCountMismatch(t *testing.T) {
	tests := []struct {
		name   string
		specs  []string
		opts   Options
		option string
	}{
		{"fewSpecs", []string{"r-"}, Options{}, "linespecs"},
		{"manySpecs", []string{"r-", "k:", "b--"}, Options{}, "linespecs"},
		{"fewNames", []string{"r-", "k:"}, Options{LegendNames: []string{"a"}}, "legendNames"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := Plot(testData, test.specs, test.opts)
			var cerr *profile.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("got %v, want *profile.ConfigError", err)
			}
			if cerr.Option != test.option {
				t.Errorf("Option=%q, want %q", cerr.Option, test.option)
			}
		})
	}
}

func TestPlotBadSpec(t *testing.T) {
	_, _, err := Plot(testData, []string{"r-", "zz"}, Options{})
	var cerr *profile.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want *profile.ConfigError", err)
	}
}

func TestPlotAxes(t *testing.T) {
	p, prof, err := Plot(testData, []string{"r-", "k:"}, Options{
		LegendNames: []string{"alpha", "beta"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if prof.Thmax != 2 {
		t.Errorf("Thmax=%v, want 2", prof.Thmax)
	}
	if p.X.Min != 1 || p.X.Max != 2 {
		t.Errorf("x-limits [%v, %v], want [1, 2]", p.X.Min, p.X.Max)
	}
	if p.Y.Min != 0 || p.Y.Max != 1.01 {
		t.Errorf("y-limits [%v, %v], want [0, 1.01]", p.Y.Min, p.Y.Max)
	}
	if p.X.Label.Text != "θ" || p.Y.Label.Text != "p" {
		t.Errorf("labels %q/%q, want θ/p", p.X.Label.Text, p.Y.Label.Text)
	}
}

func TestPlotLabelOverrides(t *testing.T) {
	p, _, err := Plot(testData, []string{"r-", "k:"}, Options{
		ThLabel: "factor", PLabel: "fraction",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.X.Label.Text != "factor" || p.Y.Label.Text != "fraction" {
		t.Errorf("labels %q/%q", p.X.Label.Text, p.Y.Label.Text)
	}
}

func TestPlotPropagatesComputeErrors(t *testing.T) {
	_, _, err := Plot([][]float64{{1, 2}, {1}}, []string{"r-", "k:"}, Options{})
	var serr *profile.ShapeError
	if !errors.As(err, &serr) {
		t.Fatalf("got %v, want *profile.ShapeError", err)
	}
}

func TestTextModeRestored(t *testing.T) {
	prev := plot.DefaultTextHandler
	tex := true
	if _, _, err := Plot(testData, []string{"r-", "k:"}, Options{UseTeX: &tex}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(plot.DefaultTextHandler, prev) {
		t.Errorf("text handler not restored: %T", plot.DefaultTextHandler)
	}

	// A failed render leaves the ambient mode untouched too.
	if _, err := Render(&profile.Profile{Cols: 1, Thmax: 2}, []string{"!!"}, Options{UseTeX: &tex}); err == nil {
		t.Fatal("expected parse error")
	}
	if !reflect.DeepEqual(plot.DefaultTextHandler, prev) {
		t.Errorf("text handler changed by failed render: %T", plot.DefaultTextHandler)
	}
}
