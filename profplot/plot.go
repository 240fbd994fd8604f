// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profplot renders performance profiles.
//
// It pairs each curve produced by package profile with a MATLAB-style
// line specification ("r-", "k:", "bo--") and an optional legend name,
// and assembles a gonum/plot figure with the conventional profile
// axes: θ from 1 to thmax, proportion from 0 to just above 1.
package profplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sdrelton/perfprof/profile"
)

// A LegendPosition places the legend in one of the figure's corners.
type LegendPosition int

const (
	// LegendLowerRight is the default: profile curves converge
	// toward the top of the figure, so the lower right tends to
	// stay clear.
	LegendLowerRight LegendPosition = iota
	LegendUpperRight
	LegendUpperLeft
	LegendLowerLeft
)

// Options configures Plot and Render. The zero value selects the
// defaults.
type Options struct {
	// Profile is passed through to profile.Compute.
	Profile profile.Options

	// LineWidth is the curve width in points. Zero means 1.6.
	LineWidth float64

	// ThLabel and PLabel label the axes. Empty means "θ" and "p",
	// or their math-mode forms when UseTeX is on.
	ThLabel string
	PLabel  string

	// LegendNames gives one legend entry per matrix column. Nil
	// omits the legend entirely; otherwise the length must equal
	// the number of columns.
	LegendNames []string
	LegendPos   LegendPosition

	// Font sizes in points. Zero means 18 for axis labels and 14
	// for tick and legend text.
	FontSize       float64
	TickFontSize   float64
	LegendFontSize float64

	// UseTeX, when non-nil, switches the text handler to LaTeX
	// (true) or plain (false) rendering for the duration of the
	// call. The previous handler is restored before returning,
	// whether or not rendering succeeds. Nil leaves the ambient
	// mode untouched.
	UseTeX *bool
}

func (o Options) withDefaults() Options {
	if o.LineWidth == 0 {
		o.LineWidth = 1.6
	}
	tex := o.UseTeX != nil && *o.UseTeX
	if o.ThLabel == "" {
		if tex {
			o.ThLabel = `$\theta$`
		} else {
			o.ThLabel = "θ"
		}
	}
	if o.PLabel == "" {
		if tex {
			o.PLabel = "$p$"
		} else {
			o.PLabel = "p"
		}
	}
	if o.FontSize == 0 {
		o.FontSize = 18
	}
	if o.TickFontSize == 0 {
		o.TickFontSize = 14
	}
	if o.LegendFontSize == 0 {
		o.LegendFontSize = 14
	}
	return o
}

// Plot computes the performance profile of data and renders it. It
// requires one linespec per matrix column and, when opts.LegendNames
// is set, one name per column; both counts are checked before any
// computation is done. It returns the figure together with the
// computed profile so callers can inspect the curves or the resolved
// thmax.
func Plot(data [][]float64, linespecs []string, opts Options) (*plot.Plot, *profile.Profile, error) {
	n := 0
	if len(data) > 0 {
		n = len(data[0])
	}
	if err := checkCounts(n, linespecs, opts.LegendNames); err != nil {
		return nil, nil, err
	}
	prof, err := profile.Compute(data, opts.Profile)
	if err != nil {
		return nil, nil, err
	}
	p, err := Render(prof, linespecs, opts)
	if err != nil {
		return nil, nil, err
	}
	return p, prof, nil
}

// Render draws a precomputed profile. See Plot.
func Render(prof *profile.Profile, linespecs []string, opts Options) (*plot.Plot, error) {
	opts = opts.withDefaults()
	if err := checkCounts(prof.Cols, linespecs, opts.LegendNames); err != nil {
		return nil, err
	}
	specs := make([]lineSpec, len(linespecs))
	for i, s := range linespecs {
		spec, err := parseLineSpec(s)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}

	// The text handler must be in place before plot.New captures
	// it into the figure's text styles.
	if opts.UseTeX != nil {
		restore := setTextMode(*opts.UseTeX)
		defer restore()
	}

	p := plot.New()
	p.X.Label.Text = opts.ThLabel
	p.Y.Label.Text = opts.PLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(opts.FontSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(opts.FontSize)
	p.X.Tick.Label.Font.Size = vg.Points(opts.TickFontSize)
	p.Y.Tick.Label.Font.Size = vg.Points(opts.TickFontSize)
	p.Legend.TextStyle.Font.Size = vg.Points(opts.LegendFontSize)
	setLegendPos(&p.Legend, opts.LegendPos)

	for _, c := range prof.Curves {
		spec := specs[c.Col]
		xys := make(plotter.XYs, len(c.X))
		for i := range c.X {
			xys[i] = plotter.XY{X: c.X[i], Y: c.Y[i]}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle = draw.LineStyle{
			Color:  spec.color,
			Width:  vg.Points(opts.LineWidth),
			Dashes: spec.dashes,
		}
		if spec.hasLine {
			p.Add(line)
		}
		var thumb plot.Thumbnailer = line
		if spec.glyph != nil {
			pts, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, err
			}
			pts.GlyphStyle = draw.GlyphStyle{
				Color:  spec.color,
				Radius: vg.Points(3),
				Shape:  spec.glyph,
			}
			p.Add(pts)
			if !spec.hasLine {
				thumb = pts
			}
		}
		if opts.LegendNames != nil {
			p.Legend.Add(opts.LegendNames[c.Col], thumb)
		}
	}

	p.X.Min, p.X.Max = 1, prof.Thmax
	p.Y.Min, p.Y.Max = 0, 1.01
	return p, nil
}

func checkCounts(n int, linespecs, legendNames []string) error {
	if n > 0 && len(linespecs) != n {
		return &profile.ConfigError{
			Option: "linespecs",
			Msg:    fmt.Sprintf("got %d specs for %d algorithms", len(linespecs), n),
		}
	}
	if n > 0 && legendNames != nil && len(legendNames) != n {
		return &profile.ConfigError{
			Option: "legendNames",
			Msg:    fmt.Sprintf("got %d names for %d algorithms", len(legendNames), n),
		}
	}
	return nil
}

func setLegendPos(l *plot.Legend, pos LegendPosition) {
	switch pos {
	case LegendUpperRight:
		l.Top = true
	case LegendUpperLeft:
		l.Top, l.Left = true, true
	case LegendLowerLeft:
		l.Left = true
	}
	// LegendLowerRight is the gonum default.
}
