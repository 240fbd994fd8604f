// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profile computes performance profiles.
//
// A performance profile is an alternative to a scatter plot when
// comparing several algorithms (or solvers, implementations,
// configurations) over a common set of test cases, looking for the one
// that is smallest on average. Typically the measurements are runtimes
// or relative errors. Given an m×n measurement matrix whose rows are
// test cases and whose columns are algorithms, Compute produces one
// staircase curve per algorithm: a point (θ, p) on a curve means the
// algorithm was within a factor θ of the smallest observed measurement
// on a fraction p of the test cases. The curve that climbs to 1
// earliest belongs to the most robust algorithm.
//
// Missing measurements are marked with NaN. They are excluded from an
// algorithm's distribution but still count in the denominator: an
// algorithm with a missing result on a case never reaches that case,
// no matter how large θ grows.
//
// The math here is decoupled from drawing. Package profplot renders
// the curves this package produces.
//
// References:
//
// E. D. Dolan and J. J. Moré, Benchmarking Optimization Software with
// Performance Profiles. Math. Programming, 91:201–213, 2002.
//
// N. J. Dingle and N. J. Higham, Reducing the Influence of Tiny
// Normwise Relative Errors on Performance Profiles. ACM Trans. Math.
// Software, 39(4):24:1–24:11, 2013.
package profile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Defaults for Options fields left at their zero value.
const (
	DefaultTol    = 1e-8
	DefaultFixMin = 1e-18

	// DefaultFixMax is half the double-precision machine epsilon.
	// Measurements below it are indistinguishable from rounding
	// noise and, left alone, produce enormous ratios that stretch
	// the θ axis until every real difference is invisible.
	DefaultFixMax = 0x1p-53
)

// Options configures Compute. The zero value selects the defaults.
type Options struct {
	// Thmax fixes the right edge of every curve. Zero resolves it
	// automatically to the smallest threshold at which every
	// algorithm has reached its final proportion, so no curve is
	// clipped. The resolved value must exceed 1.
	Thmax float64

	// Tol is the tolerance used when deciding whether a curve
	// needs extending to the plot boundaries. Zero means
	// DefaultTol.
	Tol float64

	// FixSmallValues remaps every measurement below FixMax
	// linearly onto [FixMin, FixMax], leaving larger measurements
	// alone. Useful when profiling relative errors, where values
	// near machine epsilon are noise; see the Dingle–Higham
	// reference in the package documentation.
	FixSmallValues bool

	// FixMin and FixMax bound the remapping. Zero means
	// DefaultFixMin and DefaultFixMax.
	FixMin float64
	FixMax float64
}

func (o Options) withDefaults() Options {
	if o.Tol == 0 {
		o.Tol = DefaultTol
	}
	if o.FixMin == 0 {
		o.FixMin = DefaultFixMin
	}
	if o.FixMax == 0 {
		o.FixMax = DefaultFixMax
	}
	return o
}

// A Curve is the staircase of one algorithm: a piecewise-constant,
// non-decreasing function from θ=1 to θ=Thmax.
type Curve struct {
	// Col is the measurement matrix column this curve belongs to.
	Col int

	// X and Y are the plotted coordinates. X is non-decreasing in
	// [1, Thmax]; Y is non-decreasing in [0, 1].
	X, Y []float64
}

// A Profile is the set of curves computed from one measurement matrix.
type Profile struct {
	// Curves holds one entry, in column order, for each algorithm
	// with at least one usable measurement. Columns whose
	// measurements are all missing contribute no curve.
	Curves []Curve

	// Thmax is the resolved right edge shared by all curves.
	Thmax float64

	// Rows and Cols are the measurement matrix dimensions.
	Rows, Cols int
}

// Compute builds the performance profile of an m×n measurement matrix.
// Rows are test cases, columns are algorithms, and NaN marks a missing
// measurement. The matrix is not modified.
//
// Compute returns a *ShapeError if the matrix is empty, ragged, or has
// a row with no finite entry, and a *ConfigError if the resolved thmax
// does not exceed 1. All validation happens before any curve is built.
func Compute(data [][]float64, opts Options) (*Profile, error) {
	opts = opts.withDefaults()

	m, n, err := dims(data)
	if err != nil {
		return nil, err
	}

	adj := mat.NewDense(m, n, nil)
	for i, row := range data {
		adj.SetRow(i, row)
	}
	if opts.FixSmallValues {
		fixSmallValues(adj, opts.FixMin, opts.FixMax)
	}

	minvals, err := rowMins(adj)
	if err != nil {
		return nil, err
	}

	thmax := opts.Thmax
	if thmax == 0 {
		thmax = maxRatio(adj, minvals)
	}
	if !(thmax > 1) {
		return nil, &ConfigError{"thmax", fmt.Sprintf("resolved thmax is %v, must exceed 1", thmax)}
	}

	prof := &Profile{Thmax: thmax, Rows: m, Cols: n}
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, adj)
		ratios := make([]float64, 0, m)
		for i := 0; i < m; i++ {
			// Non-finite ratios behave like missing data: a
			// NaN is an absent measurement, and an infinite
			// ratio is never within a finite factor of the
			// best.
			if r := col[i] / minvals[i]; !math.IsNaN(r) && !math.IsInf(r, 0) {
				ratios = append(ratios, r)
			}
		}
		if len(ratios) == 0 {
			continue
		}
		x, y := staircase(ratios, m, thmax, opts.Tol)
		prof.Curves = append(prof.Curves, Curve{Col: j, X: x, Y: y})
	}
	return prof, nil
}

// dims validates that data is a non-empty rectangular matrix and
// returns its dimensions.
func dims(data [][]float64) (m, n int, err error) {
	m = len(data)
	if m == 0 {
		return 0, 0, &ShapeError{-1, "matrix has no rows"}
	}
	n = len(data[0])
	if n == 0 {
		return 0, 0, &ShapeError{-1, "matrix has no columns"}
	}
	for i, row := range data {
		if len(row) != n {
			return 0, 0, &ShapeError{i, fmt.Sprintf("has %d columns, want %d", len(row), n)}
		}
	}
	return m, n, nil
}

// fixSmallValues remaps entries below fixMax onto [fixMin, fixMax].
// NaN entries compare false and pass through untouched.
func fixSmallValues(d *mat.Dense, fixMin, fixMax float64) {
	d.Apply(func(_, _ int, v float64) float64 {
		if v < fixMax {
			return fixMin + v*(fixMax-fixMin)/fixMax
		}
		return v
	}, d)
}

// rowMins returns the minimum finite entry of each row. A row with no
// finite entry has no defined best value, so normalizing against it is
// meaningless; that is a *ShapeError.
func rowMins(d *mat.Dense) ([]float64, error) {
	m, n := d.Dims()
	mins := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		mat.Row(row, i, d)
		min := math.NaN()
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if math.IsNaN(min) || v < min {
				min = v
			}
		}
		if math.IsNaN(min) {
			return nil, &ShapeError{i, "has no finite measurement"}
		}
		mins[i] = min
	}
	return mins, nil
}

// maxRatio returns the largest finite performance ratio in the matrix:
// the smallest θ at which every curve has reached its final height.
func maxRatio(d *mat.Dense, minvals []float64) float64 {
	m, n := d.Dims()
	row := make([]float64, n)
	max := math.Inf(-1)
	for i := 0; i < m; i++ {
		mat.Row(row, i, d)
		for _, v := range row {
			if r := v / minvals[i]; !math.IsNaN(r) && !math.IsInf(r, 0) && r > max {
				max = r
			}
		}
	}
	return max
}
