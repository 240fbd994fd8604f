// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// staircase converts one algorithm's finite performance ratios into
// plotted coordinates. ratios is consumed (sorted in place); m is the
// total number of test cases, including those the algorithm is missing
// from.
func staircase(ratios []float64, m int, thmax, tol float64) (x, y []float64) {
	sort.Float64s(ratios)
	theta := unique(ratios)
	r := len(theta)

	// Right-continuous empirical CDF evaluated at each distinct
	// ratio. The denominator is m, not len(ratios): missing cases
	// count against the algorithm.
	scale := float64(len(ratios)) / float64(m)
	prob := make([]float64, r)
	for k, t := range theta {
		prob[k] = stat.CDF(t, stat.Empirical, ratios, nil) * scale
	}

	// 2r-1 points: hold each level flat over [θ[k-1], θ[k]) and
	// jump at θ[k].
	x = make([]float64, 0, 2*r+1)
	y = make([]float64, 0, 2*r+1)
	x = append(x, theta[0])
	y = append(y, prob[0])
	for k := 1; k < r; k++ {
		x = append(x, theta[k], theta[k])
		y = append(y, prob[k-1], prob[k])
	}

	// Points beyond thmax cannot appear on the plot. Drop them and
	// let the boundary extension close the curve at the edge, so
	// the returned coordinates always lie in [1, thmax].
	cut := len(x)
	for cut > 0 && x[cut-1] > thmax {
		cut--
	}
	x, y = x[:cut], y[:cut]
	if len(x) == 0 {
		// Even the smallest ratio exceeds thmax: the curve is
		// flat at zero across the whole axis.
		return []float64{1, thmax}, []float64{0, 0}
	}

	// Extend to the boundaries so every curve visibly spans
	// [1, thmax].
	if x[0] >= 1+tol {
		x = append([]float64{1, x[0]}, x...)
		y = append([]float64{0, 0}, y...)
	}
	if last := len(x) - 1; x[last] < thmax-tol {
		x = append(x, thmax)
		y = append(y, y[last])
	}
	return x, y
}

// unique returns the distinct values of a sorted slice.
func unique(sorted []float64) []float64 {
	out := make([]float64, 0, len(sorted))
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
