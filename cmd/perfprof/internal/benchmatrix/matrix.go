// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmatrix assembles Go benchmark results into measurement
// matrices suitable for performance profiling: rows are test cases,
// columns are the algorithms (or files, or configurations) being
// compared, and each cell aggregates the repeated measurements of one
// benchmark under one algorithm.
package benchmatrix

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchproc"
	"golang.org/x/perf/benchunit"
)

// An Aggregate selects how a cell's repeated measurements collapse
// into a single matrix entry.
type Aggregate string

const (
	AggMedian  Aggregate = "median"
	AggMean    Aggregate = "mean"
	AggMin     Aggregate = "min"
	AggGeomean Aggregate = "geomean"
)

func (a Aggregate) valid() bool {
	switch a {
	case AggMedian, AggMean, AggMin, AggGeomean:
		return true
	}
	return false
}

func (a Aggregate) apply(values []float64) float64 {
	s := stats.Sample{Xs: values}
	switch a {
	case AggMean:
		return s.Mean()
	case AggGeomean:
		return s.GeoMean()
	case AggMin:
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	default:
		s.Sort()
		return s.Quantile(0.5)
	}
}

// A Builder collects benchmark results into per-unit measurement
// matrices. Each result is mapped to a row by rowBy and a column by
// colBy; results within one cell that vary by residue are reported as
// potential hidden dimensions.
type Builder struct {
	rowBy, colBy *benchproc.Projection
	residue      *benchproc.Projection

	units map[string]*unitData
	order []string // unit first-observation order
}

type unitData struct {
	rows, cols []benchproc.Key // first-observation order
	rowSet     map[benchproc.Key]int
	colSet     map[benchproc.Key]int
	cells      map[cellKey]*cell
	varying    []benchproc.Key // residues of cells with mixed residues
}

type cellKey struct {
	row, col benchproc.Key
}

type cell struct {
	values   []float64
	residues map[benchproc.Key]struct{}
}

// NewBuilder creates a Builder that groups results into rows by rowBy
// and columns by colBy.
func NewBuilder(rowBy, colBy, residue *benchproc.Projection) *Builder {
	return &Builder{
		rowBy: rowBy, colBy: colBy, residue: residue,
		units: make(map[string]*unitData),
	}
}

// Add adds every value of result to the matrices in the Builder. Units
// are tidied, so "ns/op" measurements land in the "sec/op" matrix.
func (b *Builder) Add(result *benchfmt.Result) {
	rowKey := b.rowBy.Project(result)
	colKey := b.colBy.Project(result)
	resKey := b.residue.Project(result)
	ck := cellKey{rowKey, colKey}

	for _, v := range result.Values {
		val, unit := benchunit.Tidy(v.Value, v.Unit)
		u := b.units[unit]
		if u == nil {
			u = &unitData{
				rowSet: make(map[benchproc.Key]int),
				colSet: make(map[benchproc.Key]int),
				cells:  make(map[cellKey]*cell),
			}
			b.units[unit] = u
			b.order = append(b.order, unit)
		}
		if _, ok := u.rowSet[rowKey]; !ok {
			u.rowSet[rowKey] = len(u.rows)
			u.rows = append(u.rows, rowKey)
		}
		if _, ok := u.colSet[colKey]; !ok {
			u.colSet[colKey] = len(u.cols)
			u.cols = append(u.cols, colKey)
		}
		c := u.cells[ck]
		if c == nil {
			c = &cell{residues: make(map[benchproc.Key]struct{})}
			u.cells[ck] = c
		}
		c.values = append(c.values, val)
		c.residues[resKey] = struct{}{}
	}
}

// A Matrix is an m×n measurement matrix for a single unit. Rows and
// Cols identify the test cases and algorithms in first-observation
// order; Data[i][j] is NaN when algorithm j has no measurement for
// case i.
type Matrix struct {
	Unit string
	Rows []benchproc.Key
	Cols []benchproc.Key
	Data [][]float64

	varying []benchproc.Key
}

// ToMatrices finalizes the Builder into one Matrix per observed unit,
// in first-observation order, aggregating each cell with agg.
func (b *Builder) ToMatrices(agg Aggregate) ([]*Matrix, error) {
	if !agg.valid() {
		return nil, fmt.Errorf("unknown aggregate %q", agg)
	}
	var out []*Matrix
	for _, unit := range b.order {
		u := b.units[unit]
		m := &Matrix{Unit: unit, Rows: u.rows, Cols: u.cols}
		m.Data = make([][]float64, len(u.rows))
		for i, rk := range u.rows {
			row := make([]float64, len(u.cols))
			for j, colk := range u.cols {
				c := u.cells[cellKey{rk, colk}]
				if c == nil {
					row[j] = math.NaN()
					continue
				}
				row[j] = agg.apply(c.values)
				if len(c.residues) > 1 {
					for res := range c.residues {
						m.varying = append(m.varying, res)
					}
				}
			}
			m.Data[i] = row
		}
		out = append(out, m)
	}
	return out, nil
}

// NonSingular returns the projection fields that vary within at least
// one cell of the matrix. A non-empty result usually means the row and
// column projections hide a dimension the measurements differ in, and
// the aggregated cells mix unlike things.
func (m *Matrix) NonSingular() []*benchproc.Field {
	return benchproc.NonSingularFields(m.varying)
}

// RowNames and ColNames return the projected values of each row and
// column key, e.g. for axis or legend labels.
func (m *Matrix) RowNames() []string { return keyNames(m.Rows) }

func (m *Matrix) ColNames() []string { return keyNames(m.Cols) }

func keyNames(keys []benchproc.Key) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.StringValues()
	}
	return names
}

// FormatValue renders v at a human scale appropriate for the matrix's
// unit, e.g. "1.5µ" for a small sec/op value.
func (m *Matrix) FormatValue(v float64) string {
	return benchunit.Scale(v, benchunit.ClassOf(m.Unit))
}
