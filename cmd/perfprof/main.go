// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Perfprof plots a performance profile of Go benchmark results.
//
// Usage:
//
//	perfprof [flags] -o profile.png inputs...
//
// Each input file should be in the Go benchmark format
// (https://golang.org/design/14313-benchmark-format), such as the
// output of ``go test -bench .''. A performance profile compares
// several algorithms over a common set of test cases: a curve passing
// through (2, 0.8) means the corresponding algorithm was within a
// factor 2 of the best observed result on 80% of the cases.
//
// By default each benchmark name is a test case (a row of the
// measurement matrix) and each input file is an algorithm (a column),
// so ``perfprof -o p.png A=old.txt B=new.txt'' profiles two
// implementations against each other across every benchmark they
// share. The -row and -col projections reassign the dimensions using
// the same syntax as benchstat; for example,
//
//	perfprof -o p.png -col /alg -ignore .file bench.txt
//
// compares the values of the /alg sub-name key within a single file.
//
// Repeated measurements of one benchmark are collapsed with the -agg
// function (median by default). A benchmark missing from one input
// counts against that input's curve: the curve can never reach the
// proportion 1.0 line.
//
// The profile of exactly one measurement unit is plotted. If the
// inputs carry several units (e.g. sec/op and B/op), select one with
// -unit.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchproc"
	"gonum.org/v1/plot/vg"

	"github.com/sdrelton/perfprof/cmd/perfprof/internal/benchmatrix"
	"github.com/sdrelton/perfprof/profile"
	"github.com/sdrelton/perfprof/profplot"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: perfprof [flags] -o profile.png inputs...

perfprof plots a performance profile comparing benchmark results
across inputs. Each curve shows, for one algorithm, the fraction of
test cases (y) on which it was within a factor θ (x) of the best
observed result.

For details, see https://pkg.go.dev/github.com/sdrelton/perfprof/cmd/perfprof.
`)
	flag.PrintDefaults()
}

func main() {
	if err := perfprof(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "perfprof: %s\n", err)
		os.Exit(1)
	}
}

func perfprof(w, wErr io.Writer, args []string) error {
	flags := flag.FlagSet{Usage: usage}
	flagRow := flags.String("row", ".fullname", "split results into test cases by `projection`")
	flagCol := flags.String("col", ".file", "split results into algorithms by `projection`")
	flagIgnore := flags.String("ignore", "", "ignore variations in `keys`")
	flagFilter := flags.String("filter", "*", "use only benchmarks matching benchfilter `query`")
	flagUnit := flags.String("unit", "", "plot the profile of `unit` (default: the sole unit in the inputs)")
	flagAgg := flags.String("agg", "median", "collapse repeated measurements with `func`: median, mean, min, or geomean")
	flagOut := flags.String("o", "", "write the figure to `file` (.png, .svg, .pdf, .eps or .tex)")
	flagSize := flags.String("size", "7x5", "figure size in inches, `WxH`")
	flagTitle := flags.String("title", "", "figure title")
	flagLinespecs := flags.String("linespecs", "", "comma-separated MATLAB-style line `specs`, one per algorithm")
	flagNoLegend := flags.Bool("no-legend", false, "omit the legend")
	flagUseTeX := flags.Bool("usetex", false, "render labels with LaTeX")
	flagThmax := flags.Float64("thmax", 0, "right edge of the θ axis (0 = smallest θ covering all curves)")
	flagTol := flags.Float64("tol", 0, "boundary tolerance on θ coordinates")
	flagFix := flags.Bool("fix-small", false, "remap near-zero measurements to avoid skewed ratios")
	flagFixMin := flags.Float64("fix-min", 0, "lower bound of the -fix-small remapping")
	flagFixMax := flags.Float64("fix-max", 0, "measurements below this `value` are remapped by -fix-small")
	flagVerbose := flags.Bool("v", false, "print per-algorithm summaries")
	flags.Parse(args)

	if flags.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	if *flagOut == "" {
		return fmt.Errorf("-o is required")
	}
	width, height, err := parseSize(*flagSize)
	if err != nil {
		return err
	}

	filter, err := benchproc.NewFilter(*flagFilter)
	if err != nil {
		return fmt.Errorf("parsing -filter: %s", err)
	}

	var parser benchproc.ProjectionParser
	var parseErr error
	mustParse := func(name, val string) *benchproc.Projection {
		proj, err := parser.Parse(val, filter)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("parsing %s: %s", name, err)
		}
		return proj
	}
	rowBy := mustParse("-row", *flagRow)
	colBy := mustParse("-col", *flagCol)
	mustParse("-ignore", *flagIgnore)
	residue := parser.Residue()
	if parseErr != nil {
		return parseErr
	}

	b := benchmatrix.NewBuilder(rowBy, colBy, residue)
	files := benchfmt.Files{Paths: flags.Args(), AllowStdin: true, AllowLabels: true}
	for files.Scan() {
		switch rec := files.Result(); rec := rec.(type) {
		case *benchfmt.Result:
			ok, err := filter.Apply(rec)
			if err != nil {
				// Non-fatal result filter error. Warn but
				// keep going.
				fmt.Fprintln(wErr, err)
			}
			if ok {
				b.Add(rec)
			}
		case *benchfmt.SyntaxError:
			// Non-fatal result parse error. Warn but keep
			// going.
			fmt.Fprintln(wErr, rec)
		}
	}
	if err := files.Err(); err != nil {
		return err
	}

	matrices, err := b.ToMatrices(benchmatrix.Aggregate(*flagAgg))
	if err != nil {
		return err
	}
	m, err := pickMatrix(matrices, *flagUnit)
	if err != nil {
		return err
	}
	if fields := m.NonSingular(); len(fields) > 0 {
		var names []string
		for _, f := range fields {
			names = append(names, f.Name)
		}
		fmt.Fprintf(wErr, "warning: aggregated measurements vary in %s\n", strings.Join(names, ", "))
	}

	specs, err := lineSpecs(*flagLinespecs, len(m.Cols))
	if err != nil {
		return err
	}
	opts := profplot.Options{
		Profile: profile.Options{
			Thmax:          *flagThmax,
			Tol:            *flagTol,
			FixSmallValues: *flagFix,
			FixMin:         *flagFixMin,
			FixMax:         *flagFixMax,
		},
	}
	if !*flagNoLegend {
		opts.LegendNames = m.ColNames()
	}
	if *flagUseTeX {
		useTeX := true
		opts.UseTeX = &useTeX
	}

	p, prof, err := profplot.Plot(m.Data, specs, opts)
	if err != nil {
		return err
	}
	if *flagTitle != "" {
		p.Title.Text = *flagTitle
	}
	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, *flagOut); err != nil {
		return err
	}

	if *flagVerbose {
		printSummaries(w, m)
	}
	fmt.Fprintf(w, "wrote %s profile of %d cases × %d algorithms (θ up to %.4g) to %s\n",
		m.Unit, prof.Rows, prof.Cols, prof.Thmax, *flagOut)
	return nil
}

func parseSize(s string) (width, height float64, err error) {
	if n, err := fmt.Sscanf(s, "%gx%g", &width, &height); n != 2 || err != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("-size must be WxH in positive inches, e.g. 7x5")
	}
	return width, height, nil
}

// defaultSpecCycle is the palette used when -linespecs is not given:
// distinguishable colors first, then line styles.
var defaultSpecCycle = struct {
	colors, styles []string
}{
	colors: []string{"b", "r", "g", "m", "c", "k"},
	styles: []string{"-", "--", ":", "-."},
}

func lineSpecs(flagVal string, n int) ([]string, error) {
	if flagVal != "" {
		specs := strings.Split(flagVal, ",")
		if len(specs) != n {
			return nil, fmt.Errorf("-linespecs has %d specs for %d algorithms", len(specs), n)
		}
		return specs, nil
	}
	specs := make([]string, n)
	nc := len(defaultSpecCycle.colors)
	for i := range specs {
		specs[i] = defaultSpecCycle.colors[i%nc] + defaultSpecCycle.styles[(i/nc)%len(defaultSpecCycle.styles)]
	}
	return specs, nil
}

func pickMatrix(matrices []*benchmatrix.Matrix, unit string) (*benchmatrix.Matrix, error) {
	if len(matrices) == 0 {
		return nil, fmt.Errorf("no benchmark results found")
	}
	if unit == "" {
		if len(matrices) == 1 {
			return matrices[0], nil
		}
		var units []string
		for _, m := range matrices {
			units = append(units, m.Unit)
		}
		return nil, fmt.Errorf("inputs have several units (%s); select one with -unit", strings.Join(units, ", "))
	}
	for _, m := range matrices {
		if m.Unit == unit {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unit %q not found in inputs", unit)
}

// printSummaries lists, for each algorithm, how many cases it has
// measurements for and its best and worst values.
func printSummaries(w io.Writer, m *benchmatrix.Matrix) {
	cols := m.ColNames()
	for j, name := range cols {
		var n int
		best, worst := math.Inf(1), math.Inf(-1)
		for i := range m.Data {
			v := m.Data[i][j]
			if math.IsNaN(v) {
				continue
			}
			n++
			if v < best {
				best = v
			}
			if v > worst {
				worst = v
			}
		}
		if n == 0 {
			fmt.Fprintf(w, "%s: no measurements\n", name)
			continue
		}
		fmt.Fprintf(w, "%s: %d/%d cases, best %s %s, worst %s %s\n",
			name, n, len(m.Data), m.FormatValue(best), m.Unit, m.FormatValue(worst), m.Unit)
	}
}
