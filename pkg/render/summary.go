package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/yumyai/protprofile/pkg/dataset"
)

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteHead prints the first n rows as an aligned table.
func WriteHead(w io.Writer, f *dataset.Frame, n int) error {
	t := headTable(f, n)
	return writeTable(w, t)
}

func writeTable(w io.Writer, t tableView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(t.Header, "\t")+"\t")
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if c == "" {
				c = "NaN"
			}
			cells[i] = c
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

// WriteSummary prints the exploratory text summary of f: head, shape,
// columns and kinds, descriptive statistics, class distribution, missing
// counts, numeric columns and the strongest correlations.
func WriteSummary(w io.Writer, f *dataset.Frame, opts Options) error {
	opts = opts.withDefaults()

	section := func(title string) {
		fmt.Fprintf(w, "\n=== %s ===\n", title)
	}

	section("First rows")
	if err := WriteHead(w, f, opts.HeadRows); err != nil {
		return err
	}

	section("Shape")
	fmt.Fprintf(w, "(%d, %d)\n", f.Len(), f.Width())

	section("Columns")
	fmt.Fprintln(w, strings.Join(f.Columns(), ", "))

	section("Column types")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range f.Columns() {
		c, _ := f.Column(name)
		fmt.Fprintf(tw, "%s\t%s\n", name, c.Kind)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	section("Descriptive statistics")
	if err := writeTable(w, describeTable(f)); err != nil {
		return err
	}

	if _, ok := f.Column(opts.ClassColumn); ok && opts.ClassColumn != "" {
		section("Classes")
		fmt.Fprintln(w, strings.Join(f.Unique(opts.ClassColumn), ", "))

		section("Class distribution")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, c := range f.ValueCounts(opts.ClassColumn) {
			fmt.Fprintf(tw, "%s\t%d\n", c.Value, c.N)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	section("Missing values")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range f.NullCounts() {
		fmt.Fprintf(tw, "%s\t%d\n", c.Value, c.N)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	numeric := numericExcept(f, opts.ClassColumn)
	section("Numeric columns")
	fmt.Fprintln(w, strings.Join(numeric, ", "))

	section(fmt.Sprintf("Correlations above %g", opts.CorrThreshold))
	pairs := f.Corr(numeric).StrongPairs(opts.CorrThreshold)
	if len(pairs) == 0 {
		fmt.Fprintln(w, "none")
		return nil
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.A, p.B, formatCorr(p.R))
	}
	return tw.Flush()
}
