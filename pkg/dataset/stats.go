package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is the describe() line of one numeric column.
type Summary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe summarises every numeric column, ignoring missing values.
func (f *Frame) Describe() []Summary {
	var out []Summary
	for _, name := range f.NumericColumns() {
		c, _ := f.Column(name)
		out = append(out, Summarize(name, c.Present()))
	}
	return out
}

// Summarize computes a Summary over values; x is not modified.
func Summarize(name string, x []float64) Summary {
	s := Summary{Name: name, Count: len(x)}
	if len(x) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	} else {
		s.Std = math.NaN()
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks of sorted, the
// same rule as numpy's default: h = (n-1)p.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	h := float64(len(sorted)-1) * p
	lo, hi := math.Floor(h), math.Ceil(h)
	a, b := sorted[int(lo)], sorted[int(hi)]
	return a + (h-lo)*(b-a)
}

// NullCounts returns the number of missing cells per column, in frame order.
func (f *Frame) NullCounts() []Count {
	out := make([]Count, 0, len(f.cols))
	for _, c := range f.cols {
		n := 0
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				n++
			}
		}
		out = append(out, Count{Value: c.Name, N: n})
	}
	return out
}

type Count struct {
	Value string
	N     int
}

// Unique lists distinct non-missing values of a column in first-seen order.
func (f *Frame) Unique(name string) []string {
	c, ok := f.Column(name)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		v := c.Format(i)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ValueCounts counts non-missing values, most frequent first. Ties keep
// first-seen order.
func (f *Frame) ValueCounts(name string) []Count {
	c, ok := f.Column(name)
	if !ok {
		return nil
	}
	counts := make(map[string]int)
	for i := 0; i < c.Len(); i++ {
		if !c.IsMissing(i) {
			counts[c.Format(i)]++
		}
	}
	uniq := f.Unique(name)
	out := make([]Count, len(uniq))
	for i, v := range uniq {
		out[i] = Count{Value: v, N: counts[v]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].N > out[j].N })
	return out
}

// Matrix is a square correlation matrix with labelled axes.
type Matrix struct {
	Names  []string
	Values [][]float64
}

// Corr computes Pearson correlations over pairwise-complete observations.
func (f *Frame) Corr(names []string) Matrix {
	m := Matrix{Names: names, Values: make([][]float64, len(names))}
	cols := make([]*Column, len(names))
	for i, n := range names {
		cols[i], _ = f.Column(n)
		m.Values[i] = make([]float64, len(names))
	}
	for i := range names {
		for j := i; j < len(names); j++ {
			r := pairwiseCorrelation(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairwiseCorrelation(a, b *Column) float64 {
	if a == nil || b == nil || a.Kind != Numeric || b.Kind != Numeric {
		return math.NaN()
	}
	var x, y []float64
	for i := range a.Num {
		if math.IsNaN(a.Num[i]) || math.IsNaN(b.Num[i]) {
			continue
		}
		x = append(x, a.Num[i])
		y = append(y, b.Num[i])
	}
	if len(x) < 2 {
		return math.NaN()
	}
	if floats.Min(x) == floats.Max(x) || floats.Min(y) == floats.Max(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// Pair is one off-diagonal entry of a correlation matrix.
type Pair struct {
	A, B string
	R    float64
}

// StrongPairs lists upper-triangle pairs with |r| above threshold.
func (m Matrix) StrongPairs(threshold float64) []Pair {
	var out []Pair
	for i := range m.Names {
		for j := i + 1; j < len(m.Names); j++ {
			r := m.Values[i][j]
			if !math.IsNaN(r) && math.Abs(r) > threshold {
				out = append(out, Pair{A: m.Names[i], B: m.Names[j], R: r})
			}
		}
	}
	return out
}

// Histogram bins x into n equal-width bins over [min, max] and returns the
// bin edges and density-normalised heights. A constant sample is spread over
// [v-0.5, v+0.5].
func Histogram(x []float64, n int) (edges, density []float64) {
	if len(x) == 0 || n < 1 {
		return nil, nil
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges = floats.Span(make([]float64, n+1), lo, hi)

	// The last bin is closed on the right.
	dividers := append([]float64(nil), edges...)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	width := (hi - lo) / float64(n)
	density = make([]float64, n)
	for i, c := range counts {
		density[i] = c / (float64(len(sorted)) * width)
	}
	return edges, density
}

// Box is the five-number summary drawn by a boxplot. Whiskers reach the most
// extreme points within 1.5 IQR of the quartiles; the rest are outliers.
type Box struct {
	Q1, Median, Q3          float64
	LowWhisker, HighWhisker float64
	Outliers                []float64
	N                       int
}

func BoxStats(x []float64) (Box, bool) {
	if len(x) == 0 {
		return Box{}, false
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	b := Box{
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		N:      len(sorted),
	}
	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr

	b.LowWhisker, b.HighWhisker = b.Q1, b.Q3
	for _, v := range sorted {
		if v >= lowFence {
			b.LowWhisker = math.Min(v, b.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			b.HighWhisker = math.Max(sorted[i], b.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b, true
}
