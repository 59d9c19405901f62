package dataset

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrame(t *testing.T) *Frame {
	t.Helper()
	f := NewFrame()
	require.NoError(t, f.AddText("id", []string{"a", "b", "c", "d"}))
	require.NoError(t, f.AddNumeric("x", []float64{1, 2, 3, 4}))
	require.NoError(t, f.AddNumeric("y", []float64{2, 4, 6, math.NaN()}))
	require.NoError(t, f.AddNumeric("z", []float64{4, 3, 2, 1}))
	require.NoError(t, f.AddText("class", []string{"Human", "Yeast", "Human", ""}))
	return f
}

func TestFrameShape(t *testing.T) {
	f := sampleFrame(t)
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, 5, f.Width())
	assert.Equal(t, []string{"id", "x", "y", "z", "class"}, f.Columns())
	assert.Equal(t, []string{"x", "y", "z"}, f.NumericColumns())

	err := f.AddNumeric("short", []float64{1})
	assert.Error(t, err)
	err = f.AddNumeric("x", []float64{1, 2, 3, 4})
	assert.Error(t, err)
}

func TestSelectWhereHead(t *testing.T) {
	f := sampleFrame(t)

	sel, err := f.Select("class", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"class", "x"}, sel.Columns())

	_, err = f.Select("nope")
	assert.Error(t, err)

	class, _ := f.Column("class")
	humans := f.Where(func(i int) bool { return class.Str[i] == "Human" })
	assert.Equal(t, 2, humans.Len())
	x, _ := humans.Column("x")
	assert.Equal(t, []float64{1, 3}, x.Num)

	assert.Equal(t, 2, f.Head(2).Len())
	assert.Equal(t, 4, f.Head(10).Len())
}

func TestDescribe(t *testing.T) {
	f := sampleFrame(t)
	desc := f.Describe()
	require.Len(t, desc, 3)

	x := desc[0]
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, 4, x.Count)
	assert.InDelta(t, 2.5, x.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), x.Std, 1e-12)
	assert.Equal(t, 1.0, x.Min)
	assert.Equal(t, 4.0, x.Max)
	assert.InDelta(t, 1.75, x.Q25, 1e-12)
	assert.InDelta(t, 2.5, x.Q50, 1e-12)
	assert.InDelta(t, 3.25, x.Q75, 1e-12)

	y := desc[1]
	assert.Equal(t, 3, y.Count)
	assert.InDelta(t, 4.0, y.Mean, 1e-12)
	assert.Equal(t, 3.0, y.Q25)
	assert.Equal(t, 4.0, y.Q50)
	assert.Equal(t, 5.0, y.Q75)

	empty := Summarize("e", nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
}

func TestCountsAndUnique(t *testing.T) {
	f := sampleFrame(t)

	assert.Equal(t, []string{"Human", "Yeast"}, f.Unique("class"))
	assert.Equal(t, []Count{{"Human", 2}, {"Yeast", 1}}, f.ValueCounts("class"))

	nulls := f.NullCounts()
	require.Len(t, nulls, 5)
	assert.Equal(t, Count{"y", 1}, nulls[2])
	assert.Equal(t, Count{"class", 1}, nulls[4])
}

func TestCorr(t *testing.T) {
	f := sampleFrame(t)
	m := f.Corr([]string{"x", "y", "z"})

	assert.InDelta(t, 1.0, m.Values[0][0], 1e-12)
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-12)
	assert.InDelta(t, -1.0, m.Values[0][2], 1e-12)
	assert.Equal(t, m.Values[0][2], m.Values[2][0])

	pairs := m.StrongPairs(0.5)
	assert.Len(t, pairs, 3)
	assert.Equal(t, "x", pairs[0].A)
	assert.Equal(t, "y", pairs[0].B)

	c := NewFrame()
	require.NoError(t, c.AddNumeric("const", []float64{1, 1, 1}))
	require.NoError(t, c.AddNumeric("v", []float64{1, 2, 3}))
	cm := c.Corr([]string{"const", "v"})
	assert.True(t, math.IsNaN(cm.Values[0][1]))
	assert.Empty(t, cm.StrongPairs(0.5))
}

func TestHistogram(t *testing.T) {
	edges, density := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 10)
	require.Len(t, edges, 11)
	require.Len(t, density, 10)
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 10.0, edges[10])

	area := 0.0
	for _, d := range density {
		area += d * 1.0
	}
	assert.InDelta(t, 1.0, area, 1e-12)
	// 9 and 10 share the closed last bin.
	assert.InDelta(t, 2.0/11.0, density[9], 1e-12)

	edges, density = Histogram([]float64{5, 5}, 10)
	assert.Equal(t, 4.5, edges[0])
	assert.Equal(t, 5.5, edges[10])
	total := 0.0
	for _, d := range density {
		total += d * 0.1
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	edges, _ = Histogram(nil, 10)
	assert.Nil(t, edges)
}

func TestBoxStats(t *testing.T) {
	b, ok := BoxStats([]float64{1, 2, 3, 4, 5, 6, 7, 100})
	require.True(t, ok)
	assert.Equal(t, 8, b.N)
	assert.Equal(t, []float64{100}, b.Outliers)
	assert.Equal(t, 1.0, b.LowWhisker)
	assert.Equal(t, 7.0, b.HighWhisker)

	_, ok = BoxStats(nil)
	assert.False(t, ok)
}

func TestSummarizeQuartiles(t *testing.T) {
	tests := []struct {
		name          string
		x             []float64
		q25, q50, q75 float64
	}{
		{"even", []float64{4, 1, 3, 2}, 1.75, 2.5, 3.25},
		{"odd", []float64{5, 1, 4, 2, 3}, 2, 3, 4},
		{"single", []float64{7}, 7, 7, 7},
		{"pair", []float64{0, 10}, 2.5, 5, 7.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.name, tt.x)
			assert.InDelta(t, tt.q25, s.Q25, 1e-12)
			assert.InDelta(t, tt.q50, s.Q50, 1e-12)
			assert.InDelta(t, tt.q75, s.Q75, 1e-12)
		})
	}
}

func TestBoxStatsInterpolatedFences(t *testing.T) {
	// Q1 = 3.25 and Q3 = 7.75 put the upper fence at 14.5, so 15 is an
	// outlier and the whisker stops at 9.
	b, ok := BoxStats([]float64{15, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.True(t, ok)
	assert.InDelta(t, 3.25, b.Q1, 1e-12)
	assert.InDelta(t, 5.5, b.Median, 1e-12)
	assert.InDelta(t, 7.75, b.Q3, 1e-12)
	assert.Equal(t, []float64{15}, b.Outliers)
	assert.Equal(t, 9.0, b.HighWhisker)
	assert.Equal(t, 1.0, b.LowWhisker)

	b, _ = BoxStats([]float64{1, 2, 3, 4})
	assert.InDelta(t, 1.75, b.Q1, 1e-12)
	assert.InDelta(t, 2.5, b.Median, 1e-12)
	assert.InDelta(t, 3.25, b.Q3, 1e-12)
}

func TestCSVRoundTrip(t *testing.T) {
	f := sampleFrame(t)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "id,x,y,z,class", lines[0])
	assert.Equal(t, "d,4,,1,", lines[4])

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.Columns(), back.Columns())
	assert.Equal(t, f.NumericColumns(), back.NumericColumns())

	y, _ := back.Column("y")
	assert.True(t, math.IsNaN(y.Num[3]))
	class, _ := back.Column("class")
	assert.Equal(t, Text, class.Kind)
}

func TestAddInferred(t *testing.T) {
	f := NewFrame()
	require.NoError(t, f.AddInferred("Length", []string{"110", "", "437"}))
	require.NoError(t, f.AddInferred("Mass", []string{"11,981", "", "46,816"}))

	l, _ := f.Column("Length")
	assert.Equal(t, Numeric, l.Kind)
	assert.True(t, math.IsNaN(l.Num[1]))

	m, _ := f.Column("Mass")
	assert.Equal(t, Text, m.Kind)
}
