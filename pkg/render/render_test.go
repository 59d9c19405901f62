package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/protprofile/pkg/dataset"
)

func sampleFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	f := dataset.NewFrame()
	require.NoError(t, f.AddText("id", []string{"A", "B", "C", "D", "E", "F"}))
	require.NoError(t, f.AddNumeric("length", []float64{100, 200, 150, 300, 250, math.NaN()}))
	require.NoError(t, f.AddNumeric("gravy", []float64{-0.5, 0.1, -0.2, 0.4, 0.3, 0.0}))
	require.NoError(t, f.AddNumeric("isoelectric_point", []float64{5.1, 6.2, 7.3, 8.4, 9.5, 4.9}))
	require.NoError(t, f.AddText("class", []string{"Human", "Human", "Yeast", "Yeast", "Bacteria", "Human"}))
	return f
}

func TestDivergingColor(t *testing.T) {
	assert.Equal(t, "#DDDDDD", divergingColor(0))
	assert.Equal(t, "#B40426", divergingColor(1))
	assert.Equal(t, "#3B4CC0", divergingColor(-1))
	assert.Equal(t, "#B40426", divergingColor(3))
	assert.Equal(t, "#FFFFFF", divergingColor(math.NaN()))
}

func TestClassColorCycles(t *testing.T) {
	assert.Equal(t, "#1f77b4", classColor(0))
	assert.Equal(t, "#1f77b4", classColor(5))
	assert.Equal(t, "#9467bd", classColor(4))
}

func TestHistogramChartLegend(t *testing.T) {
	f := sampleFrame(t)
	col, _ := f.Column("gravy")
	classCol, _ := f.Column("class")

	c := histogramChart(col, classCol, f.Unique("class"), 10)
	require.NotNil(t, c)
	require.Len(t, c.Legend, 3)
	assert.Equal(t, "Human (n=3)", c.Legend[0].Label)
	assert.Equal(t, "Yeast (n=2)", c.Legend[1].Label)
	assert.Equal(t, "Bacteria (n=1)", c.Legend[2].Label)
	assert.Len(t, c.Rects, 30)
}

func TestHeatmapLowerTriangle(t *testing.T) {
	f := sampleFrame(t)
	c := heatmapChart(f.Corr([]string{"length", "gravy", "isoelectric_point"}))
	require.NotNil(t, c)
	assert.Len(t, c.Rects, 3)

	assert.Nil(t, heatmapChart(f.Corr([]string{"gravy"})))
}

func TestScatterSkipsMissing(t *testing.T) {
	f := sampleFrame(t)
	x, _ := f.Column("length")
	y, _ := f.Column("gravy")
	classCol, _ := f.Column("class")

	c := scatterChart(x, y, classCol, f.Unique("class"))
	require.NotNil(t, c)
	assert.Len(t, c.Circles, 5)
	assert.Equal(t, "Human (n=2)", c.Legend[0].Label)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, sampleFrame(t), DefaultOptions())
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Distribution of gravy")
	assert.Contains(t, out, "Boxplot - isoelectric_point")
	assert.Contains(t, out, "Correlation matrix")
	assert.Contains(t, out, "Scatter: length vs gravy")
}

func TestWriteReportSingleClassHasNoHistograms(t *testing.T) {
	f := dataset.NewFrame()
	require.NoError(t, f.AddNumeric("a", []float64{1, 2, 3}))
	require.NoError(t, f.AddNumeric("b", []float64{3, 1, 2}))

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ScatterX, opts.ScatterY = "b", "a"
	require.NoError(t, WriteReport(&buf, f, opts))

	out := buf.String()
	assert.NotContains(t, out, "Distribution of")
	assert.Contains(t, out, "Boxplot - a")
	assert.Contains(t, out, "Scatter: b vs a")
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteReport(&buf, dataset.NewFrame(), DefaultOptions()), ErrNoRows)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleFrame(t), DefaultOptions()))

	out := buf.String()
	assert.Contains(t, out, "(6, 5)")
	assert.Contains(t, out, "=== Class distribution ===")
	assert.Contains(t, out, "Human     3")
	assert.Contains(t, out, "id, length, gravy, isoelectric_point, class")
	assert.Contains(t, out, "=== Correlations above 0.5 ===")

	order := []string{"First rows", "Shape", "Columns", "Column types", "Descriptive statistics", "Classes", "Missing values", "Numeric columns"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, "=== "+s+" ===")
		require.Greater(t, i, last, s)
		last = i
	}
}
