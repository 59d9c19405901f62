package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/yumyai/protprofile/pkg/dataset"
)

// Primitives drawn by the svg template. Coordinates are in pixels.
type rect struct {
	X, Y, W, H float64
	Fill       string
	Opacity    float64
	Title      string
}

type circle struct {
	CX, CY, R float64
	Fill      string
	Title     string
}

type line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	Dash           bool
}

type label struct {
	X, Y   float64
	Anchor string
	Value  string
	Rotate bool
	Size   int
}

type legendItem struct {
	Color string
	Label string
}

type chart struct {
	Title   string
	Width   float64
	Height  float64
	Rects   []rect
	Circles []circle
	Lines   []line
	Labels  []label
	Legend  []legendItem
}

const (
	chartWidth   = 420.0
	chartHeight  = 280.0
	marginLeft   = 60.0
	marginRight  = 15.0
	marginTop    = 30.0
	marginBottom = 50.0
	tickCount    = 5
)

type axis struct {
	min, max   float64
	r0, r1     float64
	horizontal bool
}

func newAxis(min, max, r0, r1 float64, horizontal bool) axis {
	if min == max {
		min, max = min-0.5, max+0.5
	}
	return axis{min: min, max: max, r0: r0, r1: r1, horizontal: horizontal}
}

func (a axis) pos(v float64) float64 {
	return a.r0 + (v-a.min)/(a.max-a.min)*(a.r1-a.r0)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func newChart(title string) *chart {
	return &chart{Title: title, Width: chartWidth, Height: chartHeight}
}

func (c *chart) plotArea() (x0, x1, y0, y1 float64) {
	return marginLeft, c.Width - marginRight, c.Height - marginBottom, marginTop
}

// frame draws the axes, grid and tick labels.
func (c *chart) frame(x, y axis, xLabel, yLabel string, xTicks bool) {
	x0, x1, y0, y1 := c.plotArea()
	c.Lines = append(c.Lines,
		line{X1: x0, Y1: y0, X2: x1, Y2: y0, Stroke: "#333333"},
		line{X1: x0, Y1: y0, X2: x0, Y2: y1, Stroke: "#333333"},
	)
	for i := 0; i < tickCount; i++ {
		v := y.min + float64(i)*(y.max-y.min)/float64(tickCount-1)
		py := y.pos(v)
		c.Lines = append(c.Lines, line{X1: x0, Y1: py, X2: x1, Y2: py, Stroke: "#DDDDDD", Dash: true})
		c.Labels = append(c.Labels, label{X: x0 - 4, Y: py + 3, Anchor: "end", Value: formatTick(v), Size: 9})
	}
	if xTicks {
		for i := 0; i < tickCount; i++ {
			v := x.min + float64(i)*(x.max-x.min)/float64(tickCount-1)
			px := x.pos(v)
			c.Lines = append(c.Lines, line{X1: px, Y1: y0, X2: px, Y2: y1, Stroke: "#DDDDDD", Dash: true})
			c.Labels = append(c.Labels, label{X: px, Y: y0 + 14, Anchor: "middle", Value: formatTick(v), Size: 9})
		}
	}
	c.Labels = append(c.Labels,
		label{X: (x0 + x1) / 2, Y: c.Height - 8, Anchor: "middle", Value: xLabel, Size: 11},
		label{X: 14, Y: (y0 + y1) / 2, Anchor: "middle", Value: yLabel, Rotate: true, Size: 11},
	)
}

// classGroups splits the present values of a numeric column by class.
type classGroup struct {
	Class  string
	Color  string
	Values []float64
}

func groupByClass(col *dataset.Column, classCol *dataset.Column, classes []string) []classGroup {
	groups := make([]classGroup, len(classes))
	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		groups[i] = classGroup{Class: c, Color: classColor(i)}
		idx[c] = i
	}
	for row := 0; row < col.Len(); row++ {
		if col.IsMissing(row) {
			continue
		}
		class := allClass
		if classCol != nil {
			class = classCol.Format(row)
		}
		if gi, ok := idx[class]; ok {
			groups[gi].Values = append(groups[gi].Values, col.Num[row])
		}
	}
	return groups
}

const allClass = "all"

func histogramChart(col *dataset.Column, classCol *dataset.Column, classes []string, bins int) *chart {
	groups := groupByClass(col, classCol, classes)

	type series struct {
		group          classGroup
		edges, density []float64
	}
	var all []series
	xmin, xmax, ymax := math.Inf(1), math.Inf(-1), 0.0
	for _, g := range groups {
		if len(g.Values) == 0 {
			continue
		}
		edges, density := dataset.Histogram(g.Values, bins)
		all = append(all, series{group: g, edges: edges, density: density})
		xmin = math.Min(xmin, edges[0])
		xmax = math.Max(xmax, edges[len(edges)-1])
		for _, d := range density {
			ymax = math.Max(ymax, d)
		}
	}
	if len(all) == 0 {
		return nil
	}

	c := newChart("Distribution of " + col.Name)
	x0, x1, y0, y1 := c.plotArea()
	xa := newAxis(xmin, xmax, x0, x1, true)
	ya := newAxis(0, ymax*1.05, y0, y1, false)
	c.frame(xa, ya, col.Name, "Density", true)

	for _, s := range all {
		for i, d := range s.density {
			left, right := xa.pos(s.edges[i]), xa.pos(s.edges[i+1])
			top := ya.pos(d)
			c.Rects = append(c.Rects, rect{
				X: left, Y: top, W: right - left, H: ya.pos(0) - top,
				Fill: s.group.Color, Opacity: 0.6,
				Title: fmt.Sprintf("%s [%s, %s): %s", s.group.Class, formatTick(s.edges[i]), formatTick(s.edges[i+1]), formatTick(d)),
			})
		}
		c.Legend = append(c.Legend, legendItem{Color: s.group.Color, Label: fmt.Sprintf("%s (n=%d)", s.group.Class, len(s.group.Values))})
	}
	return c
}

func boxplotChart(col *dataset.Column, classCol *dataset.Column, classes []string) *chart {
	groups := groupByClass(col, classCol, classes)

	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, g := range groups {
		for _, v := range g.Values {
			ymin, ymax = math.Min(ymin, v), math.Max(ymax, v)
		}
	}
	if math.IsInf(ymin, 1) {
		return nil
	}

	c := newChart("Boxplot - " + col.Name)
	x0, x1, y0, y1 := c.plotArea()
	pad := (ymax - ymin) * 0.05
	ya := newAxis(ymin-pad, ymax+pad, y0, y1, false)
	c.frame(axis{}, ya, "class", col.Name, false)

	slot := (x1 - x0) / float64(len(groups))
	for i, g := range groups {
		cx := x0 + slot*(float64(i)+0.5)
		c.Labels = append(c.Labels, label{X: cx, Y: y0 + 14, Anchor: "middle", Value: g.Class, Size: 9})

		b, ok := dataset.BoxStats(g.Values)
		if !ok {
			continue
		}
		half := math.Min(slot*0.3, 30)
		top, bottom := ya.pos(b.Q3), ya.pos(b.Q1)
		c.Rects = append(c.Rects, rect{
			X: cx - half, Y: top, W: 2 * half, H: bottom - top,
			Fill: g.Color, Opacity: 0.8,
			Title: fmt.Sprintf("%s: n=%d, Q1=%s, median=%s, Q3=%s", g.Class, b.N, formatTick(b.Q1), formatTick(b.Median), formatTick(b.Q3)),
		})
		c.Lines = append(c.Lines,
			line{X1: cx - half, Y1: ya.pos(b.Median), X2: cx + half, Y2: ya.pos(b.Median), Stroke: "#222222"},
			line{X1: cx, Y1: top, X2: cx, Y2: ya.pos(b.HighWhisker), Stroke: "#222222"},
			line{X1: cx, Y1: bottom, X2: cx, Y2: ya.pos(b.LowWhisker), Stroke: "#222222"},
			line{X1: cx - half/2, Y1: ya.pos(b.HighWhisker), X2: cx + half/2, Y2: ya.pos(b.HighWhisker), Stroke: "#222222"},
			line{X1: cx - half/2, Y1: ya.pos(b.LowWhisker), X2: cx + half/2, Y2: ya.pos(b.LowWhisker), Stroke: "#222222"},
		)
		for _, o := range b.Outliers {
			c.Circles = append(c.Circles, circle{CX: cx, CY: ya.pos(o), R: 3, Fill: "#FFFFFF", Title: formatTick(o)})
		}
	}
	return c
}

const heatmapCell = 46.0

// heatmapChart draws the strict lower triangle of a correlation matrix.
func heatmapChart(m dataset.Matrix) *chart {
	n := len(m.Names)
	if n < 2 {
		return nil
	}
	left, top := 150.0, 30.0
	c := &chart{
		Title:  "Correlation matrix",
		Width:  left + heatmapCell*float64(n) + 20,
		Height: top + heatmapCell*float64(n) + 130,
	}

	for i := 0; i < n; i++ {
		y := top + heatmapCell*float64(i)
		c.Labels = append(c.Labels, label{X: left - 6, Y: y + heatmapCell/2 + 3, Anchor: "end", Value: m.Names[i], Size: 10})
		x := left + heatmapCell*float64(i)
		c.Labels = append(c.Labels, label{X: x + heatmapCell/2, Y: top + heatmapCell*float64(n) + 8, Anchor: "start", Value: m.Names[i], Rotate: true, Size: 10})

		for j := 0; j < i; j++ {
			r := m.Values[i][j]
			cx := left + heatmapCell*float64(j)
			c.Rects = append(c.Rects, rect{
				X: cx, Y: y, W: heatmapCell, H: heatmapCell,
				Fill: divergingColor(r), Opacity: 1,
				Title: fmt.Sprintf("%s vs %s: %s", m.Names[i], m.Names[j], formatCorr(r)),
			})
			c.Labels = append(c.Labels, label{X: cx + heatmapCell/2, Y: y + heatmapCell/2 + 3, Anchor: "middle", Value: formatCorr(r), Size: 9})
		}
	}

	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		c.Legend = append(c.Legend, legendItem{Color: divergingColor(v), Label: formatCorr(v)})
	}
	return c
}

func formatCorr(r float64) string {
	if math.IsNaN(r) {
		return "NaN"
	}
	return strconv.FormatFloat(r, 'f', 3, 64)
}

func scatterChart(xCol, yCol *dataset.Column, classCol *dataset.Column, classes []string) *chart {
	idx := make(map[string]int, len(classes))
	for i, cl := range classes {
		idx[cl] = i
	}

	type point struct {
		x, y  float64
		class int
	}
	var pts []point
	counts := make([]int, len(classes))
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for row := 0; row < xCol.Len(); row++ {
		if xCol.IsMissing(row) || yCol.IsMissing(row) {
			continue
		}
		class := allClass
		if classCol != nil {
			class = classCol.Format(row)
		}
		ci, ok := idx[class]
		if !ok {
			continue
		}
		x, y := xCol.Num[row], yCol.Num[row]
		pts = append(pts, point{x, y, ci})
		counts[ci]++
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
	}
	if len(pts) == 0 {
		return nil
	}

	c := newChart(fmt.Sprintf("Scatter: %s vs %s", xCol.Name, yCol.Name))
	c.Width = 560
	x0, x1, y0, y1 := c.plotArea()
	xpad, ypad := (xmax-xmin)*0.05, (ymax-ymin)*0.05
	xa := newAxis(xmin-xpad, xmax+xpad, x0, x1, true)
	ya := newAxis(ymin-ypad, ymax+ypad, y0, y1, false)
	c.frame(xa, ya, xCol.Name, yCol.Name, true)

	for _, p := range pts {
		c.Circles = append(c.Circles, circle{
			CX: xa.pos(p.x), CY: ya.pos(p.y), R: 5,
			Fill:  classColor(p.class),
			Title: fmt.Sprintf("%s: (%s, %s)", classes[p.class], formatTick(p.x), formatTick(p.y)),
		})
	}
	for i, cl := range classes {
		if counts[i] > 0 {
			c.Legend = append(c.Legend, legendItem{Color: classColor(i), Label: fmt.Sprintf("%s (n=%d)", cl, counts[i])})
		}
	}
	return c
}
