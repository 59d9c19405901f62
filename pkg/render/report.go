package render

import (
	"errors"
	"html/template"
	"io"
	"strconv"

	"github.com/yumyai/protprofile/pkg/dataset"
)

// Options controls what WriteReport and WriteSummary show.
type Options struct {
	Title         string
	ClassColumn   string
	Bins          int
	CorrThreshold float64
	// ScatterX and ScatterY override the first two numeric columns.
	ScatterX string
	ScatterY string
	HeadRows int
}

// DefaultOptions matches the exploratory report of the fetch pipeline.
func DefaultOptions() Options {
	return Options{
		Title:         "Protein profile",
		ClassColumn:   "class",
		Bins:          10,
		CorrThreshold: 0.5,
		HeadRows:      5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.Bins <= 0 {
		o.Bins = d.Bins
	}
	if o.HeadRows <= 0 {
		o.HeadRows = d.HeadRows
	}
	return o
}

var ErrNoRows = errors.New("render: table has no rows")

type reportData struct {
	Title      string
	Rows       int
	Cols       int
	Head       tableView
	Describe   tableView
	Histograms []*chart
	Boxplots   []*chart
	Heatmap    *chart
	Scatter    *chart
}

type tableView struct {
	Header []string
	Rows   [][]string
}

var reportTemplate *template.Template

func init() {
	const pageTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>{{.Title}}</title>
	<style>
		body { font-family: sans-serif; margin: 24px; color: #222; }
		table { border-collapse: collapse; font-size: 12px; margin-bottom: 16px; }
		th, td { border: 1px solid #ccc; padding: 3px 6px; text-align: right; }
		th { background: #f2f2f2; }
		.charts { display: flex; flex-wrap: wrap; gap: 12px; }
		.chart { border: 1px solid #e5e5e5; padding: 6px; }
		.legend span.swatch { display: inline-block; width: 10px; height: 10px; margin: 0 4px 0 10px; }
		.legend { font-size: 11px; }
	</style>
</head>
<body>
	<h1>{{.Title}}</h1>
	<p>{{.Rows}} rows, {{.Cols}} columns</p>

	<h2>First rows</h2>
	{{template "table" .Head}}

	<h2>Descriptive statistics</h2>
	{{template "table" .Describe}}

	{{if .Histograms}}
	<h2>Distributions by class</h2>
	<div class="charts">{{range .Histograms}}{{template "chart" .}}{{end}}</div>
	{{end}}

	{{if .Boxplots}}
	<h2>Boxplots</h2>
	<div class="charts">{{range .Boxplots}}{{template "chart" .}}{{end}}</div>
	{{end}}

	{{with .Heatmap}}
	<h2>Correlations</h2>
	<div class="charts">{{template "chart" .}}</div>
	{{end}}

	{{with .Scatter}}
	<h2>Scatter</h2>
	<div class="charts">{{template "chart" .}}</div>
	{{end}}
</body>
</html>`

	const tableTmpl = `{{define "table"}}<table>
	<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
	{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
	{{end}}</table>{{end}}`

	const chartTmpl = `{{define "chart"}}<div class="chart">
	<svg xmlns="http://www.w3.org/2000/svg" width="{{px .Width}}" height="{{px .Height}}" viewBox="0 0 {{px .Width}} {{px .Height}}">
		<text x="{{px (half .Width)}}" y="16" text-anchor="middle" font-size="13" font-weight="bold">{{.Title}}</text>
		{{range .Lines}}<line x1="{{px .X1}}" y1="{{px .Y1}}" x2="{{px .X2}}" y2="{{px .Y2}}" stroke="{{.Stroke}}"{{if .Dash}} stroke-dasharray="3,3"{{end}}/>
		{{end}}
		{{range .Rects}}<rect x="{{px .X}}" y="{{px .Y}}" width="{{px .W}}" height="{{px .H}}" fill="{{.Fill}}" fill-opacity="{{px .Opacity}}" stroke="#555" stroke-width="0.3"><title>{{.Title}}</title></rect>
		{{end}}
		{{range .Circles}}<circle cx="{{px .CX}}" cy="{{px .CY}}" r="{{px .R}}" fill="{{.Fill}}" fill-opacity="0.8" stroke="#333" stroke-width="0.5"><title>{{.Title}}</title></circle>
		{{end}}
		{{range .Labels}}<text x="{{px .X}}" y="{{px .Y}}" text-anchor="{{.Anchor}}" font-size="{{.Size}}"{{if .Rotate}} transform="rotate(-90 {{px .X}} {{px .Y}})"{{end}}>{{.Value}}</text>
		{{end}}
	</svg>
	{{if .Legend}}<div class="legend">{{range .Legend}}<span class="swatch" style="background: {{.Color | css}}"></span>{{.Label}}{{end}}</div>{{end}}
</div>{{end}}`

	funcMap := template.FuncMap{
		"px":   func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"half": func(v float64) float64 { return v / 2 },
		"css":  func(s string) template.CSS { return template.CSS(s) },
	}

	reportTemplate = template.New("report").Funcs(funcMap)
	reportTemplate = template.Must(reportTemplate.Parse(pageTmpl))
	reportTemplate = template.Must(reportTemplate.Parse(tableTmpl))
	reportTemplate = template.Must(reportTemplate.Parse(chartTmpl))
}

// WriteReport renders an HTML page with inline SVG charts for f.
func WriteReport(w io.Writer, f *dataset.Frame, opts Options) error {
	if f.Len() == 0 {
		return ErrNoRows
	}
	opts = opts.withDefaults()

	data := reportData{
		Title:    opts.Title,
		Rows:     f.Len(),
		Cols:     f.Width(),
		Head:     headTable(f, opts.HeadRows),
		Describe: describeTable(f),
	}

	classCol, classes := classesOf(f, opts.ClassColumn)
	numeric := numericExcept(f, opts.ClassColumn)

	for _, name := range numeric {
		col, _ := f.Column(name)
		if len(classes) > 1 {
			if c := histogramChart(col, classCol, classes, opts.Bins); c != nil {
				data.Histograms = append(data.Histograms, c)
			}
		}
		if c := boxplotChart(col, classCol, classes); c != nil {
			data.Boxplots = append(data.Boxplots, c)
		}
	}

	if len(numeric) >= 2 {
		data.Heatmap = heatmapChart(f.Corr(numeric))
	}

	if x, y, ok := scatterColumns(f, numeric, opts); ok {
		data.Scatter = scatterChart(x, y, classCol, classes)
	}

	return reportTemplate.Execute(w, data)
}

// classesOf returns the class column and its labels. Without one, every row
// belongs to a single group.
func classesOf(f *dataset.Frame, name string) (*dataset.Column, []string) {
	if name == "" {
		return nil, []string{allClass}
	}
	col, ok := f.Column(name)
	if !ok {
		return nil, []string{allClass}
	}
	return col, f.Unique(name)
}

func numericExcept(f *dataset.Frame, skip string) []string {
	var out []string
	for _, name := range f.NumericColumns() {
		if name != skip {
			out = append(out, name)
		}
	}
	return out
}

func scatterColumns(f *dataset.Frame, numeric []string, opts Options) (*dataset.Column, *dataset.Column, bool) {
	xName, yName := opts.ScatterX, opts.ScatterY
	if xName == "" && len(numeric) > 0 {
		xName = numeric[0]
	}
	if yName == "" && len(numeric) > 1 {
		yName = numeric[1]
	}
	x, okX := f.Column(xName)
	y, okY := f.Column(yName)
	if !okX || !okY || x.Kind != dataset.Numeric || y.Kind != dataset.Numeric {
		return nil, nil, false
	}
	return x, y, true
}

func headTable(f *dataset.Frame, n int) tableView {
	head := f.Head(n)
	t := tableView{Header: head.Columns()}
	for row := 0; row < head.Len(); row++ {
		cells := make([]string, 0, head.Width())
		for _, name := range t.Header {
			c, _ := head.Column(name)
			cells = append(cells, c.Format(row))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func describeTable(f *dataset.Frame) tableView {
	t := tableView{Header: []string{"", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}}
	for _, s := range f.Describe() {
		t.Rows = append(t.Rows, []string{
			s.Name,
			strconv.Itoa(s.Count),
			formatStat(s.Mean), formatStat(s.Std), formatStat(s.Min),
			formatStat(s.Q25), formatStat(s.Q50), formatStat(s.Q75), formatStat(s.Max),
		})
	}
	return t
}
