package render

import (
	"html/template"
	"io"

	"github.com/yumyai/protprofile/pkg/db"
)

var runIndexTemplate = template.Must(template.New("runs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Saved runs</title>
	<style>
		body { font-family: sans-serif; margin: 24px; }
		table { border-collapse: collapse; font-size: 13px; }
		th, td { border: 1px solid #ccc; padding: 4px 8px; }
		th { background: #f2f2f2; }
	</style>
</head>
<body>
	<h1>Saved runs</h1>
	{{if .}}
	<table>
		<tr><th>Run</th><th>Kind</th><th>Source</th><th>Created</th><th>Rows</th><th>Columns</th><th></th></tr>
		{{range .}}
		<tr>
			<td><a href="/runs/{{.ID}}">{{.ID}}</a></td>
			<td>{{.Kind}}</td>
			<td>{{.Source}}</td>
			<td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td>
			<td>{{.Rows}}</td>
			<td>{{.Cols}}</td>
			<td><a href="/runs/{{.ID}}/csv">csv</a></td>
		</tr>
		{{end}}
	</table>
	{{else}}
	<p>No runs saved yet. Use <code>--save</code> with enrich or fetch.</p>
	{{end}}
</body>
</html>`))

// WriteRunIndex renders the list of saved runs.
func WriteRunIndex(w io.Writer, runs []*db.Run) error {
	return runIndexTemplate.Execute(w, runs)
}
