package output

import (
	"html/template"
	"io"

	"github.com/jeduden/arastat/internal/metrics"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="utf-8">
<title>arastat</title>
</head>
<body>
<table>
<thead>
<tr><th>Source</th>{{if .Text}}<th>Text</th>{{end}}{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Source}}</td>{{if $.Text}}<td>{{.Text}}</td>{{end}}{{if .Error}}<td colspan="{{$.Span}}">{{.Error}}</td>{{else}}{{range .Cells}}<td>{{.}}</td>{{end}}{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// HTMLFormatter writes a standalone right-to-left HTML page holding the
// table. All text is escaped. With Text set, a whitespace-collapsed
// preview of each text follows its source.
type HTMLFormatter struct {
	Text bool
}

type htmlRow struct {
	Source string
	Text   string
	Cells  []string
	Error  string
}

type htmlPage struct {
	Headers []string
	Rows    []htmlRow
	Span    int
	Text    bool
}

// Format renders the table as HTML.
func (f *HTMLFormatter) Format(w io.Writer, table metrics.Table) error {
	labels := annotationNames(table.Rows)
	page := htmlPage{Rows: make([]htmlRow, 0, len(table.Rows)), Text: f.Text}
	for _, def := range table.Definitions {
		page.Headers = append(page.Headers, def.Column)
	}
	page.Headers = append(page.Headers, labels...)
	page.Span = len(page.Headers)

	for _, row := range table.Rows {
		hr := htmlRow{Source: row.Source, Text: preview(row.Text), Error: errorText(row)}
		for _, def := range table.Definitions {
			hr.Cells = append(hr.Cells, metrics.FormatValue(def, row.Value(def)))
		}
		for _, name := range labels {
			label, ok := row.Annotations[name]
			if !ok {
				label = "-"
			}
			hr.Cells = append(hr.Cells, label)
		}
		page.Rows = append(page.Rows, hr)
	}
	return htmlTemplate.Execute(w, page)
}
