package output

import (
	"encoding/csv"
	"io"

	"github.com/jeduden/arastat/internal/metrics"
)

// CSVFormatter writes a header row of column names followed by one
// record per text. Unavailable values are empty cells. With Text set, a
// Text column follows Source.
type CSVFormatter struct {
	Text bool
}

// Format writes the table as CSV.
func (f *CSVFormatter) Format(w io.Writer, table metrics.Table) error {
	labels := annotationNames(table.Rows)
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(table.Definitions)+len(labels)+2)
	header = append(header, "Source")
	if f.Text {
		header = append(header, "Text")
	}
	for _, def := range table.Definitions {
		header = append(header, def.Column)
	}
	header = append(header, labels...)
	header = append(header, "Error")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range table.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Source)
		if f.Text {
			record = append(record, row.Text)
		}
		for _, def := range table.Definitions {
			cell := ""
			if v := row.Value(def); v.Available {
				cell = metrics.FormatValue(def, v)
			}
			record = append(record, cell)
		}
		for _, name := range labels {
			record = append(record, row.Annotations[name])
		}
		record = append(record, errorText(row))
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
