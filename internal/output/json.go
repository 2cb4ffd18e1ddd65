package output

import (
	"encoding/json"
	"io"

	"github.com/jeduden/arastat/internal/metrics"
)

// JSONFormatter outputs the table as a JSON array in input order.
// With Text set, each object also carries the analyzed text.
type JSONFormatter struct {
	Text bool
}

type jsonRow struct {
	Source      string            `json:"source"`
	Text        *string           `json:"text,omitempty"`
	Metrics     map[string]any    `json:"metrics"`
	Annotations map[string]string `json:"annotations,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// Format writes rows as a pretty-printed JSON array keyed by metric name.
// Unavailable values are null and durations are HH:MM:SS strings.
// An empty table produces [].
func (f *JSONFormatter) Format(w io.Writer, table metrics.Table) error {
	items := make([]jsonRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := make(map[string]any, len(table.Definitions))
		for _, def := range table.Definitions {
			values[def.Name] = metrics.JSONValue(def, row.Value(def))
		}
		item := jsonRow{
			Source:      row.Source,
			Metrics:     values,
			Annotations: row.Annotations,
			Error:       errorText(row),
		}
		if f.Text {
			text := row.Text
			item.Text = &text
		}
		items = append(items, item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(items)
}
