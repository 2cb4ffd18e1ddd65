package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jeduden/arastat/internal/metrics"
)

// Formatter defines the interface for writing an analysis table.
type Formatter interface {
	Format(w io.Writer, table metrics.Table) error
}

// Formats lists the formats accepted by New.
var Formats = []string{"text", "json", "csv", "html"}

// Options controls optional output columns.
type Options struct {
	// Text adds the analyzed text to json, csv and html output.
	Text bool
}

// New returns the formatter for a format name.
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{Text: opts.Text}, nil
	case "csv":
		return &CSVFormatter{Text: opts.Text}, nil
	case "html":
		return &HTMLFormatter{Text: opts.Text}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (supported: %s, sqlite)", format, strings.Join(Formats, ", "))
	}
}

// annotationNames returns the sorted union of annotation keys in rows.
func annotationNames(rows []metrics.Row) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		for name := range row.Annotations {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// preview collapses whitespace in text and cuts it to at most
// previewRunes runes.
func preview(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes-1]) + "…"
}

const previewRunes = 80

func errorText(row metrics.Row) string {
	if row.Err == nil {
		return ""
	}
	return row.Err.Error()
}
