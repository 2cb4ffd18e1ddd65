package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jeduden/arastat/internal/metrics"
)

// TextFormatter writes a human-readable report.
// By default every text gets its own block with one metric per line.
// When Wide is true, the table is written with one row per text and one
// column per metric.
type TextFormatter struct {
	Wide bool
}

// Format writes the table through a tabwriter.
func (f *TextFormatter) Format(w io.Writer, table metrics.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	var err error
	if f.Wide {
		err = writeWide(tw, table)
	} else {
		err = writeBlocks(tw, table)
	}
	if err != nil {
		return err
	}
	return tw.Flush()
}

func writeBlocks(w io.Writer, table metrics.Table) error {
	labels := annotationNames(table.Rows)
	for i, row := range table.Rows {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", row.Source); err != nil {
			return err
		}
		if row.Err != nil {
			if _, err := fmt.Fprintf(w, "error:\t%s\n", row.Err); err != nil {
				return err
			}
			continue
		}
		for _, def := range table.Definitions {
			if _, err := fmt.Fprintf(w, "%s:\t%s\n", def.Column, metrics.FormatValue(def, row.Value(def))); err != nil {
				return err
			}
		}
		for _, name := range labels {
			label, ok := row.Annotations[name]
			if !ok {
				label = "-"
			}
			if _, err := fmt.Fprintf(w, "%s:\t%s\n", name, label); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeWide(w io.Writer, table metrics.Table) error {
	labels := annotationNames(table.Rows)

	headers := make([]string, 0, len(table.Definitions)+len(labels)+1)
	for _, def := range table.Definitions {
		headers = append(headers, strings.ToUpper(def.Name))
	}
	for _, name := range labels {
		headers = append(headers, strings.ToUpper(name))
	}
	headers = append(headers, "SOURCE")
	if _, err := fmt.Fprintln(w, strings.Join(headers, "\t")); err != nil {
		return err
	}

	for _, row := range table.Rows {
		cols := make([]string, 0, len(headers))
		for _, def := range table.Definitions {
			cols = append(cols, metrics.FormatValue(def, row.Value(def)))
		}
		for _, name := range labels {
			label, ok := row.Annotations[name]
			if !ok {
				label = "-"
			}
			cols = append(cols, label)
		}
		cols = append(cols, row.Source)
		if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}
	return nil
}
