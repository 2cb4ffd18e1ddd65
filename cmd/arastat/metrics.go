package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/arastat/internal/metrics"
)

const metricsUsageText = `Usage: arastat metrics <command> [flags]

Commands:
  list     List available metrics from the registry
`

func runMetrics(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, metricsUsageText)
		return 0
	}

	switch args[0] {
	case "list":
		return runMetricsList(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "arastat: metrics: unknown command %q\n", args[0])
		return 2
	}
}

func runMetricsList(args []string) int {
	fs := flag.NewFlagSet("metrics list", flag.ContinueOnError)
	var (
		groupRaw string
		format   string
	)

	fs.StringVar(&groupRaw, "group", "", "Only list one group: statistics, lexical, richness, readability")
	fs.StringVarP(&format, "format", "f", "text", "Output format: text, json")
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage: arastat metrics list [flags]\n\n"+
				"List available metrics in column order.\n\n"+
				"Flags:\n",
		)
		fs.PrintDefaults()
	}

	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "arastat: metrics list takes no arguments\n")
		return 2
	}

	defs := metrics.All()
	if groupRaw != "" {
		group, err := metrics.ParseGroup(groupRaw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
			return 2
		}
		defs = metrics.ForGroup(group)
	}

	var err error
	switch format {
	case "text":
		err = writeMetricsListText(os.Stdout, defs)
	case "json":
		err = writeMetricsListJSON(os.Stdout, defs)
	default:
		fmt.Fprintf(os.Stderr, "arastat: unknown format %q (supported: text, json)\n", format)
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: writing output: %v\n", err)
		return 2
	}
	return 0
}

func writeMetricsListText(w io.Writer, defs []metrics.Definition) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNAME\tGROUP\tORDER\tDESCRIPTION"); err != nil {
		return err
	}
	for _, def := range defs {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%s\t%s\n",
			def.ID,
			def.Name,
			def.Group,
			def.DefaultOrder,
			def.Description,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeMetricsListJSON(w io.Writer, defs []metrics.Definition) error {
	items := make([]map[string]any, 0, len(defs))
	for _, def := range defs {
		items = append(items, map[string]any{
			"id":            def.ID,
			"name":          def.Name,
			"column":        def.Column,
			"description":   def.Description,
			"group":         def.Group,
			"kind":          def.Kind,
			"default_order": def.DefaultOrder,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(items)
}
