package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/arastat/internal/classify"
	"github.com/jeduden/arastat/internal/config"
	"github.com/jeduden/arastat/internal/input"
	vlog "github.com/jeduden/arastat/internal/log"
	"github.com/jeduden/arastat/internal/metrics"
	"github.com/jeduden/arastat/internal/output"
)

const formatSQLite = "sqlite"

type analyzeOptions struct {
	configPath  string
	format      string
	out         string
	metricsRaw  string
	workers     int
	workersSet  bool
	perLine     bool
	withText    bool
	verbose     bool
	noGitignore bool
	texts       []string
	inputFormat string

	// rank only
	rank     bool
	byRaw    string
	orderRaw string
	top      int
}

func runAnalyze(args []string) int {
	return runTable("analyze", args)
}

func runRank(args []string) int {
	return runTable("rank", args)
}

func runTable(command string, args []string) int {
	opts, fileArgs, code, ok := parseAnalyzeOptions(command, args)
	if !ok {
		return code
	}
	return executeAnalyze(opts, fileArgs)
}

func parseAnalyzeOptions(command string, args []string) (analyzeOptions, []string, int, bool) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	opts := analyzeOptions{rank: command == "rank"}

	fs.StringVarP(&opts.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, csv, html, sqlite")
	fs.StringVarP(&opts.out, "out", "o", "", "Write output to a file (required for sqlite)")
	fs.StringVar(&opts.metricsRaw, "metrics", "", "Comma-separated metrics or groups (defaults to config, then all)")
	fs.IntVar(&opts.workers, "workers", 0, "Texts analyzed concurrently (0 = number of CPUs)")
	fs.BoolVar(&opts.perLine, "per-line", false, "Treat each non-blank input line as its own text")
	fs.BoolVar(&opts.withText, "with-text", false, "Include the analyzed text in json, csv and html output")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Show config, inputs, and timing on stderr")
	fs.BoolVar(&opts.noGitignore, "no-gitignore", false, "Disable .gitignore filtering when walking directories")
	fs.StringArrayVar(&opts.texts, "text", nil, "Analyze a literal text (repeatable)")
	fs.StringVar(&opts.inputFormat, "input-format", "text", "Format of stdin: text, markdown, html")
	if opts.rank {
		fs.StringVar(&opts.byRaw, "by", "", "Metric to sort by (defaults to the first selected metric)")
		fs.StringVar(&opts.orderRaw, "order", "", "Sort order: asc or desc (defaults by metric)")
		fs.IntVar(&opts.top, "top", 0, "Limit results to top N texts (0 = all)")
	}

	fs.Usage = func() {
		summary := "Compute Arabic text metrics."
		if opts.rank {
			summary = "Compute metrics and rank texts by one of them."
		}
		fmt.Fprintf(os.Stderr, "Usage: arastat %s [flags] [files...]\n\n"+
			"%s\n\n"+
			"Files can be paths, directories (walked recursively for .txt, .md and .html),\n"+
			"or glob patterns. With no inputs, reads stdin if piped, otherwise the\n"+
			"current directory.\n\n"+
			"Flags:\n", command, summary)
		fs.PrintDefaults()
	}

	if code, ok := parseFlags(fs, args); !ok {
		return analyzeOptions{}, nil, code, false
	}
	opts.workersSet = fs.Changed("workers")
	if opts.workers < 0 {
		fmt.Fprintf(os.Stderr, "arastat: --workers must be >= 0\n")
		return analyzeOptions{}, nil, 2, false
	}
	if opts.top < 0 {
		fmt.Fprintf(os.Stderr, "arastat: --top must be >= 0\n")
		return analyzeOptions{}, nil, 2, false
	}
	return opts, fs.Args(), 0, true
}

func executeAnalyze(opts analyzeOptions, fileArgs []string) int {
	logger := &vlog.Logger{Enabled: opts.verbose, W: os.Stderr}
	start := time.Now()

	cfg, _, err := loadConfig(opts.configPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}
	if opts.workersSet {
		cfg.Workers = &opts.workers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}

	sink, formatter, err := resolveOutput(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}

	defs, byDef, order, err := resolveSelection(opts, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}

	classifiers, err := classify.FromConfig(cfg.Classifiers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}

	inputs, loadErrs, err := gatherInputs(opts, fileArgs, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}
	printErrors(loadErrs)
	logger.Printf("inputs: %d texts", len(inputs))

	analyzer, err := metrics.NewAnalyzer(cfg.AnalyzerOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}
	logger.Printf("workers: %d", analyzer.Workers())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	collectStart := time.Now()
	table, err := analyzer.Collect(ctx, inputs, defs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}
	logger.Timed("analyzed", collectStart)

	if len(classifiers) > 0 {
		classifyStart := time.Now()
		for _, e := range classify.AnnotateTable(ctx, &table, inputs, analyzer.Workers(), classifiers...) {
			fmt.Fprintf(os.Stderr, "arastat: %v\n", e)
		}
		logger.Timed("classified", classifyStart)
	}

	failed := table.Failed()
	for _, row := range failed {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", row.Err)
	}

	if opts.rank {
		metrics.SortRows(table.Rows, byDef, order)
		table.Rows = metrics.LimitRows(table.Rows, opts.top)
	}

	if sink {
		if code := writeSQLite(ctx, opts.out, table); code != 0 {
			return code
		}
	} else if code := writeTable(opts.out, formatter, table); code != 0 {
		return code
	}
	logger.Timed("total", start)

	if len(loadErrs) > 0 || len(failed) > 0 {
		return 2
	}
	return 0
}

// resolveOutput picks the formatter for opts.format. sink is true when
// results go to the sqlite database instead.
func resolveOutput(opts analyzeOptions) (sink bool, formatter output.Formatter, err error) {
	if strings.EqualFold(strings.TrimSpace(opts.format), formatSQLite) {
		if opts.out == "" {
			return false, nil, fmt.Errorf("--format sqlite requires --out")
		}
		return true, nil, nil
	}
	formatter, err = output.New(opts.format, output.Options{Text: opts.withText})
	if err != nil {
		return false, nil, err
	}
	if tf, ok := formatter.(*output.TextFormatter); ok && opts.rank {
		tf.Wide = true
	}
	return false, formatter, nil
}

// resolveSelection returns the metrics to compute and, for rank, the
// metric and order to sort by. --metrics wins over the config file;
// with neither, every metric is computed.
func resolveSelection(
	opts analyzeOptions,
	cfg *config.Config,
) ([]metrics.Definition, metrics.Definition, metrics.Order, error) {
	selectedNames := metrics.SplitList(opts.metricsRaw)
	explicit := len(selectedNames) > 0
	if !explicit {
		selectedNames = cfg.Metrics
	}
	defs, err := metrics.Resolve(selectedNames)
	if err != nil {
		return nil, metrics.Definition{}, "", err
	}
	if !opts.rank {
		return defs, metrics.Definition{}, "", nil
	}

	var byDef metrics.Definition
	if strings.TrimSpace(opts.byRaw) == "" {
		byDef = defs[0]
	} else {
		byDefs, err := metrics.Resolve([]string{opts.byRaw})
		if err != nil {
			return nil, metrics.Definition{}, "", err
		}
		if len(byDefs) != 1 {
			return nil, metrics.Definition{}, "", fmt.Errorf("--by takes a single metric, got %q", opts.byRaw)
		}
		byDef = byDefs[0]
	}

	// Ensure the sort metric is always computed.
	if !containsMetric(defs, byDef.ID) {
		if explicit {
			return nil, metrics.Definition{}, "", fmt.Errorf(
				"--by metric %q must be included in --metrics",
				byDef.Name,
			)
		}
		defs = append(defs, byDef)
	}

	order := byDef.DefaultOrder
	if strings.TrimSpace(opts.orderRaw) != "" {
		parsed, err := metrics.ParseOrder(opts.orderRaw)
		if err != nil {
			return nil, metrics.Definition{}, "", err
		}
		order = parsed
	}

	return defs, byDef, order, nil
}

func containsMetric(defs []metrics.Definition, id string) bool {
	for _, def := range defs {
		if def.ID == id {
			return true
		}
	}
	return false
}

// gatherInputs collects the texts to analyze: literal --text values
// first, then files, then stdin when nothing else was given. Files that
// cannot be read are returned as loadErrs and skipped.
func gatherInputs(
	opts analyzeOptions,
	fileArgs []string,
	cfg *config.Config,
	logger *vlog.Logger,
) (inputs []metrics.Input, loadErrs []error, err error) {
	for i, text := range opts.texts {
		inputs = append(inputs, metrics.Input{Source: "text:" + strconv.Itoa(i+1), Text: text})
	}

	loadOpts := input.LoadOpts{FrontMatter: cfg.FrontMatterEnabled()}

	if len(fileArgs) == 0 && len(opts.texts) == 0 {
		if isStdinPipe() {
			f, err := input.ParseFormat(opts.inputFormat)
			if err != nil {
				return nil, nil, err
			}
			in, err := input.LoadReader("stdin", os.Stdin, f, loadOpts)
			if err != nil {
				return nil, nil, err
			}
			return splitInputs(opts, []metrics.Input{in}), nil, nil
		}
		fileArgs = []string{"."}
	}

	if len(fileArgs) > 0 {
		resolveOpts := input.ResolveOpts{
			UseGitignore: !opts.noGitignore,
			Ignore: func(path string) bool {
				return config.Ignored(cfg, path)
			},
		}
		files, err := input.ResolveFiles(fileArgs, resolveOpts)
		if err != nil {
			return nil, nil, err
		}
		for _, path := range files {
			logger.Printf("file: %s", path)
			in, err := input.Load(path, loadOpts)
			if err != nil {
				loadErrs = append(loadErrs, err)
				continue
			}
			inputs = append(inputs, in)
		}
	}

	return splitInputs(opts, inputs), loadErrs, nil
}

func splitInputs(opts analyzeOptions, inputs []metrics.Input) []metrics.Input {
	if !opts.perLine {
		return inputs
	}
	var out []metrics.Input
	for _, in := range inputs {
		out = append(out, input.SplitLines(in)...)
	}
	return out
}

func writeTable(out string, formatter output.Formatter, table metrics.Table) int {
	if out == "" {
		if err := formatter.Format(os.Stdout, table); err != nil {
			fmt.Fprintf(os.Stderr, "arastat: error writing output: %v\n", err)
			return 2
		}
		return 0
	}

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}
	if err := writeAndClose(f, formatter, table); err != nil {
		fmt.Fprintf(os.Stderr, "arastat: error writing %s: %v\n", out, err)
		return 2
	}
	return 0
}

// writeAndClose formats table into w and closes it. A close error is
// returned when formatting succeeded.
func writeAndClose(w io.WriteCloser, formatter output.Formatter, table metrics.Table) error {
	if err := formatter.Format(w, table); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func writeSQLite(ctx context.Context, path string, table metrics.Table) int {
	sink, err := output.NewSQLiteSink(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}
	defer func() { _ = sink.Close() }()

	runID, err := sink.Write(ctx, table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}
	fmt.Println(runID)
	return 0
}

// printErrors writes runtime errors to stderr.
func printErrors(errs []error) {
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", e)
	}
}
