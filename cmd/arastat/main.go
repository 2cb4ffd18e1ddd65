package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/arastat/internal/config"
	vlog "github.com/jeduden/arastat/internal/log"
	"github.com/jeduden/arastat/internal/metrics"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

const usageText = `Usage: arastat <command> [flags] [files...]

Commands:
  analyze   Compute text metrics for files, literal texts, or stdin
  rank      Rank texts by a metric
  metrics   List available metrics
  help      Show help for metrics and topics
  init      Generate a default .arastat.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'arastat <command> --help' for more information on a command.
`

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	first := args[0]
	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	switch first {
	case "analyze":
		return runAnalyze(args[1:])
	case "rank":
		return runRank(args[1:])
	case "metrics":
		return runMetrics(args[1:])
	case "help":
		return runHelp(args[1:])
	case "init":
		return runInit(args[1:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "arastat: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("arastat %s\n", version)
}

// parseFlags parses args and maps --help to exit code 0 and any other
// parse error to 2. ok is false when the caller should return code.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

// runInit implements the "init" subcommand: generate .arastat.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: arastat init\n\n"+
			"Generate a default %s config file in the current directory.\n", config.FileName)
	}

	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "arastat: init takes no arguments\n")
		return 2
	}

	if _, err := os.Stat(config.FileName); err == nil {
		fmt.Fprintf(os.Stderr, "arastat: %s already exists\n", config.FileName)
		return 2
	}

	data, err := config.Dump(config.DumpDefaults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}

	if err := os.WriteFile(config.FileName, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "arastat: writing %s: %v\n", config.FileName, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "arastat: created %s\n", config.FileName)
	return 0
}

// isStdinPipe returns true if stdin is a pipe (not a terminal).
func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// loadConfig builds the effective configuration. A .env file in the
// current directory is loaded first. The config file is the explicit
// path, then ARASTAT_CONFIG, then the nearest discovered .arastat.yml.
// Environment overrides are applied last. It returns the merged config
// and the path that was loaded (empty if defaults only).
func loadConfig(configPath string, logger *vlog.Logger) (*config.Config, string, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, "", err
	}

	if configPath == "" {
		configPath = config.ConfigPathFromEnv()
	}
	if configPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			if discovered, err := config.Discover(cwd); err == nil {
				configPath = discovered
			}
		}
	}

	var loaded *config.Config
	if configPath != "" {
		var err error
		loaded, err = config.Load(configPath)
		if err != nil {
			return nil, "", err
		}
		logger.Printf("config: %s", configPath)
	}

	cfg := config.Merge(config.Defaults(), loaded)
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

const helpUsageText = `Usage: arastat help <topic>

Topics:
  metric [id|name]   Show metric documentation
`

// runHelp implements the "help" subcommand.
func runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, helpUsageText)
		return 0
	}

	switch args[0] {
	case "metric", "metrics":
		return runHelpMetric(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "arastat: help: unknown topic %q\n", args[0])
		return 2
	}
}

// runHelpMetric implements "help metric [id|name]".
func runHelpMetric(args []string) int {
	if len(args) == 0 {
		return listAllMetricDocs()
	}
	return showMetric(args[0])
}

func listAllMetricDocs() int {
	docs, err := metrics.ListDocs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}

	for _, d := range docs {
		fmt.Printf("%-6s %-36s %s\n", d.ID, d.Name, d.Description)
	}
	return 0
}

func showMetric(query string) int {
	content, err := metrics.LookupDoc(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arastat: %v\n", err)
		return 2
	}
	fmt.Print(content)
	return 0
}
