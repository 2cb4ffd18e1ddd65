package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jeduden/arastat/internal/features"
	"github.com/jeduden/arastat/internal/metrics"
	"github.com/jeduden/arastat/internal/textstats"
)

// FileName is the config file looked up by Discover.
const FileName = ".arastat.yml"

// Load reads and parses a config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for a
// .arastat.yml config file. It stops searching when it encounters a .git
// directory (the repository root) or reaches the filesystem root.
// Returns the path to the config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with only built-in behavior: every option
// left unset so the package defaults apply.
func Defaults() *Config {
	return &Config{}
}

// DumpDefaults returns a Config with every option populated with its
// built-in value. This is consumed by `arastat init` to generate a
// default config file.
func DumpDefaults() *Config {
	opts := features.DefaultOptions()
	rates := textstats.DefaultRates
	workers := 0
	frontMatter := true

	names := make([]string, 0, len(metrics.Groups))
	for _, g := range metrics.Groups {
		names = append(names, string(g))
	}

	return &Config{
		LexicalTerminators:     &opts.LexicalTerminators,
		ReadabilityTerminators: &opts.ReadabilityTerminators,
		Vowels:                 &opts.Vowels,
		FunctionWords:          WordList(opts.FunctionWords),
		SpeechWPM:              &rates.SpeechWPM,
		ReadWPM:                &rates.ReadWPM,
		Workers:                &workers,
		Metrics:                names,
		FrontMatter:            &frontMatter,
	}
}

// Dump renders cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
