package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeduden/arastat/internal/features"
	"github.com/jeduden/arastat/internal/metrics"
	"github.com/jeduden/arastat/internal/textstats"
)

// Config is the top-level configuration.
type Config struct {
	LexicalTerminators     *string      `yaml:"lexical-terminators,omitempty"`
	ReadabilityTerminators *string      `yaml:"readability-terminators,omitempty"`
	Vowels                 *string      `yaml:"vowels,omitempty"`
	FunctionWords          WordList     `yaml:"function-words,omitempty"`
	SpeechWPM              *float64     `yaml:"speech-wpm,omitempty"`
	ReadWPM                *float64     `yaml:"read-wpm,omitempty"`
	Workers                *int         `yaml:"workers,omitempty"`
	Metrics                []string     `yaml:"metrics,omitempty"`
	Ignore                 []string     `yaml:"ignore,omitempty"`
	FrontMatter            *bool        `yaml:"front-matter,omitempty"`
	Classifiers            []Classifier `yaml:"classifiers,omitempty"`
}

// Classifier configures an external classifier or entity recognizer.
// Command is run once per text with the request on stdin.
type Classifier struct {
	Name     string   `yaml:"name"`
	Command  []string `yaml:"command"`
	Entities bool     `yaml:"entities,omitempty"`
}

// WordList is a YAML union: either a sequence of words or a single
// whitespace-separated string.
type WordList []string

// UnmarshalYAML implements custom YAML unmarshalling for WordList.
// It handles two forms:
//   - "في من إلى" -> [في من إلى]
//   - [في, من, إلى] -> [في من إلى]
func (w *WordList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("invalid word list: %w", err)
		}
		*w = strings.Fields(s)
		return nil
	case yaml.SequenceNode:
		var words []string
		if err := value.Decode(&words); err != nil {
			return fmt.Errorf("invalid word list: %w", err)
		}
		*w = words
		return nil
	}
	return fmt.Errorf("word list must be a string or a sequence, got %v", value.Kind)
}

// FeatureOptions returns the feature-extractor options of cfg. Unset keys
// take the built-in defaults.
func (c *Config) FeatureOptions() features.Options {
	opts := features.DefaultOptions()
	if c.LexicalTerminators != nil {
		opts.LexicalTerminators = *c.LexicalTerminators
	}
	if c.ReadabilityTerminators != nil {
		opts.ReadabilityTerminators = *c.ReadabilityTerminators
	}
	if c.Vowels != nil {
		opts.Vowels = *c.Vowels
	}
	if c.FunctionWords != nil {
		opts.FunctionWords = append([]string(nil), c.FunctionWords...)
	}
	return opts
}

// Rates returns the time-estimate rates of cfg.
func (c *Config) Rates() textstats.Rates {
	rates := textstats.DefaultRates
	if c.SpeechWPM != nil {
		rates.SpeechWPM = *c.SpeechWPM
	}
	if c.ReadWPM != nil {
		rates.ReadWPM = *c.ReadWPM
	}
	return rates
}

// AnalyzerOptions returns the metric analyzer options of cfg.
func (c *Config) AnalyzerOptions() metrics.Options {
	opts := metrics.Options{
		Features: c.FeatureOptions(),
		Rates:    c.Rates(),
	}
	if c.Workers != nil {
		opts.Workers = *c.Workers
	}
	return opts
}

// FrontMatterEnabled reports whether front matter is stripped from
// Markdown inputs. Defaults to true.
func (c *Config) FrontMatterEnabled() bool {
	return c.FrontMatter == nil || *c.FrontMatter
}

// Validate reports the first invalid setting in cfg.
func (c *Config) Validate() error {
	if err := c.FeatureOptions().Validate(); err != nil {
		return err
	}
	if err := c.Rates().Validate(); err != nil {
		return err
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", *c.Workers)
	}
	if len(c.Metrics) > 0 {
		if _, err := metrics.Resolve(c.Metrics); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(c.Classifiers))
	for i, cl := range c.Classifiers {
		if cl.Name == "" {
			return fmt.Errorf("classifiers[%d]: name is required", i)
		}
		if seen[cl.Name] {
			return fmt.Errorf("classifiers[%d]: duplicate name %q", i, cl.Name)
		}
		seen[cl.Name] = true
		if len(cl.Command) == 0 {
			return fmt.Errorf("classifier %q: command is required", cl.Name)
		}
	}
	return nil
}
