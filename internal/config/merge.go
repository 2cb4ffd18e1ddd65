package config

import (
	"path/filepath"

	"github.com/gobwas/glob"
)

// Merge merges a loaded config on top of defaults. Every option set in
// loaded overrides the default; unset options keep the default value.
// Ignore and Classifiers come from the loaded config only.
func Merge(defaults, loaded *Config) *Config {
	merged := *defaults
	merged.FunctionWords = append(WordList(nil), defaults.FunctionWords...)
	merged.Metrics = append([]string(nil), defaults.Metrics...)
	merged.Ignore = nil
	merged.Classifiers = nil
	if loaded == nil {
		return &merged
	}

	if loaded.LexicalTerminators != nil {
		merged.LexicalTerminators = loaded.LexicalTerminators
	}
	if loaded.ReadabilityTerminators != nil {
		merged.ReadabilityTerminators = loaded.ReadabilityTerminators
	}
	if loaded.Vowels != nil {
		merged.Vowels = loaded.Vowels
	}
	if loaded.FunctionWords != nil {
		merged.FunctionWords = loaded.FunctionWords
	}
	if loaded.SpeechWPM != nil {
		merged.SpeechWPM = loaded.SpeechWPM
	}
	if loaded.ReadWPM != nil {
		merged.ReadWPM = loaded.ReadWPM
	}
	if loaded.Workers != nil {
		merged.Workers = loaded.Workers
	}
	if loaded.Metrics != nil {
		merged.Metrics = loaded.Metrics
	}
	if loaded.FrontMatter != nil {
		merged.FrontMatter = loaded.FrontMatter
	}
	merged.Ignore = loaded.Ignore
	merged.Classifiers = loaded.Classifiers
	return &merged
}

// Ignored reports whether path matches one of the ignore patterns of cfg.
// Patterns are matched against the slash-separated path.
func Ignored(cfg *Config, path string) bool {
	return matchesAny(cfg.Ignore, filepath.ToSlash(path))
}

// matchesAny returns true if filePath matches any of the given glob patterns.
func matchesAny(patterns []string, filePath string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			// Skip invalid patterns silently.
			continue
		}
		if g.Match(filePath) {
			return true
		}
	}
	return false
}
