package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jeduden/arastat/internal/features"
	"github.com/jeduden/arastat/internal/textstats"
)

func writeConfig(t *testing.T, yml string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, FileName)
	if err := os.WriteFile(cfgPath, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

// --- YAML parsing tests ---

func TestParseValidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
lexical-terminators: ".!?"
readability-terminators: ".!؟"
vowels: "اوىي"
function-words: [في, من, إلى]
speech-wpm: 150
read-wpm: 250
workers: 3
metrics: [words, readability]
ignore:
  - "vendor/**"
  - "*.draft.md"
front-matter: false
classifiers:
  - name: dialect
    command: [python3, dialect.py]
  - name: ner
    command: [./ner]
    entities: true
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	t.Run("features", func(t *testing.T) {
		opts := cfg.FeatureOptions()
		if opts.LexicalTerminators != ".!?" || opts.ReadabilityTerminators != ".!؟" {
			t.Errorf("terminators = %q/%q", opts.LexicalTerminators, opts.ReadabilityTerminators)
		}
		if opts.Vowels != "اوىي" {
			t.Errorf("vowels = %q", opts.Vowels)
		}
		if len(opts.FunctionWords) != 3 || opts.FunctionWords[2] != "إلى" {
			t.Errorf("function words = %v", opts.FunctionWords)
		}
	})

	t.Run("rates", func(t *testing.T) {
		rates := cfg.Rates()
		if rates.SpeechWPM != 150 || rates.ReadWPM != 250 || rates.Scale != textstats.DefaultRates.Scale {
			t.Errorf("rates = %+v", rates)
		}
	})

	t.Run("workers", func(t *testing.T) {
		if got := cfg.AnalyzerOptions().Workers; got != 3 {
			t.Errorf("workers = %d, want 3", got)
		}
	})

	t.Run("ignore", func(t *testing.T) {
		if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "vendor/**" {
			t.Errorf("ignore = %v", cfg.Ignore)
		}
	})

	t.Run("front matter", func(t *testing.T) {
		if cfg.FrontMatterEnabled() {
			t.Error("front matter should be disabled")
		}
	})

	t.Run("classifiers", func(t *testing.T) {
		if len(cfg.Classifiers) != 2 {
			t.Fatalf("expected 2 classifiers, got %d", len(cfg.Classifiers))
		}
		if cfg.Classifiers[0].Name != "dialect" || cfg.Classifiers[0].Entities {
			t.Errorf("classifier 0 = %+v", cfg.Classifiers[0])
		}
		if !cfg.Classifiers[1].Entities || cfg.Classifiers[1].Command[0] != "./ner" {
			t.Errorf("classifier 1 = %+v", cfg.Classifiers[1])
		}
	})

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestWordListScalarForm(t *testing.T) {
	cfg, err := Load(writeConfig(t, "function-words: \"في  من\tعن\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []string{"في", "من", "عن"}
	if len(cfg.FunctionWords) != len(want) {
		t.Fatalf("function words = %v, want %v", cfg.FunctionWords, want)
	}
	for i := range want {
		if cfg.FunctionWords[i] != want[i] {
			t.Fatalf("function words = %v, want %v", cfg.FunctionWords, want)
		}
	}
}

func TestWordListRejectsMapping(t *testing.T) {
	_, err := Load(writeConfig(t, "function-words:\n  a: b\n"))
	if err == nil {
		t.Fatal("expected error for mapping word list")
	}
}

func TestInvalidYAMLReturnsError(t *testing.T) {
	_, err := Load(writeConfig(t, "workers: [unclosed\n"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}

// --- Validation tests ---

func TestValidate(t *testing.T) {
	empty := ""
	zero := 0.0
	negative := -1
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"empty terminators", Config{LexicalTerminators: &empty}, "terminators"},
		{"zero rate", Config{SpeechWPM: &zero}, "speech rate"},
		{"negative workers", Config{Workers: &negative}, "workers"},
		{"unknown metric", Config{Metrics: []string{"bogus"}}, "unknown metric"},
		{"classifier without name", Config{Classifiers: []Classifier{{Command: []string{"x"}}}}, "name is required"},
		{"classifier without command", Config{Classifiers: []Classifier{{Name: "x"}}}, "command is required"},
		{"duplicate classifier", Config{Classifiers: []Classifier{
			{Name: "x", Command: []string{"a"}},
			{Name: "x", Command: []string{"b"}},
		}}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults().Validate: %v", err)
	}
	if err := DumpDefaults().Validate(); err != nil {
		t.Fatalf("DumpDefaults().Validate: %v", err)
	}
}

// --- Discovery tests ---

func TestDiscoverFindsInCurrentDir(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, FileName)
	if err := os.WriteFile(cfgPath, []byte("workers: 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("expected %s, got %s", cfgPath, found)
	}
}

func TestDiscoverFindsInParentDir(t *testing.T) {
	parent := t.TempDir()
	child := filepath.Join(parent, "subdir")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(parent, FileName)
	if err := os.WriteFile(cfgPath, []byte("workers: 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Discover(child)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("expected %s, got %s", cfgPath, found)
	}
}

func TestDiscoverStopsAtGitBoundary(t *testing.T) {
	grandparent := t.TempDir()
	parent := filepath.Join(grandparent, "repo")
	child := filepath.Join(parent, "src")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(parent, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(grandparent, FileName), []byte("workers: 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Discover(child)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if found != "" {
		t.Errorf("expected empty string (stopped at .git), got %s", found)
	}
}

func TestDiscoverFindsConfigAtRepoRoot(t *testing.T) {
	repoRoot := t.TempDir()
	child := filepath.Join(repoRoot, "src")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(repoRoot, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(repoRoot, FileName)
	if err := os.WriteFile(cfgPath, []byte("workers: 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Discover(child)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("expected %s, got %s", cfgPath, found)
	}
}

// --- Merge tests ---

func TestMergeNilLoaded(t *testing.T) {
	merged := Merge(Defaults(), nil)
	opts := merged.FeatureOptions()
	def := features.DefaultOptions()
	if opts.LexicalTerminators != def.LexicalTerminators || opts.Vowels != def.Vowels {
		t.Fatalf("merged options = %+v, want defaults", opts)
	}
	if merged.Rates() != textstats.DefaultRates {
		t.Fatalf("merged rates = %+v, want defaults", merged.Rates())
	}
	if !merged.FrontMatterEnabled() {
		t.Fatal("front matter should default to enabled")
	}
}

func TestMergeOverridesOnlySetKeys(t *testing.T) {
	defaults := DumpDefaults()
	rate := 90.0
	loaded := &Config{SpeechWPM: &rate, Ignore: []string{"tmp/**"}}

	merged := Merge(defaults, loaded)
	if *merged.SpeechWPM != 90 {
		t.Errorf("speech-wpm = %v, want 90", *merged.SpeechWPM)
	}
	if *merged.ReadWPM != textstats.DefaultRates.ReadWPM {
		t.Errorf("read-wpm = %v, want default", *merged.ReadWPM)
	}
	if len(merged.Ignore) != 1 || merged.Ignore[0] != "tmp/**" {
		t.Errorf("ignore = %v", merged.Ignore)
	}
	if len(merged.FunctionWords) != len(features.DefaultFunctionWords) {
		t.Errorf("function words = %v, want defaults", merged.FunctionWords)
	}
}

func TestMergeDoesNotAliasDefaults(t *testing.T) {
	defaults := DumpDefaults()
	merged := Merge(defaults, nil)
	merged.FunctionWords[0] = "changed"
	if defaults.FunctionWords[0] == "changed" {
		t.Fatal("merge should copy function words")
	}
}

// --- Ignore tests ---

func TestIgnored(t *testing.T) {
	cfg := &Config{Ignore: []string{"vendor/**", "*.draft.md", "[invalid"}}
	tests := []struct {
		path string
		want bool
	}{
		{"vendor/a/b.txt", true},
		{"notes.draft.md", true},
		{"docs/notes.draft.md", false},
		{"docs/notes.md", false},
	}
	for _, tt := range tests {
		if got := Ignored(cfg, tt.path); got != tt.want {
			t.Errorf("Ignored(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// --- Dump tests ---

func TestDumpDefaults_RoundTrip(t *testing.T) {
	data, err := Dump(DumpDefaults())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	for _, key := range []string{"lexical-terminators", "readability-terminators", "speech-wpm", "function-words", "metrics"} {
		if !strings.Contains(string(data), key+":") {
			t.Errorf("dump is missing %s:\n%s", key, data)
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if cfg.FeatureOptions().ReadabilityTerminators != features.DefaultOptions().ReadabilityTerminators {
		t.Fatalf("round trip readability terminators = %q", cfg.FeatureOptions().ReadabilityTerminators)
	}
	if len(cfg.FunctionWords) != len(features.DefaultFunctionWords) {
		t.Fatalf("round trip function words = %v", cfg.FunctionWords)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("round trip Validate: %v", err)
	}
}

func TestDefaultsOmitEverything(t *testing.T) {
	data, err := Dump(Defaults())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Fatalf("Defaults dump = %q, want {}", data)
	}
}
