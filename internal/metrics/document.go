package metrics

import (
	"fmt"
	"runtime"

	"github.com/jeduden/arastat/internal/features"
	"github.com/jeduden/arastat/internal/textstats"
)

// Options configures an Analyzer.
type Options struct {
	Features features.Options
	Rates    textstats.Rates
	// Workers bounds the number of texts analyzed concurrently.
	// Zero means runtime.NumCPU().
	Workers int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Features: features.DefaultOptions(),
		Rates:    textstats.DefaultRates,
	}
}

// Analyzer computes metrics for texts. It holds no per-text state and is
// safe for concurrent use.
type Analyzer struct {
	extractor *features.Extractor
	rates     textstats.Rates
	workers   int
}

// NewAnalyzer validates opts and returns an Analyzer.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	extractor, err := features.NewExtractor(opts.Features)
	if err != nil {
		return nil, err
	}
	if err := opts.Rates.Validate(); err != nil {
		return nil, err
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", opts.Workers)
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return &Analyzer{
		extractor: extractor,
		rates:     opts.Rates,
		workers:   workers,
	}, nil
}

// Workers returns the effective worker count.
func (a *Analyzer) Workers() int {
	return a.workers
}

// Document is the shared metric input for a single text.
// Each feature group is computed lazily and cached.
// A Document is not safe for concurrent use.
type Document struct {
	Source string
	Text   string

	analyzer *Analyzer

	stats      textstats.Statistics
	statsReady bool

	lexical      features.Lexical
	lexicalReady bool

	richness      features.Richness
	richnessReady bool

	readability      features.Readability
	readabilityReady bool
}

// NewDocument constructs a Document wrapper for metric computation.
func (a *Analyzer) NewDocument(source, text string) *Document {
	return &Document{
		Source:   source,
		Text:     text,
		analyzer: a,
	}
}

// Statistics returns the coarse text statistics.
func (d *Document) Statistics() textstats.Statistics {
	if !d.statsReady {
		d.stats = d.analyzer.rates.Compute(d.Text)
		d.statsReady = true
	}
	return d.stats
}

// Lexical returns the lexical features.
func (d *Document) Lexical() features.Lexical {
	if !d.lexicalReady {
		d.lexical = d.analyzer.extractor.Lexical(d.Text)
		d.lexicalReady = true
	}
	return d.lexical
}

// Richness returns the vocabulary-richness indices.
func (d *Document) Richness() features.Richness {
	if !d.richnessReady {
		d.richness = d.analyzer.extractor.Richness(d.Text)
		d.richnessReady = true
	}
	return d.richness
}

// Readability returns the readability scores.
func (d *Document) Readability() features.Readability {
	if !d.readabilityReady {
		d.readability = d.analyzer.extractor.Readability(d.Text)
		d.readabilityReady = true
	}
	return d.readability
}
