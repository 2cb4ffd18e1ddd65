// Package features computes per-text feature vectors for Arabic text:
// lexical complexity, vocabulary richness and readability scores.
//
// Every ratio is guarded: a text with no Arabic words or no sentences
// yields zeros instead of a division fault.
package features

import (
	"fmt"
	"strings"

	"github.com/jeduden/arastat/internal/tokenize"
)

// DefaultVowels is the syllable vowel set: Latin vowels plus Arabic Alef
// (U+0627), Waw (U+0648) and Alef Maksura (U+0649).
const DefaultVowels = "aeiouAEIOU" + "اوى"

// ArabicVowels is an Arabic-only vowel set: Alef, Waw, Alef Maksura and
// Yeh (U+064A).
const ArabicVowels = "اوىي"

// DefaultFunctionWords is the closed set of Arabic prepositions,
// conjunctions and relative pronouns. It doubles as the common-word list
// for the Dale-Chall score.
var DefaultFunctionWords = []string{
	"في", "من", "إلى", "على", "أن", "و",
	"ب", "ل", "ك", "التي", "الذي", "عن",
}

// Options configures an Extractor.
type Options struct {
	LexicalTerminators     string
	ReadabilityTerminators string
	Vowels                 string
	FunctionWords          []string
}

// DefaultOptions returns the stock extractor settings.
func DefaultOptions() Options {
	return Options{
		LexicalTerminators:     tokenize.LexicalTerminators,
		ReadabilityTerminators: tokenize.ReadabilityTerminators,
		Vowels:                 DefaultVowels,
		FunctionWords:          append([]string(nil), DefaultFunctionWords...),
	}
}

// Validate checks that opts can build an Extractor.
func (o Options) Validate() error {
	if o.LexicalTerminators == "" {
		return fmt.Errorf("lexical terminators must not be empty")
	}
	if o.ReadabilityTerminators == "" {
		return fmt.Errorf("readability terminators must not be empty")
	}
	if o.Vowels == "" {
		return fmt.Errorf("vowel set must not be empty")
	}
	return nil
}

// Extractor computes the three feature vectors. It holds no per-text state
// and is safe for concurrent use.
type Extractor struct {
	lexicalTerminators     string
	readabilityTerminators string
	vowels                 string
	functionWords          map[string]struct{}
}

// NewExtractor builds an Extractor from opts.
func NewExtractor(opts Options) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	words := make(map[string]struct{}, len(opts.FunctionWords))
	for _, w := range opts.FunctionWords {
		w = strings.TrimSpace(w)
		if w != "" {
			words[w] = struct{}{}
		}
	}
	return &Extractor{
		lexicalTerminators:     opts.LexicalTerminators,
		readabilityTerminators: opts.ReadabilityTerminators,
		vowels:                 opts.Vowels,
		functionWords:          words,
	}, nil
}

// DefaultExtractor returns an Extractor with DefaultOptions.
func DefaultExtractor() *Extractor {
	e, err := NewExtractor(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return e
}

// Syllables counts the runes of word that belong to the vowel set.
func (e *Extractor) Syllables(word string) int {
	n := 0
	for _, r := range word {
		if strings.ContainsRune(e.vowels, r) {
			n++
		}
	}
	return n
}

// IsFunctionWord reports whether word is in the function-word set.
func (e *Extractor) IsFunctionWord(word string) bool {
	_, ok := e.functionWords[word]
	return ok
}

// ratio divides and returns 0 for a zero denominator.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
