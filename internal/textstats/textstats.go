// Package textstats computes coarse statistics for Arabic text: word,
// character, sentence and vocabulary counts plus speech and reading time
// estimates. Words here are whitespace-delimited units stripped to their
// Arabic runes, a looser rule than the tokenizer's word boundaries.
package textstats

import (
	"fmt"
	"math"
	"strings"

	"github.com/jeduden/arastat/internal/tokenize"
)

// Rates controls the time estimates. Seconds are computed as
// words / WPM * Scale.
type Rates struct {
	SpeechWPM float64
	ReadWPM   float64
	Scale     float64
}

// DefaultRates are the rates used when none are configured.
var DefaultRates = Rates{
	SpeechWPM: 125,
	ReadWPM:   200,
	Scale:     100,
}

// Statistics holds the coarse counts for one text.
type Statistics struct {
	WordCount      int
	CharacterCount int
	SentenceCount  int
	VocabularySize int
	SpeechSeconds  float64
	ReadSeconds    float64
}

// SpeechSpeed returns the speech time estimate as HH:MM:SS.
func (s Statistics) SpeechSpeed() string {
	return FormatClock(s.SpeechSeconds)
}

// ReadSpeed returns the reading time estimate as HH:MM:SS.
func (s Statistics) ReadSpeed() string {
	return FormatClock(s.ReadSeconds)
}

// Compute returns statistics for text using DefaultRates.
func Compute(text string) Statistics {
	return DefaultRates.Compute(text)
}

// Compute returns statistics for text.
func (r Rates) Compute(text string) Statistics {
	words := WordCount(text)
	return Statistics{
		WordCount:      words,
		CharacterCount: CharacterCount(text),
		SentenceCount:  SentenceCount(text),
		VocabularySize: VocabularySize(text),
		SpeechSeconds:  r.seconds(words, r.SpeechWPM),
		ReadSeconds:    r.seconds(words, r.ReadWPM),
	}
}

func (r Rates) seconds(words int, wpm float64) float64 {
	if words == 0 || wpm <= 0 {
		return 0
	}
	return float64(words) / wpm * r.Scale
}

// Validate reports whether the rates can produce estimates.
func (r Rates) Validate() error {
	if r.SpeechWPM <= 0 {
		return fmt.Errorf("speech rate must be > 0, got %v", r.SpeechWPM)
	}
	if r.ReadWPM <= 0 {
		return fmt.Errorf("read rate must be > 0, got %v", r.ReadWPM)
	}
	if r.Scale <= 0 {
		return fmt.Errorf("time scale must be > 0, got %v", r.Scale)
	}
	return nil
}

// WordCount counts whitespace-delimited tokens that keep at least one
// Arabic rune once non-Arabic runes are removed.
func WordCount(text string) int {
	count := 0
	for _, token := range strings.Fields(text) {
		if tokenize.IsArabic(token) {
			count++
		}
	}
	return count
}

// CharacterCount counts Arabic runes in text.
func CharacterCount(text string) int {
	count := 0
	for _, r := range text {
		if tokenize.IsArabicRune(r) {
			count++
		}
	}
	return count
}

// SentenceCount counts sentences with the general-purpose segmenter.
func SentenceCount(text string) int {
	return len(tokenize.Segment(text))
}

// VocabularySize counts distinct Arabic-only forms of the
// whitespace-delimited tokens of text.
func VocabularySize(text string) int {
	seen := make(map[string]struct{})
	for _, token := range strings.Fields(text) {
		cleaned := tokenize.StripNonArabic(token)
		if cleaned == "" {
			continue
		}
		seen[cleaned] = struct{}{}
	}
	return len(seen)
}

// FormatClock renders seconds as HH:MM:SS. Hours wrap at 24 and fractional
// seconds are truncated. Negative and NaN inputs render as 00:00:00.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		return "00:00:00"
	}
	if math.IsInf(seconds, 1) {
		seconds = 0
	}
	total := int64(seconds)
	total %= 24 * 3600
	hours := total / 3600
	total %= 3600
	minutes := total / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
