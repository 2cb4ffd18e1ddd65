// Package tokenize splits Arabic text into words and sentences.
//
// Words are maximal runs of Unicode word characters: letters, marks,
// numbers of any kind (digits, letter numbers, superscripts, fractions)
// and connector punctuation such as '_'. Harakat are marks, so a
// vocalized word stays one token. A word is Arabic
// when it holds at least one code point in the Arabic block U+0600-U+06FF.
//
// Two sentence splitters are provided. Sentences splits on a caller-chosen
// set of terminator runes and is what the feature extractors use. Segment is
// a general-purpose segmenter used for coarse text statistics.
//
// All functions are pure and safe for concurrent use.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Arabic block bounds.
const (
	ArabicFirst = '؀'
	ArabicLast  = 'ۿ'
)

// Terminator sets used by the feature extractors. They differ on purpose:
// lexical features split on the Latin question mark, readability scores on
// the Arabic one.
const (
	LexicalTerminators     = ".!?"
	ReadabilityTerminators = ".!؟"
)

// IsArabicRune reports whether r lies in the Arabic block.
func IsArabicRune(r rune) bool {
	return r >= ArabicFirst && r <= ArabicLast
}

// IsArabic reports whether token contains at least one Arabic rune.
func IsArabic(token string) bool {
	for _, r := range token {
		if IsArabicRune(r) {
			return true
		}
	}
	return false
}

// IsWordRune reports whether r belongs to the Unicode word-character class.
func IsWordRune(r rune) bool {
	return r == '_' ||
		unicode.IsLetter(r) ||
		unicode.IsMark(r) ||
		unicode.IsNumber(r) ||
		unicode.Is(unicode.Pc, r)
}

// AllWords returns every word-character run in text, in order.
func AllWords(text string) []string {
	if text == "" {
		return nil
	}
	words := make([]string, 0, len(text)/6+1)
	start := -1
	for i, r := range text {
		if IsWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// Words returns the Arabic words of text, in order. Non-Arabic runs are
// dropped.
func Words(text string) []string {
	all := AllWords(text)
	words := all[:0]
	for _, w := range all {
		if IsArabic(w) {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}
	return words
}

// Sentences splits text on every rune of terminators and drops empty
// pieces. Pieces are returned untrimmed.
func Sentences(text, terminators string) []string {
	if text == "" {
		return nil
	}
	pieces := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(terminators, r)
	})
	if len(pieces) == 0 {
		return nil
	}
	return pieces
}

// RuneLen returns the number of code points in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// StripNonArabic keeps only the Arabic runes of token.
func StripNonArabic(token string) string {
	var b strings.Builder
	for _, r := range token {
		if IsArabicRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
