package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// abbreviations suppress a sentence break after a dotted short form.
// Keys are lowercase and carry no trailing dot.
var abbreviations = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "prof": true,
	"st": true, "vs": true, "etc": true, "e.g": true, "i.e": true,
	"inc": true, "ltd": true, "jr": true, "sr": true,
	"fig": true, "vol": true, "pp": true,
}

// isSentenceEnder reports whether r can close a sentence. Only the Latin
// marks count; the Arabic question mark and the ellipsis rune do not.
func isSentenceEnder(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	}
	return false
}

// isCloser reports whether r is a closing quote or bracket that may follow
// terminal punctuation and still belong to the same sentence.
func isCloser(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', '»', ')', ']', '}':
		return true
	}
	return false
}

// Segment splits text into sentences without any language-specific rules
// beyond a short abbreviation list. A boundary is a cluster of terminal
// punctuation (optionally followed by closing quotes or brackets) that is
// followed by whitespace or the end of the text. Returned sentences are
// trimmed; whitespace-only pieces are dropped.
func Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := make([]string, 0, len(text)/60+1)
	start := 0
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isSentenceEnder(r) {
			i += size
			continue
		}
		if r == '.' && isAbbreviation(text, i) {
			i += size
			continue
		}

		// Consume the whole cluster, e.g. "?!" or "...".
		j := i + size
		for j < len(text) {
			nr, ns := utf8.DecodeRuneInString(text[j:])
			if !isSentenceEnder(nr) && !isCloser(nr) {
				break
			}
			j += ns
		}

		if j == len(text) || startsWithSpace(text[j:]) {
			sentences = appendSentence(sentences, text[start:j])
			start = j
		}
		i = j
	}
	sentences = appendSentence(sentences, text[start:])
	return sentences
}

func appendSentence(sentences []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentences
	}
	return append(sentences, s)
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

// isAbbreviation reports whether the dot at dotPos ends a known
// abbreviation. Dots inside the word ("e.g") are part of the lookup key.
func isAbbreviation(text string, dotPos int) bool {
	start := dotPos
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !unicode.IsLetter(r) && r != '.' {
			break
		}
		start -= size
	}
	word := strings.Trim(text[start:dotPos], ".")
	if word == "" {
		return false
	}
	return abbreviations[strings.ToLower(word)]
}
