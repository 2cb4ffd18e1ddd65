package features

import (
	"strings"
	"unicode"

	"gonum.org/v1/gonum/stat"

	"github.com/jeduden/arastat/internal/tokenize"
)

// punctuationMarks are the runes counted by PunctuationCount. The comma
// is the Arabic comma U+060C and the semicolon the Arabic semicolon U+061B.
const punctuationMarks = ".،!?؛:"

// Lexical holds surface-complexity metrics for one text.
type Lexical struct {
	AvgWordLength                float64
	AvgSentenceLengthByWord      float64
	AvgSentenceLengthByCharacter float64
	SpecialCharacterCount        int
	AvgSyllablesPerWord          float64
	FunctionalWordCount          int
	PunctuationCount             int
}

// Lexical computes lexical features of text. Sentences are split on the
// lexical terminator set.
func (e *Extractor) Lexical(text string) Lexical {
	words := tokenize.Words(text)
	sentences := tokenize.Sentences(text, e.lexicalTerminators)

	wordLengths := make([]float64, len(words))
	syllables := make([]float64, len(words))
	functional := 0
	for i, w := range words {
		wordLengths[i] = float64(tokenize.RuneLen(w))
		syllables[i] = float64(e.Syllables(w))
		if e.IsFunctionWord(w) {
			functional++
		}
	}

	wordsPerSentence := make([]float64, len(sentences))
	charsPerSentence := make([]float64, len(sentences))
	for i, s := range sentences {
		wordsPerSentence[i] = float64(len(tokenize.Words(s)))
		charsPerSentence[i] = float64(tokenize.RuneLen(s))
	}

	return Lexical{
		AvgWordLength:                mean(wordLengths),
		AvgSentenceLengthByWord:      mean(wordsPerSentence),
		AvgSentenceLengthByCharacter: mean(charsPerSentence),
		SpecialCharacterCount:        SpecialCharacterCount(text),
		AvgSyllablesPerWord:          mean(syllables),
		FunctionalWordCount:          functional,
		PunctuationCount:             PunctuationCount(text),
	}
}

// SpecialCharacterCount counts runes that are not ASCII letters, ASCII
// digits or whitespace. Arabic letters count as special characters.
func SpecialCharacterCount(text string) int {
	n := 0
	for _, r := range text {
		if isASCIIAlnum(r) || unicode.IsSpace(r) {
			continue
		}
		n++
	}
	return n
}

// PunctuationCount counts runes of the punctuation set ". ، ! ? ؛ :".
func PunctuationCount(text string) int {
	n := 0
	for _, r := range text {
		if strings.ContainsRune(punctuationMarks, r) {
			n++
		}
	}
	return n
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// mean returns the arithmetic mean of xs, or 0 when xs is empty.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
