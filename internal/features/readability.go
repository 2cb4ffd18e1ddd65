package features

import "github.com/jeduden/arastat/internal/tokenize"

// Readability holds composite readability scores for one text.
type Readability struct {
	FleschReadingEase  float64
	FleschKincaidGrade float64
	GunningFog         float64
	DaleChall          float64
	ShannonEntropy     float64
	SimpsonsIndex      float64
}

// Readability computes readability scores of text. Sentences are split on
// the readability terminator set. When the text has no Arabic words or no
// sentences the four formulas are 0.
func (e *Extractor) Readability(text string) Readability {
	words := tokenize.Words(text)
	sentences := tokenize.Sentences(text, e.readabilityTerminators)

	r := Readability{
		ShannonEntropy: ShannonEntropy(words),
		SimpsonsIndex:  SimpsonsIndex(words),
	}

	nw := float64(len(words))
	ns := float64(len(sentences))
	if nw == 0 || ns == 0 {
		return r
	}

	syllables, complexWords, difficultWords := 0, 0, 0
	for _, w := range words {
		s := e.Syllables(w)
		syllables += s
		if s > 2 {
			complexWords++
		}
		if !e.IsFunctionWord(w) {
			difficultWords++
		}
	}

	wps := nw / ns
	spw := float64(syllables) / nw
	complexRatio := float64(complexWords) / nw
	percentDifficult := float64(difficultWords) / nw * 100

	r.FleschReadingEase = 206.835 - 1.015*wps - 84.6*spw
	r.FleschKincaidGrade = 0.39*wps + 11.8*spw - 15.59
	r.GunningFog = 0.4 * (wps + 100*complexRatio)
	r.DaleChall = 0.1579*percentDifficult + 0.0496*wps
	return r
}
