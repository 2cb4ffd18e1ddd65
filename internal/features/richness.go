package features

import (
	"math"

	"github.com/jeduden/arastat/internal/tokenize"
)

// Richness holds vocabulary-richness indices for one text.
type Richness struct {
	HapaxLegomena    int
	HapaxDislegomena int
	HonoresR         float64
	SichelsS         float64
	BrunetsW         float64
	YulesK           float64
	ShannonEntropy   float64
	SimpsonsIndex    float64
}

// Richness computes vocabulary-richness indices of the Arabic words of text.
func (e *Extractor) Richness(text string) Richness {
	return RichnessOf(tokenize.Words(text))
}

// RichnessOf computes vocabulary-richness indices of words. With no words
// every index is 0.
func RichnessOf(words []string) Richness {
	n := len(words)
	if n == 0 {
		return Richness{}
	}

	fd := Frequencies(words)
	v1 := fd.WithCount(1)
	v2 := fd.WithCount(2)
	total := float64(n)

	return Richness{
		HapaxLegomena:    v1,
		HapaxDislegomena: v2,
		HonoresR:         ratio(float64(v1), total),
		SichelsS:         ratio(float64(v2), total),
		BrunetsW:         ratio(float64(fd.Distinct())-0.17, math.Log(total+1)),
		YulesK:           yulesK(fd, total),
		ShannonEntropy:   ShannonEntropy(words),
		SimpsonsIndex:    SimpsonsIndex(words),
	}
}

func yulesK(fd FrequencyDistribution, n float64) float64 {
	m := 0.0
	for _, c := range fd.Counts() {
		m += float64(c) * float64(c)
	}
	return ratio(10000*(m-n), n*n)
}
