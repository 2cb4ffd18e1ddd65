package features

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrequencyDistribution maps each distinct word (exact string) to its
// number of occurrences.
type FrequencyDistribution map[string]int

// Frequencies counts words.
func Frequencies(words []string) FrequencyDistribution {
	fd := make(FrequencyDistribution, len(words))
	for _, w := range words {
		fd[w]++
	}
	return fd
}

// Total returns the number of tokens counted.
func (fd FrequencyDistribution) Total() int {
	n := 0
	for _, c := range fd {
		n += c
	}
	return n
}

// Distinct returns the number of distinct words.
func (fd FrequencyDistribution) Distinct() int {
	return len(fd)
}

// WithCount returns how many distinct words occur exactly n times.
func (fd FrequencyDistribution) WithCount(n int) int {
	k := 0
	for _, c := range fd {
		if c == n {
			k++
		}
	}
	return k
}

// Counts returns the occurrence counts ordered by word, so that sums over
// them do not depend on map iteration order.
func (fd FrequencyDistribution) Counts() []int {
	keys := make([]string, 0, len(fd))
	for w := range fd {
		keys = append(keys, w)
	}
	sort.Strings(keys)
	counts := make([]int, len(keys))
	for i, w := range keys {
		counts[i] = fd[w]
	}
	return counts
}

// Probabilities returns the relative frequency of each word, in Counts
// order. An empty distribution yields nil.
func (fd FrequencyDistribution) Probabilities() []float64 {
	total := fd.Total()
	if total == 0 {
		return nil
	}
	counts := fd.Counts()
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / float64(total)
	}
	return p
}

// Entropy returns the Shannon entropy (natural log) of the distribution.
func (fd FrequencyDistribution) Entropy() float64 {
	p := fd.Probabilities()
	if len(p) == 0 {
		return 0
	}
	h := stat.Entropy(p)
	if h <= 0 {
		// Normalizes -0 for a single-word distribution.
		return 0
	}
	return h
}

// Simpson returns the probability that two words drawn with replacement
// are identical.
func (fd FrequencyDistribution) Simpson() float64 {
	p := fd.Probabilities()
	if len(p) == 0 {
		return 0
	}
	return floats.Dot(p, p)
}

// ShannonEntropy is the entropy of the frequency distribution of words.
// Both the richness and readability extractors call it.
func ShannonEntropy(words []string) float64 {
	return Frequencies(words).Entropy()
}

// SimpsonsIndex is Simpson's index of the frequency distribution of words.
// Both the richness and readability extractors call it.
func SimpsonsIndex(words []string) float64 {
	return Frequencies(words).Simpson()
}
