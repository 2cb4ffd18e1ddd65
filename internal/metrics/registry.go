package metrics

import (
	"fmt"
	"sort"
	"strings"
)

// floatPrecision is the number of decimals kept for float metrics.
const floatPrecision = 4

var registry = []Definition{
	{
		ID:           "MET001",
		Name:         "words",
		Column:       "Words",
		Description:  "Whitespace-delimited tokens holding Arabic characters.",
		Group:        GroupStatistics,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Statistics().WordCount)
		},
	},
	{
		ID:           "MET002",
		Name:         "characters",
		Column:       "Characters",
		Description:  "Characters in the Arabic Unicode block.",
		Group:        GroupStatistics,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Statistics().CharacterCount)
		},
	},
	{
		ID:           "MET003",
		Name:         "sentence-count",
		Column:       "Sentence Count",
		Description:  "Sentences found by the general-purpose segmenter.",
		Group:        GroupStatistics,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Statistics().SentenceCount)
		},
	},
	{
		ID:           "MET004",
		Name:         "vocabulary",
		Column:       "Vocabulary",
		Description:  "Distinct Arabic-only word forms.",
		Group:        GroupStatistics,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Statistics().VocabularySize)
		},
	},
	{
		ID:           "MET005",
		Name:         "speech-speed",
		Column:       "Speech Speed",
		Description:  "Estimated time to read the text aloud (HH:MM:SS).",
		Group:        GroupStatistics,
		Kind:         KindDuration,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Statistics().SpeechSeconds)
		},
	},
	{
		ID:           "MET006",
		Name:         "read-speed",
		Column:       "Read Speed",
		Description:  "Estimated time to read the text silently (HH:MM:SS).",
		Group:        GroupStatistics,
		Kind:         KindDuration,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Statistics().ReadSeconds)
		},
	},
	{
		ID:           "MET007",
		Name:         "avg-word-length",
		Column:       "Average Word Length",
		Description:  "Mean number of characters per Arabic word.",
		Group:        GroupLexical,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Lexical().AvgWordLength)
		},
	},
	{
		ID:           "MET008",
		Name:         "avg-sentence-length-by-word",
		Column:       "Average Sentence Length By Word",
		Description:  "Mean number of Arabic words per sentence.",
		Group:        GroupLexical,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Lexical().AvgSentenceLengthByWord)
		},
	},
	{
		ID:           "MET009",
		Name:         "avg-sentence-length-by-character",
		Column:       "Average Sentence Length By Character",
		Description:  "Mean number of characters per sentence.",
		Group:        GroupLexical,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Lexical().AvgSentenceLengthByCharacter)
		},
	},
	{
		ID:           "MET010",
		Name:         "special-character-count",
		Column:       "Special Character Count",
		Description:  "Characters that are not ASCII letters, digits or whitespace.",
		Group:        GroupLexical,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Lexical().SpecialCharacterCount)
		},
	},
	{
		ID:           "MET011",
		Name:         "avg-syllables-per-word",
		Column:       "Average Syllable per Word",
		Description:  "Mean number of vowel characters per Arabic word.",
		Group:        GroupLexical,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Lexical().AvgSyllablesPerWord)
		},
	},
	{
		ID:           "MET012",
		Name:         "functional-word-count",
		Column:       "Functional Words Count",
		Description:  "Arabic words in the function-word set.",
		Group:        GroupLexical,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Lexical().FunctionalWordCount)
		},
	},
	{
		ID:           "MET013",
		Name:         "punctuation-count",
		Column:       "Punctuation Count",
		Description:  "Punctuation marks from the set . ، ! ? ؛ :",
		Group:        GroupLexical,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Lexical().PunctuationCount)
		},
	},
	{
		ID:           "MET014",
		Name:         "hapax-legomena",
		Column:       "Hapax Legomenon",
		Description:  "Words occurring exactly once.",
		Group:        GroupRichness,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Richness().HapaxLegomena)
		},
	},
	{
		ID:           "MET015",
		Name:         "hapax-dislegomena",
		Column:       "Hapax DisLegemena",
		Description:  "Words occurring exactly twice.",
		Group:        GroupRichness,
		Kind:         KindInteger,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return count(doc.Richness().HapaxDislegomena)
		},
	},
	{
		ID:           "MET016",
		Name:         "honores-r",
		Column:       "Honores R Measure",
		Description:  "Hapax legomena divided by word count.",
		Group:        GroupRichness,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Richness().HonoresR)
		},
	},
	{
		ID:           "MET017",
		Name:         "sichels-s",
		Column:       "Sichel's Measure",
		Description:  "Hapax dislegomena divided by word count.",
		Group:        GroupRichness,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Richness().SichelsS)
		},
	},
	{
		ID:           "MET018",
		Name:         "brunets-w",
		Column:       "Brunet's Measure W",
		Description:  "(distinct words - 0.17) / ln(words + 1).",
		Group:        GroupRichness,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Richness().BrunetsW)
		},
	},
	{
		ID:           "MET019",
		Name:         "yules-k",
		Column:       "Yule's Characteristic K",
		Description:  "Concentration of word frequencies (higher is more repetitive).",
		Group:        GroupRichness,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Richness().YulesK)
		},
	},
	{
		ID:           "MET020",
		Name:         "shannon-entropy",
		Column:       "Shannon Entropy",
		Description:  "Entropy of the word-frequency distribution (natural log).",
		Group:        GroupRichness,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Richness().ShannonEntropy)
		},
	},
	{
		ID:           "MET021",
		Name:         "simpsons-index",
		Column:       "Simpson's Index",
		Description:  "Probability that two drawn words are identical.",
		Group:        GroupRichness,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Richness().SimpsonsIndex)
		},
	},
	{
		ID:           "MET022",
		Name:         "flesch-reading-ease",
		Column:       "Flesch Reading Ease",
		Description:  "Flesch reading ease (higher is easier).",
		Group:        GroupReadability,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderAsc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Readability().FleschReadingEase)
		},
	},
	{
		ID:           "MET023",
		Name:         "flesch-kincaid-grade",
		Column:       "Flesch-Kincaid Grade Level",
		Description:  "Flesch-Kincaid grade level.",
		Group:        GroupReadability,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Readability().FleschKincaidGrade)
		},
	},
	{
		ID:           "MET024",
		Name:         "gunning-fog",
		Column:       "Gunning Fog Index",
		Description:  "Gunning fog index from sentence length and complex words.",
		Group:        GroupReadability,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Readability().GunningFog)
		},
	},
	{
		ID:           "MET025",
		Name:         "dale-chall",
		Column:       "Dale Chall Readability Formula",
		Description:  "Dale-Chall score from difficult words and sentence length.",
		Group:        GroupReadability,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Readability().DaleChall)
		},
	},
	{
		ID:           "MET026",
		Name:         "readability-shannon-entropy",
		Column:       "Shannon Entropy",
		Description:  "Entropy of the word-frequency distribution, readability copy.",
		Group:        GroupReadability,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Readability().ShannonEntropy)
		},
	},
	{
		ID:           "MET027",
		Name:         "readability-simpsons-index",
		Column:       "Simpson's Index",
		Description:  "Simpson's index, readability copy.",
		Group:        GroupReadability,
		Kind:         KindFloat,
		Precision:    floatPrecision,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) Value {
			return AvailableValue(doc.Readability().SimpsonsIndex)
		},
	},
}

func count(n int) Value {
	return AvailableValue(float64(n))
}

// All returns all metrics sorted by ID.
func All() []Definition {
	defs := append([]Definition(nil), registry...)
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs
}

// ForGroup returns all metrics of a group, sorted by ID.
func ForGroup(group Group) []Definition {
	all := All()
	defs := make([]Definition, 0, len(all))
	for _, def := range all {
		if def.Group == group {
			defs = append(defs, def)
		}
	}
	return defs
}

// Lookup searches by metric ID (case-insensitive) or by name.
func Lookup(query string) (Definition, bool) {
	for _, def := range All() {
		if matches(def, query) {
			return def, true
		}
	}
	return Definition{}, false
}

// Resolve resolves user-selected metric names, IDs or group names.
// A group name selects every metric of that group. Empty names returns
// all metrics.
func Resolve(names []string) ([]Definition, error) {
	if len(names) == 0 {
		return All(), nil
	}

	seen := make(map[string]struct{}, len(names))
	defs := make([]Definition, 0, len(names))
	add := func(def Definition) {
		if _, exists := seen[def.ID]; exists {
			return
		}
		seen[def.ID] = struct{}{}
		defs = append(defs, def)
	}

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		if group, err := ParseGroup(name); err == nil {
			for _, def := range ForGroup(group) {
				add(def)
			}
			continue
		}

		def, ok := Lookup(name)
		if !ok {
			return nil, unknownMetricErr(name)
		}
		add(def)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no metrics selected")
	}
	return defs, nil
}

// SplitList parses comma-separated metric names.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matches(def Definition, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}
	return strings.EqualFold(def.ID, q) || def.Name == strings.ToLower(q)
}

func unknownMetricErr(name string) error {
	return fmt.Errorf(
		"unknown metric %q (available: %s)",
		name,
		strings.Join(availableNames(), ", "),
	)
}

func availableNames() []string {
	defs := All()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return names
}
