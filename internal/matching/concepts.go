package matching

import "regexp"

const (
	minSentenceLength = 10
	minPhraseLength   = 3
)

var sentenceSplit = regexp.MustCompile(`[.!?;]` + space + `*`)

// ExtractConcepts splits text into lowercased phrases in document order. Duplicates are kept.
func (l *Locale) ExtractConcepts(text string) []string {
	if text == "" {
		return nil
	}

	var concepts []string
	for _, sentence := range sentenceSplit.Split(lower(text), -1) {
		if runeLen(trim(sentence)) < minSentenceLength {
			continue
		}

		for _, phrase := range l.phraseSplit.Split(sentence, -1) {
			phrase = trim(phrase)
			if runeLen(phrase) > minPhraseLength {
				concepts = append(concepts, phrase)
			}
		}
	}

	return concepts
}
