package matching

// semanticCutoff is the ratio a concept's best counterpart must exceed to count at all.
const semanticCutoff = 0.6

// SemanticSimilarity compares the concepts of two texts. Each concept of text1 contributes
// the ratio of its best counterpart in text2 when that ratio exceeds the cutoff; the sum is
// divided by the larger concept count, so documents of very different size score low.
func (l *Locale) SemanticSimilarity(text1, text2 string) int {
	if text1 == "" || text2 == "" {
		return 0
	}

	concepts1 := l.ExtractConcepts(text1)
	concepts2 := l.ExtractConcepts(text2)
	if len(concepts1) == 0 || len(concepts2) == 0 {
		return 0
	}

	best := newBestRatio(concepts2)
	total := 0.0
	for _, concept := range concepts1 {
		if r := best.of(concept); r > semanticCutoff {
			total += r
		}
	}

	return percent(total / float64(max(len(concepts1), len(concepts2))))
}

// SkillsMatch averages, over the required items, the best ratio each one reaches against
// the candidate items. A profile without requirements is fully satisfied.
func SkillsMatch(candidate, required []string) int {
	if len(required) == 0 {
		return 100
	}

	total := 0.0
	for _, req := range required {
		best := 0.0
		for _, skill := range candidate {
			if r := Ratio(skill, req); r > best {
				best = r
			}
		}
		total += best
	}

	return percent(total / float64(len(required)))
}

// percent converts a [0,1] fraction to a floor-truncated integer percentage.
func percent(fraction float64) int {
	return clamp(int(fraction * 100))
}

func clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
