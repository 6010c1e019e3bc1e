package matching

import "github.com/pmezard/go-difflib/difflib"

// Ratio returns the difflib sequence-matcher ratio of a and b over code points: twice the
// size of the greedily matched blocks divided by the combined length. Two empty strings
// compare as 1.0.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// bestRatio returns the highest ratio of a against every candidate in bs, keeping a as the
// first sequence. Matchers for the second sequence are built once and reused.
type bestRatio struct {
	matchers []*difflib.SequenceMatcher
}

func newBestRatio(bs []string) *bestRatio {
	matchers := make([]*difflib.SequenceMatcher, 0, len(bs))
	for _, b := range bs {
		matchers = append(matchers, difflib.NewMatcher(nil, splitRunes(b)))
	}
	return &bestRatio{matchers: matchers}
}

func (br *bestRatio) of(a string) float64 {
	seq := splitRunes(a)
	best := 0.0
	for _, m := range br.matchers {
		m.SetSeq1(seq)
		if r := m.Ratio(); r > best {
			best = r
		}
	}
	return best
}
