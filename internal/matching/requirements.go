package matching

import "sort"

const (
	minRequirementLength = 2
	minTokenLength       = 3
)

// ExtractRequirements pulls skill and requirement fragments out of labeled sections
// ("требования: ...", "skills: ..."). When no section yields a fragment it falls back to
// every plain word of three or more letters minus the locale stoplist. The result is
// deduplicated and sorted.
func (l *Locale) ExtractRequirements(text string) []string {
	if text == "" {
		return nil
	}

	text = lower(text)

	var found []string
	for _, section := range l.sections {
		for _, match := range section.FindAllStringSubmatch(text, -1) {
			for _, item := range l.itemSplit.Split(match[1], -1) {
				item = trim(item)
				if runeLen(item) > minRequirementLength {
					found = append(found, item)
				}
			}
		}
	}

	if len(found) == 0 {
		found = l.fallbackTokens(text)
	}

	return dedupe(found)
}

func (l *Locale) fallbackTokens(text string) []string {
	var tokens []string
	for _, w := range words(text) {
		if runeLen(w) < minTokenLength || !onlyTokenRunes(w) {
			continue
		}
		if _, stop := l.stopwords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func onlyTokenRunes(s string) bool {
	for _, r := range s {
		if !isTokenRune(r) {
			return false
		}
	}
	return true
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}

	sort.Strings(out)
	return out
}
