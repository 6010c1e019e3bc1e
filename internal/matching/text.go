package matching

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower applies full Unicode case mapping. A Caser keeps state, so one is built per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func isSpace(r rune) bool {
	if r >= 0x1c && r <= 0x1f {
		return true
	}
	return unicode.IsSpace(r)
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isTokenRune reports whether r belongs to the fallback token alphabet: lowercase Latin and
// the basic Cyrillic block (ё is outside of it).
func isTokenRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'а' && r <= 'я')
}

// words returns maximal runs of word characters in document order.
func words(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
