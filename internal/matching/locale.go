package matching

import (
	"fmt"
	"regexp"
	"strings"
)

// spaceChars mirrors the Unicode whitespace class of Python-flavoured \s; RE2 limits \s to ASCII.
const (
	spaceChars = `\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}`
	space      = `[` + spaceChars + `]`
)

// Locale holds every language-specific word list used by the extractors, the experience
// classifier and the explanation generator.
type Locale struct {
	Name string

	and string
	or  string

	// requirementLabels are regexp fragments naming a labeled section ("requirements:").
	requirementLabels []string
	stopwords         map[string]struct{}
	levelKeywords     map[Level][]string

	semanticClauses [4]string // excellent, good, moderate, weak
	skillsHigh      string
	skillsGood      string
	experienceIdeal string
	vacancyFormat   string

	phraseSplit *regexp.Regexp
	sections    []*regexp.Regexp
	itemSplit   *regexp.Regexp
}

// Russian is the locale the heuristics were tuned for.
var Russian = compileLocale(&Locale{
	Name: "ru",
	and:  "и",
	or:   "или",
	requirementLabels: []string{
		`требования?`,
		`навыки?`,
		`умение`,
		`обязанности?`,
		`знание`,
	},
	stopwords: set("работа", "опыт", "знание", "умение", "требование", "навык"),
	levelKeywords: map[Level][]string{
		LevelJunior: {"стажер", "начинающий", "младший", "без опыта", "учусь"},
		LevelMiddle: {"опыт", "работал", "разрабатывал", "создавал", "участвовал"},
		LevelSenior: {"ведущий", "старший", "руководил", "управлял", "архитектура", "стратеги"},
		LevelLead:   {"тимлид", "руководитель", "управление", "менеджер", "координация"},
	},
	semanticClauses: [4]string{
		"Отличное смысловое соответствие",
		"Хорошее смысловое соответствие",
		"Умеренное смысловое соответствие",
		"Слабое смысловое соответствие",
	},
	skillsHigh:      "высокое совпадение требований",
	skillsGood:      "хорошее совпадение требований",
	experienceIdeal: "идеальное соответствие уровня опыта",
	vacancyFormat:   "Смысловое соответствие: %d%%",
})

// English re-derives the word lists for English-language resumes and profiles.
var English = compileLocale(&Locale{
	Name: "en",
	and:  "and",
	or:   "or",
	requirementLabels: []string{
		`requirements?`,
		`skills?`,
		`ability`,
		`responsibilit(?:y|ies)`,
		`knowledge`,
	},
	stopwords: set("work", "experience", "knowledge", "skill", "requirement", "ability"),
	levelKeywords: map[Level][]string{
		LevelJunior: {"intern", "beginner", "junior", "no experience", "learning"},
		LevelMiddle: {"experience", "worked", "developed", "built", "participated"},
		LevelSenior: {"leading", "senior", "supervised", "administered", "architecture", "strateg"},
		LevelLead:   {"team lead", "teamlead", "manager", "management", "leadership", "coordination"},
	},
	semanticClauses: [4]string{
		"Excellent semantic match",
		"Good semantic match",
		"Moderate semantic match",
		"Weak semantic match",
	},
	skillsHigh:      "high requirements match",
	skillsGood:      "good requirements match",
	experienceIdeal: "ideal experience-level match",
	vacancyFormat:   "Semantic match: %d%%",
})

var locales = map[string]*Locale{
	Russian.Name: Russian,
	English.Name: English,
}

// LocaleByName returns a registered locale. An empty name selects Russian.
func LocaleByName(name string) (*Locale, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Russian, nil
	}

	l, ok := locales[name]
	if !ok {
		return nil, fmt.Errorf("unknown locale %q", name)
	}

	return l, nil
}

func compileLocale(l *Locale) *Locale {
	and := regexp.QuoteMeta(l.and)
	or := regexp.QuoteMeta(l.or)

	l.phraseSplit = regexp.MustCompile(`[,:;]` + space + `+|` +
		space + `+` + and + space + `+|` +
		space + `+` + or + space + `+`)

	for _, label := range l.requirementLabels {
		l.sections = append(l.sections, regexp.MustCompile(label+`[:`+spaceChars+`]*([^.!?]+)[.!?]`))
	}

	l.itemSplit = regexp.MustCompile(`[,;]|` + space + `+` + and + space + `+`)

	return l
}

func set(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
