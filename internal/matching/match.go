// Package matching scores free-text resumes against ideal profiles, and vacancies against
// ideal vacancy profiles, with phrase extraction, difflib ratios and keyword voting.
package matching

import (
	"fmt"
	"strings"
)

const (
	semanticWeight   = 0.6
	skillsWeight     = 0.3
	experienceWeight = 0.1

	maxMatchedItems = 10
)

// Result is the outcome of comparing one document against one profile.
type Result struct {
	SemanticSimilarity int      `json:"semantic_similarity"`
	SkillsMatch        int      `json:"skills_match"`
	ExperienceMatch    int      `json:"experience_match"`
	FinalScore         int      `json:"final_score"`
	MatchedItems       []string `json:"matched_items"`
	Explanation        string   `json:"explanation"`
}

// Target is the profile side of a candidate comparison.
type Target struct {
	IdealText          string
	RequiredSkillsText string
	ExperienceLevel    string

	// Requirements overrides extraction from IdealText and RequiredSkillsText when non-nil.
	Requirements []string
}

// Engine binds the scorers to a locale.
type Engine struct {
	locale *Locale
}

// New returns an engine for the locale, Russian when nil.
func New(locale *Locale) *Engine {
	if locale == nil {
		locale = Russian
	}
	return &Engine{locale: locale}
}

// Locale returns the engine's locale.
func (e *Engine) Locale() *Locale {
	return e.locale
}

// Requirements returns the requirement set of a target.
func (e *Engine) Requirements(t Target) []string {
	if t.Requirements != nil {
		return t.Requirements
	}
	return e.locale.ExtractRequirements(t.IdealText + " " + t.RequiredSkillsText)
}

// Match compares a candidate document with a target profile.
func (e *Engine) Match(candidateText string, t Target) *Result {
	return e.MatchRequirements(candidateText, e.locale.ExtractRequirements(candidateText), t)
}

// MatchRequirements is Match with the candidate's requirement set already extracted.
func (e *Engine) MatchRequirements(candidateText string, candidateReqs []string, t Target) *Result {
	semantic := e.locale.SemanticSimilarity(candidateText, t.IdealText)
	skills := SkillsMatch(candidateReqs, e.Requirements(t))
	experience := e.locale.ExperienceMatch(candidateText, t.ExperienceLevel)

	matched := candidateReqs
	if len(matched) > maxMatchedItems {
		matched = matched[:maxMatchedItems]
	}

	return &Result{
		SemanticSimilarity: semantic,
		SkillsMatch:        skills,
		ExperienceMatch:    experience,
		FinalScore:         FinalScore(semantic, skills, experience),
		MatchedItems:       append([]string{}, matched...),
		Explanation:        e.locale.Explain(semantic, skills, experience),
	}
}

// MatchVacancy scores a vacancy text against an ideal vacancy text by meaning only.
func (e *Engine) MatchVacancy(vacancyText, idealText string) *Result {
	semantic := e.locale.SemanticSimilarity(vacancyText, idealText)
	return &Result{
		SemanticSimilarity: semantic,
		FinalScore:         semantic,
		MatchedItems:       []string{},
		Explanation:        fmt.Sprintf(e.locale.vacancyFormat, semantic),
	}
}

// FinalScore weights the sub-scores 0.6/0.3/0.1 and truncates.
func FinalScore(semantic, skills, experience int) int {
	// Each product is rounded on its own so no platform fuses the multiply-adds.
	weighted := float64(float64(semantic)*semanticWeight) +
		float64(float64(skills)*skillsWeight) +
		float64(float64(experience)*experienceWeight)
	return clamp(int(weighted))
}

// Explain renders the sub-scores as clauses joined by ". ".
func (l *Locale) Explain(semantic, skills, experience int) string {
	clauses := make([]string, 0, 3)

	switch {
	case semantic > 80:
		clauses = append(clauses, l.semanticClauses[0])
	case semantic > 60:
		clauses = append(clauses, l.semanticClauses[1])
	case semantic > 40:
		clauses = append(clauses, l.semanticClauses[2])
	default:
		clauses = append(clauses, l.semanticClauses[3])
	}

	switch {
	case skills > 80:
		clauses = append(clauses, l.skillsHigh)
	case skills > 60:
		clauses = append(clauses, l.skillsGood)
	}

	if experience > 80 {
		clauses = append(clauses, l.experienceIdeal)
	}

	return strings.Join(clauses, ". ")
}
