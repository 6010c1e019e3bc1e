package matching

import "strings"

// Level is a seniority level inferred from text or requested by a profile.
type Level string

const (
	LevelIntern Level = "intern"
	LevelJunior Level = "junior"
	LevelMiddle Level = "middle"
	LevelSenior Level = "senior"
	LevelLead   Level = "lead"
)

// levelOrder is the total order used for distance scoring. Intern has no position in it.
var levelOrder = []Level{LevelJunior, LevelMiddle, LevelSenior, LevelLead}

const (
	experienceExact    = 100
	experienceAdjacent = 70
	experienceDistant  = 30
)

// ParseLevel normalizes s and reports whether it names a level with a position in the order.
func ParseLevel(s string) (Level, bool) {
	level := Level(strings.ToLower(strings.TrimSpace(s)))
	return level, level.Index() >= 0
}

// Index returns the position of the level in the junior..lead order, or -1.
func (lv Level) Index() int {
	for i, l := range levelOrder {
		if l == lv {
			return i
		}
	}
	return -1
}

// ClassifyExperience votes for a level by counting how many of its keywords occur in text.
// The first level reaching the highest count wins. ok is false when no keyword occurs.
func (l *Locale) ClassifyExperience(text string) (level Level, ok bool) {
	text = lower(text)

	best := 0
	for _, candidate := range levelOrder {
		weight := 0
		for _, keyword := range l.levelKeywords[candidate] {
			if strings.Contains(text, keyword) {
				weight++
			}
		}
		if weight > best {
			best = weight
			level = candidate
		}
	}

	return level, best > 0
}

// ExperienceMatch scores the inferred level of text against target: 100 on equality, 70 for
// adjacent levels, 30 otherwise (including an unknown target), 0 when nothing is inferred.
func (l *Locale) ExperienceMatch(text, target string) int {
	dominant, ok := l.ClassifyExperience(text)
	if !ok {
		return 0
	}

	targetLevel, known := ParseLevel(target)
	if dominant == targetLevel {
		return experienceExact
	}

	if !known {
		return experienceDistant
	}

	idx := targetLevel.Index()

	if diff := dominant.Index() - idx; diff == 1 || diff == -1 {
		return experienceAdjacent
	}

	return experienceDistant
}
