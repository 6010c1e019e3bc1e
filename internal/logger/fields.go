package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/profile-matcher/internal/matching"
)

const (
	// FieldProfileKind is the structured log field key for the profile side (candidate or vacancy).
	FieldProfileKind = "profile_kind"
	// FieldProfileID is the structured log field key for the profile identifier.
	FieldProfileID = "profile_id"
	// FieldSubjectID is the structured log field key for a scored applicant or vacancy.
	FieldSubjectID = "subject_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ProfileFields returns the fields identifying the profile a search runs for.
func ProfileFields(kind, id string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProfileKind, Value: kind},
		StringField{Key: FieldProfileID, Value: id},
	)
}

// WithProfileFields attaches the profile fields to the provided logger.
func WithProfileFields(logger *zap.Logger, kind, id string) *zap.Logger {
	return WithFields(logger, ProfileFields(kind, id)...)
}

// MatchFields describes one scored subject. A nil result yields only the subject field.
func MatchFields(subjectID string, r *matching.Result) []zap.Field {
	fields := StringFields(StringField{Key: FieldSubjectID, Value: subjectID})
	if r == nil {
		return fields
	}

	return append(fields,
		zap.Int("final_score", r.FinalScore),
		zap.Int("semantic_similarity", r.SemanticSimilarity),
		zap.Int("skills_match", r.SkillsMatch),
		zap.Int("experience_match", r.ExperienceMatch),
	)
}
