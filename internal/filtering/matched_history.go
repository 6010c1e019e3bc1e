package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

const (
	MatchedHistoryName = "matched_history"
	skipMatchedOffMsg  = "skip-matched is off"
)

type matchedHistoryFilter struct {
	toggle
	skip bool
}

// NewMatchedHistory creates a filter that removes subjects already matched against the profile.
func NewMatchedHistory() Filter {
	return &matchedHistoryFilter{}
}

func (f *matchedHistoryFilter) Name() string { return MatchedHistoryName }

func (f *matchedHistoryFilter) Validate(cfg *Config) error {
	f.skip = cfg != nil && cfg.SkipMatched
	return nil
}

func (f *matchedHistoryFilter) Apply(ctx context.Context, deps Deps, p *Pool) (*Pool, Step, error) {
	initial := p.Len()
	if !f.skip {
		if deps.Logger != nil {
			deps.Logger.Debug("keeping already matched subjects", zap.String("reason", skipMatchedOffMsg))
		}
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	if deps.History == nil {
		return p, Step{}, fmt.Errorf("match history is required")
	}

	matched, err := deps.History.MatchedSubjects(ctx, deps.Kind, deps.ProfileID)
	if err != nil {
		return p, Step{}, fmt.Errorf("get matched subjects: %w", err)
	}

	excluded := p.Keep(func(e *Entry) bool {
		_, found := matched[e.Subject.SubjectID()]
		return !found
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding subjects already matched against the profile",
			zap.String("profile_id", deps.ProfileID),
			zap.Strings("excluded_subjects", excluded),
			zap.Int("subjects_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(excluded), Left: p.Len()}, nil
}

func (f *matchedHistoryFilter) Status() Status {
	details := map[string]string{
		"skip_matched": strconv.FormatBool(f.skip),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
