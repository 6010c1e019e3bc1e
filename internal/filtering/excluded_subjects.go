package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type excludedSubjectsFilter struct {
	toggle
	subjects []string
}

// NewExcludedSubjects creates a filter that removes subjects listed in the config.
func NewExcludedSubjects() Filter {
	return &excludedSubjectsFilter{}
}

func (f *excludedSubjectsFilter) Name() string { return "excluded_subjects" }

func (f *excludedSubjectsFilter) Validate(cfg *Config) error {
	f.subjects = nil
	if cfg != nil {
		f.subjects = append(f.subjects, cfg.ExcludedSubjects...)
	}
	return nil
}

func (f *excludedSubjectsFilter) Apply(_ context.Context, deps Deps, p *Pool) (*Pool, Step, error) {
	initial := p.Len()
	if len(f.subjects) == 0 {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	excluded := p.Exclude(f.subjects)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding subjects listed in config",
			zap.Strings("excluded_subjects", excluded),
			zap.Int("subjects_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(excluded), Left: p.Len()}, nil
}

func (f *excludedSubjectsFilter) Status() Status {
	details := map[string]string{}
	if len(f.subjects) > 0 {
		details["subjects"] = strings.Join(f.subjects, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
