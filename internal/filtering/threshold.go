package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

type thresholdFilter struct {
	toggle
	min int
}

// NewThreshold creates a filter that removes scored subjects below the minimum final score.
func NewThreshold() Filter {
	return &thresholdFilter{}
}

func (f *thresholdFilter) Name() string { return "threshold" }

func (f *thresholdFilter) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("threshold configuration is required")
	}
	if cfg.MinScore < 0 || cfg.MinScore > 100 {
		return fmt.Errorf("minimum score %d is outside 0..100", cfg.MinScore)
	}
	f.min = cfg.MinScore
	return nil
}

func (f *thresholdFilter) Apply(_ context.Context, deps Deps, p *Pool) (*Pool, Step, error) {
	initial := p.Len()

	for _, e := range p.Items {
		if e.Result == nil {
			return p, Step{}, fmt.Errorf("subject %q has not been scored", e.Subject.SubjectID())
		}
	}

	rejected := p.Keep(func(e *Entry) bool {
		return e.Result.FinalScore >= f.min
	})
	if deps.Logger != nil && len(rejected) > 0 {
		deps.Logger.Debug("subjects below the minimum score",
			zap.Int("min_score", f.min),
			zap.Strings("rejected_subjects", rejected),
		)
	}

	return p, Step{Initial: initial, Dropped: len(rejected), Left: p.Len()}, nil
}

func (f *thresholdFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.Itoa(f.min)},
	}
}
