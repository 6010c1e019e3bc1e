// Package search ranks a pool of applicants or vacancies against an ideal profile and
// persists the ranked set as match records.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/profile-matcher/internal/filtering"
	"github.com/spigell/profile-matcher/internal/logger"
	"github.com/spigell/profile-matcher/internal/matching"
	"github.com/spigell/profile-matcher/internal/records"
)

const DefaultWorkers = 4

// Scorer compares documents. *matching.Engine implements it.
type Scorer interface {
	Requirements(t matching.Target) []string
	Match(candidateText string, t matching.Target) *matching.Result
	MatchVacancy(vacancyText, idealText string) *matching.Result
}

// CandidatePool fetches the applicants a candidate profile is searched against.
type CandidatePool interface {
	Candidates(ctx context.Context, profile *records.CandidateProfile) ([]*records.Applicant, error)
}

// VacancyPool fetches the vacancies a vacancy profile is searched against.
type VacancyPool interface {
	Vacancies(ctx context.Context, profile *records.VacancyProfile) ([]*records.Vacancy, error)
}

// MatchSink persists match records.
type MatchSink interface {
	SaveMatch(ctx context.Context, m *records.Match) error
}

// Options tune a Searcher. Zero values select the defaults.
type Options struct {
	Workers int
	Logger  *zap.Logger
	Filter  filtering.Config
	History filtering.History
}

type Searcher struct {
	scorer  Scorer
	workers int
	logger  *zap.Logger
	filter  filtering.Config
	history filtering.History

	now   func() time.Time
	newID func() string
}

func New(scorer Scorer, opts Options) *Searcher {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	return &Searcher{
		scorer:  scorer,
		workers: workers,
		logger:  logger.WithFields(opts.Logger),
		filter:  opts.Filter,
		history: opts.History,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Ranked is the outcome of one search: scored subjects in final order.
type Ranked struct {
	Kind      records.ProfileKind
	ProfileID string
	Items     []*filtering.Entry
}

func (r *Ranked) Len() int {
	return len(r.Items)
}

// Candidates scores the published applicants against the profile, keeps those whose final
// score reaches the profile minimum, ranks them by semantic similarity and caps the result.
func (s *Searcher) Candidates(ctx context.Context, profile *records.CandidateProfile, pool CandidatePool) (*Ranked, error) {
	log := logger.WithProfileFields(s.logger, string(records.KindCandidate), profile.ID)

	if _, ok := matching.ParseLevel(profile.ExperienceLevel); !ok {
		log.Warn("unrecognized experience level; experience will score at most 30",
			zap.String("experience_level", profile.ExperienceLevel),
		)
	}

	applicants, err := pool.Candidates(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("fetching candidate pool: %w", err)
	}
	log.Info("candidate pool fetched", zap.Int("applicants", len(applicants)))

	target := profile.Target()
	target.Requirements = s.scorer.Requirements(target)
	if target.Requirements == nil {
		target.Requirements = []string{}
	}

	return rank(ctx, s, log, rankParams[*records.Applicant]{
		kind:      records.KindCandidate,
		profileID: profile.ID,
		min:       profile.MinMatchPercentage,
		max:       profile.MaxCandidates,
		subjects:  applicants,
		score: func(a *records.Applicant) *matching.Result {
			return s.scorer.Match(a.FullResumeText(), target)
		},
	})
}

// Vacancies scores vacancies by semantic similarity alone, which serves as both filter and rank key.
func (s *Searcher) Vacancies(ctx context.Context, profile *records.VacancyProfile, pool VacancyPool) (*Ranked, error) {
	log := logger.WithProfileFields(s.logger, string(records.KindVacancy), profile.ID)

	vacancies, err := pool.Vacancies(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("fetching vacancy pool: %w", err)
	}
	log.Info("vacancy pool fetched", zap.Int("vacancies", len(vacancies)))

	ideal := profile.Text()

	return rank(ctx, s, log, rankParams[*records.Vacancy]{
		kind:      records.KindVacancy,
		profileID: profile.ID,
		min:       profile.MinMatchPercentage,
		max:       profile.MaxVacancies,
		subjects:  vacancies,
		score: func(v *records.Vacancy) *matching.Result {
			return s.scorer.MatchVacancy(v.Text(), ideal)
		},
	})
}

// Persist saves one pending match per ranked subject, in ranked order.
func (s *Searcher) Persist(ctx context.Context, sink MatchSink, r *Ranked) ([]*records.Match, error) {
	saved := make([]*records.Match, 0, r.Len())
	for _, e := range r.Items {
		m := &records.Match{
			ID:          s.newID(),
			ProfileID:   r.ProfileID,
			ProfileKind: r.Kind,
			SubjectID:   e.Subject.SubjectID(),
			Score:       e.Result.FinalScore,
			Details:     e.Result,
			Status:      records.StatusPending,
			CreatedAt:   s.now().UTC(),
		}
		if err := sink.SaveMatch(ctx, m); err != nil {
			return saved, fmt.Errorf("persisting match for %q: %w", m.SubjectID, err)
		}
		saved = append(saved, m)
	}

	s.logger.Info("matches saved",
		append(logger.ProfileFields(string(r.Kind), r.ProfileID), zap.Int("matches", len(saved)))...,
	)

	return saved, nil
}

type rankParams[S filtering.Subject] struct {
	kind      records.ProfileKind
	profileID string
	min       int
	max       int
	subjects  []S
	score     func(S) *matching.Result
}

// rank runs the pre-score filters, scores the rest, drops subjects below the minimum, sorts
// by semantic similarity (stable, so ties keep pool order) and truncates to the cap.
func rank[S filtering.Subject](ctx context.Context, s *Searcher, log *zap.Logger, p rankParams[S]) (*Ranked, error) {
	deps := filtering.Deps{Logger: log, History: s.history, Kind: p.kind, ProfileID: p.profileID}
	cfg := s.filter

	steps := filtering.PreScore()
	if !cfg.SkipMatched {
		filtering.DisableByName(steps, filtering.MatchedHistoryName, "skip-matched is off")
	}

	pool, err := filtering.Run(ctx, &cfg, deps, steps, filtering.NewPool(p.subjects))
	if err != nil {
		return nil, fmt.Errorf("filtering %s pool: %w", p.kind, err)
	}
	describeFilters(log, "pre-score filter", steps)

	err = s.score(ctx, pool, func(subject filtering.Subject) *matching.Result {
		return p.score(subject.(S))
	})
	if err != nil {
		return nil, err
	}

	cfg.MinScore = p.min
	threshold := []filtering.Filter{filtering.NewThreshold()}
	pool, err = filtering.Run(ctx, &cfg, deps, threshold, pool)
	if err != nil {
		return nil, fmt.Errorf("applying threshold: %w", err)
	}
	describeFilters(log, "post-score filter", threshold)

	sort.SliceStable(pool.Items, func(i, j int) bool {
		return pool.Items[i].Result.SemanticSimilarity > pool.Items[j].Result.SemanticSimilarity
	})

	if p.max > 0 && pool.Len() > p.max {
		pool.Items = pool.Items[:p.max]
	}

	for _, e := range pool.Items {
		log.Debug("ranked subject", logger.MatchFields(e.Subject.SubjectID(), e.Result)...)
	}
	log.Info("search completed", zap.Int("ranked", pool.Len()))

	return &Ranked{Kind: p.kind, ProfileID: p.profileID, Items: pool.Items}, nil
}

func describeFilters(log *zap.Logger, msg string, steps []filtering.Filter) {
	for _, st := range filtering.Describe(steps) {
		log.Debug(msg,
			zap.String("name", st.Name),
			zap.Bool("enabled", st.Enabled),
			zap.String("reason", st.Reason),
			zap.Any("details", st.Details),
		)
	}
}

// score fills in every entry's result on a bounded worker pool. Results land on their own
// entries, so pool order is untouched.
func (s *Searcher) score(ctx context.Context, pool *filtering.Pool, fn func(filtering.Subject) *matching.Result) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, e := range pool.Items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.Result = fn(e.Subject)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("scoring interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scoring interrupted: %w", err)
	}
	return nil
}
