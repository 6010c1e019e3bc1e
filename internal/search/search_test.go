package search

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/profile-matcher/internal/filtering"
	"github.com/spigell/profile-matcher/internal/matching"
	"github.com/spigell/profile-matcher/internal/records"
)

type stubScorer struct {
	results map[string]*matching.Result
	calls   atomic.Int32
}

func (s *stubScorer) Requirements(matching.Target) []string { return nil }

func (s *stubScorer) Match(text string, _ matching.Target) *matching.Result {
	s.calls.Add(1)
	if r, ok := s.results[text]; ok {
		return r
	}
	return &matching.Result{}
}

func (s *stubScorer) MatchVacancy(text, _ string) *matching.Result {
	return s.Match(text, matching.Target{})
}

type stubCandidates struct {
	applicants []*records.Applicant
	err        error
}

func (p *stubCandidates) Candidates(context.Context, *records.CandidateProfile) ([]*records.Applicant, error) {
	return p.applicants, p.err
}

type stubVacancies []*records.Vacancy

func (p stubVacancies) Vacancies(context.Context, *records.VacancyProfile) ([]*records.Vacancy, error) {
	return p, nil
}

type stubSink struct {
	saved []*records.Match
	err   error
}

func (s *stubSink) SaveMatch(_ context.Context, m *records.Match) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, m)
	return nil
}

type stubHistory map[string]struct{}

func (h stubHistory) MatchedSubjects(context.Context, records.ProfileKind, string) (map[string]struct{}, error) {
	return h, nil
}

func applicant(id, resume string) *records.Applicant {
	return &records.Applicant{ID: id, ResumeText: resume, Published: true}
}

func rankedIDs(r *Ranked) []string {
	ids := make([]string, 0, r.Len())
	for _, e := range r.Items {
		ids = append(ids, e.Subject.SubjectID())
	}
	return ids
}

func TestCandidatesRanksBySemanticSimilarity(t *testing.T) {
	scorer := &stubScorer{results: map[string]*matching.Result{
		"first":  {FinalScore: 80, SemanticSimilarity: 60},
		"second": {FinalScore: 75, SemanticSimilarity: 85},
	}}
	profile := &records.CandidateProfile{ID: "p1", ExperienceLevel: "senior", MinMatchPercentage: 70, MaxCandidates: 1}
	pool := &stubCandidates{applicants: []*records.Applicant{applicant("a1", "first"), applicant("a2", "second")}}

	ranked, err := New(scorer, Options{}).Candidates(context.Background(), profile, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(rankedIDs(ranked), []string{"a2"}) {
		t.Fatalf("expected only a2, got %v", rankedIDs(ranked))
	}
	if ranked.Kind != records.KindCandidate || ranked.ProfileID != "p1" {
		t.Fatalf("unexpected ranked header: %+v", ranked)
	}
	if scorer.calls.Load() != 2 {
		t.Fatalf("expected every applicant to be scored, got %d calls", scorer.calls.Load())
	}
}

func TestCandidatesThresholdAndStableTies(t *testing.T) {
	scorer := &stubScorer{results: map[string]*matching.Result{
		"a": {FinalScore: 70, SemanticSimilarity: 50},
		"b": {FinalScore: 69, SemanticSimilarity: 99},
		"c": {FinalScore: 90, SemanticSimilarity: 50},
		"d": {FinalScore: 71, SemanticSimilarity: 80},
		"e": {FinalScore: 100, SemanticSimilarity: 50},
	}}
	profile := &records.CandidateProfile{ID: "p1", ExperienceLevel: "middle", MinMatchPercentage: 70, MaxCandidates: 10}
	pool := &stubCandidates{applicants: []*records.Applicant{
		applicant("a", "a"), applicant("b", "b"), applicant("c", "c"), applicant("d", "d"), applicant("e", "e"),
	}}

	ranked, err := New(scorer, Options{Workers: 2}).Candidates(context.Background(), profile, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rankedIDs(ranked); !reflect.DeepEqual(got, []string{"d", "a", "c", "e"}) {
		t.Fatalf("unexpected ranking: %v", got)
	}
}

func TestCandidatesAppliesPreScoreFilters(t *testing.T) {
	scorer := &stubScorer{results: map[string]*matching.Result{
		"x": {FinalScore: 100, SemanticSimilarity: 100},
	}}
	profile := &records.CandidateProfile{ID: "p1", ExperienceLevel: "lead", MinMatchPercentage: 0, MaxCandidates: 10}
	pool := &stubCandidates{applicants: []*records.Applicant{
		applicant("a", "x"), applicant("b", "x"), applicant("c", "x"),
	}}

	searcher := New(scorer, Options{
		Filter:  filtering.Config{ExcludedSubjects: []string{"a"}, SkipMatched: true},
		History: stubHistory{"c": {}},
	})

	ranked, err := searcher.Candidates(context.Background(), profile, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rankedIDs(ranked); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("unexpected ranking: %v", got)
	}
	if scorer.calls.Load() != 1 {
		t.Fatalf("filtered applicants must not be scored, got %d calls", scorer.calls.Load())
	}
}

func TestCandidatesWarnsOnUnknownLevel(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	profile := &records.CandidateProfile{ID: "p1", ExperienceLevel: "cto", MaxCandidates: 1}

	_, err := New(&stubScorer{}, Options{Logger: zap.New(core)}).Candidates(context.Background(), profile, &stubCandidates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.All()
	if len(entries) != 1 || entries[0].ContextMap()["experience_level"] != "cto" {
		t.Fatalf("expected one warning about the level, got %v", entries)
	}
}

func TestCandidatesPoolError(t *testing.T) {
	boom := errors.New("boom")
	profile := &records.CandidateProfile{ID: "p1", ExperienceLevel: "junior", MaxCandidates: 1}

	_, err := New(&stubScorer{}, Options{}).Candidates(context.Background(), profile, &stubCandidates{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped pool error, got %v", err)
	}
}

func TestCandidatesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	profile := &records.CandidateProfile{ID: "p1", ExperienceLevel: "junior", MaxCandidates: 1}
	pool := &stubCandidates{applicants: []*records.Applicant{applicant("a", "a")}}

	_, err := New(&stubScorer{}, Options{}).Candidates(ctx, profile, pool)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestVacanciesWithEngine(t *testing.T) {
	profile := &records.VacancyProfile{
		ID:                 "s1",
		IdealPosition:      "Go разработчик",
		DesiredSkills:      "Разработка сервисов на Go, работа с PostgreSQL.",
		MinMatchPercentage: 50,
		MaxVacancies:       5,
	}
	pool := stubVacancies{
		{ID: "v1", Title: "Повар", Description: "Готовка супов и салатов в ресторане."},
		{ID: "v2", Title: "Go разработчик", Description: "Разработка сервисов на Go, работа с PostgreSQL."},
	}

	ranked, err := New(matching.New(nil), Options{}).Vacancies(context.Background(), profile, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rankedIDs(ranked); !reflect.DeepEqual(got, []string{"v2"}) {
		t.Fatalf("unexpected ranking: %v", got)
	}

	result := ranked.Items[0].Result
	if result.FinalScore != 100 || result.SemanticSimilarity != 100 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Explanation != "Смысловое соответствие: 100%" {
		t.Fatalf("unexpected explanation %q", result.Explanation)
	}
}

func TestVacanciesRankedAndCappedWithEngine(t *testing.T) {
	profile := &records.VacancyProfile{
		ID:                 "s1",
		IdealPosition:      "Go разработчик",
		DesiredSkills:      "Разработка сервисов на Go, работа с PostgreSQL и Docker, проектирование API.",
		MinMatchPercentage: 45,
		MaxVacancies:       2,
	}
	pool := stubVacancies{
		{ID: "v1", Title: "Go разработчик", Description: "Разработка сервисов на Go, работа с PostgreSQL."},
		{ID: "v2", Title: "Backend разработчик", Description: "Разработка сервисов на Go, работа с PostgreSQL и Docker, проектирование API."},
		{ID: "v3", Title: "Повар", Description: "Готовка супов и салатов в ресторане."},
		{ID: "v4", Title: "Go разработчик", Description: "Разработка сервисов на Go, работа с MySQL и Kubernetes."},
		{ID: "v5", Title: "Go разработчик", Description: "Разработка сервисов на Go, работа с PostgreSQL и Docker, проектирование API."},
	}

	// v1 scores 50 and passes the minimum but falls outside the cap.
	ranked, err := New(matching.New(nil), Options{}).Vacancies(context.Background(), profile, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rankedIDs(ranked); !reflect.DeepEqual(got, []string{"v5", "v2"}) {
		t.Fatalf("unexpected ranking: %v", got)
	}

	scores := []int{ranked.Items[0].Result.SemanticSimilarity, ranked.Items[1].Result.SemanticSimilarity}
	if !reflect.DeepEqual(scores, []int{100, 97}) {
		t.Fatalf("unexpected scores: %v", scores)
	}
}

func TestVacanciesRankedBySemanticThenCapped(t *testing.T) {
	pool := stubVacancies{
		{ID: "v1", Title: "a"},
		{ID: "v2", Title: "b"},
		{ID: "v3", Title: "c"},
		{ID: "v4", Title: "d"},
		{ID: "v5", Title: "e"},
	}
	semantic := map[string]int{"v1": 40, "v2": 90, "v3": 70, "v4": 90, "v5": 10}

	scorer := &stubScorer{results: map[string]*matching.Result{}}
	for _, v := range pool {
		s := semantic[v.ID]
		scorer.results[v.Text()] = &matching.Result{SemanticSimilarity: s, FinalScore: s}
	}

	profile := &records.VacancyProfile{ID: "s1", MinMatchPercentage: 30, MaxVacancies: 3}

	ranked, err := New(scorer, Options{}).Vacancies(context.Background(), profile, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rankedIDs(ranked); !reflect.DeepEqual(got, []string{"v2", "v4", "v3"}) {
		t.Fatalf("unexpected ranking: %v", got)
	}
}

func TestVacanciesIgnoreCandidateExclusions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")
	excluded := filtering.NewPool([]*records.Applicant{applicant("1", "x")}).ToExcluded(records.KindCandidate, "cp")
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	profile := &records.VacancyProfile{ID: "vp", MinMatchPercentage: 0, MaxVacancies: 10}
	pool := stubVacancies{{ID: "1", Title: "Go"}}

	searcher := New(&stubScorer{}, Options{Filter: filtering.Config{ExcludeFile: path}})

	ranked, err := searcher.Vacancies(context.Background(), profile, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranked.Len() != 1 {
		t.Fatalf("candidate exclusion must not drop vacancy 1, got %v", rankedIDs(ranked))
	}
}

func TestCandidatesKeepMatchedWhenSkipIsOff(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	scorer := &stubScorer{results: map[string]*matching.Result{
		"x": {FinalScore: 100, SemanticSimilarity: 100},
	}}
	profile := &records.CandidateProfile{ID: "p1", ExperienceLevel: "lead", MaxCandidates: 10}
	pool := &stubCandidates{applicants: []*records.Applicant{applicant("a", "x"), applicant("c", "x")}}

	searcher := New(scorer, Options{
		Logger:  zap.New(core),
		Filter:  filtering.Config{SkipMatched: false},
		History: stubHistory{"c": {}},
	})

	ranked, err := searcher.Candidates(context.Background(), profile, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rankedIDs(ranked); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("unexpected ranking: %v", got)
	}

	disabled := observed.FilterMessage("filter disabled").All()
	if len(disabled) != 1 || disabled[0].ContextMap()["name"] != filtering.MatchedHistoryName {
		t.Fatalf("expected matched history to be disabled, got %v", disabled)
	}

	described := observed.FilterMessage("pre-score filter").All()
	if len(described) != 3 {
		t.Fatalf("expected 3 pre-score filter entries, got %d", len(described))
	}
	last := described[2].ContextMap()
	if last["name"] != filtering.MatchedHistoryName || last["enabled"] != false || last["reason"] != "skip-matched is off" {
		t.Fatalf("unexpected status fields: %v", last)
	}
}

func TestPersist(t *testing.T) {
	ranked := &Ranked{
		Kind:      records.KindCandidate,
		ProfileID: "p1",
		Items: []*filtering.Entry{
			{Subject: applicant("a2", ""), Result: &matching.Result{FinalScore: 75, SemanticSimilarity: 85}},
			{Subject: applicant("a1", ""), Result: &matching.Result{FinalScore: 80, SemanticSimilarity: 60}},
		},
	}

	searcher := New(&stubScorer{}, Options{})
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	searcher.now = func() time.Time { return fixed }
	n := 0
	searcher.newID = func() string {
		n++
		return "m" + string(rune('0'+n))
	}

	sink := &stubSink{}
	saved, err := searcher.Persist(context.Background(), sink, ranked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(saved) != 2 || len(sink.saved) != 2 {
		t.Fatalf("expected 2 saved matches, got %d/%d", len(saved), len(sink.saved))
	}

	first := sink.saved[0]
	if first.ID != "m1" || first.SubjectID != "a2" || first.Score != 75 || first.Status != records.StatusPending {
		t.Fatalf("unexpected first match: %+v", first)
	}
	if first.ProfileKind != records.KindCandidate || first.ProfileID != "p1" || !first.CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected first match header: %+v", first)
	}
	if sink.saved[1].ID != "m2" || sink.saved[1].SubjectID != "a1" {
		t.Fatalf("unexpected second match: %+v", sink.saved[1])
	}
}

func TestPersistError(t *testing.T) {
	boom := errors.New("boom")
	ranked := &Ranked{Items: []*filtering.Entry{{Subject: applicant("a1", ""), Result: &matching.Result{}}}}

	saved, err := New(&stubScorer{}, Options{}).Persist(context.Background(), &stubSink{err: boom}, ranked)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("expected nothing saved, got %d", len(saved))
	}
}
