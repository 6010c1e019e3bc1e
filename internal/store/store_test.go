package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spigell/profile-matcher/internal/matching"
	"github.com/spigell/profile-matcher/internal/records"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "matcher.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matcher.db")

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestPublishedApplicants(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.UpsertApplicant(ctx, &records.Applicant{ID: "a1", Position: "Go developer", Published: true}))
	require.NoError(t, s.UpsertApplicant(ctx, &records.Applicant{ID: "a2", Position: "Hidden"}))
	require.NoError(t, s.UpsertApplicant(ctx, &records.Applicant{ID: "a3", Position: "Python developer", Published: true}))
	require.NoError(t, s.UpsertApplicant(ctx, &records.Applicant{ID: "a1", Position: "Senior Go developer", Published: true}))

	pool, err := s.PublishedApplicants(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 2)
	require.Equal(t, "a1", pool[0].ID)
	require.Equal(t, "Senior Go developer", pool[0].Position)
	require.Equal(t, "a3", pool[1].ID)
}

func TestPublishedVacancies(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.UpsertVacancy(ctx, &records.Vacancy{ID: "v1", Title: "Go", Status: records.VacancyPublished}))
	require.NoError(t, s.UpsertVacancy(ctx, &records.Vacancy{ID: "v2", Title: "Draft"}))
	require.NoError(t, s.UpsertVacancy(ctx, &records.Vacancy{ID: "v3", Title: "Closed", Status: records.VacancyClosed}))

	pool, err := s.PublishedVacancies(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	require.Equal(t, "v1", pool[0].ID)
}

func TestProfiles(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	cp := &records.CandidateProfile{
		ID: "p1", Name: "Backend", IdealResume: "Go", ExperienceLevel: "senior",
		MinMatchPercentage: 60, MaxCandidates: 3,
	}
	require.NoError(t, s.UpsertCandidateProfile(ctx, cp))

	got, err := s.CandidateProfile(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, cp, got)

	_, err = s.CandidateProfile(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound))

	vp := &records.VacancyProfile{
		ID: "s1", Name: "Seeker", IdealPosition: "Go developer", DesiredSkills: "Kafka",
		MinMatchPercentage: 40, MaxVacancies: 10,
	}
	require.NoError(t, s.UpsertVacancyProfile(ctx, vp))

	gotVP, err := s.VacancyProfile(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, vp, gotVP)
}

func TestMatches(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	first := &records.Match{
		ID: "m1", ProfileID: "p1", ProfileKind: records.KindCandidate, SubjectID: "a1", Score: 80,
		Details:   &matching.Result{SemanticSimilarity: 85, FinalScore: 80, MatchedItems: []string{"go"}, Explanation: "x"},
		Status:    records.StatusPending,
		CreatedAt: created,
	}
	second := &records.Match{
		ID: "m2", ProfileID: "p1", ProfileKind: records.KindCandidate, SubjectID: "a2", Score: 75,
		Details:   &matching.Result{FinalScore: 75},
		Status:    records.StatusPending,
		CreatedAt: created,
	}
	other := &records.Match{
		ID: "m3", ProfileID: "p1", ProfileKind: records.KindVacancy, SubjectID: "v1", Score: 50,
		Details:   &matching.Result{FinalScore: 50},
		Status:    records.StatusPending,
		CreatedAt: created,
	}

	require.NoError(t, s.SaveMatch(ctx, first))
	require.NoError(t, s.SaveMatch(ctx, second))
	require.NoError(t, s.SaveMatch(ctx, other))

	list, err := s.Matches(ctx, records.KindCandidate, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first, list[0])
	require.Equal(t, "m2", list[1].ID)

	subjects, err := s.MatchedSubjects(ctx, records.KindCandidate, "p1")
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	require.Contains(t, subjects, "a1")
	require.Contains(t, subjects, "a2")

	require.NoError(t, s.UpdateMatchStatus(ctx, "m1", records.StatusOfferSent))
	list, err = s.Matches(ctx, records.KindCandidate, "p1")
	require.NoError(t, err)
	require.Equal(t, records.StatusOfferSent, list[0].Status)

	err = s.UpdateMatchStatus(ctx, "missing", records.StatusAccepted)
	require.ErrorIs(t, err, ErrNotFound)
}
