package store

import (
	"context"

	"github.com/spigell/profile-matcher/internal/records"
)

// Candidates returns every published applicant. The pool does not depend on the profile.
func (s *Store) Candidates(ctx context.Context, _ *records.CandidateProfile) ([]*records.Applicant, error) {
	return s.PublishedApplicants(ctx)
}

// Vacancies returns every published vacancy. The pool does not depend on the profile.
func (s *Store) Vacancies(ctx context.Context, _ *records.VacancyProfile) ([]*records.Vacancy, error) {
	return s.PublishedVacancies(ctx)
}
