package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spigell/profile-matcher/internal/records"
)

func (s *Store) UpsertCandidateProfile(ctx context.Context, p *records.CandidateProfile) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO candidate_profiles (id, name, ideal_resume, required_skills, experience_level, min_match_percentage, max_candidates)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  ideal_resume = excluded.ideal_resume,
  required_skills = excluded.required_skills,
  experience_level = excluded.experience_level,
  min_match_percentage = excluded.min_match_percentage,
  max_candidates = excluded.max_candidates;`,
		p.ID, p.Name, p.IdealResume, p.RequiredSkills, p.ExperienceLevel, p.MinMatchPercentage, p.MaxCandidates,
	)
	if err != nil {
		return fmt.Errorf("upsert candidate profile %q: %w", p.ID, err)
	}
	return nil
}

func (s *Store) CandidateProfile(ctx context.Context, id string) (*records.CandidateProfile, error) {
	p := &records.CandidateProfile{}
	err := s.db.QueryRowContext(ctx, `
SELECT id, name, ideal_resume, required_skills, experience_level, min_match_percentage, max_candidates
FROM candidate_profiles WHERE id = ?;`, id).Scan(
		&p.ID, &p.Name, &p.IdealResume, &p.RequiredSkills, &p.ExperienceLevel, &p.MinMatchPercentage, &p.MaxCandidates,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("candidate profile %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query candidate profile %q: %w", id, err)
	}
	return p, nil
}

func (s *Store) UpsertVacancyProfile(ctx context.Context, p *records.VacancyProfile) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO vacancy_profiles (id, name, ideal_position, desired_skills, experience_level, search_text, min_match_percentage, max_vacancies)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  ideal_position = excluded.ideal_position,
  desired_skills = excluded.desired_skills,
  experience_level = excluded.experience_level,
  search_text = excluded.search_text,
  min_match_percentage = excluded.min_match_percentage,
  max_vacancies = excluded.max_vacancies;`,
		p.ID, p.Name, p.IdealPosition, p.DesiredSkills, p.ExperienceLevel, p.SearchText, p.MinMatchPercentage, p.MaxVacancies,
	)
	if err != nil {
		return fmt.Errorf("upsert vacancy profile %q: %w", p.ID, err)
	}
	return nil
}

func (s *Store) VacancyProfile(ctx context.Context, id string) (*records.VacancyProfile, error) {
	p := &records.VacancyProfile{}
	err := s.db.QueryRowContext(ctx, `
SELECT id, name, ideal_position, desired_skills, experience_level, search_text, min_match_percentage, max_vacancies
FROM vacancy_profiles WHERE id = ?;`, id).Scan(
		&p.ID, &p.Name, &p.IdealPosition, &p.DesiredSkills, &p.ExperienceLevel, &p.SearchText, &p.MinMatchPercentage, &p.MaxVacancies,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vacancy profile %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query vacancy profile %q: %w", id, err)
	}
	return p, nil
}
