package store

import (
	"context"
	"fmt"

	"github.com/spigell/profile-matcher/internal/records"
)

// UpsertApplicant inserts or replaces an applicant, keeping its pool position.
func (s *Store) UpsertApplicant(ctx context.Context, a *records.Applicant) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO applicants (id, first_name, last_name, email, phone, position, skills, experience, about, resume_text, published)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  first_name = excluded.first_name,
  last_name = excluded.last_name,
  email = excluded.email,
  phone = excluded.phone,
  position = excluded.position,
  skills = excluded.skills,
  experience = excluded.experience,
  about = excluded.about,
  resume_text = excluded.resume_text,
  published = excluded.published;`,
		a.ID, a.FirstName, a.LastName, a.Email, a.Phone, a.Position, a.Skills, a.Experience, a.About, a.ResumeText, a.Published,
	)
	if err != nil {
		return fmt.Errorf("upsert applicant %q: %w", a.ID, err)
	}
	return nil
}

// PublishedApplicants returns the candidate pool in insertion order.
func (s *Store) PublishedApplicants(ctx context.Context) ([]*records.Applicant, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, first_name, last_name, email, phone, position, skills, experience, about, resume_text, published
FROM applicants
WHERE published = 1
ORDER BY rowid;`)
	if err != nil {
		return nil, fmt.Errorf("query applicants: %w", err)
	}
	defer rows.Close()

	var out []*records.Applicant
	for rows.Next() {
		a := &records.Applicant{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Position,
			&a.Skills, &a.Experience, &a.About, &a.ResumeText, &a.Published); err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
