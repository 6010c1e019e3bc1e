package store

import (
	"context"
	"fmt"

	"github.com/spigell/profile-matcher/internal/records"
)

func (s *Store) UpsertVacancy(ctx context.Context, v *records.Vacancy) error {
	status := v.Status
	if status == "" {
		status = records.VacancyDraft
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO vacancies (id, title, description, requirements, salary, employer, url, status, source)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title = excluded.title,
  description = excluded.description,
  requirements = excluded.requirements,
  salary = excluded.salary,
  employer = excluded.employer,
  url = excluded.url,
  status = excluded.status,
  source = excluded.source;`,
		v.ID, v.Title, v.Description, v.Requirements, v.Salary, v.Employer, v.URL, status, v.Source,
	)
	if err != nil {
		return fmt.Errorf("upsert vacancy %q: %w", v.ID, err)
	}
	return nil
}

// PublishedVacancies returns the vacancy pool in insertion order.
func (s *Store) PublishedVacancies(ctx context.Context) ([]*records.Vacancy, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, description, requirements, salary, employer, url, status, source
FROM vacancies
WHERE status = ?
ORDER BY rowid;`, records.VacancyPublished)
	if err != nil {
		return nil, fmt.Errorf("query vacancies: %w", err)
	}
	defer rows.Close()

	var out []*records.Vacancy
	for rows.Next() {
		v := &records.Vacancy{}
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Requirements, &v.Salary,
			&v.Employer, &v.URL, &v.Status, &v.Source); err != nil {
			return nil, fmt.Errorf("scan vacancy: %w", err)
		}
		out = append(out, v)
	}

	return out, rows.Err()
}
