package store

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order, one statement at a time; PRAGMA user_version records how many already ran.
var migrations = [][]string{
	{
		`
CREATE TABLE IF NOT EXISTS applicants (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  position TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '',
  experience TEXT NOT NULL DEFAULT '',
  about TEXT NOT NULL DEFAULT '',
  resume_text TEXT NOT NULL DEFAULT '',
  published INTEGER NOT NULL DEFAULT 0
);`,
		`
CREATE TABLE IF NOT EXISTS vacancies (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  requirements TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  employer TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'draft',
  source TEXT NOT NULL DEFAULT ''
);`,
		`CREATE INDEX IF NOT EXISTS idx_vacancies_status ON vacancies(status);`,
		`
CREATE TABLE IF NOT EXISTS candidate_profiles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  ideal_resume TEXT NOT NULL DEFAULT '',
  required_skills TEXT NOT NULL DEFAULT '',
  experience_level TEXT NOT NULL,
  min_match_percentage INTEGER NOT NULL,
  max_candidates INTEGER NOT NULL
);`,
		`
CREATE TABLE IF NOT EXISTS vacancy_profiles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  ideal_position TEXT NOT NULL DEFAULT '',
  desired_skills TEXT NOT NULL DEFAULT '',
  experience_level TEXT NOT NULL DEFAULT '',
  search_text TEXT NOT NULL DEFAULT '',
  min_match_percentage INTEGER NOT NULL,
  max_vacancies INTEGER NOT NULL
);`,
		`
CREATE TABLE IF NOT EXISTS matches (
  id TEXT PRIMARY KEY,
  profile_id TEXT NOT NULL,
  profile_kind TEXT NOT NULL,
  subject_id TEXT NOT NULL,
  score INTEGER NOT NULL,
  details TEXT NOT NULL DEFAULT '{}',
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_matches_profile ON matches(profile_kind, profile_id);`,
	},
}

func migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var version int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		for _, stmt := range migrations[i] {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying migration %d: %w", i+1, err)
			}
		}
	}

	if version < len(migrations) {
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d;`, len(migrations))); err != nil {
			return fmt.Errorf("writing schema version: %w", err)
		}
	}

	return tx.Commit()
}

// SchemaVersion is the user_version a fully migrated database carries.
func SchemaVersion() int {
	return len(migrations)
}
