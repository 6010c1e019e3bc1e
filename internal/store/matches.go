package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spigell/profile-matcher/internal/matching"
	"github.com/spigell/profile-matcher/internal/records"
)

// SaveMatch persists a match record. Details are stored as JSON.
func (s *Store) SaveMatch(ctx context.Context, m *records.Match) error {
	details, err := json.Marshal(m.Details)
	if err != nil {
		return fmt.Errorf("encode match details: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO matches (id, profile_id, profile_kind, subject_id, score, details, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		m.ID, m.ProfileID, string(m.ProfileKind), m.SubjectID, m.Score, string(details), string(m.Status),
		m.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert match %q: %w", m.ID, err)
	}
	return nil
}

// Matches lists the records of one profile in the order they were saved.
func (s *Store) Matches(ctx context.Context, kind records.ProfileKind, profileID string) ([]*records.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, profile_id, profile_kind, subject_id, score, details, status, created_at
FROM matches
WHERE profile_kind = ? AND profile_id = ?
ORDER BY rowid;`, string(kind), profileID)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []*records.Match
	for rows.Next() {
		var (
			m         records.Match
			kindRaw   string
			statusRaw string
			details   string
			created   string
		)
		if err := rows.Scan(&m.ID, &m.ProfileID, &kindRaw, &m.SubjectID, &m.Score, &details, &statusRaw, &created); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}

		m.ProfileKind = records.ProfileKind(kindRaw)
		m.Status = records.Status(statusRaw)
		m.Details = &matching.Result{}
		if err := json.Unmarshal([]byte(details), m.Details); err != nil {
			return nil, fmt.Errorf("decode details of match %q: %w", m.ID, err)
		}
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at of match %q: %w", m.ID, err)
		}

		out = append(out, &m)
	}

	return out, rows.Err()
}

// MatchedSubjects returns the IDs already matched against a profile, in any status.
func (s *Store) MatchedSubjects(ctx context.Context, kind records.ProfileKind, profileID string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT DISTINCT subject_id FROM matches WHERE profile_kind = ? AND profile_id = ?;`, string(kind), profileID)
	if err != nil {
		return nil, fmt.Errorf("query matched subjects: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan matched subject: %w", err)
		}
		out[id] = struct{}{}
	}

	return out, rows.Err()
}

// UpdateMatchStatus moves a match to another lifecycle state.
func (s *Store) UpdateMatchStatus(ctx context.Context, id string, status records.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE matches SET status = ? WHERE id = ?;`, string(status), id)
	if err != nil {
		return fmt.Errorf("update match %q: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("match %q: %w", id, ErrNotFound)
	}
	return nil
}
