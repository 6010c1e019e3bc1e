package filtering

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/profile-matcher/internal/records"
)

// ExcludedSubjects is the on-disk list of subjects the user never wants to see again.
type ExcludedSubjects struct {
	Items []*ExcludedSubject
}

// ExcludedSubject is scoped to one profile kind, since applicant and vacancy IDs may collide.
type ExcludedSubject struct {
	ID         string
	Kind       records.ProfileKind
	ProfileID  string
	Score      int
	ExcludedAt time.Time
}

// ToExcluded converts the pool into exclude file entries stamped with the current time.
func (p *Pool) ToExcluded(kind records.ProfileKind, profileID string) *ExcludedSubjects {
	excluded := &ExcludedSubjects{}
	for _, e := range p.Items {
		item := &ExcludedSubject{
			ID:         e.Subject.SubjectID(),
			Kind:       kind,
			ProfileID:  profileID,
			ExcludedAt: time.Now().UTC(),
		}
		if e.Result != nil {
			item.Score = e.Result.FinalScore
		}
		excluded.Items = append(excluded.Items, item)
	}
	return excluded
}

// LoadExcluded reads an exclude file. An empty file is an empty list.
func LoadExcluded(path string) (*ExcludedSubjects, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedSubjects{}, nil
	}

	var excluded ExcludedSubjects
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedSubjects) Append(s *ExcludedSubjects) {
	e.Items = append(e.Items, s.Items...)
}

// IDsOf returns the IDs excluded for searches of the given kind.
func (e *ExcludedSubjects) IDsOf(kind records.ProfileKind) []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		if item.Kind == kind {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func (e *ExcludedSubjects) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes subjects contained in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, p *Pool) (*Pool, Step, error) {
	initial := p.Len()
	if f.path == "" {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	excluded, err := LoadExcluded(f.path)
	if os.IsNotExist(err) {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}
	if err != nil {
		return p, Step{}, fmt.Errorf("getting excluded subjects from file: %w", err)
	}

	removed := p.Exclude(excluded.IDsOf(deps.Kind))
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding subjects based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_subjects", removed),
			zap.Int("subjects_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(removed), Left: p.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
