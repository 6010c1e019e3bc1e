package records

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Fixtures is the import file format: any mix of applicants, vacancies and profiles.
type Fixtures struct {
	Applicants        []*Applicant        `yaml:"applicants"`
	Vacancies         []*Vacancy          `yaml:"vacancies"`
	CandidateProfiles []*CandidateProfile `yaml:"candidate_profiles"`
	VacancyProfiles   []*VacancyProfile   `yaml:"vacancy_profiles"`
}

// LoadFixtures decodes and validates an import file. Unknown keys are rejected.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	f := &Fixtures{}
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate checks every record and reports the first invalid one.
func (f *Fixtures) Validate() error {
	for i, a := range f.Applicants {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("applicant #%d: %w", i+1, err)
		}
	}
	for i, v := range f.Vacancies {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("vacancy #%d: %w", i+1, err)
		}
	}
	for i, p := range f.CandidateProfiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("candidate profile #%d: %w", i+1, err)
		}
	}
	for i, p := range f.VacancyProfiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("vacancy profile #%d: %w", i+1, err)
		}
	}
	return nil
}

// Len returns the total number of records.
func (f *Fixtures) Len() int {
	return len(f.Applicants) + len(f.Vacancies) + len(f.CandidateProfiles) + len(f.VacancyProfiles)
}
