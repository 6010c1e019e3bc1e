package headhunter

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/profile-matcher/internal/records"
)

type Vacancies struct {
	Items []*Vacancy
}

type Vacancy struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Area struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"area,omitempty"`
	Salary *struct {
		From     int    `json:"from,omitempty"`
		To       int    `json:"to,omitempty"`
		Currency string `json:"currency,omitempty"`
	} `json:"salary,omitempty"`
	Experience struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"experience,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Description  string `json:"description,omitempty"`
	KeySkills    []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Archived bool `json:"archived,omitempty"`
	Snippet  struct {
		Requirement    string `json:"requirement,omitempty"`
		Responsibility string `json:"responsibility,omitempty"`
	} `json:"snippet,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// GetVacancy fetches the full vacancy, including its HTML description and key skills.
func (c *Client) GetVacancy(ctx context.Context, id string) (*Vacancy, error) {
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	var v Vacancy
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, id), nil, &v); err != nil {
		return nil, fmt.Errorf("get vacancy %s: %w", id, err)
	}

	return &v, nil
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

// Record converts the vacancy into the matcher's vacancy record. The description falls
// back to the search snippet when the full text was not fetched.
func (va *Vacancy) Record() (*records.Vacancy, error) {
	description := va.Description
	if strings.TrimSpace(description) == "" {
		description = va.Snippet.Responsibility
	}

	text, err := HTMLToText(description)
	if err != nil {
		return nil, fmt.Errorf("vacancy %s description: %w", va.ID, err)
	}

	requirements, err := HTMLToText(va.Snippet.Requirement)
	if err != nil {
		return nil, fmt.Errorf("vacancy %s requirements: %w", va.ID, err)
	}

	if skills := va.skillNames(); len(skills) > 0 {
		requirements = strings.TrimSpace(requirements + " Навыки: " + strings.Join(skills, ", ") + ".")
	}

	status := records.VacancyPublished
	if va.Archived {
		status = records.VacancyClosed
	}

	return &records.Vacancy{
		ID:           SourceName + "-" + va.ID,
		Title:        va.Name,
		Description:  text,
		Requirements: requirements,
		Salary:       va.salaryString(),
		Employer:     va.Employer.Name,
		URL:          va.AlternateURL,
		Status:       status,
		Source:       SourceName,
	}, nil
}

func (va *Vacancy) skillNames() []string {
	names := make([]string, 0, len(va.KeySkills))
	for _, s := range va.KeySkills {
		if name := strings.TrimSpace(s.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (va *Vacancy) salaryString() string {
	if va.Salary == nil {
		return ""
	}

	s := va.Salary
	switch {
	case s.From > 0 && s.To > 0:
		return fmt.Sprintf("%d-%d %s", s.From, s.To, s.Currency)
	case s.From > 0:
		return fmt.Sprintf("from %d %s", s.From, s.Currency)
	case s.To > 0:
		return fmt.Sprintf("up to %d %s", s.To, s.Currency)
	default:
		return ""
	}
}
