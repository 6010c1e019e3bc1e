// Package records holds the data shapes the matcher reads from and writes to the record store.
package records

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/profile-matcher/internal/matching"
)

// Status is the lifecycle state of a persisted match.
type Status string

const (
	StatusPending   Status = "pending"
	StatusOfferSent Status = "offer_sent"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// ProfileKind tells which side of the market a profile or match belongs to.
type ProfileKind string

const (
	KindCandidate ProfileKind = "candidate"
	KindVacancy   ProfileKind = "vacancy"
)

const (
	VacancyDraft     = "draft"
	VacancyPublished = "published"
	VacancyClosed    = "closed"
)

// Applicant is a job seeker with a free-text resume split into sections.
type Applicant struct {
	ID         string `json:"id" yaml:"id" validate:"required"`
	FirstName  string `json:"first_name,omitempty" yaml:"first_name"`
	LastName   string `json:"last_name,omitempty" yaml:"last_name"`
	Email      string `json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" yaml:"phone"`
	Position   string `json:"position,omitempty" yaml:"position"`
	Skills     string `json:"skills,omitempty" yaml:"skills"`
	Experience string `json:"experience,omitempty" yaml:"experience"`
	About      string `json:"about,omitempty" yaml:"about"`
	ResumeText string `json:"resume_text,omitempty" yaml:"resume_text"`
	Published  bool   `json:"published" yaml:"published"`
}

// FullResumeText joins the non-empty resume sections, one per line.
func (a *Applicant) FullResumeText() string {
	parts := make([]string, 0, 5)
	for _, section := range []string{a.Position, a.Skills, a.Experience, a.About, a.ResumeText} {
		if section = strings.TrimSpace(section); section != "" {
			parts = append(parts, section)
		}
	}
	return strings.Join(parts, "\n")
}

// SubjectID implements the pool subject contract.
func (a *Applicant) SubjectID() string { return a.ID }

// DisplayName returns "First Last" or the ID when no name is known.
func (a *Applicant) DisplayName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		return a.ID
	}
	return name
}

// Validate checks struct tags.
func (a *Applicant) Validate() error {
	return validator.New().Struct(a)
}

// Vacancy is an open position, either stored locally or fetched from hh.ru.
type Vacancy struct {
	ID           string `json:"id" yaml:"id" validate:"required"`
	Title        string `json:"title" yaml:"title" validate:"required"`
	Description  string `json:"description,omitempty" yaml:"description"`
	Requirements string `json:"requirements,omitempty" yaml:"requirements"`
	Salary       string `json:"salary,omitempty" yaml:"salary"`
	Employer     string `json:"employer,omitempty" yaml:"employer"`
	URL          string `json:"url,omitempty" yaml:"url" validate:"omitempty,url"`
	Status       string `json:"status" yaml:"status" validate:"omitempty,oneof=draft published closed"`
	Source       string `json:"source,omitempty" yaml:"source"`
}

// Text is the document a vacancy is scored by.
func (v *Vacancy) Text() string {
	return v.Title + " " + v.Description + " " + v.Requirements
}

// SubjectID implements the pool subject contract.
func (v *Vacancy) SubjectID() string { return v.ID }

// Validate checks struct tags.
func (v *Vacancy) Validate() error {
	return validator.New().Struct(v)
}

// CandidateProfile describes the ideal candidate an employer is looking for.
type CandidateProfile struct {
	ID                 string `json:"id" yaml:"id" validate:"required"`
	Name               string `json:"name" yaml:"name" validate:"required"`
	IdealResume        string `json:"ideal_resume" yaml:"ideal_resume"`
	RequiredSkills     string `json:"required_skills,omitempty" yaml:"required_skills"`
	ExperienceLevel    string `json:"experience_level" yaml:"experience_level" validate:"required,oneof=intern junior middle senior lead"`
	MinMatchPercentage int    `json:"min_match_percentage" yaml:"min_match_percentage" validate:"gte=0,lte=100"`
	MaxCandidates      int    `json:"max_candidates" yaml:"max_candidates" validate:"gte=1"`
}

// Target converts the profile into the scorer's comparison target.
func (p *CandidateProfile) Target() matching.Target {
	return matching.Target{
		IdealText:          p.IdealResume,
		RequiredSkillsText: p.RequiredSkills,
		ExperienceLevel:    p.ExperienceLevel,
	}
}

// Validate checks struct tags.
func (p *CandidateProfile) Validate() error {
	return validator.New().Struct(p)
}

// VacancyProfile describes the ideal vacancy a job seeker is looking for.
type VacancyProfile struct {
	ID                 string `json:"id" yaml:"id" validate:"required"`
	Name               string `json:"name" yaml:"name" validate:"required"`
	IdealPosition      string `json:"ideal_position" yaml:"ideal_position"`
	DesiredSkills      string `json:"desired_skills,omitempty" yaml:"desired_skills"`
	ExperienceLevel    string `json:"experience_level,omitempty" yaml:"experience_level" validate:"omitempty,oneof=intern junior middle senior lead"`
	SearchText         string `json:"search_text,omitempty" yaml:"search_text"`
	MinMatchPercentage int    `json:"min_match_percentage" yaml:"min_match_percentage" validate:"gte=0,lte=100"`
	MaxVacancies       int    `json:"max_vacancies" yaml:"max_vacancies" validate:"gte=1"`
}

// Text is the document vacancies are compared against.
func (p *VacancyProfile) Text() string {
	return p.IdealPosition + " " + p.DesiredSkills
}

// Query returns the hh.ru search text for the profile, the ideal position when unset.
func (p *VacancyProfile) Query() string {
	if q := strings.TrimSpace(p.SearchText); q != "" {
		return q
	}
	return strings.TrimSpace(p.IdealPosition)
}

// Validate checks struct tags.
func (p *VacancyProfile) Validate() error {
	return validator.New().Struct(p)
}

// Match is a persisted ranked result.
type Match struct {
	ID          string           `json:"id"`
	ProfileID   string           `json:"profile_id"`
	ProfileKind ProfileKind      `json:"profile_kind"`
	SubjectID   string           `json:"subject_id"`
	Score       int              `json:"score"`
	Details     *matching.Result `json:"details"`
	Status      Status           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.TrimSpace(s)); st {
	case StatusPending, StatusOfferSent, StatusAccepted, StatusRejected:
		return st, true
	default:
		return "", false
	}
}
