package headhunter

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/profile-matcher/internal/records"
)

type Resumes struct {
	Items []*Resume
}

type Resume struct {
	Title string `json:"title,omitempty"`
	ID    string `json:"id,omitempty"`
}

// ResumeDetails is the subset of a full hh.ru resume that feeds an applicant record.
type ResumeDetails struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	About      string   `json:"skills"`
	SkillSet   []string `json:"skill_set"`
	Experience []struct {
		Position    string `json:"position"`
		Company     string `json:"company"`
		Description string `json:"description"`
	} `json:"experience"`
}

// GetMineResumes lists the resumes of the token owner.
func (c *Client) GetMineResumes(ctx context.Context) (*Resumes, error) {
	apiURLMineResumes := fmt.Sprintf("%s/resumes/%s", c.APIURL, mineResumID)

	items, err := c.GetItems(ctx, apiURLMineResumes, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("get my resumes: %w", err)
	}

	var resumes []*Resume
	if err := decodeJSONTagged(items, &resumes); err != nil {
		return nil, err
	}

	return &Resumes{
		Items: resumes,
	}, nil
}

func (r *Resumes) Len() int {
	return len(r.Items)
}

func (r *Resumes) Titles() []string {
	titles := make([]string, 0, len(r.Items))

	for _, v := range r.Items {
		titles = append(titles, v.Title)
	}

	return titles
}

func (c *Client) GetResumeDetails(ctx context.Context, id string) (*ResumeDetails, error) {
	if id == "" {
		return nil, fmt.Errorf("resume id is required")
	}

	var raw map[string]any
	if err := c.getJSON(ctx, fmt.Sprintf("%s/resumes/%s", c.APIURL, id), nil, &raw); err != nil {
		return nil, fmt.Errorf("get resume %s: %w", id, err)
	}

	details := &ResumeDetails{}
	if err := decodeJSONTagged(raw, details); err != nil {
		return nil, fmt.Errorf("decoding resume %s: %w", id, err)
	}

	return details, nil
}

// Applicant converts the resume into a published applicant record.
func (d *ResumeDetails) Applicant() (*records.Applicant, error) {
	about, err := HTMLToText(d.About)
	if err != nil {
		return nil, fmt.Errorf("resume %s about: %w", d.ID, err)
	}

	var experience []string
	for _, e := range d.Experience {
		description, err := HTMLToText(e.Description)
		if err != nil {
			return nil, fmt.Errorf("resume %s experience: %w", d.ID, err)
		}
		line := strings.TrimSpace(strings.Join(nonEmpty(e.Position, e.Company), ", ") + ". " + description)
		experience = append(experience, line)
	}

	skills := ""
	if len(d.SkillSet) > 0 {
		skills = "Навыки: " + strings.Join(d.SkillSet, ", ") + "."
	}

	return &records.Applicant{
		ID:         SourceName + "-" + d.ID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Position:   d.Title,
		Skills:     skills,
		Experience: strings.Join(experience, "\n"),
		About:      about,
		Published:  true,
	}, nil
}

// decodeJSONTagged decodes loosely typed API data into out using the json struct tags.
// Unknown keys are ignored.
func decodeJSONTagged(in, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(in)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
