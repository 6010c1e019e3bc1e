package search

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/profile-matcher/internal/records"
)

// ReportLine is one ranked subject in human-readable form.
type ReportLine struct {
	Rank        int    `json:"rank"`
	SubjectID   string `json:"subject_id"`
	Name        string `json:"name"`
	Score       int    `json:"final_score"`
	Semantic    int    `json:"semantic_similarity"`
	Explanation string `json:"explanation"`
}

// Report lists the ranked subjects in order.
func (r *Ranked) Report() []ReportLine {
	lines := make([]ReportLine, 0, r.Len())
	for i, e := range r.Items {
		line := ReportLine{
			Rank:      i + 1,
			SubjectID: e.Subject.SubjectID(),
			Name:      subjectName(e.Subject),
		}
		if e.Result != nil {
			line.Score = e.Result.FinalScore
			line.Semantic = e.Result.SemanticSimilarity
			line.Explanation = e.Result.Explanation
		}
		lines = append(lines, line)
	}
	return lines
}

// Labels returns one prompt label per ranked subject.
func (r *Ranked) Labels() []string {
	labels := make([]string, 0, r.Len())
	for _, l := range r.Report() {
		labels = append(labels, fmt.Sprintf("%s %s / %d%%", l.SubjectID, l.Name, l.Score))
	}
	return labels
}

// DumpToTmpFile writes the full ranked set, results included, to a temporary JSON file.
func (r *Ranked) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", fmt.Sprintf("%s_matches_*.json", r.Kind))
	if err != nil {
		return "", err
	}
	defer file.Close()

	type dumped struct {
		Subject any `json:"subject"`
		Result  any `json:"result"`
	}

	out := make([]dumped, 0, r.Len())
	for _, e := range r.Items {
		out = append(out, dumped{Subject: e.Subject, Result: e.Result})
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func subjectName(s any) string {
	switch v := s.(type) {
	case *records.Applicant:
		return v.DisplayName()
	case *records.Vacancy:
		if v.Employer != "" {
			return v.Title + " (" + v.Employer + ")"
		}
		return v.Title
	default:
		return ""
	}
}
