package headhunter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/spigell/profile-matcher/internal/records"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs and list",
			html: "<p>Мы ищем Go разработчика</p><p><strong>Требования:</strong></p><ul><li>Go;</li><li>PostgreSQL</li></ul>",
			want: "Мы ищем Go разработчика. Требования: Go, PostgreSQL.",
		},
		{
			name: "plain text",
			html: "Just   <highlighttext>text</highlighttext>",
			want: "Just text",
		},
		{
			name: "keeps existing punctuation",
			html: "<p>Remote work!</p><p>Apply now.</p>",
			want: "Remote work! Apply now.",
		},
		{
			name: "empty",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTMLToText(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestVacancyRecord(t *testing.T) {
	v := &Vacancy{ID: "42", Name: "Go Developer", AlternateURL: "https://hh.ru/vacancy/42"}
	v.Employer.Name = "Acme"
	v.Snippet.Requirement = "Опыт с <highlighttext>Go</highlighttext>"
	v.Snippet.Responsibility = "Build services"
	v.KeySkills = append(v.KeySkills, struct {
		Name string `json:"name,omitempty"`
	}{Name: "Kafka"})

	rec, err := v.Record()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID != "hh-42" || rec.Source != SourceName || rec.Status != records.VacancyPublished {
		t.Fatalf("unexpected record header: %+v", rec)
	}
	if rec.Description != "Build services" {
		t.Fatalf("expected snippet fallback, got %q", rec.Description)
	}
	if rec.Requirements != "Опыт с Go Навыки: Kafka." {
		t.Fatalf("unexpected requirements %q", rec.Requirements)
	}
	if rec.Salary != "" {
		t.Fatalf("unexpected salary %q", rec.Salary)
	}

	v.Archived = true
	if rec, _ = v.Record(); rec.Status != records.VacancyClosed {
		t.Fatalf("expected archived vacancy to be closed, got %q", rec.Status)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()

	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/vacancies", func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("missing user agent")
		}
		if got := r.URL.Query().Get("text"); got != "golang" {
			t.Errorf("unexpected text query %q", got)
		}
		if got := r.URL.Query()["area"]; len(got) != 1 || got[0] != "1" {
			t.Errorf("unexpected area query %v", got)
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		items := []map[string]any{
			{"id": strconv.Itoa(page*2 + 1), "name": "Go developer", "snippet": map[string]any{"responsibility": "Build services"}},
			{"id": strconv.Itoa(page*2 + 2), "name": "Archived", "archived": true},
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": items, "found": 6, "pages": 3, "page": page, "per_page": 2,
		})
	})
	mux.HandleFunc("/vacancies/1", func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "1", "name": "Go developer", "description": "<p>Full description</p>",
			"salary": map[string]any{"from": 100, "to": 200, "currency": "RUR"},
		})
	})
	mux.HandleFunc("/vacancies/", func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, &requests
}

func TestSourceVacancies(t *testing.T) {
	srv, requests := newTestServer(t)

	client := New(nil, "", 1000)
	client.APIURL = srv.URL

	source := &Source{
		Client:  client,
		Params:  SearchParams{Areas: []int{1}},
		Pages:   2,
		Details: true,
	}

	got, err := source.Vacancies(context.Background(), &records.VacancyProfile{ID: "s1", SearchText: "golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 published vacancies, got %d", len(got))
	}
	if got[0].ID != "hh-1" || got[0].Description != "Full description." || got[0].Salary != "100-200 RUR" {
		t.Fatalf("unexpected detailed vacancy: %+v", got[0])
	}
	if got[1].ID != "hh-3" || got[1].Description != "Build services" {
		t.Fatalf("expected snippet fallback for failed details, got %+v", got[1])
	}

	// 2 search pages and one detail request per item.
	if *requests != 6 {
		t.Fatalf("expected 6 requests, got %d", *requests)
	}
}

func TestSourceRequiresQuery(t *testing.T) {
	source := &Source{Client: New(nil, "", 0)}
	if _, err := source.Vacancies(context.Background(), &records.VacancyProfile{ID: "s1"}); err == nil {
		t.Fatalf("expected error without search text")
	}
}

func TestBuildParams(t *testing.T) {
	q := buildParams(&SearchParams{
		Text:      "go",
		Areas:     []int{1, 2},
		Schedules: []string{"remote"},
		PerPage:   "100",
	})

	if q.Get("text") != "go" || q.Get("per_page") != "100" {
		t.Fatalf("unexpected params: %v", q)
	}
	if len(q["area"]) != 2 || q.Get("schedule") != "remote" {
		t.Fatalf("unexpected slice params: %v", q)
	}
	if q.Has("period") || q.Has("order_by") {
		t.Fatalf("zero values must be skipped: %v", q)
	}
}
