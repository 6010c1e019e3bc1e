package headhunter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/profile-matcher/internal/records"
)

// Source serves hh.ru search results as a vacancy pool.
type Source struct {
	Client *Client
	// Params are the base search parameters; Text is taken from the profile.
	Params SearchParams
	Pages  int
	// Details fetches every vacancy for its full description instead of the snippet.
	Details bool
}

// Vacancies searches hh.ru for the profile's query and returns the published results in
// search order.
func (s *Source) Vacancies(ctx context.Context, profile *records.VacancyProfile) ([]*records.Vacancy, error) {
	params := s.Params
	params.Text = profile.Query()
	if params.Text == "" {
		return nil, fmt.Errorf("vacancy profile %q has no search text", profile.ID)
	}

	found, err := s.Client.Search(ctx, &params, s.Pages)
	if err != nil {
		return nil, err
	}

	out := make([]*records.Vacancy, 0, found.Len())
	for _, v := range found.Items {
		if s.Details {
			if full, err := s.Client.GetVacancy(ctx, v.ID); err == nil && full != nil {
				v = full
			} else if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				s.Client.logger.Debug("fetching detailed vacancy failed",
					zap.String("vacancy_id", v.ID),
					zap.Error(err),
				)
			}
		}

		rec, err := v.Record()
		if err != nil {
			return nil, err
		}
		if rec.Status != records.VacancyPublished {
			continue
		}
		out = append(out, rec)
	}

	return out, nil
}
