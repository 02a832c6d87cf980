package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
)

// StatisticsService derives dashboard figures from stored registrations.
// Location decides where a calendar day starts.
type StatisticsService struct {
	Store    store.Store
	Now      func() time.Time
	Location *time.Location
}

// Statistics counts registrations in total, per category and since local
// midnight.
func (s *StatisticsService) Statistics(ctx context.Context) (domain.Statistics, error) {
	regs, err := s.Store.Registrations().ListRegistrations(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}

	loc := locationOr(s.Location)
	midnight := startOfDay(nowOr(s.Now), loc)
	var st domain.Statistics
	for _, r := range regs {
		st.Total++
		switch r.Category {
		case catalog.CategoryJunior:
			st.Junior++
		case catalog.CategorySenior:
			st.Senior++
		}
		if startOfDay(r.CreatedAt, loc).Equal(midnight) {
			st.Today++
		}
	}
	return st, nil
}

// ProgramBreakdown summarises each category: how many registrations hold a
// stage or non-stage program, and how many include each program. Programs
// come from the live catalog in display order; ids found only on stored
// registrations are appended after them.
func (s *StatisticsService) ProgramBreakdown(ctx context.Context) ([]domain.CategoryBreakdown, error) {
	regs, err := s.Store.Registrations().ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CategoryBreakdown, 0, len(catalog.Categories()))
	for _, category := range catalog.Categories() {
		live, err := s.Store.Programs().ListProgramsByCategory(ctx, category)
		if err != nil {
			return nil, err
		}

		b := domain.CategoryBreakdown{Category: category, Programs: []domain.ProgramCount{}}
		index := make(map[string]int, len(live))
		for _, p := range live {
			index[p.ProgramID] = len(b.Programs)
			b.Programs = append(b.Programs, domain.ProgramCount{
				ProgramID: p.ProgramID,
				Label:     p.Name,
				Type:      p.Type,
			})
		}

		for _, r := range regs {
			if r.Category != category {
				continue
			}
			b.Registrations++

			c := catalog.Classify(r.Programs)
			if len(c.Stage) > 0 {
				b.Stage++
			}
			if len(c.NonStage) > 0 {
				b.NonStage++
			}

			for _, id := range catalog.NormalizeAll(r.Programs) {
				i, ok := index[id]
				if !ok {
					i = len(b.Programs)
					index[id] = i
					b.Programs = append(b.Programs, domain.ProgramCount{
						ProgramID: id,
						Label:     catalog.Label(id),
						Type:      catalog.TypeOf(id),
					})
				}
				b.Programs[i].Count++
			}
		}
		out = append(out, b)
	}
	return out, nil
}
