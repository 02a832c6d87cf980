package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
)

// CustomRosterCategory names rosters that are not limited to one category.
const CustomRosterCategory = "custom"

// Renderer turns registrations into PDF documents.
type Renderer interface {
	RenderDetail(reg domain.Registration) ([]byte, error)
	RenderRoster(roster domain.Roster) ([]byte, error)
}

// Archiver stores rendered reports in object storage.
type Archiver interface {
	Upload(ctx context.Context, category string, pdf []byte) (domain.ArchivedReport, error)
}

// SheetsWriter mirrors rosters into a spreadsheet, one tab per roster.
type SheetsWriter interface {
	WriteRosters(ctx context.Context, rosters []domain.Roster) (domain.SheetsExport, error)
}

// ReportService builds PDF reports and exports. Archiver and Sheets are
// optional; a nil value makes the matching operation return
// ErrFeatureDisabled.
type ReportService struct {
	Store    store.Store
	Renderer Renderer
	Archiver Archiver
	Sheets   SheetsWriter
	Now      func() time.Time
	Location *time.Location
}

// Detail renders the single-registration sheet.
func (s *ReportService) Detail(ctx context.Context, id string) ([]byte, error) {
	reg, err := (&RegistrationService{Store: s.Store}).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	pdf, err := s.Renderer.RenderDetail(reg)
	if err != nil {
		return nil, fmt.Errorf("render detail: %w", err)
	}
	return pdf, nil
}

// Roster renders the filtered roster. An empty result yields ErrNoRegistrations.
func (s *ReportService) Roster(ctx context.Context, params registrarsdk.RosterParams) ([]byte, error) {
	roster, err := s.BuildRoster(ctx, params)
	if err != nil {
		return nil, err
	}
	pdf, err := s.Renderer.RenderRoster(roster)
	if err != nil {
		return nil, fmt.Errorf("render roster: %w", err)
	}
	return pdf, nil
}

// ArchiveRoster renders the roster and uploads it.
func (s *ReportService) ArchiveRoster(ctx context.Context, params registrarsdk.RosterParams) (domain.ArchivedReport, error) {
	if s.Archiver == nil {
		return domain.ArchivedReport{}, ErrFeatureDisabled
	}
	roster, err := s.BuildRoster(ctx, params)
	if err != nil {
		return domain.ArchivedReport{}, err
	}
	pdf, err := s.Renderer.RenderRoster(roster)
	if err != nil {
		return domain.ArchivedReport{}, fmt.Errorf("render roster: %w", err)
	}
	out, err := s.Archiver.Upload(ctx, roster.Category, pdf)
	if err != nil {
		return domain.ArchivedReport{}, fmt.Errorf("archive roster: %w", err)
	}
	slogx.FromContext(ctx).Info("roster archived",
		slog.String("key", out.Key),
		slog.Int("registrations", len(roster.Registrations)),
	)
	return out, nil
}

// ExportSheets writes one roster per category to the spreadsheet.
func (s *ReportService) ExportSheets(ctx context.Context) (domain.SheetsExport, error) {
	if s.Sheets == nil {
		return domain.SheetsExport{}, ErrFeatureDisabled
	}
	now := nowOr(s.Now)
	rosters := make([]domain.Roster, 0, len(catalog.Categories()))
	for _, category := range catalog.Categories() {
		regs, err := s.Store.Registrations().ListRegistrationsByCategory(ctx, category)
		if err != nil {
			return domain.SheetsExport{}, err
		}
		rosters = append(rosters, domain.Roster{
			Category:      category,
			GeneratedAt:   now,
			Registrations: normalizedAll(regs),
		})
	}
	out, err := s.Sheets.WriteRosters(ctx, rosters)
	if err != nil {
		return domain.SheetsExport{}, fmt.Errorf("export sheets: %w", err)
	}
	slogx.FromContext(ctx).Info("sheets exported", slog.String("spreadsheet_id", out.SpreadsheetID))
	return out, nil
}

// BuildRoster selects registrations for a roster. Registrations are kept
// newest first.
func (s *ReportService) BuildRoster(ctx context.Context, params registrarsdk.RosterParams) (domain.Roster, error) {
	if fe := params.Validate(); fe != nil {
		return domain.Roster{}, newValidationError(fe)
	}

	now := nowOr(s.Now)
	var (
		regs []domain.Registration
		err  error
	)
	if since, ok := rangeStart(params.Range, now, locationOr(s.Location)); ok {
		regs, err = s.Store.Registrations().ListRegistrationsCreatedSince(ctx, since)
	} else {
		regs, err = s.Store.Registrations().ListRegistrations(ctx)
	}
	if err != nil {
		return domain.Roster{}, err
	}

	selected := make([]domain.Registration, 0, len(regs))
	for _, r := range regs {
		if params.Category != "" && r.Category != params.Category {
			continue
		}
		if params.ProgramType != "" && !hasProgramType(r.Programs, params.ProgramType) {
			continue
		}
		selected = append(selected, normalized(r))
	}
	if len(selected) == 0 {
		return domain.Roster{}, ErrNoRegistrations
	}

	category := params.Category
	if category == "" {
		category = CustomRosterCategory
	}
	return domain.Roster{Category: category, GeneratedAt: now, Registrations: selected}, nil
}

// rangeStart returns the earliest creation time of a roster range.
func rangeStart(r string, now time.Time, loc *time.Location) (time.Time, bool) {
	switch r {
	case registrarsdk.RangeToday:
		return startOfDay(now, loc), true
	case registrarsdk.RangeWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case registrarsdk.RangeMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

func hasProgramType(programs []string, typ string) bool {
	c := catalog.Classify(programs)
	if typ == catalog.TypeStage {
		return len(c.Stage) > 0
	}
	return len(c.NonStage) > 0
}
