package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/stretchr/testify/require"
)

func TestStatisticsService_Statistics(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	s := &StatisticsService{Store: st, Now: fixedNow, Location: time.UTC}

	insertRegistration(t, st, "A", "junior", []string{"junior-bank"}, base.Add(-time.Hour))
	insertRegistration(t, st, "B", "junior", []string{"junior-bank"}, base.Add(-10*time.Hour))
	insertRegistration(t, st, "C", "senior", []string{"senior-bank"}, base.Add(-11*time.Hour))

	got, err := s.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, got.Total)
	require.Equal(t, 2, got.Junior)
	require.Equal(t, 1, got.Senior)
	require.Equal(t, 2, got.Today)
}

func TestStatisticsService_TodayFollowsLocation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	// 10:00 UTC is 15:30 in Kolkata; 23:00 UTC the day before is 04:30 local today.
	kolkata := time.FixedZone("IST", 5*3600+1800)
	s := &StatisticsService{Store: st, Now: fixedNow, Location: kolkata}

	insertRegistration(t, st, "A", "junior", []string{"junior-bank"}, base.Add(-11*time.Hour))
	insertRegistration(t, st, "B", "junior", []string{"junior-bank"}, base.Add(-17*time.Hour))

	got, err := s.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, got.Today)
}

func TestStatisticsService_TodayIgnoresFutureDays(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	s := &StatisticsService{Store: st, Now: fixedNow, Location: time.UTC}

	insertRegistration(t, st, "A", "junior", []string{"junior-bank"}, base.Add(time.Hour))
	insertRegistration(t, st, "B", "junior", []string{"junior-bank"}, base.Add(36*time.Hour))

	got, err := s.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, got.Total)
	require.Equal(t, 1, got.Today)
}

func TestStatisticsService_ProgramBreakdown(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	s := &StatisticsService{Store: st, Now: fixedNow, Location: time.UTC}

	insertRegistration(t, st, "A", "junior", []string{"qiraat", "junior-drawing"}, base)
	insertRegistration(t, st, "B", "junior", []string{"junior-bank", "retired-program"}, base)
	insertRegistration(t, st, "C", "junior", []string{"junior-bank"}, base)

	got, err := s.ProgramBreakdown(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	junior := got[0]
	require.Equal(t, catalog.CategoryJunior, junior.Category)
	require.Equal(t, 3, junior.Registrations)
	require.Equal(t, 3, junior.Stage)
	require.Equal(t, 1, junior.NonStage)
	require.Len(t, junior.Programs, 12)

	counts := map[string]int{}
	for _, p := range junior.Programs {
		counts[p.ProgramID] = p.Count
	}
	require.Equal(t, 1, counts["junior-qiraat"])
	require.Equal(t, 2, counts["junior-bank"])
	require.Equal(t, 1, counts["junior-drawing"])
	require.Equal(t, 0, counts["junior-sudoku"])

	orphan := junior.Programs[11]
	require.Equal(t, "retired-program", orphan.ProgramID)
	require.Equal(t, "retired-program", orphan.Label)
	require.Empty(t, orphan.Type)
	require.Equal(t, 1, orphan.Count)

	senior := got[1]
	require.Equal(t, catalog.CategorySenior, senior.Category)
	require.Zero(t, senior.Registrations)
	require.Len(t, senior.Programs, 11)
}
