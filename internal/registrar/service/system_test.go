package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSystemService_Status(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	insertRegistration(t, st, "Amina", "junior", []string{"junior-bank"}, base)
	deactivate(t, st, "junior-sudoku")

	s := &SystemService{
		Store:     st,
		Version:   "1.2.3",
		Env:       "development",
		StartedAt: base.Add(-90 * time.Minute),
		Now:       fixedNow,
	}
	got, err := s.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", got.Status)
	require.True(t, got.DatabaseUp)
	require.Equal(t, 90*time.Minute, got.Uptime)
	require.Equal(t, 1, got.TotalRegistrations)
	require.Equal(t, 22, got.TotalPrograms)
	require.Equal(t, 21, got.ActivePrograms)
	require.Positive(t, got.Goroutines)
	require.NotZero(t, got.SysBytes)
}

func TestSystemService_StatusDegraded(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Close())

	s := &SystemService{Store: st, StartedAt: base, Now: fixedNow}
	got, err := s.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, "degraded", got.Status)
	require.False(t, got.DatabaseUp)
}

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) Purge(context.Context) (int64, error) {
	p.calls.Add(1)
	return 2, nil
}

func TestHousekeepingService(t *testing.T) {
	p := &countingPurger{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewHousekeepingService(p, logger, 10*time.Millisecond)
	h.Start()
	require.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	h.Stop()

	n := p.calls.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, n, p.calls.Load())

	require.Equal(t, time.Hour, NewHousekeepingService(p, logger, 0).Interval)
}

func TestHousekeepingFailingChoreDoesNotBlockOthers(t *testing.T) {
	p := &countingPurger{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewHousekeepingService(p, logger, time.Hour)
	h.Chores = append([]Chore{{
		Name: "broken",
		Run:  func(context.Context) (int64, error) { return 0, errors.New("boom") },
	}}, h.Chores...)

	h.Start()
	require.Eventually(t, func() bool { return p.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	h.Stop()
}
