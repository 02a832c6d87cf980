package service

import (
	"context"
	"runtime"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"golang.org/x/sync/errgroup"
)

// SystemStatus is a snapshot of process and database health.
type SystemStatus struct {
	Status     string
	Uptime     time.Duration
	Version    string
	Env        string
	DatabaseUp bool

	Goroutines     int
	HeapAllocBytes uint64
	SysBytes       uint64

	TotalRegistrations int
	TotalPrograms      int
	ActivePrograms     int
}

// SystemService reports process and database health for the status page.
type SystemService struct {
	Store     store.Store
	Version   string
	Env       string
	StartedAt time.Time
	Now       func() time.Time
}

// Status pings the database and gathers record counts concurrently. A
// failed ping marks the status degraded rather than failing the call.
func (s *SystemService) Status(ctx context.Context) (SystemStatus, error) {
	st := SystemStatus{
		Status:  "ok",
		Uptime:  nowOr(s.Now).Sub(s.StartedAt).Truncate(time.Second),
		Version: s.Version,
		Env:     s.Env,
	}

	if err := s.Store.Ping(ctx); err != nil {
		st.Status = "degraded"
		return st, nil
	}
	st.DatabaseUp = true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Store.Registrations().CountRegistrations(gctx)
		st.TotalRegistrations = n
		return err
	})
	g.Go(func() error {
		total, active, err := s.Store.Programs().CountPrograms(gctx)
		st.TotalPrograms, st.ActivePrograms = total, active
		return err
	})
	if err := g.Wait(); err != nil {
		return SystemStatus{}, err
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	st.Goroutines = runtime.NumGoroutine()
	st.HeapAllocBytes = mem.HeapAlloc
	st.SysBytes = mem.Sys

	return st, nil
}
