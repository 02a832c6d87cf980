package service

import (
	"context"
	"log/slog"
	"time"
)

// SessionPurger removes expired sessions and reports how many went.
type SessionPurger interface {
	Purge(ctx context.Context) (int64, error)
}

// Chore is one periodic cleanup step. It reports how many items it removed.
type Chore struct {
	Name string
	Run  func(ctx context.Context) (int64, error)
}

// HousekeepingService runs its chores on a fixed interval until stopped.
// A failing chore is logged and does not stop the others.
type HousekeepingService struct {
	Chores   []Chore
	Logger   *slog.Logger
	Interval time.Duration

	// Timeout bounds a single round of chores.
	Timeout time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewHousekeepingService purges expired sessions every interval (one hour
// when interval is not positive).
func NewHousekeepingService(sessions SessionPurger, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Chores:   []Chore{{Name: "expired_sessions", Run: sessions.Purge}},
		Logger:   logger,
		Interval: interval,
		Timeout:  time.Minute,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs a first round immediately, then one per interval.
func (s *HousekeepingService) Start() {
	go s.loop()
	s.Logger.Info("housekeeping started", "interval", s.Interval, "chores", len(s.Chores))
}

// Stop waits for a round in progress to finish.
func (s *HousekeepingService) Stop() {
	close(s.stop)
	<-s.done
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.round()
		select {
		case <-ticker.C:
		case <-s.stop:
			return
		}
	}
}

func (s *HousekeepingService) round() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	for _, c := range s.Chores {
		started := time.Now()
		n, err := c.Run(ctx)
		if err != nil {
			s.Logger.Error("housekeeping chore failed", "chore", c.Name, "error", err)
			continue
		}
		s.Logger.Debug("housekeeping chore done", "chore", c.Name, "removed", n, "took", time.Since(started))
	}
}
