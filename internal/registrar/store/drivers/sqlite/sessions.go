package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite/query"
)

type sessionsRepo struct {
	q *query.Queries
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	err := r.q.CreateSession(ctx, query.CreateSessionParams{
		ID:        s.ID,
		UserID:    s.UserID,
		Username:  s.Username,
		Role:      string(s.Role),
		CreatedAt: utc(s.CreatedAt),
		ExpiresAt: utc(s.ExpiresAt),
	})
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string, now time.Time) (domain.Session, error) {
	row, err := r.q.GetSession(ctx, query.GetSessionParams{ID: id, Now: utc(now)})
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return mapSession(row), nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	return r.q.DeleteSession(ctx, id)
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredSessions(ctx, utc(now))
}
