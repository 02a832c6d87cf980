package session

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
)

// DatabaseStore keeps sessions in the application database.
type DatabaseStore struct {
	Store store.Store
}

// NewDatabaseStore uses the sessions table of s.
func NewDatabaseStore(s store.Store) *DatabaseStore {
	return &DatabaseStore{Store: s}
}

func (d *DatabaseStore) Save(ctx context.Context, s domain.Session) error {
	return d.Store.Sessions().CreateSession(ctx, s)
}

// Load maps unknown and expired rows to ErrNotFound.
func (d *DatabaseStore) Load(ctx context.Context, id string, now time.Time) (domain.Session, error) {
	s, err := d.Store.Sessions().GetSession(ctx, id, now)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrNotFound
	}
	return s, err
}

func (d *DatabaseStore) Delete(ctx context.Context, id string) error {
	return d.Store.Sessions().DeleteSession(ctx, id)
}

// Purge deletes sessions that expired at now.
func (d *DatabaseStore) Purge(ctx context.Context, now time.Time) (int64, error) {
	return d.Store.Sessions().DeleteExpiredSessions(ctx, now)
}

// Ping checks the underlying database.
func (d *DatabaseStore) Ping(ctx context.Context) error {
	return d.Store.Ping(ctx)
}
