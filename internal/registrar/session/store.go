// Package session keeps login sessions server-side and binds them to the
// browser through a signed cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
)

// ErrNotFound is returned by Load for unknown and expired sessions.
var ErrNotFound = errors.New("session: not found")

// Store persists sessions by id. Implementations treat expired sessions as
// missing; Purge reclaims their storage.
type Store interface {
	Save(ctx context.Context, s domain.Session) error
	Load(ctx context.Context, id string, now time.Time) (domain.Session, error)
	Delete(ctx context.Context, id string) error
	Purge(ctx context.Context, now time.Time) (int64, error)
	Ping(ctx context.Context) error
}

// Session store kinds accepted by SESSION_STORE.
const (
	StoreMemory   = "memory"
	StoreDatabase = "database"
	StoreRedis    = "redis"
)

// ValidStoreKind reports whether kind names a session store.
func ValidStoreKind(kind string) bool {
	switch kind {
	case StoreMemory, StoreDatabase, StoreRedis:
		return true
	default:
		return false
	}
}

// Open builds the session store named by kind. db backs the database store
// and redisURL the redis store.
func Open(ctx context.Context, kind string, db store.Store, redisURL string) (Store, error) {
	switch kind {
	case StoreMemory:
		return NewMemoryStore(), nil
	case StoreDatabase:
		return NewDatabaseStore(db), nil
	case StoreRedis:
		if redisURL == "" {
			return nil, errors.New("session: redis store needs a url")
		}
		return NewRedisStore(ctx, redisURL)
	default:
		return nil, fmt.Errorf("session: unknown store %q", kind)
	}
}
