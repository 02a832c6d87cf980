package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "registrar:session:"

// RedisStore keeps sessions in redis. Keys expire with the session, so
// Purge has nothing to do.
type RedisStore struct {
	Client redis.UniversalClient
	Prefix string
}

// NewRedisStore connects to the redis server at url
// (redis://[user:password@]host:port/db) and verifies the connection.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{Client: client, Prefix: DefaultRedisPrefix}, nil
}

// redisRecord is the JSON value stored under a session key.
type redisRecord struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (r *RedisStore) key(id string) string { return r.Prefix + id }

// Save writes the session as JSON with a TTL of its lifetime. A session
// with no lifetime is not written.
func (r *RedisStore) Save(ctx context.Context, s domain.Session) error {
	ttl := s.ExpiresAt.Sub(s.CreatedAt)
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(redisRecord{
		UserID:    s.UserID,
		Username:  s.Username,
		Role:      string(s.Role),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.key(s.ID), b, ttl).Err()
}

// Load treats a key that outlived its session as missing.
func (r *RedisStore) Load(ctx context.Context, id string, now time.Time) (domain.Session, error) {
	raw, err := r.Client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	s := domain.Session{
		ID:        id,
		UserID:    rec.UserID,
		Username:  rec.Username,
		Role:      domain.Role(rec.Role),
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}
	if s.Expired(now) {
		return domain.Session{}, ErrNotFound
	}
	return s, nil
}

// Delete removes the session key. Unknown ids are not an error.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.Client.Del(ctx, r.key(id)).Err()
}

// Purge is a no-op: redis expires keys on its own.
func (r *RedisStore) Purge(context.Context, time.Time) (int64, error) { return 0, nil }

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close releases the redis connection pool.
func (r *RedisStore) Close() error { return r.Client.Close() }
