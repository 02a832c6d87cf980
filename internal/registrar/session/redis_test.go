package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisStore(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	rs, err := NewRedisStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })

	now := time.Now().UTC().Truncate(time.Second)
	s := domain.Session{
		ID:        "fp-1",
		UserID:    "u-1",
		Username:  "leader",
		Role:      domain.RoleTeamLeader,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, rs.Save(ctx, s))

	got, err := rs.Load(ctx, "fp-1", now)
	require.NoError(t, err)
	require.Equal(t, "leader", got.Username)
	require.Equal(t, domain.RoleTeamLeader, got.Role)

	ttl, err := rs.Client.TTL(ctx, rs.key("fp-1")).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 59*time.Minute)

	_, err = rs.Load(ctx, "fp-1", now.Add(2*time.Hour))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, rs.Delete(ctx, "fp-1"))
	_, err = rs.Load(ctx, "fp-1", now)
	require.ErrorIs(t, err, ErrNotFound)

	n, err := rs.Purge(ctx, now)
	require.NoError(t, err)
	require.Zero(t, n)
}
