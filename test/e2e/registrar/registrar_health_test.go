package registrar_test

import (
	"testing"

	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/stretchr/testify/require"
)

func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := registrarsdk.NewClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := registrarsdk.NewClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Sessions)
}

func TestSystemStatus(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	anonymous := registrarsdk.NewClient(baseURL)
	_, err := anonymous.GetSystemStatus(t.Context())
	assertStatus(t, err, 401)

	status, err := adminClient(t, baseURL).GetSystemStatus(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", status.Status)
	require.Equal(t, "connected", status.Database)
	require.Equal(t, "production", status.Env)
	require.Equal(t, 22, status.Metrics.TotalPrograms)
	require.Positive(t, status.Runtime.Goroutines)
}
