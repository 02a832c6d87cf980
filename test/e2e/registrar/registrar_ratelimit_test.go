package registrar_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit verifies repeated logins for one username are throttled.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := registrarsdk.NewClient(baseURL)

	var limited bool
	for range 10 {
		_, err := client.Login(t.Context(), adminUsername, "wrong-password")
		require.Error(t, err)
		if registrarsdk.StatusCode(err) == http.StatusTooManyRequests {
			limited = true
			break
		}
		require.Equal(t, http.StatusUnauthorized, registrarsdk.StatusCode(err))
	}
	require.True(t, limited, "expected login to be rate limited")
}
