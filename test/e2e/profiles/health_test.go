//go:build e2e

package profiles_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()

	client := profilesdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
	require.NotEmpty(t, health.Version)
}

// TestReadyzEndpoint verifies the readiness check sees the database.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()

	client := profilesdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}

// TestSwaggerUI verifies the API docs are served.
func TestSwaggerUI(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()

	p := newBrowser(t, baseURL).Get(t, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, p.Status)
	require.Contains(t, p.Body, "/api/users")
}
