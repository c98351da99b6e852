package profilesdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *profilesdk.SDKClient {
	t.Helper()

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	jo := profilesdk.UserResponse{
		ID: 1, FirstName: "Jo", LastName: "Lee", Email: "jo@example.com",
		Age: 30, CreatedAt: created, UpdatedAt: created,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, profilesdk.HealthResponse{Status: "ok", Version: "test"})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, profilesdk.HealthResponse{
			Status: "degraded", Checks: &profilesdk.HealthChecks{Database: "unavailable"},
		})
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			profilesdk.ErrInvalidRequest.WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, profilesdk.ListUsersResponse{Users: []profilesdk.UserResponse{jo}, Count: 1})
	})
	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "1":
			httpx.WriteJSON(w, http.StatusOK, jo)
		case "500":
			w.WriteHeader(http.StatusBadGateway)
		case "429":
			w.Header().Set("Retry-After", "3")
			profilesdk.ErrRateLimited.WriteError(w)
		default:
			profilesdk.ErrNotFound.WriteError(w)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return profilesdk.NewSDKClient(srv.URL + "/")
}

func TestHealth(t *testing.T) {
	c := newServer(t)

	live, err := c.GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	_, err = c.GetReadiness(context.Background())
	var apiErr *profilesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestListUsers(t *testing.T) {
	c := newServer(t)

	out, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	require.Len(t, out.Users, 1)
	require.Equal(t, "jo@example.com", out.Users[0].Email)
	require.True(t, out.Users[0].CreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
}

func TestGetUser(t *testing.T) {
	c := newServer(t)

	t.Run("found", func(t *testing.T) {
		u, err := c.GetUser(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, int64(1), u.ID)
		require.Equal(t, "Lee", u.LastName)
		require.Equal(t, 30, u.Age)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.GetUser(context.Background(), 999)
		require.ErrorIs(t, err, profilesdk.ErrNotFound)

		var apiErr *profilesdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("rate limited", func(t *testing.T) {
		_, err := c.GetUser(context.Background(), 429)
		require.ErrorIs(t, err, profilesdk.ErrRateLimited)

		var apiErr *profilesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	})

	t.Run("non json failure", func(t *testing.T) {
		_, err := c.GetUser(context.Background(), 500)
		require.ErrorIs(t, err, profilesdk.ErrServerError)
		require.False(t, errors.Is(err, profilesdk.ErrNotFound))
	})
}

func TestTransportError(t *testing.T) {
	c := profilesdk.NewSDKClient("http://127.0.0.1:1")
	c.HTTPClient.Timeout = time.Second

	_, err := c.ListUsers(context.Background())
	require.Error(t, err)
	var apiErr *profilesdk.APIError
	require.False(t, errors.As(err, &apiErr))
}
