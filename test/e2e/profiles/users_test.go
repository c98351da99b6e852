//go:build e2e

package profiles_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterViewAndUpdate walks a user through the whole HTML flow and
// checks each step through the JSON API.
func TestRegisterViewAndUpdate(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()

	b := newBrowser(t, baseURL)
	sdk := profilesdk.NewSDKClient(baseURL)
	ctx := t.Context()

	p := b.Submit(t, "/register", "/register", profileForm("Jo", "Lee", "jo@example.com", "30", ""))
	require.Equal(t, http.StatusFound, p.Status)
	require.Equal(t, "/", p.Location)

	index := b.Get(t, "/")
	require.Contains(t, index.Body, "Registration successful! Welcome to our platform.")
	require.Contains(t, index.Body, "Jo Lee")

	list, err := sdk.ListUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	id := list.Users[0].ID
	created := list.Users[0]

	p = b.Submit(t, "/update/1", "/update/1", profileForm("Jo", "Lee", "jo.lee@example.com", "31", "Hello there"))
	require.Equal(t, http.StatusFound, p.Status)
	require.Equal(t, "/profile/1", p.Location)

	profile := b.Get(t, p.Location)
	require.Contains(t, profile.Body, "Profile updated successfully!")
	require.Contains(t, profile.Body, "Hello there")

	updated, err := sdk.GetUser(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "jo.lee@example.com", updated.Email)
	require.Equal(t, 31, updated.Age)
	require.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

// TestDuplicateRegistrationRejected registers the same email twice.
func TestDuplicateRegistrationRejected(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()

	b := newBrowser(t, baseURL)

	p := b.Submit(t, "/register", "/register", profileForm("Jo", "Lee", "jo@example.com", "30", ""))
	require.Equal(t, http.StatusFound, p.Status)

	p = b.Submit(t, "/register", "/register", profileForm("Jo", "Lee", "jo@example.com", "30", ""))
	require.Equal(t, http.StatusOK, p.Status)
	require.Contains(t, p.Body, "Email address already exists. Please use a different email.")

	list, err := profilesdk.NewSDKClient(baseURL).ListUsers(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
}

// TestInvalidAgeRejected checks the age bounds stop the insert.
func TestInvalidAgeRejected(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()

	b := newBrowser(t, baseURL)

	for _, age := range []string{"12", "121"} {
		p := b.Submit(t, "/register", "/register", profileForm("Jo", "Lee", "jo@example.com", age, ""))
		require.Equal(t, http.StatusOK, p.Status)
		require.Contains(t, p.Body, "Age must be between 13 and 120")
	}

	list, err := profilesdk.NewSDKClient(baseURL).ListUsers(t.Context())
	require.NoError(t, err)
	require.Zero(t, list.Count)
}

// TestMissingProfileRedirects visits a profile that does not exist.
func TestMissingProfileRedirects(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()

	b := newBrowser(t, baseURL)

	p := b.Get(t, "/profile/999")
	require.Equal(t, http.StatusFound, p.Status)
	require.Equal(t, "/", p.Location)
	require.Contains(t, b.Get(t, "/").Body, "User not found.")

	_, err := profilesdk.NewSDKClient(baseURL).GetUser(t.Context(), 999)
	require.ErrorIs(t, err, profilesdk.ErrNotFound)
}

// TestFormWithoutCSRFTokenRejected posts straight to /register.
func TestFormWithoutCSRFTokenRejected(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()

	p := newBrowser(t, baseURL).Post(t, "/register", profileForm("Jo", "Lee", "jo@example.com", "30", ""))
	require.Equal(t, http.StatusBadRequest, p.Status)
}
