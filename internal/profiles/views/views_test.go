package views_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/internal/profiles/views"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	r, err := views.New()
	require.NoError(t, err)
	return r
}

func sampleUser() domain.User {
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	return domain.User{
		ID: 7,
		UserFields: domain.UserFields{
			FirstName: "Jo", LastName: "Lee", Email: "jo@example.com", Age: 30,
		},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestRenderIndex(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()

	err := r.Render(rec, http.StatusOK, views.PageIndex, views.Page{
		Title:   "All users",
		Users:   []domain.User{sampleUser()},
		Flashes: []httpx.Flash{{Category: httpx.FlashSuccess, Message: "Registration successful! Welcome to our platform."}},
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	require.Contains(t, body, "Jo Lee")
	require.Contains(t, body, "jo@example.com")
	require.Contains(t, body, `href="/profile/7"`)
	require.Contains(t, body, "Registration successful! Welcome to our platform.")
	require.Contains(t, body, "1 May 2024, 10:30 UTC")
}

func TestRenderIndexEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, newRenderer(t).Render(rec, http.StatusOK, views.PageIndex, views.Page{Title: "All users"}))
	require.Contains(t, rec.Body.String(), "No users yet")
}

func TestRenderRegisterWithErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	err := newRenderer(t).Render(rec, http.StatusOK, views.PageRegister, views.Page{
		Title:     "Register",
		CSRFToken: "tok-123",
		Form:      service.UserInput{FirstName: "J", Email: "jo@example.com"},
		Errors:    service.FieldErrors{service.FieldFirstName: {"First name must be between 2 and 50 characters"}},
		FormError: "Email address already exists. Please use a different email.",
	})
	require.NoError(t, err)

	body := rec.Body.String()
	require.Contains(t, body, `name="csrf_token" value="tok-123"`)
	require.Contains(t, body, "First name must be between 2 and 50 characters")
	require.Contains(t, body, "Email address already exists. Please use a different email.")
	require.Contains(t, body, `value="jo@example.com"`)
	require.Contains(t, body, `action="/register"`)
}

func TestRenderEscapesUserContent(t *testing.T) {
	u := sampleUser()
	u.Bio = `<script>alert("x")</script>`

	rec := httptest.NewRecorder()
	require.NoError(t, newRenderer(t).Render(rec, http.StatusOK, views.PageProfile, views.Page{Title: u.FullName(), User: u}))

	body := rec.Body.String()
	require.NotContains(t, body, "<script>alert")
	require.Contains(t, body, "&lt;script&gt;")
}

func TestRenderUpdateForm(t *testing.T) {
	u := sampleUser()
	rec := httptest.NewRecorder()
	err := newRenderer(t).Render(rec, http.StatusOK, views.PageUpdate, views.Page{
		Title: "Edit", User: u, Form: service.InputFromUser(u),
	})
	require.NoError(t, err)

	body := rec.Body.String()
	require.Contains(t, body, `action="/update/7"`)
	require.Contains(t, body, `value="30"`)
	require.Contains(t, body, "Update Profile")
}

func TestRenderErrorPage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := newRenderer(t).Render(rec, http.StatusInternalServerError, views.PageError, views.Page{
		Title: "Something went wrong", Message: "Please try again later.", RequestID: "01HX",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Reference: 01HX")
}

func TestRenderUnknownPage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := newRenderer(t).Render(rec, http.StatusOK, "nope", views.Page{})
	require.Error(t, err)
	require.Equal(t, 0, rec.Body.Len())
}
