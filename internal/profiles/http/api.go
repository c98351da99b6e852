package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

// APIHandler serves the read-only JSON view of profiles.
type APIHandler struct {
	UserService *service.UserService
}

// HandleListUsers handles GET /api/users
//
//	@Summary		List users
//	@Description	Returns every registered user, newest first. There is no pagination.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	profilesdk.ListUsersResponse	"users, count"
//	@Failure		429	{object}	profilesdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	profilesdk.ErrorResponse		"error, error_description"
//	@Router			/api/users [get].
func (h *APIHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		profilesdk.ErrServerError.WriteError(w)
		return
	}

	out := profilesdk.ListUsersResponse{
		Users: make([]profilesdk.UserResponse, 0, len(users)),
		Count: len(users),
	}
	for _, u := range users {
		out.Users = append(out.Users, toUserResponse(u))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGetUser handles GET /api/users/{id}
//
//	@Summary		Get user
//	@Description	Returns a single user by numeric id.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int							true	"User ID"
//	@Success		200	{object}	profilesdk.UserResponse		"user"
//	@Failure		400	{object}	profilesdk.ErrorResponse	"id is not an unsigned integer"
//	@Failure		404	{object}	profilesdk.ErrorResponse	"user not found"
//	@Failure		500	{object}	profilesdk.ErrorResponse	"error, error_description"
//	@Router			/api/users/{id} [get].
func (h *APIHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.GetUser(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		profilesdk.ErrNotFound.WriteError(w)
		return
	case err != nil:
		slogx.FromContext(r.Context()).Error("api: get user failed", "user_id", id, "error", err)
		profilesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func toUserResponse(u domain.User) profilesdk.UserResponse {
	return profilesdk.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
