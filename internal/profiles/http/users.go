package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/internal/profiles/views"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

// User facing notices.
const (
	msgRegistered     = "Registration successful! Welcome to our platform."
	msgUpdated        = "Profile updated successfully!"
	msgUserNotFound   = "User not found."
	msgDuplicateEmail = "Email address already exists. Please use a different email."
)

// UsersHandler serves the HTML pages for listing, registering, viewing and
// editing profiles.
type UsersHandler struct {
	UserService *service.UserService
	Views       *views.Renderer
	Flash       *httpx.FlashStore
}

// HandleIndex handles GET /
func (h *UsersHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageIndex, views.Page{Title: "All users", Users: users})
}

// HandleRegisterForm handles GET /register
func (h *UsersHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageRegister, views.Page{Title: "Register"})
}

// HandleRegister handles POST /register
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := inputFromForm(r.PostForm)
	fields, errs := service.ValidateUser(in)
	if errs.HasErrors() {
		h.render(w, r, http.StatusOK, views.PageRegister, views.Page{Title: "Register", Form: in, Errors: errs})
		return
	}

	_, err := h.UserService.RegisterUser(ctx, fields)
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		h.render(w, r, http.StatusOK, views.PageRegister, views.Page{
			Title: "Register", Form: in, FormError: msgDuplicateEmail,
		})
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	h.flash(w, r, httpx.FlashSuccess, msgRegistered)
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleProfile handles GET /profile/{id}
func (h *UsersHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, views.PageProfile, views.Page{Title: u.FullName(), User: u})
}

// HandleEditForm handles GET /update/{id}
func (h *UsersHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	u, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, views.PageUpdate, views.Page{
		Title: "Edit " + u.FullName(), User: u, Form: service.InputFromUser(u),
	})
}

// HandleUpdate handles POST /update/{id}
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := inputFromForm(r.PostForm)
	page := views.Page{Title: "Edit " + current.FullName(), User: current, Form: in}

	fields, errs := service.ValidateUser(in)
	if errs.HasErrors() {
		page.Errors = errs
		h.render(w, r, http.StatusOK, views.PageUpdate, page)
		return
	}

	_, err := h.UserService.UpdateUser(ctx, current.ID, fields)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.redirectNotFound(w, r)
		return
	case errors.Is(err, service.ErrDuplicateEmail):
		page.FormError = msgDuplicateEmail
		h.render(w, r, http.StatusOK, views.PageUpdate, page)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	h.flash(w, r, httpx.FlashSuccess, msgUpdated)
	http.Redirect(w, r, "/profile/"+strconv.FormatInt(current.ID, 10), http.StatusFound)
}

// lookup resolves {id} to a stored user. On failure it has already written
// the response: 404 for a malformed id, a flash and redirect for a missing
// user, 500 otherwise.
func (h *UsersHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return domain.User{}, false
	}

	u, err := h.UserService.GetUser(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.redirectNotFound(w, r)
		return domain.User{}, false
	case err != nil:
		h.serverError(w, r, err)
		return domain.User{}, false
	}
	return u, true
}

func (h *UsersHandler) redirectNotFound(w http.ResponseWriter, r *http.Request) {
	h.flash(w, r, httpx.FlashError, msgUserNotFound)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *UsersHandler) flash(w http.ResponseWriter, r *http.Request, category, msg string) {
	if err := h.Flash.Add(w, r, httpx.Flash{Category: category, Message: msg}); err != nil {
		slogx.FromContext(r.Context()).Error("failed to set flash", "error", err)
	}
}

// render fills in the per-request parts of a page (pending flashes and a
// CSRF token) and writes it.
func (h *UsersHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data views.Page) {
	log := slogx.FromContext(r.Context())

	token, err := httpx.CSRFToken(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.CSRFToken = token
	data.Flashes = h.Flash.Pop(w, r)

	if err := h.Views.Render(w, status, page, data); err != nil {
		log.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *UsersHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Error("request failed", "error", err)
	h.errorPage(w, r, http.StatusInternalServerError, "Something went wrong",
		"We could not complete your request. Please try again later.")
}

func (h *UsersHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.errorPage(w, r, http.StatusNotFound, "Page not found", "The page you asked for does not exist.")
}

func (h *UsersHandler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Warn("bad form submission", "error", err)
	h.errorPage(w, r, http.StatusBadRequest, "Bad request", "The submitted form could not be read.")
}

func (h *UsersHandler) errorPage(w http.ResponseWriter, r *http.Request, status int, title, msg string) {
	err := h.Views.Render(w, status, views.PageError, views.Page{
		Title:     title,
		Message:   msg,
		Status:    status,
		RequestID: slogx.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to render error page", "error", err)
		http.Error(w, http.StatusText(status), status)
	}
}

// pathID parses the {id} wildcard. Any unsigned integer is routed, even one
// no user can have (0); signs and other junk are not.
func pathID(r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func inputFromForm(form url.Values) service.UserInput {
	return service.UserInput{
		FirstName: form.Get(service.FieldFirstName),
		LastName:  form.Get(service.FieldLastName),
		Email:     form.Get(service.FieldEmail),
		Age:       form.Get(service.FieldAge),
		Bio:       form.Get(service.FieldBio),
	}
}
