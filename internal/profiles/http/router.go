package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/internal/profiles/views"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
	"github.com/go-chi/chi/v5/middleware"

	_ "github.com/aussiebroadwan/profiles/api/profiles" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// maxFormBytes caps request bodies.
const maxFormBytes = 64 << 10

// RateLimits groups the per-surface limiter settings.
type RateLimits struct {
	Form httpx.RateLimitConfig
	Page httpx.RateLimitConfig
	API  httpx.RateLimitConfig
}

// DefaultRateLimits returns the httpx defaults.
func DefaultRateLimits() RateLimits {
	return RateLimits{Form: httpx.FormLimit, Page: httpx.PageLimit, API: httpx.APILimit}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	UserService *service.UserService
	Views       *views.Renderer
	Flash       *httpx.FlashStore
	CSRF        httpx.CSRFConfig
	Limits      RateLimits
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       DefaultRateLimits(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		middleware.RealIP,
		slogx.HTTPMiddleware(r.logger),
		middleware.Recoverer,
		httpx.MaxBody(maxFormBytes),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPages()
	r.registerAPI()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Profiles Service API
//	@version		0.1.0
//	@description	Read-only JSON access to registered user profiles, plus health probes.
//	@description
//	@description	Registration and editing happen through the HTML forms served at / and are not part of this API.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/profiles
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:5000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerPages() {
	h := &UsersHandler{
		UserService: r.UserService,
		Views:       r.Views,
		Flash:       r.Flash,
	}

	csrf := httpx.CSRF(r.CSRF)
	page := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(r.Limits.Page), csrf)
	}
	form := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(r.Limits.Form), csrf)
	}

	// "GET /{$}" matches only the root; other unknown paths fall through to
	// the mux's 404.
	r.Mux.Handle("GET /{$}", page(h.HandleIndex))
	r.Mux.Handle("GET /register", page(h.HandleRegisterForm))
	r.Mux.Handle("POST /register", form(h.HandleRegister))
	r.Mux.Handle("GET /profile/{id}", page(h.HandleProfile))
	r.Mux.Handle("GET /update/{id}", page(h.HandleEditForm))
	r.Mux.Handle("POST /update/{id}", form(h.HandleUpdate))
}

func (r *Router) registerAPI() {
	h := &APIHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleListUsers), httpx.RateLimitByIP(r.Limits.API)),
	)
	r.Mux.Handle("GET /api/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGetUser), httpx.RateLimitByIP(r.Limits.API)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), httpx.RateLimitByIP(r.Limits.API)),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), httpx.RateLimitByIP(r.Limits.API)),
	)
}
