// Package views renders the HTML pages of the profiles site from embedded
// html/template files.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageIndex    = "index"
	PageRegister = "register"
	PageProfile  = "profile"
	PageUpdate   = "update"
	PageError    = "error"
)

var pages = []string{PageIndex, PageRegister, PageProfile, PageUpdate, PageError}

// Page is the data every template receives. Pages ignore the fields they
// do not use.
type Page struct {
	Title     string
	Flashes   []httpx.Flash
	CSRFToken string

	// Forms
	Form      service.UserInput
	Errors    service.FieldErrors
	FormError string

	// Profiles
	User  domain.User
	Users []domain.User

	// Error page
	Status    int
	Message   string
	RequestID string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"fieldErrors": func(errs service.FieldErrors, field string) []string {
		return errs[field]
	},
	"formatTime": func(t time.Time) string {
		return t.UTC().Format("2 Jan 2006, 15:04 UTC")
	},
	"flashClass": func(category string) string {
		if category == httpx.FlashError {
			return "flash flash-error"
		}
		return "flash flash-success"
	},
}

// New parses the embedded templates. It fails if any page is missing or
// malformed.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page into a buffer and only then writes it, so a template
// failure never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("views: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("views: render %s: %w", page, err)
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
