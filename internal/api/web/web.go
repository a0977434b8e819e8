// Package web renders the dashboard pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/presenting"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageDashboard = "dashboard.html"
	PageLogin     = "login.html"
)

var funcMap = template.FuncMap{
	"statusClass": func(s domain.Status) string {
		if s == domain.StatusNone {
			return "status-none"
		}
		return "status-" + string(s)
	},
	"emoji": func(s domain.Status) string { return s.Emoji() },
}

// Renderer holds one template set per page, each parsed with the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, page := range []string{PageDashboard, PageLogin} {
		t, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never sends a
// half-written page.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	if rw, ok := w.(http.ResponseWriter); ok {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	_, err := buf.WriteTo(w)
	return err
}

// LoginPage is the data of the login form.
type LoginPage struct {
	Next  string
	Error string
	User  string
}

// DashboardPage wraps the view with the signed-in account.
type DashboardPage struct {
	View *presenting.DashboardView
	User string
}
