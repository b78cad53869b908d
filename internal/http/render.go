package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/fyrsmithlabs/socialintel/internal/dashboard"
	"github.com/fyrsmithlabs/socialintel/internal/display"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.
const (
	pageLogin     = "login.html"
	pageDashboard = "dashboard.html"
	pageError     = "error.html"
)

const appTitle = "Social Intelligence Platform"

type loginPage struct {
	Error string
}

type dashboardPage struct {
	Trends     dashboard.TrendsView
	Attraction dashboard.AttractionView
	Skills     dashboard.SkillsView
}

type errorPage struct {
	Status  int
	Message string
}

// Renderer renders the embedded HTML pages. Each page is parsed together
// with base.html and executed through its "base" template.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"title":   func() string { return appTitle },
		"palette": func() display.Colors { return display.Palette },
		"pct":     func(v float64, max float64) float64 { return v / max * 100 },
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageLogin, pageDashboard, pageError} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}
