// Package views renders the HTML pages. Templates are embedded so the
// binary is self-contained; every page shares the head/foot partials
// from layout.html.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"repohub/app/models"
	"repohub/app/session"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

// Page carries everything any page template can reference. Unused
// fields stay zero.
type Page struct {
	Title     string
	Username  string
	Flashes   []session.Flash
	FormError string
	FormData  map[string]string
	Repos     []models.Repository
	Repo      *models.Repository
	Files     []string
	Changes   []string
	Filename  string
	Content   string
	RepoID    uint
}

type Renderer struct {
	t   *template.Template
	log zerolog.Logger
}

func New(log zerolog.Logger) (*Renderer, error) {
	t, err := template.New("").Funcs(functions).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t, log: log}, nil
}

// Render executes the named page into a buffer first, so a template
// failure becomes a clean 500 instead of a half-written response.
func (rd *Renderer) Render(w http.ResponseWriter, page string, data *Page) {
	if data == nil {
		data = &Page{}
	}
	buf := new(bytes.Buffer)
	if err := rd.t.ExecuteTemplate(buf, page, data); err != nil {
		rd.log.Error().Err(err).Str("page", page).Msg("render failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
