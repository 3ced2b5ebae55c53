package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds one parsed template set per page, each combined with the
// shared layout.
type Renderer struct {
	tmpl map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	templates := map[string]*template.Template{}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}

	return &Renderer{tmpl: templates}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, name string, data any) {
	t, ok := r.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}
