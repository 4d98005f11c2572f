package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// page is the data every HTML view receives.
type page struct {
	Title   string
	User    *models.User
	Error   string
	Success string
	Errors  map[string]string
	Values  url.Values
	Data    any
}

// Value returns the first submitted value for a form field, for re-rendering.
func (p page) Value(field string) string {
	return p.Values.Get(field)
}

// Checked reports whether a multi-select option was submitted.
func (p page) Checked(field, option string) bool {
	for _, key := range []string{field, field + "[]"} {
		for _, v := range p.Values[key] {
			if v == option {
				return true
			}
		}
	}
	return false
}

var templateFuncs = template.FuncMap{
	"date":     func(t time.Time) string { return t.Format("2006-01-02") },
	"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"num":      func(v float64) string { return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".") },
	"label":    func(s string) string { return strings.ReplaceAll(s, "_", " ") },
	// knowledge base articles are seeded markup, never user input
	"trusted": func(s string) template.HTML { return template.HTML(s) },
}

// Renderer holds one parsed template set per page, each layered on the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *zap.Logger
}

func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(templateFS, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// HTML renders a page into a buffer first so template errors still produce a clean 500.
func (rd *Renderer) HTML(w http.ResponseWriter, status int, name string, p page) {
	t, ok := rd.pages[name]
	if !ok {
		rd.logger.Error("unknown template", zap.String("template", name))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		rd.logger.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
