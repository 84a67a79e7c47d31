// Package views renders the storefront HTML pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Engine implements fiber.Views on top of the embedded html/template set.
type Engine struct {
	mediaURL  string
	templates map[string]*template.Template
}

// NewEngine creates an Engine; mediaURL prefixes stored image paths.
func NewEngine(mediaURL string) *Engine {
	return &Engine{mediaURL: strings.TrimSuffix(mediaURL, "/")}
}

// Load parses every page template together with the shared layout.
func (e *Engine) Load() error {
	funcs := template.FuncMap{
		"media": func(rel string) string {
			return e.mediaURL + "/" + strings.TrimPrefix(rel, "/")
		},
	}

	pages, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates: %w", err)
	}

	e.templates = make(map[string]*template.Template)
	for _, page := range pages {
		if page.Name() == "layout.html" {
			continue
		}
		name := strings.TrimSuffix(page.Name(), path.Ext(page.Name()))
		tmpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page.Name())
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		e.templates[name] = tmpl
	}
	return nil
}

// Render executes the named page into out. Layouts are built in, so the
// layout arguments fiber passes through are ignored.
func (e *Engine) Render(out io.Writer, name string, binding interface{}, _ ...string) error {
	tmpl, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %s does not exist", name)
	}
	return tmpl.ExecuteTemplate(out, "layout.html", binding)
}
