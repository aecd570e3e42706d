// Package render executes the embedded HTML templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed templates
var templateFS embed.FS

var layouts = []string{"templates/base.html", "templates/includes/*.html"}

// Renderer holds one parsed template set per page, each sharing the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска шаблонов: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range pages {
		if strings.HasPrefix(page, "templates/includes/") {
			continue
		}

		name := strings.TrimSuffix(strings.TrimPrefix(page, "templates/"), path.Ext(page))
		patterns := append(append([]string{}, layouts...), page)

		tpl, err := template.New(path.Base(page)).Funcs(Funcs()).ParseFS(templateFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("ошибка разбора шаблона %s: %w", name, err)
		}
		r.pages[name] = tpl
	}

	return r, nil
}

// Render writes the page named like "posts/index". Output is buffered, so a
// failing template never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("шаблон %s не найден", name)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("ошибка выполнения шаблона %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
