// Package view renders the dashboard pages from controller snapshots.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Template names.
const (
	PageDashboard = "dashboard.html"
	PageNotFound  = "not_found.html"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// NotFound is the data for PageNotFound. It never refreshes.
type NotFound struct {
	Page
	Refresh bool
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template.
func (e *Engine) Render(w http.ResponseWriter, name string, data any) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
