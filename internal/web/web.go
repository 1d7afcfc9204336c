package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/sweetspot260/sweetlife/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LoginData feeds the login form
type LoginData struct {
	Error string
}

// RegisterData feeds the registration form
type RegisterData struct {
	Error   string
	Success string
}

// DashboardData feeds the admin dashboard
type DashboardData struct {
	Admin    string
	Comments []domain.Comment
	Summary  domain.CommentSummary
	Stats    *domain.Stats
}

// Renderer renders the embedded admin views
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named view with the given data
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
