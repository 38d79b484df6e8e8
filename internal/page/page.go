// Package page renders the launch page shell around a site variant.
package page

import (
	"bigbraintime/internal/preference"
	"bigbraintime/internal/signup"
	"bigbraintime/internal/site"
	"bigbraintime/pkg/countdown"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.tmpl
var templates embed.FS

// FormState is the signup form as it should be rendered.
type FormState struct {
	// ID identifies this form instance for in-flight exclusion.
	ID string
	// Email pre-fills the input, e.g. after a failed submission.
	Email string
	// Status and Message describe the last submission, if any.
	Status  signup.Status
	Message string
	// FailureMessage is shown when the page cannot reach the server at all.
	FailureMessage string
}

// View is everything the page template needs.
type View struct {
	Content   *site.Content
	Target    time.Time
	Countdown countdown.State
	Theme     preference.Theme
	Form      FormState
	// AnalyticsDomain enables the client side analytics snippet.
	AnalyticsDomain string
	// ReturnTo is where the theme toggle redirects after saving.
	ReturnTo string
}

// Renderer executes the page template.
type Renderer struct {
	tmpl *template.Template
}

var funcs = template.FuncMap{ //nolint: gochecknoglobals
	"pad2": func(n int) string { return fmt.Sprintf("%02d", n) },
	"millis": func(p countdown.Precision) int64 {
		return p.Interval().Milliseconds()
	},
	"rfc3339": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"year":    func() int { return time.Now().Year() },
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("page").Funcs(funcs).ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("could not parse page templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full page for v to w.
func (r *Renderer) Render(w io.Writer, v View) error {
	if v.Content == nil {
		return fmt.Errorf("page view has no content")
	}
	if v.Target.IsZero() {
		v.Target = v.Content.Launch
	}

	if err := r.tmpl.ExecuteTemplate(w, "page.html.tmpl", v); err != nil {
		return fmt.Errorf("could not render page: %w", err)
	}

	return nil
}
