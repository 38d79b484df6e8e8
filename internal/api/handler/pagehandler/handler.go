// Package pagehandler serves the launch page and its no-script fallbacks:
// the signup form post and the theme toggle.
package pagehandler

import (
	"bigbraintime/internal/config"
	"bigbraintime/internal/page"
	"bigbraintime/internal/preference"
	"bigbraintime/internal/signup"
	"bigbraintime/internal/site"
	"bigbraintime/pkg/countdown"
	"bigbraintime/pkg/logger"
	"bigbraintime/pkg/serrors"
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Deps struct {
	Submitter signup.Submitter
	Renderer  *page.Renderer
	Content   *site.Content
	// Clock is the time source for the countdown. Nil means time.Now.
	Clock countdown.Clock
}

type Options struct {
	// Target overrides the variant's launch instant when set.
	Target time.Time
	// Precision overrides the variant's precision when set.
	Precision       countdown.Precision
	DefaultTheme    preference.Theme
	ThemeMaxAge     time.Duration
	FailureMessage  string
	AnalyticsDomain string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) (Options, error) {
	target, err := cfg.CountdownTarget()
	if err != nil {
		return Options{}, err
	}

	return Options{
		Target:          target,
		Precision:       countdown.Precision(cfg.Countdown.Precision),
		DefaultTheme:    preference.Theme(cfg.Site.DefaultTheme),
		ThemeMaxAge:     cfg.Site.ThemeCookieMaxAge,
		FailureMessage:  cfg.Relay.FailureMessage,
		AnalyticsDomain: cfg.Site.AnalyticsDomain,
	}, nil
}

type Handler struct {
	deps Deps
	opts Options
}

func New(deps Deps, opts Options) *Handler {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if opts.Target.IsZero() {
		opts.Target = deps.Content.Launch
	}
	if opts.Precision == "" {
		opts.Precision = deps.Content.Precision
	}

	return &Handler{deps: deps, opts: opts}
}

// Target is the launch instant the page counts down to.
func (h Handler) Target() time.Time { return h.opts.Target }

// Precision is the countdown precision the page renders with.
func (h Handler) Precision() countdown.Precision { return h.opts.Precision }

func (h Handler) preference(w http.ResponseWriter, r *http.Request) preference.Preference {
	return preference.New(preference.NewCookieStore(w, r, h.opts.ThemeMaxAge), h.opts.DefaultTheme)
}

func (h Handler) view(w http.ResponseWriter, r *http.Request, form page.FormState) page.View {
	content := *h.deps.Content
	content.Precision = h.opts.Precision
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	form.FailureMessage = h.opts.FailureMessage

	return page.View{
		Content:         &content,
		Target:          h.opts.Target,
		Countdown:       countdown.Remaining(h.opts.Target, h.deps.Clock()),
		Theme:           h.preference(w, r).Current(),
		Form:            form,
		AnalyticsDomain: h.opts.AnalyticsDomain,
		ReturnTo:        r.URL.RequestURI(),
	}
}

func (h Handler) render(w http.ResponseWriter, r *http.Request, status int, v page.View) {
	var buf bytes.Buffer
	if err := h.deps.Renderer.Render(&buf, v); err != nil {
		logger.Error(r.Context(), "could not render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Page renders the launch page with a fresh form instance.
func (h Handler) Page(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.view(w, r, page.FormState{}))
}

// Signup handles the plain form post and re-renders the page with the
// outcome. The form instance id is carried over so a double post of the
// same page is rejected while the first is in flight.
func (h Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, page.FormState{}, serrors.Wrap(serrors.ErrBadRequest, err, "could not parse form"))

		return
	}

	form := page.FormState{ID: r.PostForm.Get("formId"), Email: r.PostForm.Get("email")}
	out, err := h.deps.Submitter.Submit(r.Context(), signup.Attempt{FormID: form.ID, Email: form.Email})
	if err != nil {
		h.fail(w, r, form, err)

		return
	}

	form.Status = out.Status
	form.Message = out.Message
	form.Email = out.Email
	v := h.view(w, r, form)
	v.ReturnTo = "/"
	h.render(w, r, http.StatusOK, v)
}

func (h Handler) fail(w http.ResponseWriter, r *http.Request, form page.FormState, err error) {
	status := serrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "signup failed", zap.Error(err))
	}

	form.Status = signup.StatusFailed
	form.Message = signup.ErrorMessage(err, h.opts.FailureMessage)
	v := h.view(w, r, form)
	v.ReturnTo = "/"
	h.render(w, r, status, v)
}

// Theme flips the stored theme and redirects back to the page the toggle
// was pressed on.
func (h Handler) Theme(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	theme := h.preference(w, r).Toggle()
	logger.Debug(r.Context(), "theme toggled", zap.String("theme", string(theme)))

	http.Redirect(w, r, SafeReturn(r.PostForm.Get("return")), http.StatusSeeOther)
}

// SafeReturn accepts only local absolute paths and falls back to "/".
func SafeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}

	return p
}
