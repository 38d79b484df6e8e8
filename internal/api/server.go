// Package api configures and exposes the HTTP server, routes, metrics, docs
// and related middleware for the launch page service.
package api

import (
	"bigbraintime/internal/api/handler/pagehandler"
	"bigbraintime/internal/api/handler/v1handler"
	"bigbraintime/internal/config"
	"bigbraintime/internal/page"
	"bigbraintime/internal/signup"
	"bigbraintime/internal/site"
	"bigbraintime/pkg/controller"
	"bigbraintime/pkg/countdown"
	"bigbraintime/pkg/logger"
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its handlers.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// Page configures the page handler; its resolved target and precision
	// are shared with the JSON API.
	Page pagehandler.Options

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) (Options, error) {
	pageOpts, err := pagehandler.NewOptions(cfg)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Page: pageOpts,

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}, nil
}

type Deps struct {
	Submitter signup.Submitter
	Renderer  *page.Renderer
	Content   *site.Content
	// Clock is the time source for the countdown. Nil means time.Now.
	Clock countdown.Clock
}

// NewRouter wires the routes:
// - the page, its form fallback and the theme toggle
// - the JSON API under /api/v1
// - health check, Prometheus metrics, the embedded OpenAPI spec and Swagger UI
// - pprof endpoints for profiling
func NewRouter(deps Deps, opts Options) http.Handler {
	pages := pagehandler.New(pagehandler.Deps{
		Submitter: deps.Submitter,
		Renderer:  deps.Renderer,
		Content:   deps.Content,
		Clock:     deps.Clock,
	}, opts.Page)
	v1 := v1handler.New(v1handler.Deps{
		Submitter: deps.Submitter,
		Clock:     deps.Clock,
	}, v1handler.Options{
		Target:         pages.Target(),
		Precision:      pages.Precision(),
		FailureMessage: opts.Page.FailureMessage,
	})

	r := chi.NewRouter()
	r.Use(controller.WithLogger, middleware.Recoverer, controller.WithCORS)

	r.Get("/", pages.Page)
	r.Post("/signup", pages.Signup)
	r.Post("/theme", pages.Theme)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/countdown", v1.Countdown)
		r.Post("/signup", v1.Signup)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// prometheus metrics server
	if opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	r.Handle("/v1/docs/*", v5emb.New(
		"BIGBRAINTIME Launch API",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	// pprof
	r.Handle(controller.PprofPrefix+"*", controller.PprofMux())

	return r
}

// NewServer returns a configured *http.Server serving NewRouter behind a
// request timeout.
func NewServer(ctx context.Context, deps Deps, opts Options) *http.Server {
	handler := NewRouter(deps, opts)
	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out"}`)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(logger.Slog(ctx).Handler(), slog.LevelError),
	}
}
