package api_test

import (
	"bigbraintime/internal/api"
	"bigbraintime/internal/api/handler/pagehandler"
	"bigbraintime/internal/page"
	"bigbraintime/internal/preference"
	"bigbraintime/internal/signup"
	mocksignup "bigbraintime/internal/signup/mock"
	"bigbraintime/internal/site"
	"bigbraintime/pkg/controller"
	"bigbraintime/pkg/countdown"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T) (*httptest.Server, *mocksignup.MockSubmitter) {
	t.Helper()

	content, err := site.Load("launch-2025")
	require.NoError(t, err)
	renderer, err := page.New()
	require.NoError(t, err)
	sub := mocksignup.NewMockSubmitter(gomock.NewController(t))

	srv := api.NewServer(context.Background(), api.Deps{
		Submitter: sub,
		Renderer:  renderer,
		Content:   content,
		Clock:     func() time.Time { return time.Date(2025, 7, 31, 12, 0, 0, 0, time.UTC) },
	}, api.Options{
		Page: pagehandler.Options{
			DefaultTheme:   preference.Dark,
			ThemeMaxAge:    time.Hour,
			FailureMessage: "Something went wrong. Please try again.",
		},
		RequestTimeout: 5 * time.Second,
		MetricsPath:    "/metrics",
	})

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return ts, sub
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestServerRoutes(t *testing.T) {
	t.Parallel()

	ts, _ := newServer(t)

	for path, want := range map[string]string{
		"/":                 "BIGBRAINTIME",
		"/healthz":          "ok",
		"/specs/v1.yaml":    "openapi: 3.0.3",
		"/metrics":          "go_goroutines",
		"/debug/pprof/":     "goroutine",
		"/api/v1/countdown": `"hours":12`,
	} {
		resp, body := get(t, ts.URL+path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Contains(t, body, want, path)
		require.NotEmpty(t, resp.Header.Get(controller.RequestIDHeader), path)
	}
}

func TestServerNotFound(t *testing.T) {
	t.Parallel()

	ts, _ := newServer(t)
	resp, _ := get(t, ts.URL+"/nope")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerRequestID(t *testing.T) {
	t.Parallel()

	ts, _ := newServer(t)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(controller.RequestIDHeader, "req-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "req-1", resp.Header.Get(controller.RequestIDHeader))
}

func TestServerSignup(t *testing.T) {
	t.Parallel()

	ts, sub := newServer(t)
	sub.EXPECT().
		Submit(gomock.Any(), signup.Attempt{FormID: "f1", Email: "a@b.co"}).
		Return(&signup.Outcome{Status: signup.StatusSubmitted, Message: "Thanks!"}, nil)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, ts.URL+"/api/v1/signup",
		strings.NewReader(`{"formId":"f1","email":"a@b.co"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out signup.Outcome
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, signup.StatusSubmitted, out.Status)
}

func TestServerPreflight(t *testing.T) {
	t.Parallel()

	ts, _ := newServer(t)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodOptions, ts.URL+"/api/v1/signup", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNewRouterUsesVariantPrecision(t *testing.T) {
	t.Parallel()

	content, err := site.Load("launch-2024")
	require.NoError(t, err)
	renderer, err := page.New()
	require.NoError(t, err)

	h := api.NewRouter(api.Deps{
		Submitter: mocksignup.NewMockSubmitter(gomock.NewController(t)),
		Renderer:  renderer,
		Content:   content,
		Clock:     func() time.Time { return content.Launch.Add(-time.Minute) },
	}, api.Options{MetricsPath: "/metrics"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/countdown", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, string(countdown.PrecisionMinutes), body["precision"])
	require.InDelta(t, 1, body["minutes"], 0)
}
