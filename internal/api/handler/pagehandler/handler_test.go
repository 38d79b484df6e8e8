package pagehandler_test

import (
	"bigbraintime/internal/api/handler/pagehandler"
	"bigbraintime/internal/page"
	"bigbraintime/internal/preference"
	"bigbraintime/internal/signup"
	mocksignup "bigbraintime/internal/signup/mock"
	"bigbraintime/internal/site"
	"bigbraintime/pkg/serrors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const failure = "Something went wrong. Please try again."

func newHandler(t *testing.T) (*pagehandler.Handler, *mocksignup.MockSubmitter) {
	t.Helper()

	content, err := site.Load("launch-2024")
	require.NoError(t, err)
	renderer, err := page.New()
	require.NoError(t, err)

	sub := mocksignup.NewMockSubmitter(gomock.NewController(t))
	h := pagehandler.New(pagehandler.Deps{
		Submitter: sub,
		Renderer:  renderer,
		Content:   content,
		Clock:     func() time.Time { return time.Date(2024, 7, 31, 12, 0, 0, 0, time.UTC) },
	}, pagehandler.Options{
		DefaultTheme:   preference.Dark,
		ThemeMaxAge:    time.Hour,
		FailureMessage: failure,
	})

	return h, sub
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func TestPage(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	require.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), h.Target())

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	require.Contains(t, body, "BIGBRAINTIME")
	require.Contains(t, body, `data-theme="dark"`)
	require.Contains(t, body, `name="formId" value="`)
}

func TestPageThemeCookie(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: preference.StorageKey, Value: "light"})

	rec := httptest.NewRecorder()
	h.Page(rec, req)

	require.Contains(t, rec.Body.String(), `data-theme="light"`)
}

func TestSignup(t *testing.T) {
	t.Parallel()

	t.Run("submitted clears the email", func(t *testing.T) {
		t.Parallel()
		h, sub := newHandler(t)
		sub.EXPECT().
			Submit(gomock.Any(), signup.Attempt{FormID: "form-1", Email: "a@b.co"}).
			Return(&signup.Outcome{Status: signup.StatusSubmitted, Message: "See you at launch"}, nil)

		rec := httptest.NewRecorder()
		h.Signup(rec, postForm("/signup", url.Values{"formId": {"form-1"}, "email": {"a@b.co"}}))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "See you at launch")
		require.Contains(t, body, `value="form-1"`)
		require.NotContains(t, body, `value="a@b.co"`)
	})

	t.Run("relay failure keeps the email", func(t *testing.T) {
		t.Parallel()
		h, sub := newHandler(t)
		sub.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			Return(&signup.Outcome{Status: signup.StatusFailed, Message: "Try again later", Email: "a@b.co"}, nil)

		rec := httptest.NewRecorder()
		h.Signup(rec, postForm("/signup", url.Values{"formId": {"form-1"}, "email": {"a@b.co"}}))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "Try again later")
		require.Contains(t, body, `value="a@b.co"`)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		h, sub := newHandler(t)
		sub.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			Return(nil, serrors.With(serrors.ErrBadRequest, "invalid email"))

		rec := httptest.NewRecorder()
		h.Signup(rec, postForm("/signup", url.Values{"formId": {"form-1"}, "email": {"nope"}}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "Please enter a valid email address.")
		require.Contains(t, body, `value="nope"`)
	})

	t.Run("in flight", func(t *testing.T) {
		t.Parallel()
		h, sub := newHandler(t)
		sub.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			Return(nil, serrors.With(serrors.ErrConflict, "busy"))

		rec := httptest.NewRecorder()
		h.Signup(rec, postForm("/signup", url.Values{"formId": {"form-1"}, "email": {"a@b.co"}}))

		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestTheme(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	rec := httptest.NewRecorder()
	h.Theme(rec, postForm("/theme", url.Values{"return": {"/?ref=nav"}}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/?ref=nav", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, preference.StorageKey, cookies[0].Name)
	require.Equal(t, "light", cookies[0].Value)
}

func TestSafeReturn(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"":                     "/",
		"/":                    "/",
		"/faq#top":             "/faq#top",
		"//evil.example":       "/",
		"/\\evil.example":      "/",
		"https://evil.example": "/",
	} {
		require.Equal(t, want, pagehandler.SafeReturn(in), in)
	}
}
