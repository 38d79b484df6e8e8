// Package preference keeps the visitor's display theme. The value lives in a
// Store injected by the caller (a cookie for HTTP visitors, memory in tests),
// never in package state.
package preference

import (
	"net/http"
	"sync"
	"time"
)

// StorageKey is the key the theme is stored under.
const StorageKey = "theme"

// Theme is the page colour scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ParseTheme returns the theme named s and whether s was valid.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case Dark, Light:
		return Theme(s), true
	default:
		return "", false
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}

	return Dark
}

// Store reads and writes persisted preferences.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Preference is the theme state of one visitor.
type Preference struct {
	store    Store
	fallback Theme
}

// New returns a Preference backed by store. fallback is used when nothing
// valid is stored; an invalid fallback means Dark.
func New(store Store, fallback Theme) Preference {
	if _, ok := ParseTheme(string(fallback)); !ok {
		fallback = Dark
	}

	return Preference{store: store, fallback: fallback}
}

// Current returns the stored theme, or the fallback.
func (p Preference) Current() Theme {
	if v, ok := p.store.Get(StorageKey); ok {
		if t, ok := ParseTheme(v); ok {
			return t
		}
	}

	return p.fallback
}

// Toggle flips the theme, persists it and returns the new value.
func (p Preference) Toggle() Theme {
	t := p.Current().Opposite()
	p.store.Set(StorageKey, string(t))

	return t
}

// MapStore is an in-memory Store.
type MapStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *MapStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]

	return v, ok
}

func (m *MapStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
}

// CookieStore reads preferences from the request cookies and writes them as
// response cookies. Writes are visible to later Gets on the same store.
type CookieStore struct {
	r      *http.Request
	w      http.ResponseWriter
	maxAge time.Duration
	set    map[string]string
}

// NewCookieStore returns a Store bound to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request, maxAge time.Duration) *CookieStore {
	return &CookieStore{r: r, w: w, maxAge: maxAge, set: map[string]string{}}
}

func (c *CookieStore) Get(key string) (string, bool) {
	if v, ok := c.set[key]; ok {
		return v, true
	}

	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}

	return cookie.Value, true
}

func (c *CookieStore) Set(key, value string) {
	c.set[key] = value
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

var (
	_ Store = (*MapStore)(nil)
	_ Store = (*CookieStore)(nil)
)
