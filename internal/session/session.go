// Package session keeps the API token in the browser's cookie store.
// The server holds no copy; every request rebuilds a Session from the cookie.
package session

import (
	"net/http"
	"net/url"
	"time"
)

const (
	TokenCookie = "token"
	FlashCookie = "flash"
	DefaultTTL  = 3600 * time.Second
)

// Session is the per-request view of the cookie store.
type Session struct {
	Token string
}

func (s Session) Authenticated() bool { return s.Token != "" }

type Store struct {
	now func() time.Time
}

func NewStore() *Store { return &Store{now: time.Now} }

// WithClock is used by tests to pin Expires.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// GetToken returns the token cookie value, or false when absent or empty.
func (s *Store) GetToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(TokenCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// SetToken overwrites the token cookie with the given lifetime.
func (s *Store) SetToken(w http.ResponseWriter, value string, ttl time.Duration) {
	secs := int(ttl / time.Second)
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   secs,
		Expires:  s.now().Add(ttl).UTC(),
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Store) FromRequest(r *http.Request) Session {
	tok, _ := s.GetToken(r)
	return Session{Token: tok}
}

// SetFlash stores a one-shot message shown on the next rendered page.
func (s *Store) SetFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// PopFlash reads and clears the flash cookie.
func (s *Store) PopFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(FlashCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}
