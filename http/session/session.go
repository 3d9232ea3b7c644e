package session

import (
	"fmt"
	"net/http"

	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
)

// A Session is the set of values a visitor carries across requests.
//
// Its functionality is implemented by lightly wrapping a *gorilla.Session.
// Changes are kept in memory until Save is called;
// the Sessions middleware does so after the handler runs whenever the Session is Dirty.
type Session struct {
	s     *gorilla.Session
	dirty bool
}

func newSession(g *gorilla.Session) *Session { return &Session{s: g} }

// FromRequest retrieves the *Session the Sessions middleware stashed in r.
func FromRequest(r *req.Request) (*Session, error) {
	s, ok := r.Value(switchback.SessionKey).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}

	return s, nil
}

// AddFlash queues a Flash for the next call to Flashes.
func (s *Session) AddFlash(f Flash) {
	s.s.AddFlash(f)
	s.dirty = true
}

// Delete expires the Session, removing it once saved.
func (s *Session) Delete() {
	s.s.Options.MaxAge = -1
	s.dirty = true
}

// Dirty reports whether the Session changed since it was loaded.
func (s *Session) Dirty() bool { return s.dirty }

// Flashes retrieves and removes the queued Flashes.
func (s *Session) Flashes() []Flash {
	raw := s.s.Flashes()
	if len(raw) == 0 {
		return nil
	}

	s.dirty = true
	fs := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			fs = append(fs, f)
		}
	}

	return fs
}

// Get retrieves the value stored under key.
func (s *Session) Get(key string) any { return s.s.Values[key] }

// IsNew reports whether the Session was created for this request.
func (s *Session) IsNew() bool { return s.s.IsNew }

// Name returns the name the Session is stored under.
func (s *Session) Name() string { return s.s.Name() }

// Remove deletes the value stored under key.
func (s *Session) Remove(key string) {
	delete(s.s.Values, key)
	s.dirty = true
}

// Set stores val under key.
func (s *Session) Set(key string, val any) {
	s.s.Values[key] = val
	s.dirty = true
}

// Save persists the Session, writing its cookie to w.
func (s *Session) Save(w http.ResponseWriter, r *http.Request) error {
	if err := s.s.Save(r, w); err != nil {
		return fmt.Errorf("failed saving session %q: %w", s.s.Name(), err)
	}

	s.dirty = false
	return nil
}

// SaveHeader is Save for callers holding only the response headers.
func (s *Session) SaveHeader(r *http.Request, h http.Header) error {
	return s.Save(headerWriter(h), r)
}

// headerWriter is an http.ResponseWriter over bare headers,
// enough for stores that only set cookies.
type headerWriter http.Header

func (h headerWriter) Header() http.Header         { return http.Header(h) }
func (h headerWriter) Write(b []byte) (int, error) { return len(b), nil }
func (h headerWriter) WriteHeader(int)             {}
