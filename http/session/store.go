package session

import (
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/boj/redistore"
	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/switchback"
)

const defaultMaxAge = 86400 // 1 day

// The Storer retrieves the *Session for an *http.Request.
type Storer interface {
	GetSession(r *http.Request) (*Session, error)
}

// A Store wraps a gorilla.Store to manage constructing a new one
// and accessing the sessions contained in it.
//
// Store implements Storer.
type Store struct {
	// The authentication key.
	ak []byte

	// The encryption key.
	ek []byte

	// The name this Store's sessions are stored under,
	// which is also the name of the cookie.
	sn string

	// The environment the Store is operating within.
	env switchback.Environment

	// The number of seconds a session is valid.
	maxAge int

	// how the Store actually implements storing sessions.
	store gorilla.Store
}

// A Config provides the values a Store requires.
type Config struct {
	Env switchback.Environment

	// The name sessions are stored under.
	SessionName string

	// Hex-encoded key
	AuthKey string

	// Hex-encoded key
	EncryptKey string
}

func (c Config) validate() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: environment %q: %s", switchback.ErrBadConfig, c.Env, err)
	}

	if c.SessionName == "" {
		return fmt.Errorf("%w: SessionName cannot be %q", switchback.ErrBadConfig, c.SessionName)
	}

	return nil
}

// NewStore initiates a data store for web sessions with the provided config.
// If no backing storage is provided through a functional option,
// like WithRedis, NewStore stores sessions in cookies.
func NewStore(cfg Config, opts ...StoreOpt) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	gob.Register(Flash{})

	var err error
	s := &Store{
		env:    cfg.Env,
		maxAge: defaultMaxAge,
		sn:     cfg.SessionName,
	}

	s.ak, err = hex.DecodeString(cfg.AuthKey)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication key is not valid: %s", switchback.ErrBadConfig, err)
	}

	s.ek, err = hex.DecodeString(cfg.EncryptKey)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key is not valid: %s", switchback.ErrBadConfig, err)
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.store == nil {
		if err := WithCookie()(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// GetSession retrieves the *Session for the *http.Request, or creates a brand new one.
//
// A cookie that cannot be decoded yields a new *Session along with the error.
func (s *Store) GetSession(r *http.Request) (*Session, error) {
	g, err := s.store.Get(r, s.sn)
	if g == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, err)
	}

	return newSession(g), err
}

// Name returns the name sessions are stored under.
func (s *Store) Name() string { return s.sn }

// A StoreOpt configures the provided *Store,
// returning an error if unable to.
type StoreOpt func(*Store) error

// WithCookie configures the Store to back session storage with cookies.
func WithCookie() StoreOpt {
	return func(s *Store) error {
		var c *gorilla.CookieStore
		if s.env.IsTesting() || len(s.ek) == 0 {
			c = gorilla.NewCookieStore(s.ak)
		} else {
			c = gorilla.NewCookieStore(s.ak, s.ek)
		}

		c.Options.Secure = s.secure()
		c.Options.HttpOnly = true
		c.MaxAge(s.maxAge)
		s.store = c
		return nil
	}
}

// WithMaxAge sets the time-to-live of a session in seconds.
//
// Call before other options so this value is available.
//
// Otherwise, the Store uses defaultMaxAge.
func WithMaxAge(secs int) StoreOpt {
	return func(s *Store) error {
		s.maxAge = secs
		return nil
	}
}

// WithRedis configures the Store to back session storage with Redis.
//
// To authenticate to the Redis server, provide pass, otherwise its zero-value is acceptable.
func WithRedis(uri, pass string) StoreOpt {
	return func(s *Store) error {
		r, err := redistore.NewRediStore(10, "tcp", uri, pass, s.ak, s.ek)
		if err != nil {
			return fmt.Errorf("%w: failed initializing Redis: %s", switchback.ErrBadConfig, err)
		}

		r.Options.Secure = s.secure()
		r.Options.HttpOnly = true
		r.SetMaxAge(s.maxAge)
		s.store = r
		return nil
	}
}

func (s *Store) secure() bool { return !(s.env.IsDevelopment() || s.env.IsTesting()) }
