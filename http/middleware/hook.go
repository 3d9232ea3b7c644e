package middleware

import (
	"errors"
	"fmt"
	"sync"

	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
)

var ErrInvalidMiddleware = errors.New("invalid middleware")

// A Middleware hooks into every request dispatched through a Stack.
//
// ProcessRequest runs before the request is dispatched
// and may attach values to r with req.Request.WithValue.
// ProcessResponse runs after the response was produced
// and may change anything about w.
//
// Neither hook can cut a request short:
// a returned error aborts the request and propagates to the caller of Stack.Invoke.
type Middleware interface {
	ProcessRequest(r *req.Request) error
	ProcessResponse(r *req.Request, w *resp.Response) error
}

// Hooks is a Middleware doing nothing.
// Embed it to implement only one of the hooks.
type Hooks struct{}

func (Hooks) ProcessRequest(*req.Request) error                  { return nil }
func (Hooks) ProcessResponse(*req.Request, *resp.Response) error { return nil }

// A Terminal produces the *resp.Response for a request once every ProcessRequest hook ran.
type Terminal func(r *req.Request) (*resp.Response, error)

// A Stack runs an ordered list of Middlewares around a Terminal.
type Stack struct {
	mu   sync.RWMutex
	mws  []Middleware
	next Terminal
}

// NewStack constructs a *Stack with no Middlewares around next.
func NewStack(next Terminal) *Stack { return &Stack{next: next} }

// Add appends m to the Stack.
// m runs its ProcessRequest after every Middleware already added
// and its ProcessResponse before them.
func (s *Stack) Add(m Middleware) error {
	if m == nil {
		return fmt.Errorf("%w: nil", ErrInvalidMiddleware)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mws = append(s.mws, m)
	return nil
}

// Len returns the number of Middlewares in the Stack.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.mws)
}

// Invoke runs every ProcessRequest hook in the order they were added,
// then the Terminal,
// then every ProcessResponse hook in reverse order.
//
// The first error, from a hook or the Terminal, stops the request and is returned;
// no later hook runs.
func (s *Stack) Invoke(r *req.Request) (*resp.Response, error) {
	s.mu.RLock()
	mws := s.mws[:len(s.mws):len(s.mws)]
	s.mu.RUnlock()

	for _, m := range mws {
		if err := m.ProcessRequest(r); err != nil {
			return nil, fmt.Errorf("%T processing request: %w", m, err)
		}
	}

	w, err := s.next(r)
	if err != nil {
		return nil, err
	}

	for i := len(mws) - 1; i >= 0; i-- {
		if err := mws[i].ProcessResponse(r, w); err != nil {
			return nil, fmt.Errorf("%T processing response: %w", mws[i], err)
		}
	}

	return w, nil
}
