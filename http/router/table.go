package router

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// A Table holds Routes in registration order.
//
// Lookup tries Routes in that order and the first structural match wins;
// there is no ranking by specificity.
//
// Routes are registered while setting up an application.
// Once the Table is sealed, which a Dispatcher does on its first request,
// Register fails with ErrSealed.
type Table struct {
	mu     sync.RWMutex
	routes []*Route
	index  map[string]*Route
	sealed atomic.Bool
}

// NewTable constructs an empty *Table.
func NewTable() *Table {
	return &Table{index: make(map[string]*Route)}
}

// Register adds a Route for pattern dispatching to h.
//
// methods declares which Methods a HandlerFunc allows;
// the zero MethodSet allows AllMethods.
// A ResourceFunc allows exactly the Methods its Resource has operations for,
// whatever methods declares.
//
// Registering a pattern string already in the Table returns ErrDuplicateRoute
// and leaves the Table unchanged.
func (t *Table) Register(pattern string, h Handler, methods MethodSet) (*Route, error) {
	if isNilHandler(h) {
		return nil, fmt.Errorf("%w: nil handler for %q", ErrInvalidHandler, pattern)
	}

	p, err := ParsePattern(pattern)
	if err != nil {
		return nil, err
	}

	if methods == 0 {
		methods = AllMethods
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sealed.Load() {
		return nil, fmt.Errorf("%w: cannot register %q", ErrSealed, pattern)
	}

	if _, ok := t.index[pattern]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateRoute, pattern)
	}

	rt := &Route{pattern: p, handler: h, methods: methods}
	t.routes = append(t.routes, rt)
	t.index[pattern] = rt

	return rt, nil
}

// Lookup returns the first Route, in registration order, whose Pattern matches path,
// along with the Params it captured.
func (t *Table) Lookup(path string) (*Route, Params, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, rt := range t.routes {
		if params, ok := rt.pattern.Match(path); ok {
			return rt, params, true
		}
	}

	return nil, nil, false
}

// Len returns the number of Routes registered.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.routes)
}

// Route returns the Route registered under the exact pattern string.
func (t *Table) Route(pattern string) (*Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rt, ok := t.index[pattern]
	return rt, ok
}

// Routes returns the Routes in registration order.
func (t *Table) Routes() []*Route {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]*Route(nil), t.routes...)
}

// Seal stops the Table from accepting new Routes.
func (t *Table) Seal() {
	if t.sealed.Load() {
		return
	}

	t.mu.Lock()
	t.sealed.Store(true)
	t.mu.Unlock()
}

// WhileOpen runs fn if the Table is not sealed, returning ErrSealed otherwise.
//
// The Table cannot be sealed while fn runs,
// so setup beside the Table's Routes cannot race the first dispatch.
// fn must not call Register or Seal.
func (t *Table) WhileOpen(fn func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sealed.Load() {
		return ErrSealed
	}

	fn()
	return nil
}

// Sealed reports whether the Table stopped accepting new Routes.
func (t *Table) Sealed() bool { return t.sealed.Load() }

func isNilHandler(h Handler) bool {
	switch h := h.(type) {
	case nil:
		return true
	case HandlerFunc:
		return h == nil
	case ResourceFunc:
		return h == nil
	default:
		return false
	}
}
