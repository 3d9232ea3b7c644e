package router

import (
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
)

// A HandlerFunc populates w in response to r.
//
// A returned error is a handler failure:
// it reaches the exemption handler if one is registered,
// otherwise it propagates out of the Dispatcher.
type HandlerFunc func(r *req.Request, w *resp.Response) error

// A Handler is what a Route dispatches to.
// It is either a [HandlerFunc] or a [ResourceFunc].
type Handler interface {
	// resolve picks the operation to run for m,
	// reporting false when m is not allowed.
	resolve(m Method, allowed MethodSet) (HandlerFunc, bool)
}

func (h HandlerFunc) resolve(m Method, allowed MethodSet) (HandlerFunc, bool) {
	if !allowed.Has(m) {
		return nil, false
	}

	return h, true
}

// A ResourceFunc constructs a fresh Resource for every request routed to it.
type ResourceFunc func() Resource

// resolve ignores allowed: a Resource allows exactly the methods it has operations for.
func (f ResourceFunc) resolve(m Method, _ MethodSet) (HandlerFunc, bool) {
	op := f().Operation(m)
	return op, op != nil
}

// A Resource groups one optional operation per HTTP method.
// A nil operation means the method is not allowed.
type Resource struct {
	Get     HandlerFunc
	Put     HandlerFunc
	Patch   HandlerFunc
	Post    HandlerFunc
	Delete  HandlerFunc
	Options HandlerFunc
	Head    HandlerFunc
	Connect HandlerFunc
	Trace   HandlerFunc
}

// Operation returns the operation for m, or nil if there is none.
func (r Resource) Operation(m Method) HandlerFunc {
	switch m {
	case MethodGet:
		return r.Get
	case MethodPut:
		return r.Put
	case MethodPatch:
		return r.Patch
	case MethodPost:
		return r.Post
	case MethodDelete:
		return r.Delete
	case MethodOptions:
		return r.Options
	case MethodHead:
		return r.Head
	case MethodConnect:
		return r.Connect
	case MethodTrace:
		return r.Trace
	default:
		return nil
	}
}

// Methods returns the set of Methods the Resource has operations for.
func (r Resource) Methods() MethodSet {
	var set MethodSet
	for _, m := range standardMethods {
		if r.Operation(m) != nil {
			set |= MethodSet(m)
		}
	}

	return set
}

// A Route pairs a Pattern with the Handler requests matching it are dispatched to.
// A Route does not change once registered.
type Route struct {
	pattern Pattern
	handler Handler
	methods MethodSet
}

// Handler returns the Handler of the Route.
func (rt *Route) Handler() Handler { return rt.handler }

// Methods returns the Methods declared for a HandlerFunc.
// For a ResourceFunc, allowance is decided by the Resource and Methods is not consulted.
func (rt *Route) Methods() MethodSet { return rt.methods }

// Pattern returns the Pattern of the Route.
func (rt *Route) Pattern() Pattern { return rt.pattern }

// Resolve picks the operation to run for an HTTP method like "GET",
// reporting false when the Route does not allow it.
func (rt *Route) Resolve(method string) (HandlerFunc, bool) {
	m, ok := ParseMethod(method)
	if !ok {
		return nil, false
	}

	return rt.handler.resolve(m, rt.methods)
}
