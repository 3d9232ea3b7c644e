package router

import (
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
)

// The following interfaces let any value act as a Resource through ResourceOf.
type (
	GetHandler     interface{ Get(*req.Request, *resp.Response) error }
	PutHandler     interface{ Put(*req.Request, *resp.Response) error }
	PatchHandler   interface{ Patch(*req.Request, *resp.Response) error }
	PostHandler    interface{ Post(*req.Request, *resp.Response) error }
	DeleteHandler  interface{ Delete(*req.Request, *resp.Response) error }
	OptionsHandler interface{ Options(*req.Request, *resp.Response) error }
	HeadHandler    interface{ Head(*req.Request, *resp.Response) error }
	ConnectHandler interface{ Connect(*req.Request, *resp.Response) error }
	TraceHandler   interface{ Trace(*req.Request, *resp.Response) error }
)

// ResourceOf builds a Resource from the method-named operations v implements.
//
//	type Books struct{}
//
//	func (Books) Get(r *req.Request, w *resp.Response) error  { ... }
//	func (Books) Post(r *req.Request, w *resp.Response) error { ... }
//
//	ResourceOf(Books{}) // allows GET and POST only
func ResourceOf(v any) Resource {
	var r Resource
	if h, ok := v.(GetHandler); ok {
		r.Get = h.Get
	}

	if h, ok := v.(PutHandler); ok {
		r.Put = h.Put
	}

	if h, ok := v.(PatchHandler); ok {
		r.Patch = h.Patch
	}

	if h, ok := v.(PostHandler); ok {
		r.Post = h.Post
	}

	if h, ok := v.(DeleteHandler); ok {
		r.Delete = h.Delete
	}

	if h, ok := v.(OptionsHandler); ok {
		r.Options = h.Options
	}

	if h, ok := v.(HeadHandler); ok {
		r.Head = h.Head
	}

	if h, ok := v.(ConnectHandler); ok {
		r.Connect = h.Connect
	}

	if h, ok := v.(TraceHandler); ok {
		r.Trace = h.Trace
	}

	return r
}

// NewResource wraps a constructor of any value into a ResourceFunc,
// building a fresh Resource through ResourceOf for every request.
func NewResource[T any](newFn func() T) ResourceFunc {
	return func() Resource { return ResourceOf(newFn()) }
}
