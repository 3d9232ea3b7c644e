package req

import (
	"context"
	"net/http"
	"net/url"
)

var defaultParser = NewParser()

// A Request is the view of an inbound HTTP request handed to middleware and handlers.
//
// Path parameters extracted while routing are exposed through Param.
// Middleware may add request-scoped values with WithValue;
// everything else about the underlying *http.Request is read-only.
type Request struct {
	raw    *http.Request
	params map[string]string
}

// New wraps r in a *Request with no path parameters.
func New(r *http.Request) *Request {
	return &Request{raw: r, params: make(map[string]string)}
}

// Context returns the context.Context of the underlying *http.Request.
func (r *Request) Context() context.Context { return r.raw.Context() }

// DecodeJSON parses the JSON-encoded body of the request into structPtr and validates it.
func (r *Request) DecodeJSON(structPtr any) error {
	return defaultParser.ParseBody(r.raw.Body, structPtr)
}

// DecodeQuery parses the query parameters of the request into structPtr and validates it.
func (r *Request) DecodeQuery(structPtr any) error {
	return defaultParser.ParseQueryParams(r.raw.URL.Query(), structPtr)
}

// Header returns the headers sent with the request.
func (r *Request) Header() http.Header { return r.raw.Header }

// Method returns the HTTP method as sent by the client, e.g., "GET".
func (r *Request) Method() string { return r.raw.Method }

// Param returns the value captured for the named path parameter,
// or the empty string if the matched pattern has no such placeholder.
func (r *Request) Param(name string) string { return r.params[name] }

// Params returns a copy of every captured path parameter.
func (r *Request) Params() map[string]string {
	cp := make(map[string]string, len(r.params))
	for k, v := range r.params {
		cp[k] = v
	}

	return cp
}

// Path returns the decoded URL path of the request, without any query string.
func (r *Request) Path() string { return r.raw.URL.Path }

// Query returns the parsed query string of the request.
func (r *Request) Query() url.Values { return r.raw.URL.Query() }

// Raw returns the underlying *http.Request.
func (r *Request) Raw() *http.Request { return r.raw }

// SetParams replaces the path parameters exposed by Param.
func (r *Request) SetParams(params map[string]string) {
	if params == nil {
		params = make(map[string]string)
	}

	r.params = params
}

// Value returns the request-scoped value stored under key.
func (r *Request) Value(key any) any { return r.raw.Context().Value(key) }

// WithValue stores val under key in the request's context,
// visible to every later middleware and to the handler.
func (r *Request) WithValue(key, val any) {
	r.raw = r.raw.WithContext(context.WithValue(r.raw.Context(), key, val))
}
