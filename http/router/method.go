package router

import "strings"

// A Method is one of the standard HTTP methods a route can allow.
type Method uint16

const (
	MethodGet Method = 1 << iota
	MethodPut
	MethodPatch
	MethodPost
	MethodDelete
	MethodOptions
	MethodHead
	MethodConnect
	MethodTrace
)

// standardMethods lists every Method in the order they are reported.
var standardMethods = []Method{
	MethodGet,
	MethodPut,
	MethodPatch,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodConnect,
	MethodTrace,
}

var methodTokens = map[string]Method{
	"get":     MethodGet,
	"put":     MethodPut,
	"patch":   MethodPatch,
	"post":    MethodPost,
	"delete":  MethodDelete,
	"options": MethodOptions,
	"head":    MethodHead,
	"connect": MethodConnect,
	"trace":   MethodTrace,
}

// ParseMethod converts an HTTP method, in any case, into a Method.
// ParseMethod reports false for methods outside the standard set.
func ParseMethod(s string) (Method, bool) {
	m, ok := methodTokens[strings.ToLower(s)]
	return m, ok
}

// String returns the lowercase token of the Method, e.g., "get".
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "get"
	case MethodPut:
		return "put"
	case MethodPatch:
		return "patch"
	case MethodPost:
		return "post"
	case MethodDelete:
		return "delete"
	case MethodOptions:
		return "options"
	case MethodHead:
		return "head"
	case MethodConnect:
		return "connect"
	case MethodTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// A MethodSet is a set of Methods.
// The zero value is the empty set.
type MethodSet uint16

// AllMethods holds every standard Method.
const AllMethods = MethodSet(MethodGet | MethodPut | MethodPatch | MethodPost | MethodDelete |
	MethodOptions | MethodHead | MethodConnect | MethodTrace)

// NewMethodSet constructs a MethodSet holding ms.
func NewMethodSet(ms ...Method) MethodSet {
	var set MethodSet
	for _, m := range ms {
		set |= MethodSet(m)
	}

	return set
}

// ParseMethodSet constructs a MethodSet from method tokens like "get" or "POST".
// Unknown tokens are reported with ErrInvalidMethod.
func ParseMethodSet(tokens ...string) (MethodSet, error) {
	var set MethodSet
	for _, tok := range tokens {
		m, ok := ParseMethod(tok)
		if !ok {
			return 0, errInvalidMethod(tok)
		}

		set |= MethodSet(m)
	}

	return set, nil
}

// Has reports whether m is in the MethodSet.
func (s MethodSet) Has(m Method) bool { return s&MethodSet(m) != 0 }

// Methods lists the Methods in the set in standard order.
func (s MethodSet) Methods() []Method {
	ms := make([]Method, 0, len(standardMethods))
	for _, m := range standardMethods {
		if s.Has(m) {
			ms = append(ms, m)
		}
	}

	return ms
}

// String lists the tokens in the set separated by commas, e.g., "get,post".
func (s MethodSet) String() string {
	toks := make([]string, 0, len(standardMethods))
	for _, m := range s.Methods() {
		toks = append(toks, m.String())
	}

	return strings.Join(toks, ",")
}
