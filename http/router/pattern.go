package router

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Params maps placeholder names to the path segments they captured.
type Params map[string]string

// A Pattern is a parsed route template like "/hello/{name}".
//
// Segments are separated by "/".
// A segment is either literal text or a placeholder, "{identifier}",
// capturing exactly one non-empty path segment.
// There are no regular expressions, wildcards or optional segments.
//
// ParsePattern validates the template; matching is done by a gorilla/mux route built from it.
type Pattern struct {
	raw   string
	names []string
	route *mux.Route
}

// ParsePattern parses raw into a Pattern.
//
// raw must begin with "/".
// Placeholders must fill an entire segment and their names must be unique identifiers.
func ParsePattern(raw string) (Pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return Pattern{}, fmt.Errorf("%w: %q must begin with /", ErrInvalidPattern, raw)
	}

	p := Pattern{raw: raw}
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw[1:], "/") {
		if !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") {
			if strings.ContainsAny(part, "{}") {
				return Pattern{}, fmt.Errorf("%w: %q mixes literal text and a placeholder in %q", ErrInvalidPattern, raw, part)
			}

			continue
		}

		name := part[1 : len(part)-1]
		if !identRe.MatchString(name) {
			return Pattern{}, fmt.Errorf("%w: %q has a bad placeholder %q", ErrInvalidPattern, raw, part)
		}

		if seen[name] {
			return Pattern{}, fmt.Errorf("%w: %q repeats placeholder %q", ErrInvalidPattern, raw, name)
		}

		seen[name] = true
		p.names = append(p.names, name)
	}

	// a bare "{name}" compiles to mux's default "[^/]+", so captures are one non-empty segment
	p.route = mux.NewRouter().SkipClean(true).NewRoute().Path(raw)
	if err := p.route.GetError(); err != nil {
		return Pattern{}, fmt.Errorf("%w: %q: %s", ErrInvalidPattern, raw, err)
	}

	return p, nil
}

// MustParsePattern is like ParsePattern but panics if raw cannot be parsed.
func MustParsePattern(raw string) Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}

	return p
}

// Match reports whether path structurally matches the Pattern
// and returns the captured Params when it does.
//
// Matching is case-sensitive and all-or-nothing:
// path must have exactly as many segments as the Pattern,
// each literal must be equal and each placeholder must capture a non-empty segment.
// path must not carry a query string.
func (p Pattern) Match(path string) (Params, bool) {
	if p.route == nil {
		return nil, false
	}

	var rm mux.RouteMatch
	if !p.route.Match(&http.Request{URL: &url.URL{Path: path}}, &rm) {
		return nil, false
	}

	params := make(Params, len(rm.Vars))
	for k, v := range rm.Vars {
		params[k] = v
	}

	return params, true
}

// Names returns the placeholder names in the order they appear.
func (p Pattern) Names() []string { return append([]string(nil), p.names...) }

// String returns the Pattern as it was registered.
func (p Pattern) String() string { return p.raw }
