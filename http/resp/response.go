package resp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

// A Kind names which body a Response carries.
type Kind int

const (
	KindNone Kind = iota
	KindText
	KindHTML
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHTML:
		return "html"
	case KindJSON:
		return "json"
	default:
		return "none"
	}
}

// A Response accumulates the status code, headers and body
// that middleware and a handler build while handling a single request.
//
// A Response carries at most one body: text, HTML or JSON.
// Setting one replaces whichever was set before, along with the Content-Type header.
//
// A Response is owned by the request that created it and is never shared.
type Response struct {
	code   int
	header http.Header
	body   []byte
	kind   Kind
}

// New constructs a *Response with status http.StatusOK and no body.
func New() *Response {
	return &Response{code: http.StatusOK, header: make(http.Header)}
}

// Body returns the encoded body.
func (r *Response) Body() []byte { return r.body }

// Code returns the status code.
func (r *Response) Code() int { return r.code }

// Header returns the header collection sent with the response.
func (r *Response) Header() http.Header { return r.header }

// Kind returns which body the Response carries.
func (r *Response) Kind() Kind { return r.kind }

// SetCode sets the status code.
func (r *Response) SetCode(code int) { r.code = code }

// SetHTML sets an HTML body and the matching Content-Type.
func (r *Response) SetHTML(html string) { r.set(KindHTML, ContentTypeHTML, []byte(html)) }

// SetJSON encodes v as the body and sets the matching Content-Type.
//
// If v cannot be encoded, the Response is left untouched.
func (r *Response) SetJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEncode, err)
	}

	r.set(KindJSON, ContentTypeJSON, b)
	return nil
}

// SetText sets a plain text body and the matching Content-Type.
func (r *Response) SetText(text string) { r.set(KindText, ContentTypeText, []byte(text)) }

// Text returns the body as a string.
func (r *Response) Text() string { return string(r.body) }

// Send writes the Response to w.
//
// Headers already present on w are kept unless the Response sets the same key.
func (r *Response) Send(w http.ResponseWriter) error {
	for k, vals := range r.header {
		w.Header()[k] = append([]string(nil), vals...)
	}

	w.WriteHeader(r.code)
	if len(r.body) == 0 {
		return nil
	}

	if _, err := w.Write(r.body); err != nil {
		return fmt.Errorf("%w: %s", ErrWrite, err)
	}

	return nil
}

func (r *Response) set(kind Kind, contentType string, body []byte) {
	r.kind = kind
	r.body = body
	r.header.Set("Content-Type", contentType)
}
