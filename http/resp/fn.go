package resp

import "net/http"

// A Fn is a functional option that mutates the state of the Response.
type Fn func(*Response) error

// Apply calls each Fn in order, stopping at the first error.
func (r *Response) Apply(fns ...Fn) error {
	for _, fn := range fns {
		if err := fn(r); err != nil {
			return err
		}
	}

	return nil
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(r *Response) error {
		r.SetCode(c)
		return nil
	}
}

// Err sets the status code to http.StatusInternalServerError
// and the text body to the generic status text.
func Err() Fn {
	return func(r *Response) error {
		r.SetCode(http.StatusInternalServerError)
		r.SetText(http.StatusText(http.StatusInternalServerError))
		return nil
	}
}

// Header sets the header key to val.
func Header(key, val string) Fn {
	return func(r *Response) error {
		r.header.Set(key, val)
		return nil
	}
}

// HTML sets an HTML body.
func HTML(html string) Fn {
	return func(r *Response) error {
		r.SetHTML(html)
		return nil
	}
}

// JSON encodes v as the body.
func JSON(v any) Fn {
	return func(r *Response) error {
		return r.SetJSON(v)
	}
}

// Text sets a plain text body.
func Text(text string) Fn {
	return func(r *Response) error {
		r.SetText(text)
		return nil
	}
}
