package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any) Parser
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser with a focus on utilizing HTML templates through fs.FS.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
}

// NewParser constructs a *Parse reading templates from filesys
// with the provided functional options.
//
// If filesys is nil, templates are read from the current working directory.
func NewParser(filesys fs.FS, opts ...ParserOptFn) *Parse {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	p := &Parse{fs: filesys, fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// AddFn includes the named function in the Parse function map.
func (p *Parse) AddFn(name string, fn any) Parser {
	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}

	p.fns[name] = fn
	return p
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
//
// The returned template is named after the first file.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	return html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
}

// The ParserOptFn applies functional options to a *Parse when constructing it.
type ParserOptFn func(*Parse)

// WithFn encloses a named function so it can be added to a *Parse's function map.
func WithFn(name string, fn any) ParserOptFn {
	return func(p *Parse) {
		p.AddFn(name, fn)
	}
}
