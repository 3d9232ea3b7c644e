// Package django renders templates written in the Django template language
// through pongo2, so templates written for Jinja-style engines carry over.
package django

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/flosch/pongo2/v4"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/template"
)

var _ template.Renderer = (*Engine)(nil)

// Type Aliases from pongo2.
type (
	// A Context type provides constants, variables, instances or functions
	// to a template.
	Context = pongo2.Context

	// FilterFunction is the type filter functions must fulfil.
	FilterFunction = pongo2.FilterFunction
)

// Engine adapts the pongo2 engine.
//
// Engine implements template.Renderer.
type Engine struct {
	set    *pongo2.TemplateSet
	fsys   fs.FS
	reload bool
}

// An EngineOptFn configures an *Engine when constructing it.
type EngineOptFn func(*Engine)

// WithGlobals makes the values available to every template the Engine renders.
func WithGlobals(globals Context) EngineOptFn {
	return func(e *Engine) {
		e.set.Globals.Update(globals)
	}
}

// WithReload skips the template cache, picking up changes to files.
func WithReload(reload bool) EngineOptFn {
	return func(e *Engine) {
		e.reload = reload
		e.set.Debug = reload
	}
}

// New returns a new django engine reading templates from filesys.
//
// If filesys is nil, templates are read from the current working directory.
func New(filesys fs.FS, opts ...EngineOptFn) *Engine {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	loader := pongo2.MustNewHttpFileSystemLoader(http.FS(filesys), "")
	e := &Engine{set: pongo2.NewSet("switchback", loader), fsys: filesys}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Render executes the template found at name with data.
//
// A template that does not exist is reported with switchback.ErrNotExist.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	if _, err := fs.Stat(e.fsys, name); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: template %s", switchback.ErrNotExist, name)
	}

	var (
		tpl *pongo2.Template
		err error
	)
	if e.reload {
		tpl, err = e.set.FromFile(name)
	} else {
		tpl, err = e.set.FromCache(name)
	}

	if err != nil {
		return "", fmt.Errorf("failed parsing %s: %w", name, err)
	}

	if data == nil {
		data = make(map[string]any)
	}

	out, err := tpl.Execute(Context(data))
	if err != nil {
		return "", fmt.Errorf("failed rendering %s: %w", name, err)
	}

	return out, nil
}

// RegisterFilter makes fn available to templates as a filter named name.
//
// Filters are global to pongo2; registering a name twice fails.
func RegisterFilter(name string, fn FilterFunction) error {
	if pongo2.FilterExists(name) {
		return fmt.Errorf("%w: filter %q already registered", switchback.ErrNotValid, name)
	}

	return pongo2.RegisterFilter(name, fn)
}
