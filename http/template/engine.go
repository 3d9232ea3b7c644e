package template

import (
	"bytes"
	"errors"
	"fmt"
	html "html/template"
	"io/fs"
	"sync"

	"github.com/xy-planning-network/switchback"
)

// An Engine renders html/template files, caching each once parsed.
//
// Engine implements Renderer.
type Engine struct {
	p       *Parse
	layouts []string
	reload  bool

	mu    sync.RWMutex
	cache map[string]*html.Template
}

// An EngineOptFn configures an *Engine when constructing it.
type EngineOptFn func(*Engine)

// WithFuncs adds the functions to every template the Engine parses.
func WithFuncs(fns html.FuncMap) EngineOptFn {
	return func(e *Engine) {
		for name, fn := range fns {
			e.p.AddFn(name, fn)
		}
	}
}

// WithLayouts parses the files alongside every template rendered,
// making the templates they define available to it.
func WithLayouts(fps ...string) EngineOptFn {
	return func(e *Engine) {
		e.layouts = append(e.layouts, fps...)
	}
}

// WithReload parses templates on every render, picking up changes to files.
func WithReload(reload bool) EngineOptFn {
	return func(e *Engine) {
		e.reload = reload
	}
}

// NewEngine constructs an *Engine reading templates from filesys.
//
// If filesys is nil, templates are read from the current working directory.
func NewEngine(filesys fs.FS, opts ...EngineOptFn) *Engine {
	e := &Engine{p: NewParser(filesys), cache: make(map[string]*html.Template)}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Render executes the template found at name with data.
//
// A template that does not exist is reported with switchback.ErrNotExist.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	if data == nil {
		data = make(map[string]any)
	}

	b := new(bytes.Buffer)
	if err := tmpl.Execute(b, data); err != nil {
		return "", fmt.Errorf("failed rendering %s: %w", name, err)
	}

	return b.String(), nil
}

func (e *Engine) lookup(name string) (*html.Template, error) {
	if !e.reload {
		e.mu.RLock()
		tmpl, ok := e.cache[name]
		e.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	if _, err := fs.Stat(e.p.fs, name); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: template %s", switchback.ErrNotExist, name)
	}

	tmpl, err := e.p.Parse(append([]string{name}, e.layouts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed parsing %s: %w", name, err)
	}

	if !e.reload {
		e.mu.Lock()
		e.cache[name] = tmpl
		e.mu.Unlock()
	}

	return tmpl, nil
}
