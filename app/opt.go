package app

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

// An Option configures an *App either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some Options require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *App is updated with the enclosed value.
//
// WithStatic is an example of the second.
// The files it serves are only wrapped once the Config is settled,
// since the Config says how long clients may cache them.
type Option func(a *App) (OptFollowup, error)
type OptFollowup func() error

// WithAdapters replaces the Adapters wrapping the App with those provided.
// Adapters run in the order provided.
func WithAdapters(adapters ...middleware.Adapter) Option {
	return func(a *App) (OptFollowup, error) {
		a.adapters = append([]middleware.Adapter{}, adapters...)
		return nil, nil
	}
}

// WithConfig replaces the Config read from environment variables.
func WithConfig(cfg Config) Option {
	return func(a *App) (OptFollowup, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		a.cfg = cfg
		return nil, nil
	}
}

// WithContext sets the context.Context the web server bases requests on.
func WithContext(ctx context.Context) Option {
	return func(a *App) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("nil context")
		}

		a.ctx = ctx
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the App.
func WithLogger(l logger.Logger) Option {
	return func(a *App) (OptFollowup, error) {
		if l == nil {
			return nil, fmt.Errorf("nil logger")
		}

		a.l = l
		a.l.Debug(fmt.Sprintf("using logger %T", l), nil)
		return nil, nil
	}
}

// WithRenderer sets the template.Renderer App.Template delegates to.
func WithRenderer(r template.Renderer) Option {
	return func(a *App) (OptFollowup, error) {
		if r == nil {
			r = template.NoRenderer
		}

		a.renderer = r
		return nil, nil
	}
}

// WithServer sets the *http.Server Guide runs.
// The App replaces its Handler.
func WithServer(srv *http.Server) Option {
	return func(a *App) (OptFollowup, error) {
		if srv == nil {
			return nil, fmt.Errorf("nil server")
		}

		a.srv = srv
		return nil, nil
	}
}

// WithSessionStore loads a session for every request dispatched through the App.
func WithSessionStore(store session.Storer) Option {
	return func(a *App) (OptFollowup, error) {
		a.sessions = store
		return nil, nil
	}
}

// WithStatic serves the files under the root directory for requests whose path begins with prefix.
// An empty prefix turns static files off.
func WithStatic(prefix, root string) Option {
	return WithStaticFS(prefix, os.DirFS(root))
}

// WithStaticFS serves the files in filesys for requests whose path begins with prefix.
// An empty prefix turns static files off.
func WithStaticFS(prefix string, filesys fs.FS) Option {
	return func(a *App) (OptFollowup, error) {
		a.staticSet = true
		a.static = nil
		if prefix == "" {
			return nil, nil
		}

		if prefix[0] != '/' {
			return nil, fmt.Errorf("static prefix %q must begin with /", prefix)
		}

		return func() error {
			a.static = newStatic(prefix, filesys, a.cfg.StaticMaxAge)
			return nil
		}, nil
	}
}
