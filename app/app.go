package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

// A MiddlewareFunc builds a Middleware bound to the *App it is added to.
type MiddlewareFunc func(a *App) middleware.Middleware

// An App owns the routes, middleware and collaborators of a switchback application
// and exposes them to the transport serving it.
//
// Routes, middleware and the exemption handler are registered while setting up the App.
// Once the App handles its first request, registering any of them fails with router.ErrSealed.
type App struct {
	cfg      Config
	ctx      context.Context
	l        logger.Logger
	renderer template.Renderer
	sessions session.Storer
	static   *static
	srv      *http.Server

	staticSet bool

	adapters   []middleware.Adapter
	dispatcher *router.Dispatcher
	stack      *middleware.Stack
	table      *router.Table

	once    sync.Once
	handler http.Handler
}

// New constructs an *App from the provided options.
// The Config is read from environment variables first, then the options passed into New apply.
// Whatever those options leave unset is built from the Config.
func New(opts ...Option) (*App, error) {
	a := &App{cfg: NewConfig(), ctx: context.Background(), table: router.NewTable()}
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): some options require data from other options,
	// the Config most of all.
	// These options return an OptFollowup called after every option ran.
	for _, opt := range opts {
		fn, err := opt(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", switchback.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", switchback.ErrBadConfig, err)
		}
	}

	if err := a.applyDefaults(); err != nil {
		return nil, fmt.Errorf("%w: %s", switchback.ErrBadConfig, err)
	}

	a.dispatcher = router.NewDispatcher(a.table, router.WithLogger(a.l))
	a.stack = middleware.NewStack(a.dispatcher.Dispatch)

	if a.cfg.ServerTiming {
		if err := a.stack.Add(middleware.Timing(a.l)); err != nil {
			return nil, err
		}
	}

	if a.sessions != nil {
		if err := a.stack.Add(middleware.Sessions(a.sessions)); err != nil {
			return nil, err
		}
	}

	a.srv.Handler = a

	return a, nil
}

// AddRoute registers h under pattern, allowing only methods.
// With no methods, h allows every standard method.
func (a *App) AddRoute(pattern string, h router.HandlerFunc, methods ...router.Method) error {
	_, err := a.table.Register(pattern, h, router.NewMethodSet(methods...))
	return err
}

// AddResource registers fn under pattern.
// The Resource fn builds for each request allows exactly the methods it has operations for.
func (a *App) AddResource(pattern string, fn router.ResourceFunc) error {
	_, err := a.table.Register(pattern, fn, 0)
	return err
}

// AddMiddleware binds fn to the App and appends the Middleware it builds to the Stack.
func (a *App) AddMiddleware(fn MiddlewareFunc) error {
	if fn == nil {
		return fmt.Errorf("%w: nil MiddlewareFunc", middleware.ErrInvalidMiddleware)
	}

	m := fn(a)
	var err error
	if sealedErr := a.table.WhileOpen(func() { err = a.stack.Add(m) }); sealedErr != nil {
		return fmt.Errorf("%w: cannot add middleware", sealedErr)
	}

	return err
}

// AddExemptionHandler sets the handler called with any error a route's handler fails with.
// A later call replaces an earlier one.
func (a *App) AddExemptionHandler(h router.ExemptionHandler) error {
	if err := a.table.WhileOpen(func() { a.dispatcher.SetExemptionHandler(h) }); err != nil {
		return fmt.Errorf("%w: cannot add exemption handler", err)
	}

	return nil
}

// Route is AddRoute, panicking on error.
func (a *App) Route(pattern string, h router.HandlerFunc, methods ...router.Method) router.HandlerFunc {
	if err := a.AddRoute(pattern, h, methods...); err != nil {
		panic(err)
	}

	return h
}

// Resource is AddResource, panicking on error.
//
// Build fn from a type whose methods handle requests with router.NewResource.
func (a *App) Resource(pattern string, fn router.ResourceFunc) {
	if err := a.AddResource(pattern, fn); err != nil {
		panic(err)
	}
}

// Use is AddMiddleware, panicking on error.
func (a *App) Use(fn MiddlewareFunc) {
	if err := a.AddMiddleware(fn); err != nil {
		panic(err)
	}
}

// Handle runs r through the middleware Stack and dispatches it to its route.
//
// A failure no exemption handler contains is returned,
// as are errors from middleware.
func (a *App) Handle(r *http.Request) (*resp.Response, error) {
	a.table.Seal()
	return a.stack.Invoke(req.New(r))
}

// ServeHTTP serves static files under the configured prefix
// and hands every other request to Handle, all behind the configured Adapters.
//
// A request Handle fails is logged and answered with a 500.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.once.Do(func() { a.handler = a.buildHandler() })
	a.handler.ServeHTTP(w, r)
}

// Template renders the named template with data through the configured Renderer.
func (a *App) Template(name string, data map[string]any) (string, error) {
	if data == nil {
		data = make(map[string]any)
	}

	return a.renderer.Render(name, data)
}

func (a *App) Config() Config               { return a.cfg }
func (a *App) Env() switchback.Environment  { return a.cfg.Env }
func (a *App) Logger() logger.Logger        { return a.l }
func (a *App) SessionStore() session.Storer { return a.sessions }
func (a *App) Table() *router.Table         { return a.table }

func (a *App) buildHandler() http.Handler {
	m := mux.NewRouter().SkipClean(true)
	if a.static != nil {
		m.MatcherFunc(a.static.match).Handler(a.static)
	}

	m.PathPrefix("/").HandlerFunc(a.serve)

	return middleware.Chain(m, a.adapters...)
}

func (a *App) serve(w http.ResponseWriter, r *http.Request) {
	res, err := a.Handle(r)
	if err != nil {
		a.l.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := res.Send(w); err != nil {
		a.l.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
	}
}
