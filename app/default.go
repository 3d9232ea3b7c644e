package app

import (
	"context"
	html "html/template"
	"net"
	"net/http"
	"net/url"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/http/template/django"
	"github.com/xy-planning-network/switchback/logger"
)

// applyDefaults builds from the Config whatever the options passed to New left unset.
func (a *App) applyDefaults() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	if a.l == nil {
		a.l = defaultLogger(a.cfg)
	}

	if a.renderer == nil {
		a.renderer = defaultRenderer(a.cfg)
	}

	if a.sessions == nil && a.cfg.SessionAuthKey != "" {
		store, err := defaultSessionStore(a.cfg)
		if err != nil {
			return err
		}

		a.sessions = store
	}

	if !a.staticSet && a.cfg.StaticPrefix != "" {
		a.static = newStatic(a.cfg.StaticPrefix, os.DirFS(a.cfg.StaticRoot), a.cfg.StaticMaxAge)
	}

	if a.adapters == nil {
		a.adapters = defaultAdapters(a.cfg, a.l)
	}

	if a.srv == nil {
		a.srv = defaultServer(a.ctx, a.cfg)
	}

	return nil
}

// defaultLogger constructs a logger.Logger leveled by the Config,
// reporting to Sentry when a DSN is configured.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.NewLogger(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(cfg.LogLevel),
		logger.WithSentryDSN(cfg.SentryDSN),
	)
	l.Debug("setting up app logger", nil)

	return l
}

// defaultRenderer constructs the template.Renderer App.Template delegates to,
// reading templates from the TEMPLATE_DIR directory.
//
// defaultRenderer makes available these functions in a template:
//
//   - "env"
//   - "isDevelopment"
//   - "isProduction"
//   - "nonce"
//   - "rootURL"
//   - "static" joins STATIC_PREFIX with a file path
func defaultRenderer(cfg Config) template.Renderer {
	dir := os.DirFS(cfg.TemplateDir)
	reload := cfg.Env.IsDevelopment()

	envName, envFn := template.Env(cfg.Env)
	nonceName, nonceFn := template.Nonce()
	rootName, rootFn := template.RootURL(&url.URL{Scheme: "http", Host: cfg.Addr()})
	staticName, staticFn := template.Static(cfg.StaticPrefix)

	fns := map[string]any{
		envName:         envFn,
		"isDevelopment": cfg.Env.IsDevelopment,
		"isProduction":  cfg.Env.IsProduction,
		nonceName:       nonceFn,
		rootName:        rootFn,
		staticName:      staticFn,
	}

	if cfg.TemplateEngine == TemplateEngineDjango {
		return django.New(dir, django.WithGlobals(fns), django.WithReload(reload))
	}

	return template.NewEngine(dir, template.WithFuncs(html.FuncMap(fns)), template.WithReload(reload))
}

// defaultSessionStore constructs a session.Storer backed by Redis when REDIS_URL is set
// and by cookies otherwise.
//
// defaultSessionStore relies on these env vars:
//   - SESSION_NAME
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//
// Both KEY env vars must be valid hex encoded values; cf. [encoding/hex].
func defaultSessionStore(cfg Config) (session.Storer, error) {
	scfg := session.Config{
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: cfg.SessionName,
	}

	args := []session.StoreOpt{session.WithMaxAge(defaultSessionMaxAge)}
	if cfg.RedisURL != "" {
		args = append(args, session.WithRedis(cfg.RedisURL, cfg.RedisPassword))
	} else {
		args = append(args, session.WithCookie())
	}

	return session.NewStore(scfg, args...)
}

// defaultAdapters constructs the Adapters wrapping the App, outermost first.
func defaultAdapters(cfg Config, l logger.Logger) []middleware.Adapter {
	adpts := []middleware.Adapter{middleware.ReportPanic(cfg.Env, l)}
	if cfg.RateLimit {
		adpts = append(adpts, middleware.RateLimit(middleware.NewVisitors()))
	}

	if !cfg.Env.IsTesting() {
		adpts = append(adpts, middleware.ForceHTTPS(cfg.Env))
	}

	adpts = append(adpts,
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.CORS(cfg.CORSOrigins...),
	)

	if cfg.Idempotency {
		var cache middleware.IdempotencyCache
		if cfg.RedisURL != "" {
			cache = middleware.NewRedisCache(&redis.Options{Addr: cfg.RedisURL, Password: cfg.RedisPassword})
		}

		adpts = append(adpts, middleware.Idempotent(cache))
	}

	return adpts
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
