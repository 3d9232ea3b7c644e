/*
Package app wires routes, middleware and collaborators into a switchback application.

# App

The main entrypoint to package app is the [App] type, constructed with [New].

	a, err := app.New()
	if err != nil {
		log.Fatal(err)
	}

	a.Route("/hello/{name}", func(r *req.Request, w *resp.Response) error {
		w.SetText("Hello " + r.Param("name"))
		return nil
	}, router.MethodGet)

	a.Resource("/books", router.NewResource(newBooks))

	log.Fatal(a.Guide())

Routes, middleware and the exemption handler are registered while setting up the [App].
Once it handles its first request, registering any of them fails with [router.ErrSealed].

[*App.Guide] begins the web server.
By default, [*App.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000).
Stop that web server with [*App.Shutdown],
cancel the context.Context set with [WithContext],
or send a signal [*App.Guide] listens for.

Requests whose path begins with STATIC_PREFIX are served from STATIC_ROOT
without running middleware or dispatching to a route.
Every other request goes through [*App.Handle].

# Configuration

A developer configures a switchback app through environment variables
and by passing options to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - CORS_ORIGIN: a comma separated list of origins allowed to make cross-origin requests
  - ENVIRONMENT: the environment the application is running in; default: DEVELOPMENT; cf. [switchback.Environment]
  - HOST: the host the application is running on; default: localhost
  - IDEMPOTENCY_ENABLED: replay responses to POST requests repeating an Idempotency-Key; default: false
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT_ENABLED: limit how many requests per second each IP address makes; default: false
  - REDIS_PASSWORD: the password for authenticating to Redis
  - REDIS_URL: the host:port of a Redis server; when set, sessions and idempotent responses are stored there
  - SENTRY_DSN: the Sentry project errors are reported to
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_TIMING_ENABLED: report how long dispatching took in a Server-Timing header; default: false
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; sessions are off without it; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_NAME: the name of the session cookie; default: switchback
  - STATIC_MAX_AGE: how long - as understood by [time.ParseDuration] - clients may cache static files
  - STATIC_PREFIX: the path prefix static files are served under; default: /static
  - STATIC_ROOT: the directory static files are served from; default: static
  - TEMPLATE_DIR: the directory templates are read from; default: templates
  - TEMPLATE_ENGINE: html for html/template or django for Django syntax; default: html
*/
package app
