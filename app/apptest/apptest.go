// Package apptest runs requests through an *app.App in process, for tests.
package apptest

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/app"
	"github.com/xy-planning-network/switchback/logger"
)

// BaseURL is the origin requests made through a Client appear to be sent to.
const BaseURL = "http://testserver"

// New constructs an *app.App set up for tests:
// the Testing environment, a silent logger, and neither static files nor Adapters.
//
// The opts passed in apply after those and may override them.
func New(t testing.TB, opts ...app.Option) *app.App {
	t.Helper()

	cfg := app.Config{
		Env:            switchback.Testing,
		LogLevel:       logger.LogLevelDebug,
		TemplateDir:    app.DefaultTemplateDir,
		TemplateEngine: app.TemplateEngineHTML,
	}

	base := []app.Option{
		app.WithConfig(cfg),
		app.WithLogger(logger.NewNoopLogger()),
		app.WithAdapters(),
		app.WithStaticFS("", nil),
	}

	a, err := app.New(append(base, opts...)...)
	require.NoError(t, err)

	return a
}

// A Client sends requests straight to an http.Handler, recording the responses.
//
// Cookies set by responses are sent with later requests, the way a browser session would.
type Client struct {
	h   http.Handler
	jar http.CookieJar
}

// NewClient constructs a *Client sending requests to h.
func NewClient(h http.Handler) *Client {
	// NOTE(dlk): cookiejar.New only fails when given a PublicSuffixList that fails.
	jar, _ := cookiejar.New(nil)
	return &Client{h: h, jar: jar}
}

// Do sends r, returning the recorded response.
func (c *Client) Do(r *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.jar.Cookies(r.URL) {
		r.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, r)
	c.jar.SetCookies(r.URL, rec.Result().Cookies())

	return rec
}

// Request sends a request with method to target, which is a path or an absolute URL.
func (c *Client) Request(method, target string, body io.Reader) *httptest.ResponseRecorder {
	if strings.HasPrefix(target, "/") {
		target = BaseURL + target
	}

	return c.Do(httptest.NewRequest(method, target, body))
}

func (c *Client) Delete(target string) *httptest.ResponseRecorder {
	return c.Request(http.MethodDelete, target, nil)
}

func (c *Client) Get(target string) *httptest.ResponseRecorder {
	return c.Request(http.MethodGet, target, nil)
}

// Post sends body to target with the Content-Type header set to contentType.
func (c *Client) Post(target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	if strings.HasPrefix(target, "/") {
		target = BaseURL + target
	}

	r := httptest.NewRequest(http.MethodPost, target, body)
	r.Header.Set("Content-Type", contentType)

	return c.Do(r)
}

// PostForm sends vals to target, URL encoded.
func (c *Client) PostForm(target string, vals url.Values) *httptest.ResponseRecorder {
	return c.Post(target, "application/x-www-form-urlencoded", strings.NewReader(vals.Encode()))
}

func (c *Client) Put(target string, body io.Reader) *httptest.ResponseRecorder {
	return c.Request(http.MethodPut, target, body)
}
