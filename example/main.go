/*
Package main runs a small switchback application.

	go run ./example

Then visit http://localhost:3000/home.
*/
package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/xy-planning-network/switchback/app"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

//go:embed templates/*.html static/*
var files embed.FS

func main() {
	tmpls, err := fs.Sub(files, "templates")
	if err != nil {
		log.Fatal(err)
	}

	assets, err := fs.Sub(files, "static")
	if err != nil {
		log.Fatal(err)
	}

	cfg := app.NewConfig()
	_, staticFn := template.Static(cfg.StaticPrefix)
	a, err := app.New(
		app.WithRenderer(template.NewEngine(tmpls, template.WithFuncs(map[string]any{"static": staticFn}))),
		app.WithStaticFS(cfg.StaticPrefix, assets),
	)
	if err != nil {
		log.Fatal(err)
	}

	register(a)

	if err := a.Guide(); err != nil {
		log.Fatal(err)
	}
}

// register sets up the routes and middleware of the example application.
func register(a *app.App) {
	a.Use(timer)

	a.Route("/home", func(r *req.Request, w *resp.Response) error {
		w.SetText("Hello this is home page")
		return nil
	}, router.MethodGet)

	a.Route("/about", func(r *req.Request, w *resp.Response) error {
		w.SetText("Hello this is about page")
		return nil
	})

	a.Route("/hello/{name}", func(r *req.Request, w *resp.Response) error {
		w.SetText(fmt.Sprintf("Just say hello. Hello %s", r.Param("name")))
		return nil
	})

	a.Resource("/books", router.NewResource(func() books { return books{} }))

	if err := a.AddRoute("/new-handler", newHandler); err != nil {
		log.Fatal(err)
	}

	a.Route("/template", func(r *req.Request, w *resp.Response) error {
		html, err := a.Template("home.html", map[string]any{"name": "Bilol", "title": "Template working"})
		if err != nil {
			return err
		}

		w.SetHTML(html)
		return nil
	})

	a.Route("/json", func(r *req.Request, w *resp.Response) error {
		return w.SetJSON(map[string]string{"name": "Bilolbek", "Body": "Json response"})
	})

	a.Route("/oops", func(r *req.Request, w *resp.Response) error {
		return errors.New("something broke")
	})

	if err := a.AddExemptionHandler(exempt(a.Logger())); err != nil {
		log.Fatal(err)
	}
}

type books struct{}

func (books) Get(r *req.Request, w *resp.Response) error {
	w.SetText("Books GET request")
	return nil
}

func (books) Post(r *req.Request, w *resp.Response) error {
	w.SetText("Books POST request")
	return nil
}

func newHandler(r *req.Request, w *resp.Response) error {
	w.SetText("New handler")
	return nil
}

// timer reports how long dispatching each request took.
func timer(a *app.App) middleware.Middleware { return middleware.Timing(a.Logger()) }

// exempt answers failed requests with a 500 instead of dropping them.
func exempt(l logger.Logger) router.ExemptionHandler {
	return func(r *req.Request, w *resp.Response, err error) {
		l.Error(err.Error(), &logger.LogContext{Error: err, Request: r.Raw()})
		w.SetCode(500)
		w.SetText("Something went wrong")
	}
}
