/*
Package template renders HTML templates.

A Renderer is all an application needs from a template engine.
Engine is one backed by html/template;
the django subpackage provides one with Django syntax.

	e := template.NewEngine(os.DirFS("templates"), template.WithFuncs(html.FuncMap{
		"static": func(fp string) string { return "/static/" + fp },
	}))
	out, err := e.Render("home.html", map[string]any{"name": "Bilol"})
*/
package template
