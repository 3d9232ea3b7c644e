package template_test

import (
	"bytes"
	html "html/template"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/template"
	tt "github.com/xy-planning-network/switchback/http/template/templatetest"
)

type testFn func(*testing.T, *html.Template, error)

func TestParse(t *testing.T) {
	stub := []byte("<!DOCTYPE html>\n<html></html>")
	tcs := []struct {
		name   string
		parser template.Parser
		fns    map[string]any
		fps    []string
		assert testFn
	}{
		{
			name:   "Zero-Value",
			parser: template.NewParser(tt.NewMockFS()),
			fps:    []string{},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Empty-String",
			parser: template.NewParser(tt.NewMockFS(tt.NewMockFile("", nil))),
			fps:    []string{""},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "No-File",
			parser: template.NewParser(tt.NewMockFS(tt.NewMockFile("other.tmpl", nil))),
			fps:    []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Error(t, err)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Empty-File",
			parser: template.NewParser(tt.NewMockFS(tt.NewMockFile("example.tmpl", nil))),
			fps:    []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NoError(t, err)
				require.Equal(t, "example.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.NoError(t, tmpl.Execute(b, nil))
				require.Empty(t, b.Bytes())
			},
		},
		{
			name:   "Not-Empty-File",
			parser: template.NewParser(tt.NewMockFS(tt.NewMockFile("example.tmpl", stub))),
			fps:    []string{"example.tmpl", ""},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NoError(t, err)
				require.Equal(t, "example.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.NoError(t, tmpl.Execute(b, nil))
				require.Equal(t, stub, b.Bytes())
			},
		},
		{
			name: "Many-Files",
			parser: template.NewParser(tt.NewMockFS(
				tt.NewMockFile("pages/example.tmpl", []byte(`<!DOCTYPE html><html>{{ template "test" }}</html>`)),
				tt.NewMockFile("partials/test.tmpl", []byte(`{{ define "test" }}<p>sup</p>{{ end }}`)),
			)),
			fps: []string{"pages/example.tmpl", "partials/test.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NoError(t, err)
				require.Equal(t, "example.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.NoError(t, tmpl.ExecuteTemplate(b, "example.tmpl", nil))
				require.Equal(t, "<!DOCTYPE html><html><p>sup</p></html>", b.String())
			},
		},
		{
			name: "Add-Fns",
			parser: template.NewParser(tt.NewMockFS(
				tt.NewMockFile("example.tmpl", []byte(`<!DOCTYPE html><html>{{ test }} {{ second "cool" }}</html>`)),
			)),
			fns: map[string]any{
				"test":   func() string { return "test" },
				"second": func(s string) string { return s },
			},
			fps: []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NoError(t, err)

				b := new(bytes.Buffer)
				require.NoError(t, tmpl.Execute(b, nil))
				require.Equal(t, "<!DOCTYPE html><html>test cool</html>", b.String())
			},
		},
		{
			name: "With-Fn",
			parser: template.NewParser(
				tt.NewMockFS(tt.NewMockFile("example.tmpl", []byte(`{{ greet }}`))),
				template.WithFn("greet", func() string { return "hi" }),
			),
			fps: []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NoError(t, err)

				b := new(bytes.Buffer)
				require.NoError(t, tmpl.Execute(b, nil))
				require.Equal(t, "hi", b.String())
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.fns {
				tc.parser = tc.parser.AddFn(k, v)
			}

			tmpl, err := tc.parser.Parse(tc.fps...)
			tc.assert(t, tmpl, err)
		})
	}
}
