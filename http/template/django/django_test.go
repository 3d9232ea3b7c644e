package django_test

import (
	"strings"
	"testing"

	"github.com/flosch/pongo2/v4"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/template/django"
	tt "github.com/xy-planning-network/switchback/http/template/templatetest"
)

func newFS() tt.MockFS {
	return tt.NewMockFS(
		tt.NewMockFile("base.html", []byte(`<title>{% block title %}switchback{% endblock %}</title>`)),
		tt.NewMockFile("home.html", []byte(`{% extends "base.html" %}{% block title %}Hello {{ name }}{% endblock %}`)),
		tt.NewMockFile("loop.html", []byte(`{% for b in books %}{{ b|upper }};{% endfor %}`)),
		tt.NewMockFile("global.html", []byte(`{{ site }}`)),
		tt.NewMockFile("escape.html", []byte(`{{ html }}`)),
		tt.NewMockFile("broken.html", []byte(`{% if %}`)),
	)
}

func TestEngineRender(t *testing.T) {
	// Arrange
	e := django.New(newFS(), django.WithGlobals(django.Context{"site": "switchback"}))

	tcs := []struct {
		name     string
		tmpl     string
		data     map[string]any
		expected string
	}{
		{"extends", "home.html", map[string]any{"name": "Bilol"}, "<title>Hello Bilol</title>"},
		{"loop", "loop.html", map[string]any{"books": []string{"dune", "emma"}}, "DUNE;EMMA;"},
		{"nil-data", "loop.html", nil, ""},
		{"globals", "global.html", nil, "switchback"},
		{"escapes", "escape.html", map[string]any{"html": "<b>"}, "&lt;b&gt;"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := e.Render(tc.tmpl, tc.data)

			// Assert
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}

	t.Run("missing", func(t *testing.T) {
		// Act
		_, err := e.Render("nope.html", nil)

		// Assert
		require.ErrorIs(t, err, switchback.ErrNotExist)
	})

	t.Run("bad-syntax", func(t *testing.T) {
		// Act
		_, err := e.Render("broken.html", nil)

		// Assert
		require.Error(t, err)
		require.Contains(t, err.Error(), "broken.html")
		require.NotErrorIs(t, err, switchback.ErrNotExist)
	})
}

func TestEngineReload(t *testing.T) {
	// Arrange
	e := django.New(newFS(), django.WithReload(true))

	// Act
	first, errFirst := e.Render("home.html", map[string]any{"name": "first"})
	second, errSecond := e.Render("home.html", map[string]any{"name": "second"})

	// Assert
	require.NoError(t, errFirst)
	require.NoError(t, errSecond)
	require.Equal(t, "<title>Hello first</title>", first)
	require.Equal(t, "<title>Hello second</title>", second)
}

func TestRegisterFilter(t *testing.T) {
	// Arrange
	reverse := func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		r := []rune(in.String())
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}

		return pongo2.AsValue(string(r)), nil
	}

	// Act
	err := django.RegisterFilter("switchback_reverse", reverse)

	// Assert
	require.NoError(t, err)
	require.ErrorIs(t, django.RegisterFilter("switchback_reverse", reverse), switchback.ErrNotValid)

	e := django.New(tt.NewMockFS(tt.NewMockFile("rev.html", []byte(`{{ word|switchback_reverse }}`))))
	actual, err := e.Render("rev.html", map[string]any{"word": "stressed"})
	require.NoError(t, err)
	require.True(t, strings.EqualFold("desserts", actual))
}
