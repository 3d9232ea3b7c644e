package router_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/router"
)

func TestParseMethod(t *testing.T) {
	tcs := []struct {
		in string
		m  router.Method
		ok bool
	}{
		{http.MethodGet, router.MethodGet, true},
		{"get", router.MethodGet, true},
		{"Post", router.MethodPost, true},
		{http.MethodPatch, router.MethodPatch, true},
		{http.MethodTrace, router.MethodTrace, true},
		{"BREW", 0, false},
		{"", 0, false},
	}

	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			// Act
			m, ok := router.ParseMethod(tc.in)

			// Assert
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.m, m)
		})
	}
}

func TestMethodString(t *testing.T) {
	require.Equal(t, "get", router.MethodGet.String())
	require.Equal(t, "delete", router.MethodDelete.String())
	require.Equal(t, "unknown", router.Method(0).String())
}

func TestMethodSet(t *testing.T) {
	// Act
	set := router.NewMethodSet(router.MethodPost, router.MethodGet)

	// Assert
	require.True(t, set.Has(router.MethodGet))
	require.True(t, set.Has(router.MethodPost))
	require.False(t, set.Has(router.MethodHead))
	require.Equal(t, []router.Method{router.MethodGet, router.MethodPost}, set.Methods())
	require.Equal(t, "get,post", set.String())
	require.Equal(t, "get,put,patch,post,delete,options,head,connect,trace", router.AllMethods.String())
	require.Empty(t, router.MethodSet(0).Methods())
}

func TestParseMethodSet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		// Act
		set, err := router.ParseMethodSet("get", "POST")

		// Assert
		require.NoError(t, err)
		require.Equal(t, router.NewMethodSet(router.MethodGet, router.MethodPost), set)
	})

	t.Run("invalid", func(t *testing.T) {
		// Act
		set, err := router.ParseMethodSet("get", "brew")

		// Assert
		require.ErrorIs(t, err, router.ErrInvalidMethod)
		require.Error(t, err)
		require.Contains(t, err.Error(), "brew")
		require.Zero(t, set)
	})
}
