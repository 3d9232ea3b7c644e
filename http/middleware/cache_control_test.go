package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/middleware"
)

func TestCacheControl(t *testing.T) {
	// Arrange + Act
	actual := middleware.CacheControl(0)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	tcs := []struct {
		method   string
		expected string
	}{
		{http.MethodGet, "public, max-age=3600"},
		{http.MethodHead, "public, max-age=3600"},
		{http.MethodPost, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.method, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, "https://example.com/static/app.css", nil)

			// Act
			middleware.CacheControl(time.Hour)(noopHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Header().Get("Cache-Control"))
		})
	}
}
