package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
)

func TestRequestID(t *testing.T) {
	existing := uuid.NewString()
	tcs := []struct {
		name   string
		header string
		reused bool
	}{
		{"Zero-Value", "", false},
		{"Not-A-UUID", "abc", false},
		{"Reused", existing, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			if tc.header != "" {
				r.Header.Set(middleware.RequestIDHeader, tc.header)
			}

			var actual string

			// Act
			middleware.RequestID()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				actual, _ = rx.Context().Value(switchback.RequestIDKey).(string)
			})).ServeHTTP(w, r)

			// Assert
			_, err := uuid.Parse(actual)
			require.NoError(t, err)
			require.Equal(t, actual, w.Header().Get(middleware.RequestIDHeader))
			if tc.reused {
				require.Equal(t, tc.header, actual)
			} else {
				require.NotEqual(t, tc.header, actual)
			}
		})
	}
}
