package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/session"
)

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()

	s, err := session.NewStore(session.Config{
		Env:         switchback.Testing,
		SessionName: "switchback-test",
		AuthKey:     "ABCD",
		EncryptKey:  "ABCD",
	})
	require.NoError(t, err)

	return s
}

func TestSessions(t *testing.T) {
	t.Run("nil-store", func(t *testing.T) {
		// Act
		m := middleware.Sessions(nil)

		// Assert
		require.Equal(t, middleware.Hooks{}, m)
	})

	t.Run("saves-changes", func(t *testing.T) {
		// Arrange
		store := newSessionStore(t)
		s := middleware.NewStack(func(r *req.Request) (*resp.Response, error) {
			sess, err := session.FromRequest(r)
			if err != nil {
				return nil, err
			}

			sess.Set("visits", 1)
			return resp.New(), nil
		})
		require.NoError(t, s.Add(middleware.Sessions(store)))

		// Act
		w, err := s.Invoke(newTestRequest())

		// Assert
		require.NoError(t, err)
		cookies := (&http.Response{Header: w.Header()}).Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "switchback-test", cookies[0].Name)

		// Arrange
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])

		// Act
		loaded, err := store.GetSession(r)

		// Assert
		require.NoError(t, err)
		require.Equal(t, 1, loaded.Get("visits"))
	})

	t.Run("skips-unchanged", func(t *testing.T) {
		// Arrange
		s := middleware.NewStack(func(r *req.Request) (*resp.Response, error) {
			_, err := session.FromRequest(r)
			return resp.New(), err
		})
		require.NoError(t, s.Add(middleware.Sessions(newSessionStore(t))))

		// Act
		w, err := s.Invoke(newTestRequest())

		// Assert
		require.NoError(t, err)
		require.Empty(t, w.Header().Values("Set-Cookie"))
	})
}
