package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/session"
)

const testKey = "ABCD"

func newStore(t *testing.T) *session.Store {
	t.Helper()

	s, err := session.NewStore(session.Config{
		Env:         switchback.Testing,
		SessionName: "switchback-test",
		AuthKey:     testKey,
		EncryptKey:  testKey,
	})
	require.NoError(t, err)

	return s
}

func TestNewStore(t *testing.T) {
	notHex := "ðŸ˜…"
	tcs := []struct {
		name string
		cfg  session.Config
	}{
		{"bad-env", session.Config{Env: "LOCAL", SessionName: "s", AuthKey: testKey, EncryptKey: testKey}},
		{"no-name", session.Config{Env: switchback.Testing, AuthKey: testKey, EncryptKey: testKey}},
		{"bad-auth-key", session.Config{Env: switchback.Testing, SessionName: "s", AuthKey: notHex, EncryptKey: testKey}},
		{"bad-encrypt-key", session.Config{Env: switchback.Testing, SessionName: "s", AuthKey: testKey, EncryptKey: notHex}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			s, err := session.NewStore(tc.cfg)

			// Assert
			require.ErrorIs(t, err, switchback.ErrBadConfig)
			require.Nil(t, s)
		})
	}

	t.Run("success", func(t *testing.T) {
		// Act
		s := newStore(t)

		// Assert
		require.Equal(t, "switchback-test", s.Name())
	})
}

func TestStoreWithRedisUnreachable(t *testing.T) {
	// Act
	s, err := session.NewStore(session.Config{
		Env:         switchback.Testing,
		SessionName: "s",
		AuthKey:     testKey,
		EncryptKey:  testKey,
	}, session.WithRedis("127.0.0.1:1", ""))

	// Assert
	require.ErrorIs(t, err, switchback.ErrBadConfig)
	require.Nil(t, s)
}

func TestStoreRoundTrip(t *testing.T) {
	// Arrange
	store := newStore(t)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	s, err := store.GetSession(r)
	require.NoError(t, err)
	require.True(t, s.IsNew())
	require.False(t, s.Dirty())

	s.Set("name", "Bilol")
	s.AddFlash(session.Flash{Class: session.FlashInfo, Msg: "welcome"})
	require.True(t, s.Dirty())

	// Act
	h := make(http.Header)
	require.NoError(t, s.SaveHeader(r, h))

	// Assert
	require.False(t, s.Dirty())
	cookies := (&http.Response{Header: h}).Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "switchback-test", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	// Arrange
	next := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	next.AddCookie(cookies[0])

	// Act
	loaded, err := store.GetSession(next)

	// Assert
	require.NoError(t, err)
	require.False(t, loaded.IsNew())
	require.Equal(t, "Bilol", loaded.Get("name"))
	require.Equal(t, []session.Flash{{Class: session.FlashInfo, Msg: "welcome"}}, loaded.Flashes())
	require.True(t, loaded.Dirty())
	require.Nil(t, loaded.Flashes())
}

func TestStoreBadCookie(t *testing.T) {
	// Arrange
	store := newStore(t)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.AddCookie(&http.Cookie{Name: "switchback-test", Value: "tampered"})

	// Act
	s, err := store.GetSession(r)

	// Assert
	require.Error(t, err)
	require.NotNil(t, s)
	require.True(t, s.IsNew())
}

func TestSessionRemoveAndDelete(t *testing.T) {
	// Arrange
	store := newStore(t)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	s, err := store.GetSession(r)
	require.NoError(t, err)
	s.Set("key", "val")

	// Act
	s.Remove("key")
	s.Delete()

	// Assert
	require.Nil(t, s.Get("key"))

	w := httptest.NewRecorder()
	require.NoError(t, s.Save(w, r))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Negative(t, cookies[0].MaxAge)
}
