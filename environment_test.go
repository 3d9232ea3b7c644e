package switchback_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

func TestEnvironmentValid(t *testing.T) {
	for _, e := range []switchback.Environment{
		switchback.Development,
		switchback.Production,
		switchback.Staging,
		switchback.Testing,
	} {
		require.Nil(t, e.Valid())
	}

	require.ErrorIs(t, switchback.Environment("").Valid(), switchback.ErrNotValid)
	require.ErrorIs(t, switchback.Environment("development").Valid(), switchback.ErrNotValid)
}

func TestEnvVarOrBool(t *testing.T) {
	key := "SWITCHBACK_TEST_BOOL"

	t.Setenv(key, "")
	require.True(t, switchback.EnvVarOrBool(key, true))

	t.Setenv(key, "TRUE")
	require.True(t, switchback.EnvVarOrBool(key, false))

	t.Setenv(key, "false")
	require.False(t, switchback.EnvVarOrBool(key, true))

	t.Setenv(key, "nope")
	require.False(t, switchback.EnvVarOrBool(key, false))
}

func TestEnvVarOrDuration(t *testing.T) {
	key := "SWITCHBACK_TEST_DURATION"

	t.Setenv(key, "")
	require.Equal(t, time.Second, switchback.EnvVarOrDuration(key, time.Second))

	t.Setenv(key, "3m")
	require.Equal(t, 3*time.Minute, switchback.EnvVarOrDuration(key, time.Second))
}

func TestEnvVarOrEnv(t *testing.T) {
	key := "SWITCHBACK_TEST_ENV"

	t.Setenv(key, "")
	require.Equal(t, switchback.Development, switchback.EnvVarOrEnv(key, switchback.Development))

	t.Setenv(key, "production")
	require.Equal(t, switchback.Production, switchback.EnvVarOrEnv(key, switchback.Development))

	t.Setenv(key, "moon")
	require.Equal(t, switchback.Testing, switchback.EnvVarOrEnv(key, switchback.Testing))
}

func TestEnvVarOrInt(t *testing.T) {
	key := "SWITCHBACK_TEST_INT"

	t.Setenv(key, "12")
	require.Equal(t, 12, switchback.EnvVarOrInt(key, 1))

	t.Setenv(key, "twelve")
	require.Equal(t, 1, switchback.EnvVarOrInt(key, 1))
}

func TestEnvVarOrLogLevel(t *testing.T) {
	key := "SWITCHBACK_TEST_LOG_LEVEL"

	t.Setenv(key, "warn")
	require.Equal(t, logger.LogLevelWarn, switchback.EnvVarOrLogLevel(key, logger.LogLevelInfo))

	t.Setenv(key, "")
	require.Equal(t, logger.LogLevelInfo, switchback.EnvVarOrLogLevel(key, logger.LogLevelInfo))
}

func TestEnvVarOrString(t *testing.T) {
	key := "SWITCHBACK_TEST_STRING"

	t.Setenv(key, "")
	require.Equal(t, "default", switchback.EnvVarOrString(key, "default"))

	t.Setenv(key, "set")
	require.Equal(t, "set", switchback.EnvVarOrString(key, "default"))
}
