package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`\.go:\d+ `)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		val      string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"debug", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	} {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}

	require.Equal(t, "[WARN]", logger.LogLevelWarn.String())
	require.Equal(t, "[UNK]", logger.LogLevel(99).String())
}

func TestColorLogger(t *testing.T) {
	color.NoColor = true

	tcs := []struct {
		name   string
		level  logger.LogLevel
		logFn  func(logger.Logger, string)
		expect bool
	}{
		{"Debug-At-Info", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Debug(msg, nil) }, false},
		{"Info-At-Info", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Info(msg, nil) }, true},
		{"Warn-At-Error", logger.LogLevelError, func(l logger.Logger, msg string) { l.Warn(msg, nil) }, false},
		{"Error-At-Error", logger.LogLevelError, func(l logger.Logger, msg string) { l.Error(msg, nil) }, true},
		{"Fatal-At-Debug", logger.LogLevelDebug, func(l logger.Logger, msg string) { l.Fatal(msg, nil) }, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.NewLogger(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.logFn(l, "hitting the trail")

			// Assert
			if !tc.expect {
				require.Zero(t, b.Len())
				return
			}

			require.Regexp(t, logLevelRegexp, b.String())
			require.Regexp(t, fpRegexp, b.String())
			require.Contains(t, b.String(), "'hitting the trail'")
			require.NotContains(t, b.String(), "log_context")
		})
	}

	t.Run("With-Context", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		l := logger.NewLogger(logger.WithLogger(newTestLogger(b)))

		// Act
		l.Error("failed", &logger.LogContext{Error: errors.New("boom")})

		// Assert
		require.Contains(t, b.String(), "[ERROR]")
		require.Contains(t, b.String(), `log_context: {"error":"boom"}`)
	})

	t.Run("With-Caller", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		l := logger.NewLogger(logger.WithLogger(newTestLogger(b)))

		// Act
		l.Info("spawned", &logger.LogContext{Caller: "worker/worker.go:12"})

		// Assert
		require.Contains(t, b.String(), "[INFO] worker/worker.go:12 'spawned'")
	})
}

func TestColorLoggerSkip(t *testing.T) {
	// Arrange
	l := logger.NewLogger(logger.WithSkip(2))
	sl, ok := l.(logger.SkipLogger)
	require.True(t, ok)

	// Act
	added := sl.AddSkip(sl.Skip() + 1)

	// Assert
	require.Equal(t, 2, sl.Skip())
	require.Equal(t, 3, added.Skip())
}

func TestNoopLogger(t *testing.T) {
	l := logger.NewNoopLogger()
	l.Error("nothing", nil)
	require.Equal(t, logger.LogLevelFatal, l.LogLevel())
}
