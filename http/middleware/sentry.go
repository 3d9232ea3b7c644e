package middleware

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// recoveryLogger reports panics recovered by handlers.RecoveryHandler to a logger.Logger.
type recoveryLogger struct {
	l logger.Logger
}

func (rl recoveryLogger) Println(vals ...any) {
	rl.l.Error(fmt.Sprint(vals...), nil)
}

// ReportPanic recovers panics escaping the handler, logging them and responding 500.
//
// Outside of development and testing, and once a Sentry client is initialized,
// panics are reported to Sentry before being recovered.
func ReportPanic(env switchback.Environment, l logger.Logger) Adapter {
	if l == nil {
		l = logger.NewNoopLogger()
	}

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{l: l}),
		handlers.PrintRecoveryStack(!env.IsProduction()),
	)

	if env.IsDevelopment() || env.IsTesting() || sentry.CurrentHub().Client() == nil {
		return recovery
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return recovery(sh.Handle(h))
	}
}
