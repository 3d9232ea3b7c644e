package middleware

import (
	"fmt"
	"time"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/logger"
)

const ServerTimingHeader = "Server-Timing"

type timing struct {
	l logger.Logger
}

// Timing measures how long dispatching a request takes.
//
// Before dispatch, Timing stashes the current time under switchback.RequestStartKey.
// After, it reports the elapsed time in a "Server-Timing" header and a debug log.
func Timing(l logger.Logger) Middleware {
	if l == nil {
		l = logger.NewNoopLogger()
	}

	return timing{l: l}
}

func (t timing) ProcessRequest(r *req.Request) error {
	r.WithValue(switchback.RequestStartKey, time.Now())
	return nil
}

func (t timing) ProcessResponse(r *req.Request, w *resp.Response) error {
	start, ok := r.Value(switchback.RequestStartKey).(time.Time)
	if !ok {
		return nil
	}

	dur := time.Since(start)
	w.Header().Add(ServerTimingHeader, fmt.Sprintf("app;dur=%.3f", float64(dur.Microseconds())/1000))
	t.l.Debug(fmt.Sprintf("%s %s took %s", r.Method(), r.Path(), dur), &logger.LogContext{
		Data: map[string]any{"status": w.Code(), "duration_ms": dur.Milliseconds()},
	})

	return nil
}
